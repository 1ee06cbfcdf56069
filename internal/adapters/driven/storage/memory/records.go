package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driven"
)

// Ensure RecordRepository implements the interface.
var _ driven.RecordRepository = (*RecordRepository)(nil)

// RecordRepository is an in-memory implementation of driven.RecordRepository.
type RecordRepository struct {
	mu           sync.RWMutex
	questions    map[int64]domain.Question
	answers      map[int64]domain.Answer
	nextQuestion int64
	nextAnswer   int64
}

// NewRecordRepository creates a new in-memory record repository.
func NewRecordRepository() *RecordRepository {
	return &RecordRepository{
		questions: make(map[int64]domain.Question),
		answers:   make(map[int64]domain.Answer),
	}
}

// InsertQuestion stores a question and returns its new id.
func (r *RecordRepository) InsertQuestion(_ context.Context, productRef int64, text string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertQuestionLocked(productRef, text), nil
}

// InsertAnswer stores an answer and returns its new id.
func (r *RecordRepository) InsertAnswer(_ context.Context, questionID int64, text string, isPrimary bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[questionID]; !ok {
		return 0, fmt.Errorf("question %d: %w", questionID, domain.ErrNotFound)
	}
	if isPrimary && r.hasPrimaryLocked(questionID) {
		return 0, domain.ErrPrimaryExists
	}
	return r.insertAnswerLocked(questionID, text, isPrimary), nil
}

// SaveRecord stores a question with all its answers in one step.
func (r *RecordRepository) SaveRecord(_ context.Context, rec domain.QARecord) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	qid := r.insertQuestionLocked(rec.ProductRef, rec.Question)
	r.insertAnswerLocked(qid, rec.PrimaryAnswer, true)
	for _, extra := range rec.AdditionalAnswers {
		r.insertAnswerLocked(qid, extra, false)
	}
	return qid, nil
}

// FetchAllQuestions returns every question ordered by id.
func (r *RecordRepository) FetchAllQuestions(_ context.Context) ([]domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Question, 0, len(r.questions))
	for _, q := range r.questions {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FetchQuestion returns a question by id.
func (r *RecordRepository) FetchQuestion(_ context.Context, id int64) (*domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.questions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &q, nil
}

// FindQuestion returns the question for productRef matching text case-insensitively.
func (r *RecordRepository) FindQuestion(_ context.Context, productRef int64, text string) (*domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	needle := strings.TrimSpace(text)
	for _, q := range r.questions {
		if q.ProductRef == productRef && strings.EqualFold(strings.TrimSpace(q.Text), needle) {
			return &q, nil
		}
	}
	return nil, domain.ErrNotFound
}

// FetchPrimaryAnswer returns the primary answer of a question.
func (r *RecordRepository) FetchPrimaryAnswer(_ context.Context, questionID int64) (*domain.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.answers {
		if a.QuestionID == questionID && a.IsPrimary {
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

// FetchSecondaryAnswers returns additional answers, most upvoted first.
func (r *RecordRepository) FetchSecondaryAnswers(_ context.Context, questionID int64) ([]domain.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Answer, 0)
	for _, a := range r.answers {
		if a.QuestionID == questionID && !a.IsPrimary {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Upvotes != out[j].Upvotes {
			return out[i].Upvotes > out[j].Upvotes
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetAnswer returns an answer by id.
func (r *RecordRepository) GetAnswer(_ context.Context, id int64) (*domain.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.answers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

// IncrementUpvote adds one vote to an additional answer.
func (r *RecordRepository) IncrementUpvote(_ context.Context, answerID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.answers[answerID]
	if !ok || a.IsPrimary {
		return 0, nil
	}
	a.Upvotes++
	r.answers[answerID] = a
	return 1, nil
}

func (r *RecordRepository) insertQuestionLocked(productRef int64, text string) int64 {
	r.nextQuestion++
	r.questions[r.nextQuestion] = domain.Question{
		ID:         r.nextQuestion,
		Text:       text,
		ProductRef: productRef,
		CreatedAt:  time.Now(),
	}
	return r.nextQuestion
}

func (r *RecordRepository) insertAnswerLocked(questionID int64, text string, isPrimary bool) int64 {
	r.nextAnswer++
	r.answers[r.nextAnswer] = domain.Answer{
		ID:         r.nextAnswer,
		QuestionID: questionID,
		Text:       text,
		IsPrimary:  isPrimary,
	}
	return r.nextAnswer
}

func (r *RecordRepository) hasPrimaryLocked(questionID int64) bool {
	for _, a := range r.answers {
		if a.QuestionID == questionID && a.IsPrimary {
			return true
		}
	}
	return false
}
