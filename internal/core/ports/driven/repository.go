package driven

import (
	"context"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

// RecordRepository persists questions and answers.
// The retrieval core treats it purely as a capability interface;
// the storage technology behind it is irrelevant to ranking.
type RecordRepository interface {
	// InsertQuestion stores a question and returns its new id.
	InsertQuestion(ctx context.Context, productRef int64, text string) (int64, error)

	// InsertAnswer stores an answer and returns its new id.
	// Returns domain.ErrPrimaryExists if isPrimary is set and the
	// question already has a primary answer.
	InsertAnswer(ctx context.Context, questionID int64, text string, isPrimary bool) (int64, error)

	// SaveRecord stores a question with its primary and additional answers
	// atomically and returns the question id. A rebuild sees all of the
	// record or none of it.
	SaveRecord(ctx context.Context, rec domain.QARecord) (int64, error)

	// FetchAllQuestions returns every question ordered by id ascending.
	FetchAllQuestions(ctx context.Context) ([]domain.Question, error)

	// FetchQuestion returns a question by id.
	FetchQuestion(ctx context.Context, id int64) (*domain.Question, error)

	// FindQuestion returns the question for productRef whose text matches
	// text case-insensitively, or domain.ErrNotFound.
	FindQuestion(ctx context.Context, productRef int64, text string) (*domain.Question, error)

	// FetchPrimaryAnswer returns the primary answer of a question,
	// or domain.ErrNotFound if it has none.
	FetchPrimaryAnswer(ctx context.Context, questionID int64) (*domain.Answer, error)

	// FetchSecondaryAnswers returns the additional answers of a question
	// ordered by upvotes descending, then id ascending.
	FetchSecondaryAnswers(ctx context.Context, questionID int64) ([]domain.Answer, error)

	// GetAnswer returns an answer by id.
	GetAnswer(ctx context.Context, id int64) (*domain.Answer, error)

	// IncrementUpvote adds one vote to an additional answer and returns
	// the number of rows affected. Primary answers are never affected.
	IncrementUpvote(ctx context.Context, answerID int64) (int64, error)
}
