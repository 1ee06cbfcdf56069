package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driven"
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
	"github.com/custodia-labs/repdesk/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.RetrievalSession = (*Session)(nil)

// Session is one rep's retrieval conversation: the active category filter,
// the full ranking of the last query, and the window the rep is looking at.
// A Session is safe for concurrent use but is meant for a single client.
type Session struct {
	index    *Index
	repo     driven.RecordRepository
	catalog  driven.ProductCatalog
	reporter driven.FlagReporter
	settings domain.RetrievalSettings

	mu       sync.Mutex
	state    domain.SessionState
	category string
	results  []domain.RankedResult
	offset   int
}

// NewSession creates an idle session.
// The reporter is optional; without it flags are only logged.
func NewSession(
	index *Index,
	repo driven.RecordRepository,
	catalog driven.ProductCatalog,
	reporter driven.FlagReporter,
	settings domain.RetrievalSettings,
) *Session {
	if settings.PageSize <= 0 {
		settings.PageSize = domain.DefaultPageSize
	}
	return &Session{
		index:    index,
		repo:     repo,
		catalog:  catalog,
		reporter: reporter,
		settings: settings,
		state:    domain.SessionIdle,
	}
}

// State returns the current state of the query round.
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Category returns the active category filter.
func (s *Session) Category() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// Begin starts a new query round.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case domain.SessionIdle, domain.SessionResultsShown:
		s.state = domain.SessionAwaitingCategory
		s.category = ""
		return nil
	default:
		return fmt.Errorf("%w: begin from %s", domain.ErrInvalidTransition, s.state)
	}
}

// ChooseCategory sets the category filter for the round.
// An empty name means all categories.
func (s *Session) ChooseCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()
	if state != domain.SessionAwaitingCategory {
		return fmt.Errorf("%w: choose category from %s", domain.ErrInvalidTransition, state)
	}

	name = strings.TrimSpace(name)
	if name != "" {
		if _, err := s.lookupCategory(ctx, name); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The lookup ran unlocked; a concurrent Reset or Begin may have moved on.
	if s.state != domain.SessionAwaitingCategory {
		return fmt.Errorf("%w: choose category from %s", domain.ErrInvalidTransition, s.state)
	}
	s.category = name
	s.state = domain.SessionAwaitingQuery
	return nil
}

// Submit runs text as the round's query. Blank text ends the round.
func (s *Session) Submit(ctx context.Context, text string) (domain.ResultPage, error) {
	s.mu.Lock()
	state, category := s.state, s.category
	s.mu.Unlock()
	if state != domain.SessionAwaitingQuery {
		return domain.ResultPage{}, fmt.Errorf("%w: submit from %s", domain.ErrInvalidTransition, state)
	}

	if strings.TrimSpace(text) == "" {
		s.Reset()
		return domain.ResultPage{}, nil
	}

	if _, err := s.Query(ctx, text, domain.QueryOptions{Category: category}); err != nil {
		return domain.ResultPage{}, err
	}
	return s.Page(), nil
}

// Reset drops the retained ranking and returns to Idle.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.SessionIdle
	s.category = ""
	s.results = nil
	s.offset = 0
}

// Query ranks the corpus against text, filters by category after ranking,
// and retains the full result list for paging and voting.
func (s *Session) Query(ctx context.Context, text string, opts domain.QueryOptions) ([]domain.RankedResult, error) {
	logger.Section("Retrieval Query")
	logger.Debug("Query: %q, category: %q", text, opts.Category)

	partition, err := s.partition(ctx)
	if err != nil {
		return nil, err
	}
	var filter *domain.Category
	if opts.Category != "" {
		cat, ok := partition.Lookup(opts.Category)
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, opts.Category)
		}
		filter = &cat
	}

	threshold := s.settings.SearchThreshold
	if opts.Threshold != nil {
		threshold = *opts.Threshold
		if threshold < 0 || threshold >= 1 {
			return nil, fmt.Errorf("%w: threshold %v outside [0,1)", domain.ErrInvalidInput, threshold)
		}
	}

	matches, err := s.index.Search(ctx, text, threshold)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results := make([]domain.RankedResult, 0, len(matches))
	for _, m := range matches {
		res, err := hydrateMatch(ctx, s.repo, m)
		if err != nil {
			return nil, err
		}
		if filter != nil && !filter.Contains(res.Question.ProductRef) {
			continue
		}
		res.Question.Category = partition.CategoryOf(res.Question.ProductRef)
		results = append(results, res)
	}
	logger.Info("Results: %d", len(results))

	s.mu.Lock()
	s.results = results
	s.offset = 0
	s.category = opts.Category
	s.state = domain.SessionResultsShown
	s.mu.Unlock()

	return cloneResults(results), nil
}

// Page returns the current window over the retained ranking.
func (s *Session) Page() domain.ResultPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageLocked()
}

// Next advances to the following window.
// Returns domain.ErrNoResults when the ranking is exhausted.
func (s *Session) Next() (domain.ResultPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.offset+s.settings.PageSize >= len(s.results) {
		return domain.ResultPage{Offset: s.offset, Total: len(s.results)}, domain.ErrNoResults
	}
	s.offset += s.settings.PageSize
	return s.pageLocked(), nil
}

// Upvote adds one vote to an additional answer and returns the new count.
// The retained ranking keeps its order; only the vote count is updated.
func (s *Session) Upvote(ctx context.Context, answerID int64) (int, error) {
	answer, err := s.voteTarget(ctx, answerID)
	if err != nil {
		return 0, err
	}

	affected, err := s.repo.IncrementUpvote(ctx, answerID)
	if err != nil {
		return 0, fmt.Errorf("upvote answer %d: %w", answerID, err)
	}
	if affected == 0 {
		return 0, fmt.Errorf("answer %d: %w", answerID, domain.ErrNotFound)
	}

	updated, err := s.repo.GetAnswer(ctx, answerID)
	if err != nil {
		return 0, fmt.Errorf("reload answer %d: %w", answerID, err)
	}
	logger.Debug("Answer %d upvoted: %d -> %d", answerID, answer.Upvotes, updated.Upvotes)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.results {
		for j := range s.results[i].AdditionalAnswers {
			if s.results[i].AdditionalAnswers[j].ID == answerID {
				s.results[i].AdditionalAnswers[j].Upvotes = updated.Upvotes
			}
		}
	}
	return updated.Upvotes, nil
}

// Flag reports an additional answer for human review.
// Flags never change stored answers or ranking.
func (s *Session) Flag(ctx context.Context, answerID int64, reason string) (*domain.FlagReport, error) {
	answer, err := s.voteTarget(ctx, answerID)
	if err != nil {
		return nil, err
	}

	report := &domain.FlagReport{
		ID:         uuid.NewString(),
		AnswerID:   answer.ID,
		QuestionID: answer.QuestionID,
		Reason:     strings.TrimSpace(reason),
		CreatedAt:  time.Now(),
	}

	if s.reporter == nil {
		logger.Warn("Answer %d flagged (%s) but no reviewer is configured", answerID, report.Reason)
		return report, nil
	}
	if err := s.reporter.Report(ctx, *report); err != nil {
		return nil, fmt.Errorf("report flag: %w", err)
	}
	logger.Info("Answer %d flagged for review", answerID)
	return report, nil
}

// voteTarget loads an answer that may be upvoted or flagged.
func (s *Session) voteTarget(ctx context.Context, answerID int64) (*domain.Answer, error) {
	answer, err := s.repo.GetAnswer(ctx, answerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("answer %d: %w", answerID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get answer %d: %w", answerID, err)
	}
	if answer.IsPrimary {
		return nil, fmt.Errorf("answer %d: %w", answerID, domain.ErrPrimaryAnswer)
	}
	return answer, nil
}

// hydrateMatch loads the question and answers behind a ranked match.
func hydrateMatch(ctx context.Context, repo driven.RecordRepository, m domain.Match) (domain.RankedResult, error) {
	q, err := repo.FetchQuestion(ctx, m.QuestionID)
	if err != nil {
		return domain.RankedResult{}, fmt.Errorf("fetch question %d: %w", m.QuestionID, err)
	}

	res := domain.RankedResult{Question: *q, Similarity: m.Similarity}

	primary, err := repo.FetchPrimaryAnswer(ctx, q.ID)
	switch {
	case err == nil:
		res.PrimaryAnswer = primary
	case errors.Is(err, domain.ErrNotFound):
		logger.Debug("Question %d has no primary answer", q.ID)
	default:
		return domain.RankedResult{}, fmt.Errorf("fetch primary answer %d: %w", q.ID, err)
	}

	extras, err := repo.FetchSecondaryAnswers(ctx, q.ID)
	if err != nil {
		return domain.RankedResult{}, fmt.Errorf("fetch additional answers %d: %w", q.ID, err)
	}
	res.AdditionalAnswers = extras
	return res, nil
}

func (s *Session) partition(ctx context.Context) (domain.CategoryPartition, error) {
	cats, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return domain.CategoryPartition{}, fmt.Errorf("list categories: %w", err)
	}
	return domain.NewCategoryPartition(cats), nil
}

func (s *Session) lookupCategory(ctx context.Context, name string) (domain.Category, error) {
	partition, err := s.partition(ctx)
	if err != nil {
		return domain.Category{}, err
	}
	cat, ok := partition.Lookup(name)
	if !ok {
		return domain.Category{}, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, name)
	}
	return cat, nil
}

func (s *Session) pageLocked() domain.ResultPage {
	end := s.offset + s.settings.PageSize
	if end > len(s.results) {
		end = len(s.results)
	}
	start := s.offset
	if start > end {
		start = end
	}
	return domain.ResultPage{
		Results: cloneResults(s.results[start:end]),
		Offset:  start,
		Total:   len(s.results),
	}
}

// cloneResults copies results so callers cannot alias the retained ranking.
func cloneResults(in []domain.RankedResult) []domain.RankedResult {
	out := make([]domain.RankedResult, len(in))
	for i, r := range in {
		out[i] = r
		if r.PrimaryAnswer != nil {
			p := *r.PrimaryAnswer
			out[i].PrimaryAnswer = &p
		}
		out[i].AdditionalAnswers = append([]domain.Answer(nil), r.AdditionalAnswers...)
	}
	return out
}
