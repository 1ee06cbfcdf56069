package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driven"
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
	"github.com/custodia-labs/repdesk/internal/logger"
)

// maxFreshAttempts bounds how often Search retries after losing a race with
// a failed Mutate.
const maxFreshAttempts = 3

// Ensure Index implements the interface.
var _ driving.IndexService = (*Index)(nil)

// Index holds the vectorized question corpus.
//
// The model, the row matrix, and the snapshot of question ids are always
// replaced together under the write lock, so a reader never sees rows that
// belong to a different corpus than the ids it maps them to.
type Index struct {
	repo       driven.RecordRepository
	vectorizer driven.Vectorizer

	mu         sync.RWMutex
	model      driven.TermWeightModel
	matrix     []domain.Vector
	snapshot   domain.CorpusSnapshot
	generation uint64
	built      bool
	stale      bool

	// freshChecked runs between the freshness check and the read lock. Tests only.
	freshChecked func()
}

// NewIndex creates an unbuilt index. The first Search builds it.
func NewIndex(repo driven.RecordRepository, vectorizer driven.Vectorizer) *Index {
	return &Index{
		repo:       repo,
		vectorizer: vectorizer,
	}
}

// Rebuild re-vectorizes the full corpus from the repository.
// An empty corpus is not an error: the index enters the no-data state.
func (i *Index) Rebuild(ctx context.Context) (domain.IndexStats, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.rebuildLocked(ctx); err != nil {
		return i.statsLocked(), err
	}
	return i.statsLocked(), nil
}

// Mutate runs fn and then rebuilds, both under the write lock.
// No Search can run between the repository write and the rebuild.
// If either step fails the index is marked stale and the next Search
// rebuilds before ranking.
func (i *Index) Mutate(ctx context.Context, fn func(ctx context.Context) error) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := fn(ctx); err != nil {
		i.stale = true
		return err
	}
	return i.rebuildLocked(ctx)
}

// Search ranks the corpus against text and returns the matches strictly
// above threshold. An empty corpus yields no matches.
func (i *Index) Search(ctx context.Context, text string, threshold float64) ([]domain.Match, error) {
	for attempt := 0; ; attempt++ {
		if err := i.ensureFresh(ctx); err != nil {
			return nil, err
		}
		if i.freshChecked != nil {
			i.freshChecked()
		}

		i.mu.RLock()
		if i.built && !i.stale {
			defer i.mu.RUnlock()
			return i.searchLocked(text, threshold), nil
		}
		i.mu.RUnlock()

		// A failed Mutate marked the index stale between the check and the lock.
		if attempt+1 >= maxFreshAttempts {
			return nil, errors.New("search: index went stale during every rebuild attempt")
		}
	}
}

// searchLocked ranks against the current model. The caller holds the read lock.
func (i *Index) searchLocked(text string, threshold float64) []domain.Match {
	if strings.TrimSpace(text) == "" || i.model == nil || i.snapshot.Empty() {
		return []domain.Match{}
	}

	query := i.model.Transform(text)
	logger.Debug("Query vector: %d non-zero terms", query.NNZ())
	if query.IsZero() {
		// Nothing in the query is in the vocabulary.
		return []domain.Match{}
	}

	scores := Score(query, i.matrix)
	matches := Rank(scores, threshold, i.snapshot.QuestionIDs)
	logger.Debug("Matches above %.2f: %d of %d", threshold, len(matches), len(scores))
	return matches
}

// Stats describes the currently built model.
func (i *Index) Stats() domain.IndexStats {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.statsLocked()
}

func (i *Index) ensureFresh(ctx context.Context) error {
	i.mu.RLock()
	fresh := i.built && !i.stale
	i.mu.RUnlock()
	if fresh {
		return nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.built && !i.stale {
		return nil
	}
	return i.rebuildLocked(ctx)
}

func (i *Index) rebuildLocked(ctx context.Context) error {
	logger.Section("Index Rebuild")

	questions, err := i.repo.FetchAllQuestions(ctx)
	if err != nil {
		i.stale = true
		return fmt.Errorf("fetch corpus: %w", err)
	}
	snapshot := domain.NewCorpusSnapshot(questions)
	logger.Debug("Corpus: %d questions", snapshot.Len())

	var (
		model  driven.TermWeightModel
		matrix []domain.Vector
	)
	if !snapshot.Empty() {
		model, matrix, err = i.vectorizer.Build(snapshot.Texts)
		if err != nil && !errors.Is(err, domain.ErrEmptyCorpus) {
			i.stale = true
			return fmt.Errorf("vectorize corpus: %w", err)
		}
	}

	i.model = model
	i.matrix = matrix
	i.snapshot = snapshot
	i.generation++
	i.built = true
	i.stale = false

	if model == nil {
		logger.Info("No data: index is empty")
	} else {
		logger.Debug("Vocabulary: %d terms (%s)", model.Dimension(), i.vectorizer.Name())
	}
	return nil
}

func (i *Index) statsLocked() domain.IndexStats {
	stats := domain.IndexStats{
		Questions:  i.snapshot.Len(),
		Generation: i.generation,
		Empty:      i.model == nil,
	}
	if i.model != nil {
		stats.Terms = i.model.Dimension()
	}
	return stats
}
