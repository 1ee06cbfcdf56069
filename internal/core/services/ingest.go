package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driven"
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
	"github.com/custodia-labs/repdesk/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService validates new Q&A records and writes them through the
// repository. Every write is followed by an index rebuild under the same
// lock, so queries never run against a model missing accepted records.
type IngestService struct {
	index    *Index
	repo     driven.RecordRepository
	catalog  driven.ProductCatalog
	parser   driven.TranscriptParser
	settings domain.RetrievalSettings
}

// NewIngestService creates a new ingest service.
// The parser is optional; without it transcript ingestion is disabled.
func NewIngestService(
	index *Index,
	repo driven.RecordRepository,
	catalog driven.ProductCatalog,
	parser driven.TranscriptParser,
	settings domain.RetrievalSettings,
) *IngestService {
	return &IngestService{
		index:    index,
		repo:     repo,
		catalog:  catalog,
		parser:   parser,
		settings: settings,
	}
}

// AddRecord validates and stores a single record.
func (s *IngestService) AddRecord(ctx context.Context, rec domain.IngestRecord) (int64, error) {
	report, err := s.IngestBatch(ctx, []domain.IngestRecord{rec})
	if err != nil {
		return 0, err
	}
	if len(report.Rejected) > 0 {
		return 0, report.Rejected[0].Err
	}
	return report.Accepted[0], nil
}

// IngestBatch stores every valid record and reports the rest.
// A rejected record never aborts the batch. The index is rebuilt once.
func (s *IngestService) IngestBatch(ctx context.Context, recs []domain.IngestRecord) (domain.IngestReport, error) {
	logger.Section("Ingest")
	logger.Debug("Records: %d", len(recs))

	report := domain.IngestReport{
		Accepted: make([]int64, 0, len(recs)),
	}

	type pending struct {
		index  int
		source domain.IngestRecord
		record domain.QARecord
	}
	var candidates []pending
	for i, rec := range recs {
		qa, err := parseRecord(rec)
		if err != nil {
			report.Rejected = append(report.Rejected, domain.RecordError{Index: i, Record: rec, Err: err})
			continue
		}
		candidates = append(candidates, pending{index: i, source: rec, record: qa})
	}
	if len(candidates) == 0 {
		logger.Info("Ingest: nothing to store, %d rejected", len(report.Rejected))
		return report, nil
	}

	err := s.index.Mutate(ctx, func(ctx context.Context) error {
		for _, c := range candidates {
			if err := s.checkStorable(ctx, c.record); err != nil {
				if isRejection(err) {
					report.Rejected = append(report.Rejected, domain.RecordError{Index: c.index, Record: c.source, Err: err})
					continue
				}
				return err
			}
			id, err := s.repo.SaveRecord(ctx, c.record)
			if err != nil {
				return fmt.Errorf("save record %d: %w", c.index, err)
			}
			logger.Debug("Stored question %d for product %d", id, c.record.ProductRef)
			report.Accepted = append(report.Accepted, id)
		}
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("ingest: %w", err)
	}

	sortRejections(report.Rejected)
	logger.Info("Ingest: %d accepted, %d rejected", len(report.Accepted), len(report.Rejected))
	return report, nil
}

// IngestTranscript parses a call transcript and ingests the records found.
func (s *IngestService) IngestTranscript(ctx context.Context, path string) (domain.IngestReport, error) {
	if s.parser == nil {
		return domain.IngestReport{}, fmt.Errorf("%w: transcript ingestion is not configured", domain.ErrInvalidInput)
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.IngestReport{}, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	recs, err := s.parser.Parse(ctx, filepath.Base(path), f)
	if err != nil {
		return domain.IngestReport{}, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	logger.Debug("Transcript %s: %d candidate records", path, len(recs))
	return s.IngestBatch(ctx, recs)
}

// SimilarQuestions returns stored questions close enough to text to be
// likely duplicates.
func (s *IngestService) SimilarQuestions(ctx context.Context, text string) ([]domain.RankedResult, error) {
	matches, err := s.index.Search(ctx, text, s.settings.SimilarThreshold)
	if err != nil {
		return nil, fmt.Errorf("similar questions: %w", err)
	}
	results := make([]domain.RankedResult, 0, len(matches))
	for _, m := range matches {
		res, err := hydrateMatch(ctx, s.repo, m)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// parseRecord checks the record's shape without touching storage.
func parseRecord(rec domain.IngestRecord) (domain.QARecord, error) {
	ref := strings.TrimSpace(rec.ProductRef)
	productRef, err := strconv.ParseInt(ref, 10, 64)
	if err != nil || productRef <= 0 {
		return domain.QARecord{}, fmt.Errorf("%w: product reference %q is not an item number", domain.ErrMalformedRecord, rec.ProductRef)
	}

	question := strings.TrimSpace(rec.QuestionText)
	if question == "" {
		return domain.QARecord{}, fmt.Errorf("%w: question text is empty", domain.ErrMalformedRecord)
	}
	answer := strings.TrimSpace(rec.AnswerText)
	if answer == "" {
		return domain.QARecord{}, fmt.Errorf("%w: answer text is empty", domain.ErrMalformedRecord)
	}

	qa := domain.QARecord{
		ProductRef:    productRef,
		Question:      question,
		PrimaryAnswer: answer,
	}
	for _, extra := range rec.AdditionalAnswers {
		if extra = strings.TrimSpace(extra); extra != "" {
			qa.AdditionalAnswers = append(qa.AdditionalAnswers, extra)
		}
	}
	return qa, nil
}

// checkStorable verifies the product exists and the question is new.
func (s *IngestService) checkStorable(ctx context.Context, qa domain.QARecord) error {
	if _, err := s.catalog.GetProduct(ctx, qa.ProductRef); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("product %d: %w", qa.ProductRef, domain.ErrNotFound)
		}
		return fmt.Errorf("get product %d: %w", qa.ProductRef, err)
	}

	existing, err := s.repo.FindQuestion(ctx, qa.ProductRef, qa.Question)
	switch {
	case err == nil:
		return fmt.Errorf("%w: question %d already asks this", domain.ErrAlreadyExists, existing.ID)
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("find question: %w", err)
	}
}

func isRejection(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrAlreadyExists) ||
		errors.Is(err, domain.ErrMalformedRecord)
}

func sortRejections(rejected []domain.RecordError) {
	sort.SliceStable(rejected, func(i, j int) bool { return rejected[i].Index < rejected[j].Index })
}
