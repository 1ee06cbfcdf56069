package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driven"
)

// recordStore implements driven.RecordRepository.
type recordStore struct {
	store *Store
}

var _ driven.RecordRepository = (*recordStore)(nil)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InsertQuestion stores a question and returns its new id.
func (s *recordStore) InsertQuestion(ctx context.Context, productRef int64, text string) (int64, error) {
	return insertQuestion(ctx, s.store.db, productRef, text)
}

// InsertAnswer stores an answer and returns its new id.
func (s *recordStore) InsertAnswer(ctx context.Context, questionID int64, text string, isPrimary bool) (int64, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions WHERE id = ?", questionID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("checking question: %w", err)
	}
	if exists == 0 {
		return 0, fmt.Errorf("question %d: %w", questionID, domain.ErrNotFound)
	}

	if isPrimary {
		var primaries int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM answers WHERE question_id = ? AND is_primary = 1", questionID,
		).Scan(&primaries); err != nil {
			return 0, fmt.Errorf("checking primary answer: %w", err)
		}
		if primaries > 0 {
			return 0, domain.ErrPrimaryExists
		}
	}

	id, err := insertAnswer(ctx, tx, questionID, text, isPrimary)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return id, nil
}

// SaveRecord stores a question with all its answers in one transaction.
func (s *recordStore) SaveRecord(ctx context.Context, rec domain.QARecord) (int64, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	qid, err := insertQuestion(ctx, tx, rec.ProductRef, rec.Question)
	if err != nil {
		return 0, err
	}
	if _, err := insertAnswer(ctx, tx, qid, rec.PrimaryAnswer, true); err != nil {
		return 0, err
	}
	for _, extra := range rec.AdditionalAnswers {
		if _, err := insertAnswer(ctx, tx, qid, extra, false); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return qid, nil
}

// FetchAllQuestions returns every question ordered by id.
func (s *recordStore) FetchAllQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, product_ref, text, created_at
		FROM questions ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question //nolint:prealloc // size unknown from query
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating questions: %w", err)
	}
	return questions, nil
}

// FetchQuestion returns a question by id.
func (s *recordStore) FetchQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, product_ref, text, created_at
		FROM questions WHERE id = ?
	`, id)
	return scanQuestion(row)
}

// FindQuestion returns the question for productRef matching text case-insensitively.
func (s *recordStore) FindQuestion(ctx context.Context, productRef int64, text string) (*domain.Question, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, product_ref, text, created_at
		FROM questions
		WHERE product_ref = ? AND LOWER(TRIM(text)) = LOWER(?)
		ORDER BY id LIMIT 1
	`, productRef, strings.TrimSpace(text))
	return scanQuestion(row)
}

// FetchPrimaryAnswer returns the primary answer of a question.
func (s *recordStore) FetchPrimaryAnswer(ctx context.Context, questionID int64) (*domain.Answer, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, question_id, text, is_primary, upvotes
		FROM answers WHERE question_id = ? AND is_primary = 1
	`, questionID)
	return scanAnswer(row)
}

// FetchSecondaryAnswers returns additional answers, most upvoted first.
func (s *recordStore) FetchSecondaryAnswers(ctx context.Context, questionID int64) ([]domain.Answer, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, question_id, text, is_primary, upvotes
		FROM answers
		WHERE question_id = ? AND is_primary = 0
		ORDER BY upvotes DESC, id ASC
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("querying answers: %w", err)
	}
	defer rows.Close()

	answers := make([]domain.Answer, 0)
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, err
		}
		answers = append(answers, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating answers: %w", err)
	}
	return answers, nil
}

// GetAnswer returns an answer by id.
func (s *recordStore) GetAnswer(ctx context.Context, id int64) (*domain.Answer, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, question_id, text, is_primary, upvotes
		FROM answers WHERE id = ?
	`, id)
	return scanAnswer(row)
}

// IncrementUpvote adds one vote to an additional answer.
// Primary answers are excluded by the WHERE clause, so they report zero rows.
func (s *recordStore) IncrementUpvote(ctx context.Context, answerID int64) (int64, error) {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE answers SET upvotes = upvotes + 1 WHERE id = ? AND is_primary = 0", answerID)
	if err != nil {
		return 0, fmt.Errorf("incrementing upvote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return n, nil
}

func insertQuestion(ctx context.Context, db execer, productRef int64, text string) (int64, error) {
	res, err := db.ExecContext(ctx, "INSERT INTO questions (product_ref, text) VALUES (?, ?)", productRef, text)
	if err != nil {
		return 0, fmt.Errorf("inserting question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading question id: %w", err)
	}
	return id, nil
}

func insertAnswer(ctx context.Context, db execer, questionID int64, text string, isPrimary bool) (int64, error) {
	res, err := db.ExecContext(ctx,
		"INSERT INTO answers (question_id, text, is_primary) VALUES (?, ?, ?)",
		questionID, text, boolToInt(isPrimary))
	if err != nil {
		if isPrimary && strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, domain.ErrPrimaryExists
		}
		return 0, fmt.Errorf("inserting answer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading answer id: %w", err)
	}
	return id, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row scanner) (*domain.Question, error) {
	var q domain.Question
	var createdAt sql.NullTime
	if err := row.Scan(&q.ID, &q.ProductRef, &q.Text, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning question: %w", err)
	}
	if createdAt.Valid {
		q.CreatedAt = createdAt.Time
	}
	return &q, nil
}

func scanAnswer(row scanner) (*domain.Answer, error) {
	var a domain.Answer
	var isPrimary int
	if err := row.Scan(&a.ID, &a.QuestionID, &a.Text, &isPrimary, &a.Upvotes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning answer: %w", err)
	}
	a.IsPrimary = isPrimary == 1
	return &a, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
