// Package review hands flagged answers to human reviewers.
package review

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driven"
	"github.com/custodia-labs/repdesk/internal/logger"
)

// Ensure FileReporter implements the interface.
var _ driven.FlagReporter = (*FileReporter)(nil)

// flagLine is the on-disk form of a flag report.
type flagLine struct {
	ID         string    `json:"id"`
	AnswerID   int64     `json:"answer_id"`
	QuestionID int64     `json:"question_id"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

// FileReporter appends flag reports to a JSON Lines file that reviewers
// work through out of band.
type FileReporter struct {
	mu   sync.Mutex
	path string
}

// NewFileReporter creates a reporter writing to path.
// The parent directory is created if needed.
func NewFileReporter(path string) (*FileReporter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create flags directory: %w", err)
	}
	return &FileReporter{path: path}, nil
}

// Path returns the flags file path.
func (r *FileReporter) Path() string {
	return r.path
}

// Report appends one line for the flag.
func (r *FileReporter) Report(ctx context.Context, flag domain.FlagReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(flagLine(flag))
	if err != nil {
		return fmt.Errorf("encode flag: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open flags file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write flag: %w", err)
	}

	logger.Info("Flagged answer %d for review: %s", flag.AnswerID, flag.Reason)
	return nil
}

// List reads back every flag in the file, oldest first.
// A missing file yields no flags.
func (r *FileReporter) List(ctx context.Context) ([]domain.FlagReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open flags file: %w", err)
	}
	defer f.Close()

	var flags []domain.FlagReport
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var fl flagLine
		if err := json.Unmarshal(scanner.Bytes(), &fl); err != nil {
			logger.Warn("Skipping corrupt flag at %s:%d: %v", r.path, line, err)
			continue
		}
		flags = append(flags, domain.FlagReport(fl))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read flags file: %w", err)
	}
	return flags, nil
}
