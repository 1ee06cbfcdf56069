// Package transcript extracts Q&A records from plain-text call transcripts.
//
// A transcript is a sequence of "Speaker: utterance" lines. A "Product:"
// or "Item #" line sets the product for the questions that follow. A
// customer utterance containing a question mark opens a record; the next
// rep utterance becomes its primary answer and any further rep utterances
// before the customer speaks again become additional answers.
package transcript

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driven"
	"github.com/custodia-labs/repdesk/internal/logger"
)

// Ensure Parser implements the interface.
var _ driven.TranscriptParser = (*Parser)(nil)

var (
	productLine = regexp.MustCompile(`(?i)^\s*(?:product|item)\s*(?:no\.?|number|#)?\s*[:#]?\s*#?\s*(\S+)\s*$`)
	speakerLine = regexp.MustCompile(`^\s*(?:\[[^\]]*\]\s*)?([\p{L}][\p{L} .'-]{0,30}?)\s*:\s*(.*)$`)
	questionRe  = regexp.MustCompile(`[^.!?]*\?`)
)

var defaultCustomerLabels = []string{"customer", "caller", "client"}
var defaultRepLabels = []string{"rep", "agent", "support", "associate"}

// Parser is a regex-based transcript parser.
type Parser struct {
	customers map[string]bool
	reps      map[string]bool
}

// NewParser creates a parser with the default speaker labels.
func NewParser() *Parser {
	return NewParserWithLabels(defaultCustomerLabels, defaultRepLabels)
}

// NewParserWithLabels creates a parser recognising the given speaker labels.
// Labels are matched case-insensitively.
func NewParserWithLabels(customers, reps []string) *Parser {
	return &Parser{
		customers: labelSet(customers),
		reps:      labelSet(reps),
	}
}

type role int

const (
	roleOther role = iota
	roleCustomer
	roleRep
)

// Parse reads a transcript and returns the answered questions in it.
func (p *Parser) Parse(ctx context.Context, name string, r io.Reader) ([]domain.IngestRecord, error) {
	var (
		records []domain.IngestRecord
		current *domain.IngestRecord
		product string
		lineNo  int
	)

	flush := func() {
		if current == nil {
			return
		}
		if current.AnswerText == "" {
			logger.Debug("Transcript %s: unanswered question at %s", name, current.Origin)
		} else {
			records = append(records, *current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if m := productLine.FindStringSubmatch(line); m != nil {
			flush()
			product = strings.TrimPrefix(m[1], "#")
			continue
		}

		m := speakerLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[2])
		if text == "" {
			continue
		}

		switch p.roleOf(m[1]) {
		case roleCustomer:
			flush()
			if q := extractQuestion(text); q != "" {
				current = &domain.IngestRecord{
					ProductRef:   product,
					QuestionText: q,
					Origin:       fmt.Sprintf("%s:%d", name, lineNo),
				}
			}
		case roleRep:
			if current == nil {
				continue
			}
			if current.AnswerText == "" {
				current.AnswerText = text
			} else {
				current.AdditionalAnswers = append(current.AdditionalAnswers, text)
			}
		default:
			logger.Debug("Transcript %s:%d: unknown speaker %q", name, lineNo, m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read transcript %s: %w", name, err)
	}
	flush()

	logger.Debug("Transcript %s: %d records", name, len(records))
	return records, nil
}

func (p *Parser) roleOf(speaker string) role {
	label := strings.ToLower(strings.TrimSpace(speaker))
	switch {
	case p.customers[label]:
		return roleCustomer
	case p.reps[label]:
		return roleRep
	default:
		return roleOther
	}
}

// extractQuestion returns the last question sentence in text.
func extractQuestion(text string) string {
	matches := questionRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return strings.TrimSpace(matches[len(matches)-1])
}

func labelSet(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[strings.ToLower(strings.TrimSpace(l))] = true
	}
	return set
}
