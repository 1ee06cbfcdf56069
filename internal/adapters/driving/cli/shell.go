package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Line-based interactive session",
	Long: `Starts a plain line-based session for use alongside a call.

Commands:
  q  Question lookup
  a  Add a question
  p  Product lookup
  exit  Quit

After a lookup: n shows more results, u <id> upvotes, f <id> [reason]
flags an answer, and an empty line returns to the menu.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

type shell struct {
	cmd         *cobra.Command
	reader      *bufio.Reader
	session     driving.RetrievalSession
	interactive bool
}

func runShell(cmd *cobra.Command, _ []string) error {
	session, err := newSession()
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	sh := &shell{
		cmd:         cmd,
		reader:      bufio.NewReader(in),
		session:     session,
		interactive: isTerminal(in),
	}
	return sh.run(cmd.Context())
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (s *shell) prompt(text string) (string, bool) {
	if s.interactive {
		s.cmd.Print(text)
	}
	return readLineOK(s.reader)
}

func (s *shell) run(ctx context.Context) error {
	if s.interactive {
		s.cmd.Println("Repdesk\nQ - Question lookup\nA - Add a question\nP - Product lookup")
	}
	for {
		line, ok := s.prompt("\nEnter your command (or type 'exit' to quit): ")
		if !ok {
			return nil
		}
		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		case "q":
			if err := s.lookup(ctx); err != nil {
				return err
			}
		case "a":
			s.add(ctx)
		case "p":
			s.product(ctx)
		case "":
		default:
			s.cmd.Println("Invalid command. Please try again.")
		}
	}
}

// lookup runs one query round through the session state machine.
// Only input errors end the shell; everything else is reported.
func (s *shell) lookup(ctx context.Context) error {
	if err := s.session.Begin(); err != nil {
		s.session.Reset()
		if err := s.session.Begin(); err != nil {
			return err
		}
	}

	if catalogService != nil {
		if cats, err := catalogService.Categories(ctx); err == nil && len(cats) > 0 {
			names := make([]string, len(cats))
			for i, c := range cats {
				names[i] = c.Name
			}
			if s.interactive {
				s.cmd.Printf("Categories: %s\n", strings.Join(names, ", "))
			}
		}
	}
	category, ok := s.prompt("Category (empty for all): ")
	if !ok {
		return nil
	}
	if err := s.session.ChooseCategory(ctx, category); err != nil {
		s.cmd.Printf("%v\n", err)
		s.session.Reset()
		return nil
	}

	text, ok := s.prompt("Enter your question: ")
	if !ok {
		return nil
	}
	page, err := s.session.Submit(ctx, text)
	if err != nil {
		s.cmd.Printf("Lookup failed: %v\n", err)
		s.session.Reset()
		return nil
	}
	if s.session.State() == domain.SessionIdle {
		return nil
	}
	s.showPage(page)

	for {
		line, ok := s.prompt("\n[n]ext, [u]pvote <id>, [f]lag <id> [reason], enter for menu: ")
		if !ok || line == "" || strings.EqualFold(line, "m") {
			s.session.Reset()
			return nil
		}
		s.resultCommand(ctx, line)
	}
}

func (s *shell) showPage(page domain.ResultPage) {
	if page.Total == 0 {
		if indexService != nil && indexService.Stats().Empty {
			s.cmd.Println(msgNoData)
			return
		}
		s.cmd.Println(msgNoMatches)
		return
	}
	outputPage(s.cmd, page)
}

func (s *shell) resultCommand(ctx context.Context, line string) {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "n":
		page, err := s.session.Next()
		if errors.Is(err, domain.ErrNoResults) {
			s.cmd.Println("No more results.")
			return
		}
		s.showPage(page)
	case "u":
		if len(fields) < 2 {
			s.cmd.Println("Usage: u <answer-id>")
			return
		}
		id, err := parseAnswerID(fields[1])
		if err != nil {
			s.cmd.Println(err)
			return
		}
		votes, err := s.session.Upvote(ctx, id)
		if err != nil {
			s.cmd.Println(declineError("upvote", "upvoted", id, err))
			return
		}
		s.cmd.Printf("Answer %d now has %d votes.\n", id, votes)
	case "f":
		if len(fields) < 2 {
			s.cmd.Println("Usage: f <answer-id> [reason]")
			return
		}
		id, err := parseAnswerID(fields[1])
		if err != nil {
			s.cmd.Println(err)
			return
		}
		reason := strings.Join(fields[2:], " ")
		if _, err := s.session.Flag(ctx, id, reason); err != nil {
			s.cmd.Println(declineError("flag", "flagged", id, err))
			return
		}
		s.cmd.Printf("Answer %d flagged for review.\n", id)
	default:
		s.cmd.Println("Invalid command. Please try again.")
	}
}

func (s *shell) add(ctx context.Context) {
	if ingestService == nil {
		s.cmd.Println("Adding questions is not available.")
		return
	}
	question, ok := s.prompt("Enter the question to add: ")
	if !ok {
		return
	}
	answer, ok := s.prompt("Enter the answer: ")
	if !ok {
		return
	}
	product, ok := s.prompt("Enter the product id (only numbers): ")
	if !ok {
		return
	}

	_, err := ingestService.AddRecord(ctx, domain.IngestRecord{
		ProductRef:   product,
		QuestionText: question,
		AnswerText:   answer,
		Origin:       "shell",
	})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.cmd.Printf("Product '%s' not found!\n", product)
	case errors.Is(err, domain.ErrAlreadyExists):
		s.cmd.Println("This question already exists for the product.")
	case err != nil:
		s.cmd.Printf("Could not add question: %v\n", err)
	default:
		s.cmd.Println("New question and answer have been inserted successfully.")
	}
}

func (s *shell) product(ctx context.Context) {
	if catalogService == nil {
		s.cmd.Println("Product lookup is not available.")
		return
	}
	query, ok := s.prompt("Enter product name or ID: ")
	if !ok || query == "" {
		return
	}
	products, err := catalogService.Lookup(ctx, query)
	if err != nil {
		s.cmd.Printf("Lookup failed: %v\n", err)
		return
	}
	if len(products) == 0 {
		s.cmd.Printf("No products found matching '%s'.\n", query)
		return
	}
	outputProductList(s.cmd, products)
}
