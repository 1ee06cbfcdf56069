package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	SessionID string   `json:"session_id,omitempty" jsonschema:"session to run the query in; omit to use the connection's session"`
	Question  string   `json:"question" jsonschema:"the customer's question"`
	Category  string   `json:"category,omitempty" jsonschema:"restrict results to one product category"`
	Threshold *float64 `json:"threshold,omitempty" jsonschema:"minimum similarity in [0,1); omit for the configured value"`
}

// PageOutput is a window of ranked answers.
type PageOutput struct {
	SessionID string         `json:"session_id"`
	Results   []ResultOutput `json:"results"`
	Offset    int            `json:"offset"`
	Total     int            `json:"total"`
	HasMore   bool           `json:"has_more"`
}

// ResultOutput is one matched question with its answers.
type ResultOutput struct {
	QuestionID        int64          `json:"question_id"`
	Question          string         `json:"question"`
	Product           int64          `json:"product"`
	Category          string         `json:"category,omitempty"`
	Similarity        float64        `json:"similarity"`
	PrimaryAnswer     string         `json:"primary_answer,omitempty"`
	AdditionalAnswers []AnswerOutput `json:"additional_answers,omitempty"`
}

// AnswerOutput is an additional answer that can be voted on or flagged.
type AnswerOutput struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	Upvotes int    `json:"upvotes"`
}

// SessionInput selects a session.
type SessionInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session to page; omit to use the connection's session"`
}

// UpvoteInput is the input schema for the upvote tool.
type UpvoteInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session the answer was shown in"`
	AnswerID  int64  `json:"answer_id" jsonschema:"id of an additional answer"`
}

// UpvoteOutput reports the answer's new vote count.
type UpvoteOutput struct {
	AnswerID int64 `json:"answer_id"`
	Upvotes  int   `json:"upvotes"`
}

// FlagInput is the input schema for the flag tool.
type FlagInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session the answer was shown in"`
	AnswerID  int64  `json:"answer_id" jsonschema:"id of an additional answer"`
	Reason    string `json:"reason,omitempty" jsonschema:"why the answer looks wrong"`
}

// FlagOutput identifies the stored flag report.
type FlagOutput struct {
	ReportID   string `json:"report_id"`
	AnswerID   int64  `json:"answer_id"`
	QuestionID int64  `json:"question_id"`
}

// AddQAInput is the input schema for the add_qa tool.
type AddQAInput struct {
	Product           int64    `json:"product" jsonschema:"item number the question is about"`
	Question          string   `json:"question" jsonschema:"the customer's question"`
	Answer            string   `json:"answer" jsonschema:"the primary answer"`
	AdditionalAnswers []string `json:"additional_answers,omitempty" jsonschema:"supplementary answers"`
}

// AddQAOutput reports the stored question and any near duplicates.
type AddQAOutput struct {
	QuestionID int64          `json:"question_id"`
	Similar    []SimilarEntry `json:"similar,omitempty"`
}

// SimilarEntry is an existing question close to a new one.
type SimilarEntry struct {
	QuestionID int64   `json:"question_id"`
	Question   string  `json:"question"`
	Similarity float64 `json:"similarity"`
}

// ProductInput is the input schema for the product_lookup tool.
type ProductInput struct {
	Query string `json:"query" jsonschema:"SKU, item number, name, or keyword"`
}

// ProductOutput lists matching products.
type ProductOutput struct {
	Products []ProductEntry `json:"products"`
	Count    int            `json:"count"`
}

// ProductEntry is a catalog item with its suggestions.
type ProductEntry struct {
	ID                   int64   `json:"id"`
	SKU                  string  `json:"sku"`
	Name                 string  `json:"name"`
	Price                string  `json:"price"`
	Stock                int     `json:"stock"`
	StockLevel           string  `json:"stock_level"`
	Rating               float64 `json:"rating"`
	Alternative          string  `json:"alternative,omitempty"`
	FrequentlyBoughtWith string  `json:"frequently_bought_with,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Find known customer questions similar to a new one, with their answers",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "more",
		Description: "Show the next page of results from the last ask",
	}, s.handleMore)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "upvote",
		Description: "Upvote an additional answer that helped",
	}, s.handleUpvote)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "flag",
		Description: "Flag an additional answer for human review",
	}, s.handleFlag)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "product_lookup",
		Description: "Look up products by SKU, item number, name, or keyword",
	}, s.handleProductLookup)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "add_qa",
			Description: "Add a new question and answer to the support corpus",
		}, s.handleAddQA)
	}
}

// handleAsk ranks the corpus against a question.
func (s *Server) handleAsk(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, PageOutput, error) {
	id, session := s.session(req, input.SessionID)

	opts := domain.QueryOptions{Category: input.Category, Threshold: input.Threshold}
	if _, err := session.Query(ctx, input.Question, opts); err != nil {
		return nil, PageOutput{}, err
	}
	return nil, pageOutput(id, session.Page()), nil
}

// handleMore advances the session's result window.
func (s *Server) handleMore(
	_ context.Context,
	req *mcp.CallToolRequest,
	input SessionInput,
) (*mcp.CallToolResult, PageOutput, error) {
	id, session := s.session(req, input.SessionID)

	page, err := session.Next()
	if errors.Is(err, domain.ErrNoResults) {
		return textResult("No more results."), pageOutput(id, page), nil
	}
	if err != nil {
		return nil, PageOutput{}, err
	}
	return nil, pageOutput(id, page), nil
}

// handleUpvote records a vote for an additional answer.
func (s *Server) handleUpvote(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input UpvoteInput,
) (*mcp.CallToolResult, UpvoteOutput, error) {
	_, session := s.session(req, input.SessionID)

	votes, err := session.Upvote(ctx, input.AnswerID)
	if err != nil {
		return nil, UpvoteOutput{}, err
	}
	return nil, UpvoteOutput{AnswerID: input.AnswerID, Upvotes: votes}, nil
}

// handleFlag reports an additional answer for review.
func (s *Server) handleFlag(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input FlagInput,
) (*mcp.CallToolResult, FlagOutput, error) {
	_, session := s.session(req, input.SessionID)

	report, err := session.Flag(ctx, input.AnswerID, input.Reason)
	if err != nil {
		return nil, FlagOutput{}, err
	}
	return nil, FlagOutput{
		ReportID:   report.ID,
		AnswerID:   report.AnswerID,
		QuestionID: report.QuestionID,
	}, nil
}

// handleAddQA stores a new record and reports near duplicates.
func (s *Server) handleAddQA(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddQAInput,
) (*mcp.CallToolResult, AddQAOutput, error) {
	similar, err := s.ports.Ingest.SimilarQuestions(ctx, input.Question)
	if err != nil {
		return nil, AddQAOutput{}, err
	}

	id, err := s.ports.Ingest.AddRecord(ctx, domain.IngestRecord{
		ProductRef:        strconv.FormatInt(input.Product, 10),
		QuestionText:      input.Question,
		AnswerText:        input.Answer,
		AdditionalAnswers: input.AdditionalAnswers,
		Origin:            "mcp",
	})
	if err != nil {
		return nil, AddQAOutput{}, err
	}

	out := AddQAOutput{QuestionID: id}
	for i := range similar {
		out.Similar = append(out.Similar, SimilarEntry{
			QuestionID: similar[i].Question.ID,
			Question:   similar[i].Question.Text,
			Similarity: similar[i].Similarity,
		})
	}
	return nil, out, nil
}

// handleProductLookup searches the catalog.
func (s *Server) handleProductLookup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProductInput,
) (*mcp.CallToolResult, ProductOutput, error) {
	products, err := s.ports.Catalog.Lookup(ctx, input.Query)
	if err != nil {
		return nil, ProductOutput{}, err
	}

	out := ProductOutput{Products: make([]ProductEntry, len(products)), Count: len(products)}
	for i := range products {
		p := &products[i]
		entry := ProductEntry{
			ID:         p.ID,
			SKU:        p.SKU,
			Name:       p.Name,
			Price:      p.Price,
			Stock:      p.Stock,
			StockLevel: string(p.StockLevel()),
			Rating:     p.Rating,
		}
		if entry.Alternative, err = s.ports.Catalog.AlternativeSuggestion(ctx, p.SKU); err != nil {
			return nil, ProductOutput{}, fmt.Errorf("alternative for %s: %w", p.SKU, err)
		}
		if entry.FrequentlyBoughtWith, err = s.ports.Catalog.BoughtTogetherSuggestion(ctx, p.SKU); err != nil {
			return nil, ProductOutput{}, fmt.Errorf("bought together for %s: %w", p.SKU, err)
		}
		out.Products[i] = entry
	}
	return nil, out, nil
}

// session resolves the retrieval session for a call. An explicit id wins,
// then the transport session id; stdio clients share one fallback session.
func (s *Server) session(req *mcp.CallToolRequest, explicit string) (string, driving.RetrievalSession) {
	id := explicit
	if id == "" && req != nil && req.Session != nil {
		id = req.Session.ID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" {
		return s.ports.Sessions.Open(id)
	}
	id, session := s.ports.Sessions.Open(s.fallbackID)
	s.fallbackID = id
	return id, session
}

func pageOutput(sessionID string, page domain.ResultPage) PageOutput {
	out := PageOutput{
		SessionID: sessionID,
		Results:   make([]ResultOutput, len(page.Results)),
		Offset:    page.Offset,
		Total:     page.Total,
		HasMore:   page.HasMore(),
	}
	for i := range page.Results {
		r := &page.Results[i]
		res := ResultOutput{
			QuestionID: r.Question.ID,
			Question:   r.Question.Text,
			Product:    r.Question.ProductRef,
			Category:   r.Question.Category,
			Similarity: r.Similarity,
		}
		if r.PrimaryAnswer != nil {
			res.PrimaryAnswer = r.PrimaryAnswer.Text
		}
		for _, a := range r.AdditionalAnswers {
			res.AdditionalAnswers = append(res.AdditionalAnswers, AnswerOutput{
				ID:      a.ID,
				Text:    a.Text,
				Upvotes: a.Upvotes,
			})
		}
		out.Results[i] = res
	}
	return out
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
