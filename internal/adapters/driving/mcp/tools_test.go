package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked answers", func(t *testing.T) {
		server, _ := newTestServer(t)

		input := AskInput{SessionID: "client-a", Question: "how long does the adhesive take to dry"}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "client-a", output.SessionID)
		assert.Equal(t, 0, output.Offset)
		require.Len(t, output.Results, 1)

		top := output.Results[0]
		assert.Equal(t, int64(1), top.QuestionID)
		assert.Equal(t, int64(1001), top.Product)
		assert.Equal(t, "adhesives", top.Category)
		assert.Equal(t, "About 24 hours at room temperature.", top.PrimaryAnswer)
		assert.Greater(t, top.Similarity, 0.2)
		require.Len(t, top.AdditionalAnswers, 2)
		assert.Equal(t, int64(2), top.AdditionalAnswers[0].ID)
		assert.Equal(t, int64(3), top.AdditionalAnswers[1].ID)
	})

	t.Run("category filter drops other categories", func(t *testing.T) {
		server, _ := newTestServer(t)

		input := AskInput{Question: "how long does the adhesive take to dry", Category: "sealants"}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		for _, r := range output.Results {
			assert.Equal(t, "sealants", r.Category)
		}
	})

	t.Run("unknown category returns error", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, _, err := server.handleAsk(ctx, nil, AskInput{Question: "dry", Category: "paint"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("high threshold returns nothing", func(t *testing.T) {
		server, _ := newTestServer(t)

		high := 0.99
		input := AskInput{Question: "is the glue food safe", Threshold: &high}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		assert.Empty(t, output.Results)
		assert.Equal(t, 0, output.Total)
		assert.False(t, output.HasMore)
	})
}

func TestServer_SessionResolution(t *testing.T) {
	ctx := context.Background()

	t.Run("calls without an id share a fallback session", func(t *testing.T) {
		server, registry := newTestServer(t)

		_, first, err := server.handleAsk(ctx, nil, AskInput{Question: "adhesive dry"})
		require.NoError(t, err)
		_, second, err := server.handleMore(ctx, nil, SessionInput{})
		require.NoError(t, err)

		assert.NotEmpty(t, first.SessionID)
		assert.Equal(t, first.SessionID, second.SessionID)
		assert.Equal(t, 1, registry.Len())
	})

	t.Run("explicit ids get separate sessions", func(t *testing.T) {
		server, registry := newTestServer(t)

		_, a, err := server.handleAsk(ctx, nil, AskInput{SessionID: "a", Question: "adhesive dry"})
		require.NoError(t, err)
		_, b, err := server.handleAsk(ctx, nil, AskInput{SessionID: "b", Question: "sealant waterproof"})
		require.NoError(t, err)

		assert.Equal(t, "a", a.SessionID)
		assert.Equal(t, "b", b.SessionID)
		assert.Equal(t, 2, registry.Len())
	})
}

func TestServer_handleMore(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh session has nothing to page", func(t *testing.T) {
		server, _ := newTestServer(t)

		result, output, err := server.handleMore(ctx, nil, SessionInput{SessionID: "new"})

		require.NoError(t, err)
		require.NotNil(t, result)
		require.Len(t, result.Content, 1)
		text, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok)
		assert.Equal(t, "No more results.", text.Text)
		assert.Empty(t, output.Results)
	})

	t.Run("exhausted ranking keeps offset", func(t *testing.T) {
		server, _ := newTestServer(t)
		_, _, err := server.handleAsk(ctx, nil, AskInput{SessionID: "s", Question: "how long does the adhesive take to dry"})
		require.NoError(t, err)

		result, output, err := server.handleMore(ctx, nil, SessionInput{SessionID: "s"})

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, 0, output.Offset)
		assert.Equal(t, 1, output.Total)
	})
}

func TestServer_handleUpvote(t *testing.T) {
	ctx := context.Background()

	t.Run("counts votes on additional answers", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, out, err := server.handleUpvote(ctx, nil, UpvoteInput{SessionID: "s", AnswerID: 3})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Upvotes)

		_, out, err = server.handleUpvote(ctx, nil, UpvoteInput{SessionID: "s", AnswerID: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(3), out.AnswerID)
		assert.Equal(t, 2, out.Upvotes)
	})

	t.Run("voted answer moves up on the next ask", func(t *testing.T) {
		server, _ := newTestServer(t)
		_, _, err := server.handleUpvote(ctx, nil, UpvoteInput{AnswerID: 3})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "how long does the adhesive take to dry"})

		require.NoError(t, err)
		require.Len(t, output.Results, 1)
		require.Len(t, output.Results[0].AdditionalAnswers, 2)
		assert.Equal(t, int64(3), output.Results[0].AdditionalAnswers[0].ID)
		assert.Equal(t, 1, output.Results[0].AdditionalAnswers[0].Upvotes)
	})

	t.Run("primary answer is rejected", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, _, err := server.handleUpvote(ctx, nil, UpvoteInput{AnswerID: 1})

		assert.ErrorIs(t, err, domain.ErrPrimaryAnswer)
	})

	t.Run("unknown answer is not found", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, _, err := server.handleUpvote(ctx, nil, UpvoteInput{AnswerID: 404})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServer_handleFlag(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(t)

	_, out, err := server.handleFlag(ctx, nil, FlagInput{AnswerID: 5, Reason: "outdated"})

	require.NoError(t, err)
	assert.NotEmpty(t, out.ReportID)
	assert.Equal(t, int64(5), out.AnswerID)
	assert.Equal(t, int64(2), out.QuestionID)

	_, _, err = server.handleFlag(ctx, nil, FlagInput{AnswerID: 4})
	assert.ErrorIs(t, err, domain.ErrPrimaryAnswer)
}

func TestServer_handleAddQA(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a new record", func(t *testing.T) {
		server, _ := newTestServer(t)

		input := AddQAInput{
			Product:           1003,
			Question:          "What temperature can it withstand?",
			Answer:            "Up to 300 degrees.",
			AdditionalAnswers: []string{"Let it cure before heating."},
		}
		_, out, err := server.handleAddQA(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, int64(3), out.QuestionID)

		_, page, err := server.handleAsk(ctx, nil, AskInput{Question: "what temperature can it withstand"})
		require.NoError(t, err)
		require.NotEmpty(t, page.Results)
		assert.Equal(t, int64(3), page.Results[0].QuestionID)
	})

	t.Run("reports near duplicates", func(t *testing.T) {
		server, _ := newTestServer(t)

		input := AddQAInput{Product: 1003, Question: "Is the sealant waterproof?", Answer: "Yes."}
		_, out, err := server.handleAddQA(ctx, nil, input)

		require.NoError(t, err)
		require.NotEmpty(t, out.Similar)
		assert.Equal(t, int64(2), out.Similar[0].QuestionID)
		assert.InDelta(t, 1.0, out.Similar[0].Similarity, 1e-9)
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		server, _ := newTestServer(t)

		input := AddQAInput{Product: 9999, Question: "Does it glow?", Answer: "No."}
		_, _, err := server.handleAddQA(ctx, nil, input)

		assert.Error(t, err)
	})
}

func TestServer_handleProductLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("finds by sku with suggestions", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, out, err := server.handleProductLookup(ctx, nil, ProductInput{Query: "adh1001"})

		require.NoError(t, err)
		require.Equal(t, 1, out.Count)
		p := out.Products[0]
		assert.Equal(t, "ADH1001", p.SKU)
		assert.Equal(t, "high", p.StockLevel)
		assert.Equal(t, "A great alternative to the Super Adhesive is the product High-Temp Sealant.", p.Alternative)
		assert.Contains(t, p.FrequentlyBoughtWith, "Waterproof Sealant")
	})

	t.Run("finds by keyword", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, out, err := server.handleProductLookup(ctx, nil, ProductInput{Query: "sealant"})

		require.NoError(t, err)
		assert.Equal(t, 2, out.Count)
		assert.Equal(t, "critical", out.Products[0].StockLevel)
		assert.Empty(t, out.Products[0].Alternative)
	})

	t.Run("returns error on catalog failure", func(t *testing.T) {
		ports, _ := newTestPorts(t)
		ports.Catalog = failingCatalog{}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleProductLookup(ctx, nil, ProductInput{Query: "glue"})

		assert.ErrorIs(t, err, errCatalog)
	})
}
