package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

// fakeAPI satisfies completionAPI with canned output for offline tests.
type fakeAPI struct {
	content string
	err     error
	lastReq openai.ChatCompletionRequest
}

func (f *fakeAPI) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

func newTestClient(api *fakeAPI) *Client {
	return &Client{api: api, model: "test-model", logger: zap.NewNop()}
}

func TestNewClient(t *testing.T) {
	t.Run("requires model", func(t *testing.T) {
		_, err := NewClient(&Config{APIKey: "sk-test"}, nil)
		assert.Error(t, err)
	})

	t.Run("requires API key", func(t *testing.T) {
		_, err := NewClient(&Config{Model: "gpt-4o-mini"}, nil)
		require.Error(t, err)
		var de domain.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, domain.ErrCodeExternalService, de.Code)
	})

	t.Run("valid config", func(t *testing.T) {
		c, err := NewClient(&Config{Model: "gpt-4o-mini", APIKey: "sk-test"}, nil)
		require.NoError(t, err)
		assert.NotNil(t, c)
	})
}

func TestDetectDomain(t *testing.T) {
	columns := []string{"revenue", "expenses", "quarter"}
	sample := []map[string]any{{"revenue": 1000.0, "expenses": 600.0, "quarter": "Q1"}}

	t.Run("well formed response", func(t *testing.T) {
		api := &fakeAPI{content: `{"domain": "Finance", "confidence": 0.92, "reason": "revenue and expense columns", "features": ["revenue", "expenses"]}`}
		c := newTestClient(api)

		got, err := c.DetectDomain(context.Background(), columns, sample)
		require.NoError(t, err)
		assert.Equal(t, DomainFinance, got.Domain)
		assert.InDelta(t, 0.92, got.Confidence, 1e-9)
		assert.Equal(t, []string{"revenue", "expenses"}, got.Features)
	})

	t.Run("prompt includes columns and sample rows", func(t *testing.T) {
		api := &fakeAPI{content: `{"domain": "Finance"}`}
		c := newTestClient(api)

		_, err := c.DetectDomain(context.Background(), columns, sample)
		require.NoError(t, err)
		require.Len(t, api.lastReq.Messages, 1)
		prompt := api.lastReq.Messages[0].Content
		assert.Contains(t, prompt, "revenue, expenses, quarter")
		assert.Contains(t, prompt, "Row 1:")
	})

	t.Run("normalizes domain case", func(t *testing.T) {
		api := &fakeAPI{content: `{"domain": "healthcare", "confidence": 0.8}`}
		c := newTestClient(api)

		got, err := c.DetectDomain(context.Background(), columns, sample)
		require.NoError(t, err)
		assert.Equal(t, DomainHealthcare, got.Domain)
	})

	t.Run("unknown domain falls back to Generic", func(t *testing.T) {
		api := &fakeAPI{content: `{"domain": "Astrology", "confidence": 0.9}`}
		c := newTestClient(api)

		got, err := c.DetectDomain(context.Background(), columns, sample)
		require.NoError(t, err)
		assert.Equal(t, DomainGeneric, got.Domain)
	})

	t.Run("missing confidence defaults to 0.7", func(t *testing.T) {
		api := &fakeAPI{content: `{"domain": "Sales", "reason": "orders"}`}
		c := newTestClient(api)

		got, err := c.DetectDomain(context.Background(), columns, sample)
		require.NoError(t, err)
		assert.InDelta(t, 0.7, got.Confidence, 1e-9)
	})

	t.Run("confidence clamped to unit interval", func(t *testing.T) {
		api := &fakeAPI{content: `{"domain": "Sales", "confidence": 3.5}`}
		c := newTestClient(api)

		got, err := c.DetectDomain(context.Background(), columns, sample)
		require.NoError(t, err)
		assert.Equal(t, 1.0, got.Confidence)
	})

	t.Run("unparseable response degrades to Generic", func(t *testing.T) {
		api := &fakeAPI{content: `The dataset clearly tracks "revenue" over time.`}
		c := newTestClient(api)

		got, err := c.DetectDomain(context.Background(), columns, sample)
		require.NoError(t, err)
		assert.Equal(t, DomainGeneric, got.Domain)
		assert.Equal(t, 0.5, got.Confidence)
		// quoted term and mentioned column names surface as features
		assert.Contains(t, got.Features, "revenue")
	})

	t.Run("transport failure returns error stub and typed error", func(t *testing.T) {
		api := &fakeAPI{err: errors.New("connection refused")}
		c := newTestClient(api)

		got, err := c.DetectDomain(context.Background(), columns, sample)
		require.Error(t, err)
		var de domain.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, domain.ErrCodeExternalService, de.Code)
		require.NotNil(t, got)
		assert.Equal(t, "Error", got.Domain)
		assert.Zero(t, got.Confidence)
	})
}

func TestExtractFeaturesFromReason(t *testing.T) {
	columns := []string{"price", "sku", "region"}

	t.Run("quoted terms and column mentions", func(t *testing.T) {
		got := extractFeaturesFromReason(`The "transaction" pattern and the price column stand out.`, columns)
		assert.Contains(t, got, "transaction")
		assert.Contains(t, got, "price")
		assert.NotContains(t, got, "sku")
	})

	t.Run("falls back to leading columns", func(t *testing.T) {
		got := extractFeaturesFromReason("nothing useful here", columns)
		assert.Equal(t, []string{"price", "sku", "region"}, got)
	})
}
