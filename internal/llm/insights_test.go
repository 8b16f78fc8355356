package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

const insightsArray = `[
  {"title": "High churn", "description": "30% of accounts are inactive", "recommendation": "Run a win-back campaign"},
  {"title": "Seasonal peak", "description": "Sales double in December"}
]`

func TestGenerateInsights(t *testing.T) {
	classification := &domain.DomainClassification{Domain: DomainSales, Reason: "order columns"}

	t.Run("bare array response", func(t *testing.T) {
		api := &fakeAPI{content: insightsArray}
		c := newTestClient(api)

		got, err := c.GenerateInsights(context.Background(), "a,b\n1,2\n", classification)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "High churn", got[0].Title)
		assert.Equal(t, "Run a win-back campaign", got[0].Recommendation)
	})

	t.Run("insights wrapper object", func(t *testing.T) {
		api := &fakeAPI{content: `{"insights": ` + insightsArray + `}`}
		c := newTestClient(api)

		got, err := c.GenerateInsights(context.Background(), "a,b\n1,2\n", classification)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("entries without title or description are dropped", func(t *testing.T) {
		api := &fakeAPI{content: `[
  {"title": "Kept", "description": "has both fields"},
  {"title": "No description"},
  {"description": "no title"}
]`}
		c := newTestClient(api)

		got, err := c.GenerateInsights(context.Background(), "a\n1\n", classification)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Kept", got[0].Title)
	})

	t.Run("nil classification defaults to Generic", func(t *testing.T) {
		api := &fakeAPI{content: insightsArray}
		c := newTestClient(api)

		_, err := c.GenerateInsights(context.Background(), "a\n1\n", nil)
		require.NoError(t, err)
		assert.Contains(t, api.lastReq.Messages[0].Content, DomainGeneric)
	})

	t.Run("malformed response returns stub and typed error", func(t *testing.T) {
		api := &fakeAPI{content: "no structured output today"}
		c := newTestClient(api)

		got, err := c.GenerateInsights(context.Background(), "a\n1\n", classification)
		require.Error(t, err)
		var de domain.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, domain.ErrCodeExternalService, de.Code)
		require.Len(t, got, 1)
		assert.Equal(t, "Error: Unable to Generate Insights", got[0].Title)
		assert.Equal(t, "error", got[0].Type)
	})

	t.Run("transport failure returns stub and error", func(t *testing.T) {
		api := &fakeAPI{err: errors.New("timeout")}
		c := newTestClient(api)

		got, err := c.GenerateInsights(context.Background(), "a\n1\n", classification)
		require.Error(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Error: Unable to Generate Insights", got[0].Title)
		assert.Contains(t, got[0].Description, "timeout")
	})
}

func TestParseInsights(t *testing.T) {
	t.Run("all entries invalid", func(t *testing.T) {
		_, err := parseInsights(`[{"title": ""}, {"description": ""}]`)
		assert.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := parseInsights("plain text")
		assert.Error(t, err)
	})
}
