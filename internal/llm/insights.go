package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

const insightTemperature = 0.2

// GenerateInsights produces 3-5 narrative insights for a CSV sample with the
// detected business domain as context. Failures return a single error-typed
// insight stub alongside a typed EXTERNAL_SERVICE error so callers can keep
// the rest of the report.
func (c *Client) GenerateInsights(ctx context.Context, csvSample string, classification *domain.DomainClassification) ([]domain.Insight, error) {
	if classification == nil {
		classification = &domain.DomainClassification{Domain: DomainGeneric}
	}

	prompt := buildInsightPrompt(csvSample, classification)

	content, err := c.complete(ctx, prompt, insightTemperature, true)
	if err != nil {
		return []domain.Insight{errorInsight(fmt.Sprintf("An error occurred: %v. Please check your API key configuration and try again.", err))}, err
	}

	insights, parseErr := parseInsights(content)
	if parseErr != nil {
		c.logger.Error("failed to parse insights response",
			zap.String("content", content),
			zap.Error(parseErr))
		stub := errorInsight("There was an error generating insights. Please check your API key configuration and try again.")
		return []domain.Insight{stub}, domain.NewExternalServiceError("malformed insights response", parseErr)
	}

	return insights, nil
}

func buildInsightPrompt(csvSample string, classification *domain.DomainClassification) string {
	return fmt.Sprintf(`You are a data analysis expert specializing in %s datasets.
Analyze this dataset sample and provide 3-5 key insights that would be valuable to users.

Domain: %s
Domain reason: %s

Dataset sample:
%s

For each insight, provide:
1. A concise title
2. A detailed description including specific values and statistics
3. A practical recommendation based on the insight

Focus on the most interesting patterns, outliers, or relationships in the data.
Make insights specific to the %s domain.

Format as JSON with this structure:
[
  {
    "title": "Insight title",
    "description": "Detailed description with specific values",
    "recommendation": "Practical recommendation"
  },
  ...
]`, classification.Domain, classification.Domain, classification.Reason, csvSample, classification.Domain)
}

// parseInsights accepts either a bare JSON array or an object wrapping one
// under an "insights" key, and keeps only entries that carry both a title and
// a description.
func parseInsights(content string) ([]domain.Insight, error) {
	jsonStr, ok := ExtractJSON(content)
	if !ok {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var items []domain.Insight
	if err := json.Unmarshal([]byte(jsonStr), &items); err != nil {
		var wrapper struct {
			Insights []domain.Insight `json:"insights"`
		}
		if err := json.Unmarshal([]byte(jsonStr), &wrapper); err != nil {
			return nil, fmt.Errorf("response is neither an insight array nor an insights object: %w", err)
		}
		items = wrapper.Insights
	}

	var validated []domain.Insight
	for _, item := range items {
		if item.Title != "" && item.Description != "" {
			validated = append(validated, item)
		}
	}
	if len(validated) == 0 {
		return nil, fmt.Errorf("no valid insights in response")
	}
	return validated, nil
}

func errorInsight(description string) domain.Insight {
	return domain.Insight{
		Type:        "error",
		Title:       "Error: Unable to Generate Insights",
		Description: description,
	}
}
