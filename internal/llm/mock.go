package llm

import (
	"context"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

// MockClient is a deterministic InsightService used by tests and the --no-ai
// path. It never touches the network.
type MockClient struct {
	Classification *domain.DomainClassification
	Insights       []domain.Insight
	Answer         *domain.QueryAnswer
	Err            error
}

// NewMockClient returns a mock with sensible canned responses.
func NewMockClient() *MockClient {
	return &MockClient{
		Classification: &domain.DomainClassification{
			Domain:     DomainGeneric,
			Confidence: 0.5,
			Reason:     "Mock classification",
			Features:   []string{},
		},
		Insights: []domain.Insight{
			{
				Title:          "Mock Insight",
				Description:    "Deterministic insight for offline runs.",
				Recommendation: "Enable the AI collaborator for real insights.",
			},
		},
		Answer: &domain.QueryAnswer{
			Answer: "Mock answer",
			SQL:    "-- No SQL query generated",
		},
	}
}

func (m *MockClient) DetectDomain(ctx context.Context, columns []string, sampleRows []map[string]any) (*domain.DomainClassification, error) {
	return m.Classification, m.Err
}

func (m *MockClient) GenerateInsights(ctx context.Context, csvSample string, classification *domain.DomainClassification) ([]domain.Insight, error) {
	return m.Insights, m.Err
}

func (m *MockClient) AnswerQuery(ctx context.Context, question string, csvSample string) (*domain.QueryAnswer, error) {
	return m.Answer, m.Err
}
