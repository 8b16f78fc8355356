package domain

import "context"

// DomainClassification is the LLM collaborator's business-domain verdict for a
// dataset. Confidence is in [0,1].
type DomainClassification struct {
	Domain     string   `json:"domain" yaml:"domain"`
	Confidence float64  `json:"confidence" yaml:"confidence"`
	Reason     string   `json:"reason" yaml:"reason"`
	Features   []string `json:"features" yaml:"features"`
}

// Insight is one AI-generated or template insight
type Insight struct {
	Type           string `json:"type,omitempty" yaml:"type,omitempty"`
	Title          string `json:"title" yaml:"title"`
	Description    string `json:"description" yaml:"description"`
	Recommendation string `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
}

// QueryAnswer is the LLM collaborator's answer to a natural-language question
// about a dataset
type QueryAnswer struct {
	Answer        string `json:"answer" yaml:"answer"`
	SQL           string `json:"sql,omitempty" yaml:"sql,omitempty"`
	Visualization string `json:"visualization,omitempty" yaml:"visualization,omitempty"`
}

// InsightService is the contract for the external LLM collaborator. Implementations
// must validate response shapes and degrade to typed stubs, never crash, when
// the upstream service fails or returns malformed content.
type InsightService interface {
	// DetectDomain classifies the dataset's business domain from column names
	// and a few sample rows
	DetectDomain(ctx context.Context, columns []string, sampleRows []map[string]any) (*DomainClassification, error)

	// GenerateInsights produces narrative insights for a dataset sample
	GenerateInsights(ctx context.Context, csvSample string, classification *DomainClassification) ([]Insight, error)

	// AnswerQuery answers a free-text question about the dataset
	AnswerQuery(ctx context.Context, question string, csvSample string) (*QueryAnswer, error)
}
