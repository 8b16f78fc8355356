package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

// Supported business domains for dataset classification
const (
	DomainFinance    = "Finance"
	DomainFood       = "Food"
	DomainSales      = "Sales"
	DomainHealthcare = "Healthcare"
	DomainEducation  = "Education"
	DomainHR         = "HR"
	DomainMarketing  = "Marketing"
	DomainGeneric    = "Generic"
)

// SupportedDomains lists every domain the classifier may return
var SupportedDomains = []string{
	DomainFinance,
	DomainFood,
	DomainSales,
	DomainHealthcare,
	DomainEducation,
	DomainHR,
	DomainMarketing,
	DomainGeneric,
}

const maxPromptValueLen = 100

var quotedTermPattern = regexp.MustCompile(`"([^"]+)"`)

// DetectDomain classifies the dataset's business domain from column names and
// up to three sample rows. A transport failure returns an error-domain stub
// alongside a typed EXTERNAL_SERVICE error; a malformed but received response
// degrades to Generic.
func (c *Client) DetectDomain(ctx context.Context, columns []string, sampleRows []map[string]any) (*domain.DomainClassification, error) {
	prompt := buildDomainPrompt(columns, sampleRows)

	content, err := c.complete(ctx, prompt, 0, false)
	if err != nil {
		return &domain.DomainClassification{
			Domain:     "Error",
			Confidence: 0,
			Reason:     fmt.Sprintf("Unable to detect domain: %v. Please check API key configuration.", err),
			Features:   []string{},
		}, err
	}

	return parseDomainResult(content, columns, c.logger), nil
}

func buildDomainPrompt(columns []string, sampleRows []map[string]any) string {
	var sampleData strings.Builder
	if len(sampleRows) > 0 {
		sampleData.WriteString("Sample data rows:\n")
		for i, row := range sampleRows {
			if i >= 3 {
				break
			}
			var rowValues []string
			for _, col := range columns {
				v, ok := row[col]
				if !ok {
					continue
				}
				value := fmt.Sprintf("%v", v)
				if len(value) > maxPromptValueLen {
					value = value[:maxPromptValueLen-3] + "..."
				}
				rowValues = append(rowValues, fmt.Sprintf("%s: %s", col, value))
			}
			fmt.Fprintf(&sampleData, "Row %d: %s\n", i+1, strings.Join(rowValues, ", "))
		}
	}

	return fmt.Sprintf(`You are a domain expert tasked with classifying a dataset based on its columns and sample data.

Column names: %s

%s

Based on these column names and sample data, determine the domain this dataset belongs to.
Choose from the following domains:
- Finance: financial data, accounting, investments, stocks, revenue, expenses, etc.
- Food: nutritional data, recipes, ingredients, calories, food items, etc.
- Sales: sales data, products, customers, orders, revenue, transactions, etc.
- Healthcare: medical data, patients, diagnoses, treatments, health metrics, etc.
- Education: student data, courses, grades, educational performance, etc.
- HR: employee data, HR metrics, hiring, performance reviews, etc.
- Marketing: marketing campaigns, customer segments, promotions, advertising, etc.
- Generic: general data that doesn't fit clearly into any specific domain

Provide your answer in JSON format:
{
  "domain": "the most likely domain from the list above",
  "confidence": a decimal number between 0 and 1 indicating your confidence,
  "reason": "a detailed explanation of why you chose this domain",
  "features": ["list of domain-specific features or terms identified in the dataset"]
}`, strings.Join(columns, ", "), sampleData.String())
}

// parseDomainResult validates and normalizes the raw model output. Any parse
// problem yields a Generic classification rather than an error.
func parseDomainResult(content string, columns []string, logger *zap.Logger) *domain.DomainClassification {
	jsonStr, ok := ExtractJSON(content)
	if !ok {
		logger.Warn("no JSON found in domain detection response", zap.String("content", content))
		return genericClassification("No JSON found in domain detection response", content, columns)
	}

	var raw struct {
		Domain     string          `json:"domain"`
		Confidence json.RawMessage `json:"confidence"`
		Reason     string          `json:"reason"`
		Features   []string        `json:"features"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		logger.Warn("failed to parse domain detection response", zap.Error(err))
		return genericClassification(fmt.Sprintf("Error parsing domain detection result: %v", err), content, columns)
	}
	if raw.Domain == "" {
		return genericClassification("No domain found in response", content, columns)
	}

	normalized := normalizeDomain(raw.Domain)

	confidence := 0.7
	if len(raw.Confidence) > 0 {
		var v float64
		if err := json.Unmarshal(raw.Confidence, &v); err == nil {
			confidence = v
		}
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	reason := raw.Reason
	if reason == "" {
		reason = "Domain detected based on column patterns"
	}

	features := raw.Features
	if len(features) == 0 {
		features = extractFeaturesFromReason(reason, columns)
	}

	return &domain.DomainClassification{
		Domain:     normalized,
		Confidence: confidence,
		Reason:     reason,
		Features:   features,
	}
}

func genericClassification(reason, content string, columns []string) *domain.DomainClassification {
	return &domain.DomainClassification{
		Domain:     DomainGeneric,
		Confidence: 0.5,
		Reason:     reason,
		Features:   extractFeaturesFromReason(content, columns),
	}
}

// normalizeDomain maps the model's answer onto the supported domain list,
// ignoring case and surrounding whitespace. Unknown answers become Generic.
func normalizeDomain(name string) string {
	name = strings.TrimSpace(name)
	for _, d := range SupportedDomains {
		if strings.EqualFold(d, name) {
			return d
		}
	}
	return DomainGeneric
}

// extractFeaturesFromReason pulls quoted terms and mentioned column names out
// of free text as a feature-list fallback.
func extractFeaturesFromReason(reason string, columns []string) []string {
	seen := make(map[string]bool)
	var features []string
	add := func(f string) {
		f = strings.TrimSpace(f)
		if f != "" && !seen[f] {
			seen[f] = true
			features = append(features, f)
		}
	}

	for _, m := range quotedTermPattern.FindAllStringSubmatch(reason, -1) {
		add(m[1])
	}
	lower := strings.ToLower(reason)
	for _, col := range columns {
		if strings.Contains(lower, strings.ToLower(col)) {
			add(col)
		}
	}

	if len(features) == 0 {
		for i, col := range columns {
			if i >= 5 {
				break
			}
			add(col)
		}
	}
	return features
}
