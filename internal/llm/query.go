package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

// AnswerQuery answers a free-text question about a dataset sample. The answer
// is grounded on the sample only; the model is also asked for the SQL that
// would extract the result and a visualization suggestion.
func (c *Client) AnswerQuery(ctx context.Context, question string, csvSample string) (*domain.QueryAnswer, error) {
	prompt := buildQueryPrompt(question, csvSample)

	content, err := c.complete(ctx, prompt, insightTemperature, true)
	if err != nil {
		return &domain.QueryAnswer{
			Answer: fmt.Sprintf("Unable to answer the question: %v", err),
		}, err
	}

	answer, parseErr := parseQueryAnswer(content)
	if parseErr != nil {
		c.logger.Error("failed to parse query response",
			zap.String("content", content),
			zap.Error(parseErr))
		return &domain.QueryAnswer{
			Answer: "Unable to interpret the model's answer. Please try rephrasing the question.",
		}, domain.NewExternalServiceError("malformed query response", parseErr)
	}

	return answer, nil
}

func buildQueryPrompt(question, csvSample string) string {
	return fmt.Sprintf(`You are an advanced data analyst expert specialized in interpreting complex data queries.
Given the following data and a question, provide:
1. A clear, detailed answer to the question based ONLY on the actual data provided, with exact numbers and statistics
2. The SQL query that would extract this information (with proper column names exactly matching the data)
3. A visualization type suited to the question and data

Here's the data:
%s

IMPORTANT GUIDELINES:
- Answer ONLY based on what is actually in the data. Never invent or assume data not present.
- If the query asks about something not in the data, clearly state that the information is not available.
- Use actual column names from the dataset in both your answer and SQL query.
- Provide specific, data-driven insights rather than generic statements.

Question: %s

Format your response as JSON with the following structure:
{
  "answer": "a detailed, data-driven answer to the question",
  "sql": "the SQL query with correct column names matching the dataset",
  "visualization": "bar, line, pie, scatter, histogram or heatmap"
}`, csvSample, question)
}

func parseQueryAnswer(content string) (*domain.QueryAnswer, error) {
	jsonStr, ok := ExtractJSON(content)
	if !ok {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var answer domain.QueryAnswer
	if err := json.Unmarshal([]byte(jsonStr), &answer); err != nil {
		return nil, err
	}
	if answer.Answer == "" {
		return nil, fmt.Errorf("response missing valid 'answer' field")
	}
	if answer.SQL == "" {
		answer.SQL = "-- No SQL query generated"
	}
	return &answer, nil
}
