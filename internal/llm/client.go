// Package llm implements the external LLM collaborator: business-domain
// classification, narrative insights, and free-text query answering over
// OpenAI-compatible chat endpoints.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

// completionAPI is the slice of the OpenAI client the collaborator needs.
// *openai.Client satisfies it; tests substitute a canned implementation.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client talks to an OpenAI-compatible chat endpoint. It implements
// domain.InsightService and degrades every upstream failure to a typed stub
// so a dead or misconfigured endpoint never takes down a report.
type Client struct {
	api    completionAPI
	model  string
	logger *zap.Logger
}

// Config holds configuration for creating an LLM client.
type Config struct {
	Model  string // Model name, e.g. "gpt-4o-mini"
	APIKey string
}

// NewClient creates a new LLM collaborator client.
func NewClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if cfg.APIKey == "" {
		return nil, domain.NewExternalServiceError("missing API key for LLM collaborator", nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		api:    openai.NewClient(cfg.APIKey),
		model:  cfg.Model,
		logger: logger.Named("llm"),
	}, nil
}

// complete runs one chat completion and returns the raw message content.
func (c *Client) complete(ctx context.Context, prompt string, temperature float32, jsonMode bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	c.logger.Debug("LLM request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)))

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error("LLM request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", domain.NewExternalServiceError("chat completion failed", err)
	}

	if len(resp.Choices) == 0 {
		return "", domain.NewExternalServiceError("no choices in completion response", nil)
	}

	c.logger.Info("LLM request completed",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return resp.Choices[0].Message.Content, nil
}
