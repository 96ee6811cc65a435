package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

var ErrMissingAPIKey = errors.New("openai api key is empty")

type Client struct {
	apiKey string
	model  string
	base   string
	http   *http.Client
	tracer trace.Tracer
}

func NewClient(apiKey, model, base string, timeout time.Duration) *Client {
	if model == "" {
		model = DefaultModel
	}
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		base:   base,
		http:   &http.Client{Timeout: timeout},
		tracer: otel.Tracer("github.com/abhishek622/interviewPrep/internal/openai"),
	}
}

type ChatRequest struct {
	Model       string              `json:"model"`
	Messages    []map[string]string `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float32             `json:"temperature,omitempty"`
}

type ChatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// APIError is a non-2xx reply or an error object in the response body.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("openai http %d (%s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Message)
}

func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float32) (string, error) {
	return c.Chat(ctx, ChatRequest{
		Model: c.model,
		Messages: []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
}

func (c *Client) Chat(ctx context.Context, req ChatRequest) (out string, err error) {
	ctx, span := c.tracer.Start(ctx, "openai.chat", trace.WithAttributes(
		attribute.String("llm.model", req.Model),
		attribute.Int("llm.max_tokens", req.MaxTokens),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if !c.HasCredential() {
		return "", ErrMissingAPIKey
	}

	url := c.base + "/chat/completions"
	b, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	r.Header.Set("Authorization", "Bearer "+c.apiKey)
	r.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(r)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	var ch ChatResponse
	decodeErr := json.Unmarshal(body, &ch)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(body)}
		if decodeErr == nil && ch.Error != nil {
			apiErr.Type = ch.Error.Type
			apiErr.Message = ch.Error.Message
		}
		return "", apiErr
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}
	if ch.Error != nil {
		return "", &APIError{StatusCode: resp.StatusCode, Type: ch.Error.Type, Message: ch.Error.Message}
	}
	if len(ch.Choices) == 0 {
		return "", fmt.Errorf("no choices")
	}
	return ch.Choices[0].Message.Content, nil
}
