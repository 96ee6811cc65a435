package groq

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
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.1-8b-instant"
)

var ErrMissingAPIKey = errors.New("groq api key is empty")

type Client struct {
	apiKey string
	model  string
	base   string
	http   *http.Client
	log    *zap.Logger
	tracer trace.Tracer
}

type Option func(*Client)

func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.base = base
		}
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func NewClient(apiKey, model string, opts ...Option) *Client {
	if model == "" {
		model = DefaultModel
	}
	c := &Client{
		apiKey: apiKey,
		model:  model,
		base:   DefaultBaseURL,
		http:   &http.Client{},
		log:    zap.NewNop(),
		tracer: otel.Tracer("github.com/abhishek622/interviewPrep/internal/groq"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
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
		return fmt.Sprintf("groq api error (%d %s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("groq api error (%d): %s", e.StatusCode, e.Message)
}

func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

// Complete sends one system and one user message and returns the reply text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float32) (string, error) {
	return c.Chat(ctx, ChatRequest{
		Messages: []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
}

func (c *Client) Chat(ctx context.Context, req ChatRequest) (out string, err error) {
	if req.Model == "" {
		req.Model = c.model
	}

	ctx, span := c.tracer.Start(ctx, "groq.chat", trace.WithAttributes(
		attribute.String("llm.model", req.Model),
		attribute.Int("llm.max_tokens", req.MaxTokens),
		attribute.Float64("llm.temperature", float64(req.Temperature)),
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

	start := time.Now()
	resp, err := c.http.Do(r)
	if err != nil {
		return "", fmt.Errorf("groq request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	c.log.Debug("groq response",
		zap.Int("status", resp.StatusCode),
		zap.String("model", req.Model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("bytes", len(bodyBytes)),
	)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	var ch ChatResponse
	decodeErr := json.Unmarshal(bodyBytes, &ch)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
		if decodeErr == nil && ch.Error != nil {
			apiErr.Type = ch.Error.Type
			apiErr.Message = ch.Error.Message
		}
		return "", apiErr
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode error: %w, body: %s", decodeErr, string(bodyBytes))
	}
	if ch.Error != nil {
		return "", &APIError{StatusCode: resp.StatusCode, Type: ch.Error.Type, Message: ch.Error.Message}
	}
	if len(ch.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return ch.Choices[0].Message.Content, nil
}
