// Package interview generates interview questions, scores answers and writes
// the end-of-session report. Every operation first tries the configured
// text-generation service and falls back to a deterministic local result
// when that fails.
package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhishek622/interviewPrep/pkg/model"
	"go.uber.org/zap"
)

// Completer is the outbound text-generation capability.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float32) (string, error)
	HasCredential() bool
}

// Engine holds the state of a single interview session. It is not safe for
// concurrent use and must not be shared between sessions.
type Engine struct {
	llm     Completer
	catalog *Catalog
	log     *zap.Logger
	timeout time.Duration
	budget  *AnswerBudget

	cfg   model.SessionConfig
	asked []string
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func WithCatalog(c *Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithCallTimeout bounds each outbound completion call.
func WithCallTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

func WithAnswerBudget(b *AnswerBudget) Option {
	return func(e *Engine) { e.budget = b }
}

func New(llm Completer, opts ...Option) *Engine {
	e := &Engine{
		llm:     llm,
		catalog: DefaultCatalog(),
		log:     zap.NewNop(),
		cfg: model.SessionConfig{
			Role:       model.DefaultRole,
			Mode:       model.ModeTechnical,
			Difficulty: model.DifficultyMedium,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Setup starts a new run. Unknown roles are kept as given and resolve to the
// default role's topics on lookup. It also clears the asked-questions log.
func (e *Engine) Setup(role model.Role, domain model.Domain, mode model.InterviewMode, difficulty model.Difficulty) {
	e.cfg = model.SessionConfig{
		Role:       role,
		Domain:     model.NormalizeDomain(domain),
		Mode:       mode,
		Difficulty: difficulty,
	}
	e.asked = nil
}

// Restore rehydrates an engine from stored session state.
func (e *Engine) Restore(cfg model.SessionConfig, asked []string) {
	e.cfg = cfg
	e.asked = append([]string(nil), asked...)
}

func (e *Engine) Config() model.SessionConfig {
	return e.cfg
}

func (e *Engine) QuestionsAsked() []string {
	return append([]string(nil), e.asked...)
}

func (e *Engine) Topics() []string {
	return e.catalog.Topics(e.cfg.Role, e.cfg.Mode)
}

func (e *Engine) HasCredential() bool {
	return e.llm != nil && e.llm.HasCredential()
}

// NextQuestion generates question number n. Only remotely generated
// questions are recorded in the asked log.
func (e *Engine) NextQuestion(ctx context.Context, n int) Generation[string] {
	const op = "generate_question"

	topics := e.catalog.PromptTopics(e.cfg.Role, e.cfg.Mode)
	prompt := buildQuestionPrompt(e.cfg, topics, e.asked, n)

	text, serr := e.complete(ctx, op, questionSystemPrompt, prompt, questionMaxTokens, questionTemperature)
	if serr != nil {
		e.absorb(serr, zap.Int("question_number", n))
		return fallback(e.catalog.FallbackQuestion(e.cfg.Role, e.cfg.Mode, n), serr)
	}

	e.asked = append(e.asked, text)
	return remote(text)
}

func (e *Engine) GenerateQuestion(ctx context.Context, n int) string {
	return e.NextQuestion(ctx, n).Value
}

func (e *Engine) Evaluate(ctx context.Context, question, answer string) Generation[model.AnswerEvaluation] {
	const op = "evaluate_answer"

	prompt := buildEvaluationPrompt(e.cfg, question, e.budget.Clip(answer))
	text, serr := e.complete(ctx, op, evaluateSystemPrompt, prompt, evaluateMaxTokens, evaluateTemperature)
	if serr != nil {
		e.absorb(serr, zap.Int("word_count", WordCount(answer)))
		return fallback(FallbackEvaluation(answer), serr)
	}
	return remote(ParseEvaluation(text))
}

func (e *Engine) EvaluateAnswer(ctx context.Context, question, answer string) model.AnswerEvaluation {
	return e.Evaluate(ctx, question, answer).Value
}

// Summarize only calls out when a credential is configured and there is
// history to report on.
func (e *Engine) Summarize(ctx context.Context, history []model.HistoryEntry) Generation[string] {
	const op = "generate_summary"

	if len(history) == 0 {
		return fallback(FallbackSummary(e.cfg, history), &ServiceError{Op: op, Err: ErrEmptyHistory})
	}
	if !e.HasCredential() {
		return fallback(FallbackSummary(e.cfg, history), &ServiceError{Op: op, Err: ErrNoCredential})
	}

	prompt := buildSummaryPrompt(e.cfg, history, e.budget.Clip)
	text, serr := e.complete(ctx, op, summarySystemPrompt, prompt, summaryMaxTokens, summaryTemperature)
	if serr != nil {
		e.absorb(serr, zap.Int("entries", len(history)))
		return fallback(FallbackSummary(e.cfg, history), serr)
	}
	return remote(text)
}

func (e *Engine) GenerateSummary(ctx context.Context, history []model.HistoryEntry) string {
	return e.Summarize(ctx, history).Value
}

// complete makes exactly one attempt; there are no retries. A failed call
// made without a credential is reported as ErrNoCredential.
func (e *Engine) complete(ctx context.Context, op, system, user string, maxTokens int, temperature float32) (string, *ServiceError) {
	if e.llm == nil {
		return "", &ServiceError{Op: op, Err: ErrNoCredential}
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	text, err := e.llm.Complete(ctx, system, user, maxTokens, temperature)
	if err != nil {
		if !e.llm.HasCredential() {
			err = fmt.Errorf("%w: %w", ErrNoCredential, err)
		}
		return "", &ServiceError{Op: op, Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ServiceError{Op: op, Err: ErrEmptyResponse}
	}
	return text, nil
}

func (e *Engine) absorb(serr *ServiceError, fields ...zap.Field) {
	fields = append(fields,
		zap.String("op", serr.Op),
		zap.String("role", string(e.cfg.Role)),
		zap.Error(serr.Err),
	)
	if errors.Is(serr, ErrNoCredential) {
		e.log.Debug("using fallback, no credential", fields...)
		return
	}
	e.log.Warn("remote generation failed, using fallback", fields...)
}
