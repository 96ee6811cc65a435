package interview

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhishek622/interviewPrep/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type call struct {
	system      string
	user        string
	maxTokens   int
	temperature float32
}

type fakeCompleter struct {
	replies []string
	err     error
	hasKey  bool
	calls   []call
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string, maxTokens int, temperature float32) (string, error) {
	f.calls = append(f.calls, call{system, user, maxTokens, temperature})
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

func (f *fakeCompleter) HasCredential() bool { return f.hasKey }

var errDown = errors.New("connection refused")

func newEngine(t *testing.T, llm Completer, role model.Role, mode model.InterviewMode) *Engine {
	t.Helper()
	e := New(llm)
	e.Setup(role, model.DomainGeneral, mode, model.DifficultyMedium)
	return e
}

func TestGenerateQuestion_Fallback(t *testing.T) {
	llm := &fakeCompleter{err: errDown}
	e := newEngine(t, llm, model.RoleDataAnalyst, model.ModeTechnical)

	g := e.NextQuestion(context.Background(), 1)
	assert.True(t, g.Fallback())
	require.NotNil(t, g.Err)
	assert.ErrorIs(t, g.Err, errDown)
	assert.Equal(t, "Explain your approach to statistical analysis and provide a practical example.", g.Value)
	assert.Empty(t, e.QuestionsAsked(), "fallback questions are not logged")
}

func TestGenerateQuestion_FallbackRoundRobin(t *testing.T) {
	e := newEngine(t, nil, model.RoleSoftwareEngineer, model.ModeBehavioral)
	ctx := context.Background()

	first := e.GenerateQuestion(ctx, 1)
	assert.Equal(t, "Tell me about a time you had to deal with problem-solving approach. How did you handle it?", first)
	assert.Equal(t, first, e.GenerateQuestion(ctx, 1), "same number gives same question")
	assert.Equal(t, first, e.GenerateQuestion(ctx, 8), "seven templates wrap around")
	assert.Equal(t, "Tell me about a project where team collaboration was critical to success.", e.GenerateQuestion(ctx, 7))
}

func TestGenerateQuestion_UnknownRoleUsesDefault(t *testing.T) {
	e := newEngine(t, nil, model.Role("Astronaut"), model.ModeTechnical)

	assert.Equal(t, model.Role("Astronaut"), e.Config().Role)
	assert.Equal(t, DefaultCatalog().Topics(model.RoleSoftwareEngineer, model.ModeTechnical), e.Topics())
	assert.Equal(t,
		"Explain your approach to data structures and algorithms and provide a practical example.",
		e.GenerateQuestion(context.Background(), 1))
}

func TestGenerateQuestion_Remote(t *testing.T) {
	llm := &fakeCompleter{hasKey: true, replies: []string{"  What is a B-tree?\n", "Q2", "Q3"}}
	e := newEngine(t, llm, model.RoleBackendDeveloper, model.ModeTechnical)
	ctx := context.Background()

	g := e.NextQuestion(ctx, 1)
	assert.False(t, g.Fallback())
	assert.Equal(t, "What is a B-tree?", g.Value)

	e.GenerateQuestion(ctx, 2)
	e.GenerateQuestion(ctx, 3)
	assert.Equal(t, []string{"What is a B-tree?", "Q2", "Q3"}, e.QuestionsAsked())

	require.Len(t, llm.calls, 3)
	c := llm.calls[0]
	assert.Equal(t, questionSystemPrompt, c.system)
	assert.Equal(t, 200, c.maxTokens)
	assert.InDelta(t, 0.7, c.temperature, 1e-6)
	assert.Contains(t, c.user, "Generate a medium-level technical interview question for a Backend Developer position.")
	assert.Contains(t, c.user, "Question #1")
	assert.Contains(t, c.user, "Previous Questions: None")
	assert.Contains(t, c.user, "Relevant Topics: Server-side Programming, Database Design and Optimization, API Development (REST/GraphQL), Microservices Architecture, Caching Strategies\n")
	assert.NotContains(t, c.user, "Security Implementation")

	assert.Contains(t, llm.calls[2].user, "Previous Questions: What is a B-tree?, Q2")
}

func TestGenerateQuestion_EmptyReplyFallsBack(t *testing.T) {
	llm := &fakeCompleter{hasKey: true, replies: []string{"   "}}
	e := newEngine(t, llm, model.RoleMLEngineer, model.ModeTechnical)

	g := e.NextQuestion(context.Background(), 2)
	assert.True(t, g.Fallback())
	assert.ErrorIs(t, g.Err, ErrEmptyResponse)
	assert.Equal(t, "How would you handle a challenging scenario involving feature engineering?", g.Value)
}

func TestSetupResetsAskedLog(t *testing.T) {
	llm := &fakeCompleter{hasKey: true, replies: []string{"Q1"}}
	e := newEngine(t, llm, model.RoleSoftwareEngineer, model.ModeTechnical)
	e.GenerateQuestion(context.Background(), 1)
	require.Len(t, e.QuestionsAsked(), 1)

	e.Setup(model.RoleProductManager, model.DomainBackend, model.ModeBehavioral, model.DifficultyHard)
	assert.Empty(t, e.QuestionsAsked())
	require.NotNil(t, e.Config().Domain)
	assert.Equal(t, model.DomainBackend, *e.Config().Domain)
}

func TestSetupNormalizesGeneralDomain(t *testing.T) {
	e := newEngine(t, nil, model.RoleSoftwareEngineer, model.ModeTechnical)
	assert.Nil(t, e.Config().Domain)
	assert.Equal(t, "General", e.Config().DomainLabel())
}

func TestEvaluateAnswer_NoCredential(t *testing.T) {
	e := newEngine(t, nil, model.RoleSoftwareEngineer, model.ModeTechnical)
	answer := strings.Repeat("word ", 15)

	ev := e.EvaluateAnswer(context.Background(), "Q?", answer)
	assert.Equal(t, model.AnswerEvaluation{Score: 35, Feedback: FeedbackTooBrief}, ev)
}

func TestEvaluateAnswer_Remote(t *testing.T) {
	llm := &fakeCompleter{hasKey: true, replies: []string{"SCORE: 85\nFEEDBACK: Solid answer."}}
	e := newEngine(t, llm, model.RoleDataAnalyst, model.ModeBehavioral)

	g := e.Evaluate(context.Background(), "Tell me about a time...", "I did things.")
	assert.False(t, g.Fallback())
	assert.Equal(t, model.AnswerEvaluation{Score: 85, Feedback: "Solid answer."}, g.Value)

	require.Len(t, llm.calls, 1)
	c := llm.calls[0]
	assert.Equal(t, 200, c.maxTokens)
	assert.InDelta(t, 0.3, c.temperature, 1e-6)
	assert.Contains(t, c.user, "QUESTION: Tell me about a time...")
	assert.Contains(t, c.user, "ANSWER: I did things.")
	assert.Contains(t, c.user, "- Domain: General")
	assert.Contains(t, c.user, "SCORE: [number 0-100]")
}

func TestEvaluateAnswer_RemoteErrorFallsBack(t *testing.T) {
	llm := &fakeCompleter{hasKey: true, err: errDown}
	e := newEngine(t, llm, model.RoleDataAnalyst, model.ModeBehavioral)

	g := e.Evaluate(context.Background(), "Q", strings.Repeat("w ", 120))
	assert.True(t, g.Fallback())
	assert.Equal(t, 90, g.Value.Score)
}

func TestEvaluateAnswer_ClipsLongAnswers(t *testing.T) {
	budget, err := NewAnswerBudget(10)
	require.NoError(t, err)

	llm := &fakeCompleter{hasKey: true, replies: []string{"SCORE: 60"}}
	e := New(llm, WithAnswerBudget(budget))
	e.Setup(model.RoleSoftwareEngineer, model.DomainGeneral, model.ModeTechnical, model.DifficultyEasy)

	long := strings.Repeat("consistency ", 200)
	e.EvaluateAnswer(context.Background(), "Q", long)

	require.Len(t, llm.calls, 1)
	assert.NotContains(t, llm.calls[0].user, long)
	assert.Contains(t, llm.calls[0].user, clippedMarker)
}

func TestGenerateSummary_NoCredential(t *testing.T) {
	llm := &fakeCompleter{}
	e := newEngine(t, llm, model.RoleSoftwareEngineer, model.ModeTechnical)
	history := []model.HistoryEntry{{Score: 90}, {Score: 50}}

	g := e.Summarize(context.Background(), history)
	assert.True(t, g.Fallback())
	assert.ErrorIs(t, g.Err, ErrNoCredential)
	assert.Empty(t, llm.calls, "summary is not attempted without a credential")
	assert.Contains(t, g.Value, "**Overall Rating:** Good Candidate")
	assert.Contains(t, g.Value, "**Final Score:** 70/100")
	assert.Contains(t, g.Value, "Mid level performance")
	assert.Contains(t, g.Value, "**Interview Readiness:** 70%")
}

func TestGenerateSummary_EmptyHistory(t *testing.T) {
	llm := &fakeCompleter{hasKey: true, replies: []string{"never used"}}
	e := newEngine(t, llm, model.RoleSoftwareEngineer, model.ModeTechnical)

	out := e.GenerateSummary(context.Background(), nil)
	assert.Empty(t, llm.calls)
	assert.Contains(t, out, "Needs Improvement")
	assert.Contains(t, out, "**Final Score:** 0/100")
}

func TestGenerateSummary_Remote(t *testing.T) {
	llm := &fakeCompleter{hasKey: true, replies: []string{"\n## Report\nAll good.\n"}}
	e := newEngine(t, llm, model.RoleQAEngineer, model.ModeTechnical)
	history := []model.HistoryEntry{
		{QuestionNumber: 1, Question: "Q one", Answer: "A one", Score: 80, Feedback: "nice"},
		{QuestionNumber: 2, Question: "Q two", Answer: "A two", Score: 0, Feedback: "empty"},
	}

	g := e.Summarize(context.Background(), history)
	assert.False(t, g.Fallback())
	assert.Equal(t, "## Report\nAll good.", g.Value)

	require.Len(t, llm.calls, 1)
	c := llm.calls[0]
	assert.Equal(t, 600, c.maxTokens)
	assert.InDelta(t, 0.4, c.temperature, 1e-6)
	assert.Contains(t, c.user, "Q1: Q one\nAnswer: A one\nScore: 80/100\nFeedback: nice")
	assert.Contains(t, c.user, "Q2: Q two\nAnswer: A two\nScore: 0/100\nFeedback: empty")
	assert.Contains(t, c.user, "- Average Score: 40.0/100")
}

func TestGenerateSummary_RemoteFailureFallsBack(t *testing.T) {
	llm := &fakeCompleter{hasKey: true, err: errDown}
	e := newEngine(t, llm, model.RoleSoftwareEngineer, model.ModeBehavioral)

	g := e.Summarize(context.Background(), []model.HistoryEntry{{Score: 88}})
	assert.True(t, g.Fallback())
	assert.ErrorIs(t, g.Err, errDown)
	assert.Contains(t, g.Value, "Excellent Candidate")
	assert.Contains(t, g.Value, "STAR method")
}

type blockingCompleter struct{}

func (blockingCompleter) Complete(ctx context.Context, _, _ string, _ int, _ float32) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (blockingCompleter) HasCredential() bool { return true }

func TestCallTimeout(t *testing.T) {
	e := New(blockingCompleter{}, WithCallTimeout(20*time.Millisecond))
	e.Setup(model.RoleSoftwareEngineer, model.DomainGeneral, model.ModeTechnical, model.DifficultyEasy)

	g := e.NextQuestion(context.Background(), 3)
	assert.True(t, g.Fallback())
	assert.ErrorIs(t, g.Err, context.DeadlineExceeded)
}

func TestHistoryRoundTripIntoSummary(t *testing.T) {
	llm := &fakeCompleter{hasKey: true, replies: []string{"report"}}
	e := newEngine(t, llm, model.RoleSoftwareEngineer, model.ModeTechnical)

	ev := FallbackEvaluation("short answer")
	entry := model.HistoryEntry{
		QuestionNumber: 1,
		Question:       "Explain caching.",
		Answer:         "short answer",
		Score:          ev.Score,
		Feedback:       ev.Feedback,
		WordCount:      2,
		Timestamp:      time.Now(),
	}
	e.GenerateSummary(context.Background(), []model.HistoryEntry{entry})

	require.Len(t, llm.calls, 1)
	assert.Contains(t, llm.calls[0].user, "Q1: Explain caching.\nAnswer: short answer\nScore: 35/100\nFeedback: "+FeedbackTooBrief)
}

func TestFallbackLogLevel(t *testing.T) {
	cases := []struct {
		name   string
		hasKey bool
		level  zapcore.Level
	}{
		{"without credential", false, zapcore.DebugLevel},
		{"with credential", true, zapcore.WarnLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			llm := &fakeCompleter{err: errors.New("openai http 401"), hasKey: tc.hasKey}
			e := New(llm, WithLogger(zap.New(core)))
			e.Setup(model.RoleDataAnalyst, model.DomainGeneral, model.ModeTechnical, model.DifficultyEasy)

			q := e.NextQuestion(context.Background(), 1)
			ev := e.Evaluate(context.Background(), "Q", "An answer")
			require.True(t, q.Fallback())
			require.True(t, ev.Fallback())
			assert.Equal(t, !tc.hasKey, errors.Is(q.Err, ErrNoCredential))

			require.Equal(t, 2, logs.Len())
			for _, entry := range logs.All() {
				assert.Equal(t, tc.level, entry.Level)
			}
		})
	}
}
