// Package session runs interview sessions on top of the interview engine.
// Each session owns its configuration, asked-questions log and history; an
// engine is rebuilt from that state for every operation and never shared.
package session

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/abhishek622/interviewPrep/internal/interview"
	"github.com/abhishek622/interviewPrep/pkg/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportSaver persists finished sessions.
type ReportSaver interface {
	SaveReport(ctx context.Context, r *model.Report) error
}

type Options struct {
	DefaultQuestions int
	MaxQuestions     int
	CallTimeout      time.Duration
	Budget           *interview.AnswerBudget
	Catalog          *interview.Catalog
}

type Service struct {
	store   Store
	llm     interview.Completer
	reports ReportSaver
	log     *zap.Logger
	opts    Options
	now     func() time.Time

	locksMu sync.Mutex
	locks   map[uuid.UUID]*sessionLock
}

// sessionLock is dropped from Service.locks once no caller holds or waits on it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewService wires a session service. reports may be nil when finished
// sessions are not persisted.
func NewService(store Store, llm interview.Completer, reports ReportSaver, log *zap.Logger, opts Options) *Service {
	if opts.DefaultQuestions <= 0 {
		opts.DefaultQuestions = 5
	}
	if opts.MaxQuestions <= 0 {
		opts.MaxQuestions = 15
	}
	if opts.Catalog == nil {
		opts.Catalog = interview.DefaultCatalog()
	}
	return &Service{
		store:   store,
		llm:     llm,
		reports: reports,
		log:     log,
		opts:    opts,
		now:     time.Now,
		locks:   make(map[uuid.UUID]*sessionLock),
	}
}

func (s *Service) Catalog() *interview.Catalog {
	return s.opts.Catalog
}

// RemoteEnabled reports whether a completion credential is configured.
func (s *Service) RemoteEnabled() bool {
	return s.llm != nil && s.llm.HasCredential()
}

// lock serializes operations on one session. The returned func releases the
// lock and removes its entry when it was the last user, so lookups of unknown
// or expired ids do not grow the map.
func (s *Service) lock(id uuid.UUID) func() {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.locksMu.Unlock()
	}
}

func (s *Service) newEngine(id uuid.UUID) *interview.Engine {
	return interview.New(s.llm,
		interview.WithLogger(s.log.With(zap.String("session_id", id.String()))),
		interview.WithCatalog(s.opts.Catalog),
		interview.WithCallTimeout(s.opts.CallTimeout),
		interview.WithAnswerBudget(s.opts.Budget),
	)
}

func (s *Service) engine(sess *model.Session) *interview.Engine {
	e := s.newEngine(sess.SessionID)
	e.Restore(sess.Config, sess.QuestionsAsked)
	return e
}

// Start configures a new session and asks its first question.
func (s *Service) Start(ctx context.Context, req model.StartSessionReq) (*model.Session, error) {
	total := req.TotalQuestions
	if total == 0 {
		total = s.opts.DefaultQuestions
	}
	if total < 1 || total > s.opts.MaxQuestions {
		return nil, invalid(fmt.Sprintf("Number of questions must be between 1 and %d.", s.opts.MaxQuestions))
	}
	if req.Domain != "" && !slices.Contains(model.Domains, req.Domain) {
		return nil, invalid(fmt.Sprintf("Unknown domain %q.", req.Domain))
	}

	now := s.now()
	sess := &model.Session{
		SessionID:      uuid.New(),
		Status:         model.SessionStatusActive,
		TotalQuestions: total,
		QuestionsAsked: []string{},
		History:        []model.HistoryEntry{},
		CreatedAt:      now,
	}

	e := s.newEngine(sess.SessionID)
	e.Setup(req.Role, req.Domain, req.Mode, req.Difficulty)
	sess.Config = e.Config()

	s.advance(ctx, sess, e)
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.log.Info("session started",
		zap.String("session_id", sess.SessionID.String()),
		zap.String("role", string(sess.Config.Role)),
		zap.Bool("known_role", s.opts.Catalog.Has(sess.Config.Role)),
		zap.String("mode", string(sess.Config.Mode)),
		zap.String("difficulty", string(sess.Config.Difficulty)),
		zap.Int("total_questions", total),
	)
	return sess, nil
}

func (s *Service) advance(ctx context.Context, sess *model.Session, e *interview.Engine) {
	sess.QuestionCount++
	g := e.NextQuestion(ctx, sess.QuestionCount)
	sess.CurrentQuestion = g.Value
	sess.CurrentAnswered = false
	sess.QuestionsAsked = e.QuestionsAsked()
	sess.UpdatedAt = s.now()
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) loadActive(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Status != model.SessionStatusActive {
		return nil, invalid(MsgFinished)
	}
	return sess, nil
}

// Next moves to the following question.
func (s *Service) Next(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	defer s.lock(id)()
	return s.next(ctx, id, false)
}

// Skip moves on without recording anything for the current question.
func (s *Service) Skip(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	defer s.lock(id)()
	return s.next(ctx, id, true)
}

func (s *Service) next(ctx context.Context, id uuid.UUID, skip bool) (*model.Session, error) {
	sess, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.QuestionCount >= sess.TotalQuestions {
		return nil, invalid(MsgNoMoreQuestions)
	}
	if skip && !sess.CurrentAnswered {
		s.log.Info("question skipped",
			zap.String("session_id", id.String()),
			zap.Int("question_number", sess.QuestionCount),
		)
	}

	s.advance(ctx, sess, s.engine(sess))
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// SubmitAnswer evaluates the answer to the current question and appends it
// to the session history.
func (s *Service) SubmitAnswer(ctx context.Context, id uuid.UUID, answer string) (model.HistoryEntry, error) {
	defer s.lock(id)()

	if strings.TrimSpace(answer) == "" {
		return model.HistoryEntry{}, invalid(MsgEmptyAnswer)
	}
	sess, err := s.loadActive(ctx, id)
	if err != nil {
		return model.HistoryEntry{}, err
	}
	if sess.CurrentAnswered {
		return model.HistoryEntry{}, invalid(MsgAlreadyAnswered)
	}

	g := s.engine(sess).Evaluate(ctx, sess.CurrentQuestion, answer)
	entry := model.HistoryEntry{
		QuestionNumber: sess.QuestionCount,
		Question:       sess.CurrentQuestion,
		Answer:         answer,
		Score:          g.Value.Score,
		Feedback:       g.Value.Feedback,
		WordCount:      interview.WordCount(answer),
		Timestamp:      s.now(),
	}
	sess.History = append(sess.History, entry)
	sess.CurrentAnswered = true
	sess.UpdatedAt = entry.Timestamp

	if err := s.store.Save(ctx, sess); err != nil {
		return model.HistoryEntry{}, fmt.Errorf("save session: %w", err)
	}

	s.log.Info("answer evaluated",
		zap.String("session_id", id.String()),
		zap.Int("question_number", entry.QuestionNumber),
		zap.Int("score", entry.Score),
		zap.Int("word_count", entry.WordCount),
		zap.String("source", string(g.Source)),
	)
	return entry, nil
}

// Finish writes the summary and closes the session. Finishing twice returns
// the stored summary.
func (s *Service) Finish(ctx context.Context, id uuid.UUID) (*model.FinishRes, error) {
	defer s.lock(id)()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if sess.Status != model.SessionStatusFinished {
		g := s.engine(sess).Summarize(ctx, sess.History)
		sess.Summary = g.Value
		sess.Status = model.SessionStatusFinished
		sess.UpdatedAt = s.now()

		if s.reports != nil {
			s.saveReport(ctx, sess)
		}
		if err := s.store.Save(ctx, sess); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
		s.log.Info("session finished",
			zap.String("session_id", id.String()),
			zap.Int("answered", len(sess.History)),
			zap.String("summary_source", string(g.Source)),
		)
	}

	return &model.FinishRes{
		SessionID: sess.SessionID,
		Summary:   sess.Summary,
		Analytics: interview.Analyze(sess.History),
		Export:    interview.BuildExport(sess.Config, sess.History, sess.UpdatedAt),
		ReportID:  sess.ReportID,
	}, nil
}

// saveReport failures are logged; the session still finishes.
func (s *Service) saveReport(ctx context.Context, sess *model.Session) {
	r := &model.Report{
		ReportID:   uuid.New(),
		SessionID:  sess.SessionID,
		Role:       sess.Config.Role,
		Domain:     sess.Config.Domain,
		Mode:       sess.Config.Mode,
		Difficulty: sess.Config.Difficulty,
		AvgScore:   interview.MeanScore(sess.History),
		Summary:    sess.Summary,
		Questions:  sess.History,
		CreatedAt:  sess.UpdatedAt,
	}
	if err := s.reports.SaveReport(ctx, r); err != nil {
		s.log.Error("failed to save report",
			zap.String("session_id", sess.SessionID.String()),
			zap.Error(err),
		)
		return
	}
	sess.ReportID = &r.ReportID
}

// Export returns the downloadable transcript as of now.
func (s *Service) Export(ctx context.Context, id uuid.UUID) (model.Export, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return model.Export{}, err
	}
	return interview.BuildExport(sess.Config, sess.History, s.now()), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	defer s.lock(id)()
	return s.store.Delete(ctx, id)
}
