package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/abhishek622/interviewPrep/internal/cache"
	"github.com/abhishek622/interviewPrep/internal/config"
	"github.com/abhishek622/interviewPrep/internal/database"
	"github.com/abhishek622/interviewPrep/internal/groq"
	"github.com/abhishek622/interviewPrep/internal/handler"
	"github.com/abhishek622/interviewPrep/internal/interview"
	"github.com/abhishek622/interviewPrep/internal/logger"
	"github.com/abhishek622/interviewPrep/internal/openai"
	"github.com/abhishek622/interviewPrep/internal/repository"
	"github.com/abhishek622/interviewPrep/internal/session"
	"github.com/abhishek622/interviewPrep/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type application struct {
	Config  *config.Config
	Logger  *zap.Logger
	Handler *handler.Handler

	closers []func()
}

func (app *application) close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		app.closers[i]()
	}
}

var rootCmd = &cobra.Command{
	Use:           "interview-prep",
	Short:         "Interview practice API",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, rolesCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	log.Sugar().Infof("config loaded, %s", cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(cfg.Telemetry.ServiceName, log)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warn("tracer shutdown", zap.Error(err))
			}
		}()
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.close()

	return app.serve(ctx)
}

func newApplication(ctx context.Context, cfg *config.Config, log *zap.Logger) (*application, error) {
	app := &application{Config: cfg, Logger: log}

	budget, err := interview.NewAnswerBudget(cfg.Interview.AnswerTokenLimit)
	if err != nil {
		return nil, err
	}

	store, err := app.sessionStore(ctx)
	if err != nil {
		app.close()
		return nil, err
	}

	reports, err := app.reportRepository(ctx)
	if err != nil {
		app.close()
		return nil, err
	}
	var saver session.ReportSaver
	if reports != nil {
		saver = reports
	}

	llm := app.completer()
	if !llm.HasCredential() {
		log.Warn("no API key configured, questions and feedback use built-in fallbacks", zap.String("provider", cfg.Provider))
	}

	sessions := session.NewService(store, llm, saver, log, session.Options{
		DefaultQuestions: cfg.Interview.DefaultQuestions,
		MaxQuestions:     cfg.Interview.MaxQuestions,
		CallTimeout:      cfg.LLMTimeout(),
		Budget:           budget,
	})

	app.Handler = &handler.Handler{
		Logger:   log,
		Sessions: sessions,
		Reports:  reports,
	}
	return app, nil
}

func (app *application) completer() interview.Completer {
	cfg := app.Config
	if cfg.Provider == config.ProviderOpenAI {
		return openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, cfg.OpenAI.Timeout)
	}
	return groq.NewClient(cfg.Groq.APIKey, cfg.Groq.Model,
		groq.WithBaseURL(cfg.Groq.BaseURL),
		groq.WithTimeout(cfg.Groq.Timeout),
		groq.WithLogger(app.Logger),
	)
}

func (app *application) sessionStore(ctx context.Context) (session.Store, error) {
	cfg := app.Config
	if cfg.Session.Store != config.StoreRedis {
		return session.NewMemoryStore(cfg.Session.TTL), nil
	}

	rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	app.closers = append(app.closers, func() { _ = rdb.Close() })
	if err := cache.Ping(ctx, rdb); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	app.Logger.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	return cache.NewRedisStore(rdb, cfg.Session.TTL), nil
}

// reportRepository returns nil when reports are not persisted.
func (app *application) reportRepository(ctx context.Context) (repository.ReportRepository, error) {
	switch app.Config.Report.Store {
	case config.StorePostgres:
		pool, err := openPostgres(ctx, app.Config)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, pool.Close)
		return repository.NewPostgresReportRepository(pool), nil
	case config.StoreSQLite:
		db, err := openSQLite(app.Config)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func() { _ = db.Close() })
		return repository.NewSQLiteReportRepository(db), nil
	}
	return nil, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := database.Connect(ctx, cfg.DB.DSN, cfg.DB.MaxConns, cfg.DB.MaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := database.MigratePool(pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func openSQLite(cfg *config.Config) (*sql.DB, error) {
	db, err := database.OpenSQLite(cfg.Report.SQLitePath)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, database.DialectSQLite); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
