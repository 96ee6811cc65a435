package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Env       string `envconfig:"APP_ENV" default:"development"`
	Port      int    `envconfig:"APP_PORT" default:"8080"`
	Provider  string `envconfig:"LLM_PROVIDER" default:"groq"`
	Groq      GroqConfig
	OpenAI    OpenAIConfig
	Session   SessionConfig
	Redis     RedisConfig
	Report    ReportConfig
	DB        DBConfig
	CORS      CORSConfig
	Interview InterviewConfig
	Telemetry TelemetryConfig
}

// Groq AI configuration
type GroqConfig struct {
	APIKey  string        `envconfig:"GROQ_API_KEY"`
	Model   string        `envconfig:"GROQ_MODEL" default:"llama-3.1-8b-instant"`
	BaseURL string        `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
	Timeout time.Duration `envconfig:"GROQ_TIMEOUT" default:"30s"`
}

type OpenAIConfig struct {
	APIKey  string        `envconfig:"OPENAI_API_KEY"`
	Model   string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	BaseURL string        `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	Timeout time.Duration `envconfig:"OPENAI_TIMEOUT" default:"30s"`
}

// where live interview sessions are kept
type SessionConfig struct {
	Store string        `envconfig:"SESSION_STORE" default:"memory"`
	TTL   time.Duration `envconfig:"SESSION_TTL" default:"24h"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// where finished reports are persisted
type ReportConfig struct {
	Store      string `envconfig:"REPORT_STORE" default:"none"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"interview.db"`
}

// database configuration
type DBConfig struct {
	DSN             string        `envconfig:"DATABASE_URL"`
	MaxConns        int32         `envconfig:"DB_MAX_CONNS" default:"20"`
	MaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// CORS configuration
type CORSConfig struct {
	TrustedOrigins []string `envconfig:"CORS_TRUSTED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

type InterviewConfig struct {
	DefaultQuestions int `envconfig:"INTERVIEW_DEFAULT_QUESTIONS" default:"5"`
	MaxQuestions     int `envconfig:"INTERVIEW_MAX_QUESTIONS" default:"15"`
	AnswerTokenLimit int `envconfig:"PROMPT_ANSWER_TOKEN_LIMIT" default:"400"`
}

type TelemetryConfig struct {
	Enabled     bool   `envconfig:"OTEL_ENABLED" default:"false"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"interview-prep"`
}

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"

	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StoreNone     = "none"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"

	maxQuestionsCeiling = 15
)

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Env)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}

	switch c.Provider {
	case ProviderGroq, ProviderOpenAI:
	default:
		return fmt.Errorf("invalid LLM_PROVIDER: %s (must be groq or openai)", c.Provider)
	}

	switch c.Session.Store {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("invalid SESSION_STORE: %s (must be memory or redis)", c.Session.Store)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	switch c.Report.Store {
	case StoreNone:
	case StorePostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required when REPORT_STORE=postgres")
		}
		if c.DB.MaxConns < 1 {
			return fmt.Errorf("DB_MAX_CONNS must be at least 1")
		}
	case StoreSQLite:
		if c.Report.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when REPORT_STORE=sqlite")
		}
	default:
		return fmt.Errorf("invalid REPORT_STORE: %s (must be none, postgres or sqlite)", c.Report.Store)
	}

	if c.Interview.MaxQuestions < 1 || c.Interview.MaxQuestions > maxQuestionsCeiling {
		return fmt.Errorf("INTERVIEW_MAX_QUESTIONS must be between 1 and %d", maxQuestionsCeiling)
	}
	if c.Interview.DefaultQuestions < 1 || c.Interview.DefaultQuestions > c.Interview.MaxQuestions {
		return fmt.Errorf("INTERVIEW_DEFAULT_QUESTIONS (%d) must be between 1 and INTERVIEW_MAX_QUESTIONS (%d)",
			c.Interview.DefaultQuestions, c.Interview.MaxQuestions)
	}
	if c.Interview.AnswerTokenLimit < 0 {
		return fmt.Errorf("PROMPT_ANSWER_TOKEN_LIMIT must be non-negative")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GetCORSOrigins returns the list of trusted CORS origins
func (c *Config) GetCORSOrigins() []string {
	origins := make([]string, 0, len(c.CORS.TrustedOrigins))
	for _, origin := range c.CORS.TrustedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// LLMTimeout is the per-call timeout of the selected provider.
func (c *Config) LLMTimeout() time.Duration {
	if c.Provider == ProviderOpenAI {
		return c.OpenAI.Timeout
	}
	return c.Groq.Timeout
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Env=%s, Port=%d, Provider=%s, Groq.Model=%s, Groq.KeySet=%t, "+
		"Session.Store=%s, Session.TTL=%s, Report.Store=%s, CORS.Origins=%d, "+
		"Interview.DefaultQuestions=%d, Interview.MaxQuestions=%d, Telemetry.Enabled=%t}",
		c.Env, c.Port, c.Provider, c.Groq.Model, c.Groq.APIKey != "",
		c.Session.Store, c.Session.TTL, c.Report.Store, len(c.CORS.TrustedOrigins),
		c.Interview.DefaultQuestions, c.Interview.MaxQuestions, c.Telemetry.Enabled)
}
