package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/farellandr/secretsanta/internal/store"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"secretsanta"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	SqlitePath string `envconfig:"SQLITE_PATH" default:"secretsanta.db"`

	AdminSecret string `envconfig:"ADMIN_SECRET_PATH"`
	BaseURL     string `envconfig:"BASE_URL" default:"http://localhost:3000"`

	MailerSendAPIKey  string `envconfig:"MAILERSEND_API_KEY"`
	MailFromEmail     string `envconfig:"MAILERSEND_FROM_EMAIL" default:"noreply@secretsanta.app"`
	MailFromName      string `envconfig:"MAILERSEND_FROM_NAME" default:"Secret Santa"`
	NotifyConcurrency int    `envconfig:"NOTIFY_CONCURRENCY" default:"4"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// AdminConfig is handed to the admin authorizer at startup. An empty Secret
// denies every administrative request.
type AdminConfig struct {
	Secret string
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSqlite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.NotifyConcurrency <= 0 {
		return fmt.Errorf("NOTIFY_CONCURRENCY must be positive, got %d", c.NotifyConcurrency)
	}
	return nil
}

func (c *Config) Admin() AdminConfig {
	return AdminConfig{Secret: c.AdminSecret}
}

func (c *Config) EmailConfigured() bool {
	return c.MailerSendAPIKey != ""
}

func parseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", level)
	}
	return l, nil
}

// NewLogger builds the process JSON logger and installs it as the default.
func NewLogger(cfg *Config, debug bool) *slog.Logger {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: level == slog.LevelDebug,
			Level:     level,
		}),
	)
	slog.SetDefault(logger)
	return logger
}

func (c *Config) postgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// InitDatabase opens the configured database and migrates the schema.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	gormLog := gormlogger.Discard
	if strings.EqualFold(cfg.LogLevel, "debug") {
		gormLog = gormlogger.Default.LogMode(gormlogger.Info)
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case DriverSqlite:
		db, err = store.OpenSQLite(cfg.SqlitePath, gormLog)
	default:
		db, err = gorm.Open(postgres.Open(cfg.postgresDSN()), &gorm.Config{
			Logger:         gormLog,
			TranslateError: true,
		})
	}
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
