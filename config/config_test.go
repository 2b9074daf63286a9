package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "ADMIN_SECRET_PATH", "MAILERSEND_API_KEY", "CORS_ORIGINS", "NOTIFY_CONCURRENCY", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 4, cfg.NotifyConcurrency)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.Admin().Secret)
	assert.False(t, cfg.EmailConfigured())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", DriverSqlite)
	t.Setenv("ADMIN_SECRET_PATH", "s3cret")
	t.Setenv("MAILERSEND_API_KEY", "mlsn.key")
	t.Setenv("CORS_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("NOTIFY_CONCURRENCY", "8")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverSqlite, cfg.DBDriver)
	assert.Equal(t, AdminConfig{Secret: "s3cret"}, cfg.Admin())
	assert.True(t, cfg.EmailConfigured())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 8, cfg.NotifyConcurrency)
}

func TestValidate(t *testing.T) {
	testDefs := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "mysql" }, wantErr: true},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "zero concurrency", mutate: func(c *Config) { c.NotifyConcurrency = 0 }, wantErr: true},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			cfg := Config{DBDriver: DriverSqlite, LogLevel: "info", NotifyConcurrency: 1}
			testDef.mutate(&cfg)
			err := cfg.Validate()
			if testDef.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	level, err := parseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	level, err = parseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestInitDatabaseSqlite(t *testing.T) {
	cfg := &Config{
		DBDriver:   DriverSqlite,
		SqlitePath: filepath.Join(t.TempDir(), "init.db"),
		LogLevel:   "info",
	}
	db, err := InitDatabase(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.True(t, db.Migrator().HasTable("events"))
	assert.True(t, db.Migrator().HasTable("participants"))
}
