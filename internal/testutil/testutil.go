// Package testutil builds application pieces on an in-memory
// sqlite database for tests.
package testutil

import (
	"testing"

	"github.com/deppfellow/crm/internal/config"
	"github.com/deppfellow/crm/internal/database"
	"github.com/deppfellow/crm/internal/entity"
	"github.com/deppfellow/crm/internal/logger"
	"github.com/deppfellow/crm/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// Config returns the built-in configuration tuned for tests.
//
// An in-memory sqlite database lives only as long as its connection, so
// the pool holds exactly one connection that never expires.
func Config() *config.Config {
	cfg := config.Default()
	cfg.Primary.Env = "test"
	cfg.Logging.Level = "error"
	cfg.Database.MaxOpenConns = 1
	cfg.Database.MaxIdleConns = 1
	cfg.Database.ConnMaxLifetime = 0
	cfg.Database.ConnMaxIdleTime = 0
	return cfg
}

// NewDatabase opens an empty in-memory database with the users table.
func NewDatabase(t testing.TB, cfg *config.Config) *database.Database {
	t.Helper()

	log := zerolog.Nop()
	db, err := database.Open(sqlite.Open(":memory:"), cfg, &log)
	require.NoError(t, err)

	require.NoError(t, db.DB.AutoMigrate(&entity.User{}))

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// NewServer returns a Server on an empty in-memory database. opts edit
// the configuration before anything is built.
func NewServer(t testing.TB, opts ...func(*config.Config)) *server.Server {
	t.Helper()

	cfg := Config()
	for _, opt := range opts {
		opt(cfg)
	}

	log := logger.NewLogger(cfg)

	return &server.Server{
		Config:        cfg,
		Logger:        &log,
		LoggerService: logger.NewLoggerService(cfg),
		DB:            NewDatabase(t, cfg),
	}
}
