// Package database contains the logic for establishing
// connections to the MySQL database.
//
// It handles *database pooling* (one bounded pool shared by
// every request) and integrating the logger with the ORM (gorm).
//
// It handles:
//   - building a DSN from config
//   - opening gorm over the MySQL driver
//   - pool limits and lifetimes
//   - wiring SQL logging (zerolog via logger.GormLogger)
//   - a fail-fast ping at start-up
package database

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/deppfellow/crm/internal/config"
	loggerConfig "github.com/deppfellow/crm/internal/logger"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Database wraps the gorm handle and a logger.
//
// DB is safe for concurrent use; gorm hands every statement a pooled
// connection from the underlying *sql.DB.
type Database struct {
	DB  *gorm.DB
	log *zerolog.Logger
}

// DSN builds the MySQL data source name.
//
// ClientFoundRows makes UPDATE report matched rows instead of changed
// rows, so rewriting a row with identical values still counts as a hit.
func DSN(cfg config.DatabaseConfig) string {
	mysqlConfig := mysql.NewConfig()
	mysqlConfig.User = cfg.User
	mysqlConfig.Passwd = cfg.Password
	mysqlConfig.Net = "tcp"
	mysqlConfig.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mysqlConfig.DBName = cfg.Name
	mysqlConfig.ClientFoundRows = true
	mysqlConfig.Timeout = cfg.PingTimeout
	mysqlConfig.Params = map[string]string{"charset": "utf8mb4"}

	return mysqlConfig.FormatDSN()
}

// New opens the MySQL pool and verifies it with a ping.
//
// Any failure is returned to the caller, which must treat it as fatal:
// the service never runs without a working database.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	dialector := gormmysql.New(gormmysql.Config{
		DSN:                       DSN(cfg.Database),
		DefaultStringSize:         256,
		SkipInitializeWithVersion: false,
	})

	db, err := Open(dialector, cfg, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.PingTimeout)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Name).
		Bool("new_relic", loggerService.GetApplication() != nil).
		Msg("connected to the database")

	return db, nil
}

// Open opens gorm over any dialector and applies the pool settings.
// Tests use it with the sqlite dialector.
func Open(dialector gorm.Dialector, cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: loggerConfig.NewGormLogger(*logger, cfg.Logging.SlowQueryThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database pool: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	return &Database{
		DB:  gormDB,
		log: logger,
	}, nil
}

// Ping verifies a connection can be taken from the pool.
func (db *Database) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
