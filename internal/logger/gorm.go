package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger adapts zerolog to gorm's logger.Interface.
//
// Every statement goes through Trace:
//   - failed statements are logged at error level
//   - statements slower than SlowThreshold at warn level
//   - everything else at debug level, only when the gorm level is Info
type GormLogger struct {
	logger        zerolog.Logger
	level         gormlogger.LogLevel
	SlowThreshold time.Duration
}

// NewGormLogger builds the SQL logger from the application logger.
// The gorm verbosity follows the zerolog level (see GetGormLogLevel).
func NewGormLogger(logger zerolog.Logger, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		logger:        logger.With().Str("component", "database").Logger(),
		level:         GetGormLogLevel(logger.GetLevel()),
		SlowThreshold: slowThreshold,
	}
}

// GetGormLogLevel maps a zerolog level onto gorm's coarser levels.
//
//	debug/trace -> Info  (every statement)
//	info/warn   -> Warn  (slow statements and failures)
//	error       -> Error (failures only)
//	disabled    -> Silent
func GetGormLogLevel(level zerolog.Level) gormlogger.LogLevel {
	switch level {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return gormlogger.Info
	case zerolog.InfoLevel, zerolog.WarnLevel:
		return gormlogger.Warn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return gormlogger.Error
	default:
		return gormlogger.Silent
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.logger.Info().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.logger.Warn().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.logger.Error().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		sql, rows := fc()
		l.logger.Error().
			Err(err).
			Dur("elapsed", elapsed).
			Int64("rows", rows).
			Str("sql", sql).
			Msg("query failed")

	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.logger.Warn().
			Dur("elapsed", elapsed).
			Dur("threshold", l.SlowThreshold).
			Int64("rows", rows).
			Str("sql", sql).
			Msg("slow query")

	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.logger.Debug().
			Dur("elapsed", elapsed).
			Int64("rows", rows).
			Str("sql", sql).
			Msg("query")
	}
}
