package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	gormlogger "gorm.io/gorm/logger"
)

func TestGetGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, GetGormLogLevel(zerolog.DebugLevel))
	assert.Equal(t, gormlogger.Warn, GetGormLogLevel(zerolog.InfoLevel))
	assert.Equal(t, gormlogger.Error, GetGormLogLevel(zerolog.ErrorLevel))
	assert.Equal(t, gormlogger.Silent, GetGormLogLevel(zerolog.Disabled))
}

func TestGormLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(zerolog.New(&buf).Level(zerolog.InfoLevel), 100*time.Millisecond)
	statement := func() (string, int64) { return "SELECT 1", 1 }

	// fast and successful: not logged at info level
	l.Trace(context.Background(), time.Now(), statement, nil)
	assert.Empty(t, buf.String())

	// record not found is a normal outcome
	l.Trace(context.Background(), time.Now(), statement, gormlogger.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now().Add(-time.Second), statement, nil)
	assert.Contains(t, buf.String(), `"message":"slow query"`)
	buf.Reset()

	l.Trace(context.Background(), time.Now(), statement, errors.New("boom"))
	assert.Contains(t, buf.String(), `"message":"query failed"`)
	assert.Contains(t, buf.String(), `"sql":"SELECT 1"`)
}

func TestGormLoggerSilent(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(zerolog.New(&buf), 0).LogMode(gormlogger.Silent)

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	assert.Empty(t, buf.String())
}
