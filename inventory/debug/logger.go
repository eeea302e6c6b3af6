package debug

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookie/bookie/pkg/logging"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormLogger forwards gorm's messages and SQL traces to the application
// logger. Loggers found on the query context take precedence over the one
// given at construction, so per-command prefixes are kept.
type gormLogger struct {
	l     logging.Logger
	level gormlogger.LogLevel
}

// NewGormLogger returns a gorm logger backed by l. Record-not-found errors are
// never reported; callers translate them into domain outcomes.
func NewGormLogger(l logging.Logger, level gormlogger.LogLevel) gormlogger.Interface {
	return &gormLogger{l: l, level: level}
}

func (g *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &gormLogger{l: g.l, level: level}
}

func (g *gormLogger) logger(ctx context.Context) logging.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(logging.LoggerCtx{}).(logging.Logger); ok {
			return l
		}
	}
	return g.l
}

func (g *gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Info {
		g.logger(ctx).Info(msg, data...)
	}
}

func (g *gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.logger(ctx).Warning(msg, data...)
	}
}

func (g *gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Error {
		g.logger(ctx).Error(msg, data...)
	}
}

func (g *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	line := fmt.Sprintf("[%.3fms] [rows:%d] %s", float64(elapsed.Nanoseconds())/1e6, rows, sql)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && g.level >= gormlogger.Error:
		g.logger(ctx).Error("%s: %s", line, err)
	case g.level >= gormlogger.Info:
		g.logger(ctx).Debug("%s", line)
	}
}
