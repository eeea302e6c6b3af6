package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// LogLevel 日志级别
type LogLevel int

const (
	// LevelError 错误
	LevelError LogLevel = iota
	// LevelWarning 警告
	LevelWarning
	// LevelInformational 提示
	LevelInformational
	// LevelDebug 除错
	LevelDebug
)

// LoggerCtx is the context key for the logger carried by a command invocation.
type LoggerCtx struct{}

// Logger is the levelled logger used across the application.
type Logger interface {
	// Panic logs a message and panics with it.
	Panic(format string, v ...any)
	// Error logs an error message.
	Error(format string, v ...any)
	// Warning logs a warning message.
	Warning(format string, v ...any)
	// Info logs an informational message.
	Info(format string, v ...any)
	// Debug logs a debug message.
	Debug(format string, v ...any)
	// CopyWithPrefix returns a copy of the logger whose messages are prefixed.
	CopyWithPrefix(prefix string) Logger
	// SetLevel changes the minimum level printed.
	SetLevel(level LogLevel)
}

var colors = map[string]func(a ...interface{}) string{
	"Warning": color.New(color.FgYellow).Add(color.Bold).SprintFunc(),
	"Panic":   color.New(color.BgRed).Add(color.Bold).SprintFunc(),
	"Error":   color.New(color.FgRed).Add(color.Bold).SprintFunc(),
	"Info":    color.New(color.FgCyan).Add(color.Bold).SprintFunc(),
	"Debug":   color.New(color.FgWhite).Add(color.Bold).SprintFunc(),
}

type consoleLogger struct {
	level  LogLevel
	prefix string
	w      io.Writer
	mu     *sync.Mutex
}

// NewConsoleLogger returns a logger writing to w. A nil writer means stderr.
func NewConsoleLogger(level LogLevel, w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	return &consoleLogger{level: level, w: w, mu: &sync.Mutex{}}
}

// ParseLevel maps a config value to a LogLevel. Unknown values map to LevelWarning.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LevelError
	case "info":
		return LevelInformational
	case "debug":
		return LevelDebug
	default:
		return LevelWarning
	}
}

func (l *consoleLogger) println(prefix string, msg string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.w, "%s %s %s%s\n",
		colors[prefix]("["+prefix+"]"),
		time.Now().Format("2006-01-02 15:04:05"),
		l.prefix,
		fmt.Sprintf(msg, v...),
	)
}

func (l *consoleLogger) Panic(format string, v ...any) {
	l.println("Panic", format, v...)
	panic(fmt.Sprintf(format, v...))
}

func (l *consoleLogger) Error(format string, v ...any) {
	if LevelError > l.level {
		return
	}
	l.println("Error", format, v...)
}

func (l *consoleLogger) Warning(format string, v ...any) {
	if LevelWarning > l.level {
		return
	}
	l.println("Warning", format, v...)
}

func (l *consoleLogger) Info(format string, v ...any) {
	if LevelInformational > l.level {
		return
	}
	l.println("Info", format, v...)
}

func (l *consoleLogger) Debug(format string, v ...any) {
	if LevelDebug > l.level {
		return
	}
	l.println("Debug", format, v...)
}

func (l *consoleLogger) CopyWithPrefix(prefix string) Logger {
	return &consoleLogger{
		level:  l.level,
		prefix: l.prefix + prefix + " ",
		w:      l.w,
		mu:     l.mu,
	}
}

func (l *consoleLogger) SetLevel(level LogLevel) {
	l.level = level
}

var defaultLogger = NewConsoleLogger(LevelWarning, nil)

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(LoggerCtx{}).(Logger); ok {
			return l
		}
	}
	return defaultLogger
}
