// Package log provides component tagged structured logging for the simulator
// and host tools.  Packages that run in interrupt context never log.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Component identifies a subsystem for log filtering.
type Component string

// Simulator component identifiers.
const (
	ComponentNVIC  Component = "nvic"
	ComponentClock Component = "clock"
	ComponentTimer Component = "timer"
	ComponentDMA   Component = "dma"
	ComponentUSART Component = "usart"
	ComponentEXTI  Component = "exti"
	ComponentDemo  Component = "demo"
	ComponentCLI   Component = "cli"
)

// Format specifies the output format for logging.
type Format int

// Log format options.
const (
	FormatText Format = iota // Text format (default)
	FormatJSON               // JSON format
)

// ParseFormat parses "text" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatText, fmt.Errorf("unknown log format %q", s)
}

// ParseLevel parses a slog level name like "debug" or "warn".
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(s))
	return l, err
}

var (
	logger *slog.Logger
	level  = new(slog.LevelVar)
	mtx    sync.RWMutex
)

func init() {
	level.Set(slog.LevelWarn)
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// SetLevel sets the minimum level of the default logger.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// Level returns the minimum level of the default logger.
func Level() slog.Level {
	return level.Level()
}

// SetOutput makes the default logger write to w in the given format.
func SetOutput(w io.Writer, format Format) {
	mtx.Lock()
	defer mtx.Unlock()
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case FormatJSON:
		logger = slog.New(slog.NewJSONHandler(w, opts))
	default:
		logger = slog.New(slog.NewTextHandler(w, opts))
	}
}

// SetLogger replaces the default logger.
func SetLogger(l *slog.Logger) {
	mtx.Lock()
	defer mtx.Unlock()
	logger = l
}

// Logger returns the default logger.
func Logger() *slog.Logger {
	mtx.RLock()
	defer mtx.RUnlock()
	return logger
}

func Debug(c Component, msg string, args ...any) {
	Logger().Debug(msg, append([]any{"component", string(c)}, args...)...)
}

func Info(c Component, msg string, args ...any) {
	Logger().Info(msg, append([]any{"component", string(c)}, args...)...)
}

func Warn(c Component, msg string, args ...any) {
	Logger().Warn(msg, append([]any{"component", string(c)}, args...)...)
}

func Error(c Component, msg string, args ...any) {
	Logger().Error(msg, append([]any{"component", string(c)}, args...)...)
}
