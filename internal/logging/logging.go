// Package logging provides leveled, component-tagged loggers that write
// to the console and a size-rotated log file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is a log severity threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// ParseLevel maps a config string to a Level. Unknown strings fall back
// to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Options configures the shared log output.
type Options struct {
	Level      Level
	Dir        string // empty disables the file sink
	Console    bool
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	std      = log.New(os.Stdout, "", log.LstdFlags)
	minLevel atomic.Int32
)

// Setup wires the shared writer from config. Loggers created before
// Setup write to stdout at info level, so init-time logging still works.
func Setup(opts Options) error {
	minLevel.Store(int32(opts.Level))

	if opts.Dir == "" {
		std.SetOutput(os.Stdout)
		return nil
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// One file per day, size-rotated within the day.
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, fmt.Sprintf("app_%s.log", time.Now().Format("20060102"))),
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}

	if opts.Console {
		std.SetOutput(io.MultiWriter(os.Stdout, rotator))
	} else {
		std.SetOutput(rotator)
	}
	return nil
}

// Logger writes leveled lines tagged with a component name, e.g.
// "[INFO] [api] listening on :5000".
type Logger struct {
	component string
}

// New returns a logger for the given component.
func New(component string) *Logger {
	return &Logger{component: component}
}

func (l *Logger) logf(lvl Level, format string, v ...any) {
	if int32(lvl) < minLevel.Load() {
		return
	}
	std.Printf("[%s] [%s] %s", levelNames[lvl], l.component, fmt.Sprintf(format, v...))
}

func (l *Logger) Debugf(format string, v ...any) { l.logf(LevelDebug, format, v...) }
func (l *Logger) Infof(format string, v ...any)  { l.logf(LevelInfo, format, v...) }
func (l *Logger) Warnf(format string, v ...any)  { l.logf(LevelWarn, format, v...) }
func (l *Logger) Errorf(format string, v ...any) { l.logf(LevelError, format, v...) }
