// Package log provides structured logging for Quill.
// It wraps tea.LogToFile with structured fields (level, category, timestamp)
// and conditionally enables logging via --debug flag or QUILL_DEBUG env.
package log

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatBuffer  Category = "buffer"  // Piece-table operations
	CatView    Category = "view"    // Text/command view updates
	CatInput   Category = "input"   // Keystroke translation and discards
	CatApp     Category = "app"     // Driver loop, focus, quit
	CatConfig  Category = "config"  // Configuration loading/saving
	CatWatcher Category = "watcher" // File watcher events
)

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	enabled  bool
	minLevel Level
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init initializes the global logger, writing to the given path via
// tea.LogToFile. Returns a cleanup function to close the log file.
func Init(path string, prefix string) (func(), error) {
	var initErr error
	once.Do(func() {
		f, err := tea.LogToFile(path, prefix)
		if err != nil {
			initErr = err
			return
		}
		defaultLogger = &Logger{
			file:     f,
			enabled:  true,
			minLevel: LevelDebug,
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	if defaultLogger == nil {
		return nil, fmt.Errorf("logger initialization failed or already attempted")
	}
	return func() {
		if defaultLogger != nil && defaultLogger.file != nil {
			_ = defaultLogger.file.Close()
		}
	}, nil
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.enabled = enabled
		defaultLogger.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.minLevel = level
		defaultLogger.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	logAt(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	logAt(LevelInfo, cat, msg, fields...)
}

// Warn logs at warn level.
func Warn(cat Category, msg string, fields ...any) {
	logAt(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	logAt(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error value at error level.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	logAt(LevelError, cat, msg, append([]any{"error", err}, fields...)...)
}

func logAt(level Level, cat Category, msg string, fields ...any) {
	l := defaultLogger
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s: %s", time.Now().Format("15:04:05.000"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=?", fields[len(fields)-1])
	}
	b.WriteByte('\n')

	_, _ = l.file.WriteString(b.String())
}
