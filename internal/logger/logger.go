// Package logger is a leveled file logger. The TUI owns the terminal,
// so logs default to a file under the data directory with an optional
// console mirror for headless use.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string to a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG":
		return DEBUG
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// F is shorthand for building a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Config holds logger configuration.
type Config struct {
	Level      Level
	FilePath   string // empty disables file output
	MaxSize    int64  // bytes before the file is rotated aside
	MaxBackups int    // rotated files kept
	Console    bool   // mirror entries to stderr
}

// DefaultConfig logs INFO and above to ~/.crewledger/logs/crewledger.log.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	path := ""
	if home != "" {
		path = filepath.Join(home, ".crewledger", "logs", "crewledger.log")
	}
	return Config{
		Level:      INFO,
		FilePath:   path,
		MaxSize:    10 * 1024 * 1024,
		MaxBackups: 3,
	}
}

// Logger writes timestamped, leveled entries with fields.
type Logger struct {
	cfg    Config
	mu     sync.Mutex
	file   *os.File
	fields []Field
}

var (
	global *Logger
	once   sync.Once
)

// Init initializes the process-wide logger. Subsequent calls are
// no-ops.
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		global, err = New(cfg)
	})
	return err
}

// New creates a logger instance.
func New(cfg Config) (*Logger, error) {
	l := &Logger{cfg: cfg}
	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = file
	}
	return l, nil
}

// WithFields returns a logger whose entries carry the extra fields.
func (l *Logger) WithFields(fields ...Field) *Logger {
	return &Logger{
		cfg:    l.cfg,
		file:   l.file,
		fields: append(append([]Field{}, l.fields...), fields...),
	}
}

func (l *Logger) log(level Level, msg string, fields []Field) {
	if l == nil || level < l.cfg.Level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.rotateIfNeeded()

	caller := "???"
	if _, file, line, ok := runtime.Caller(2); ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	entry := fmt.Sprintf("[%s] %s %s: %s",
		time.Now().Format("2006-01-02 15:04:05.000"), level, caller, msg)
	all := append(append([]Field{}, l.fields...), fields...)
	if len(all) > 0 {
		entry += " |"
		for _, f := range all {
			entry += fmt.Sprintf(" %s=%v", f.Key, f.Value)
		}
	}
	entry += "\n"

	if l.file != nil {
		io.WriteString(l.file, entry)
	}
	if l.cfg.Console {
		io.WriteString(os.Stderr, entry)
	}
}

// rotateIfNeeded moves an oversized log file aside, keeping up to
// MaxBackups numbered backups. Called with the mutex held.
func (l *Logger) rotateIfNeeded() {
	if l.file == nil || l.cfg.MaxSize <= 0 {
		return
	}
	info, err := l.file.Stat()
	if err != nil || info.Size() < l.cfg.MaxSize {
		return
	}

	l.file.Close()
	for i := l.cfg.MaxBackups - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", l.cfg.FilePath, i),
			fmt.Sprintf("%s.%d", l.cfg.FilePath, i+1))
	}
	os.Rename(l.cfg.FilePath, l.cfg.FilePath+".1")

	file, err := os.OpenFile(l.cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		l.file = nil
		return
	}
	l.file = file
}

func (l *Logger) Debug(msg string, fields ...Field) { l.log(DEBUG, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.log(INFO, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.log(WARN, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.log(ERROR, msg, fields) }

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Package-level functions route through the global logger and are safe
// to call before Init (they drop entries).

func Debug(msg string, fields ...Field) { global.log(DEBUG, msg, fields) }
func Info(msg string, fields ...Field)  { global.log(INFO, msg, fields) }
func Warn(msg string, fields ...Field)  { global.log(WARN, msg, fields) }
func Error(msg string, fields ...Field) { global.log(ERROR, msg, fields) }

// WithFields returns a child of the global logger.
func WithFields(fields ...Field) *Logger {
	if global == nil {
		return nil
	}
	return global.WithFields(fields...)
}

// Close closes the global logger.
func Close() error {
	return global.Close()
}
