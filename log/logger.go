package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	mu     *sync.Mutex
	writer io.Writer
	closer io.Closer
	exit   func(int)

	Name  string
	Level Level

	TimeFormat string
	NoColor    bool
	JSON       bool
}

// Options configures where a Logger writes to.
type Options struct {
	Name  string
	Level Level

	// File enables rotated file output through lumberjack.
	File     string
	Rotation Rotation

	// NoTerminal disables stdout output when File is set.
	NoTerminal bool
	NoColor    bool
	JSON       bool

	// Writer replaces stdout as terminal output, mostly for tests.
	Writer io.Writer
}

type Rotation struct {
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service,omitempty"`
	Message   string `json:"message"`
}

func DefaultRotation() Rotation {
	return Rotation{
		MaxSize:    128,
		MaxBackups: 5,
		MaxAge:     16,
		Compress:   false,
	}
}

func New(opts Options) *Logger {
	l := &Logger{
		mu:   &sync.Mutex{},
		exit: os.Exit,

		Name:       opts.Name,
		Level:      opts.Level,
		NoColor:    opts.NoColor,
		JSON:       opts.JSON,
		TimeFormat: "2006-01-02 15:04:05",
	}

	terminal := opts.Writer
	if terminal == nil {
		terminal = os.Stdout
	}

	var writers []io.Writer
	if !opts.NoTerminal || opts.File == "" {
		writers = append(writers, terminal)
	}

	if opts.File != "" {
		rotation := opts.Rotation
		if rotation == (Rotation{}) {
			rotation = DefaultRotation()
		}

		fileWriter := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    rotation.MaxSize,
			MaxBackups: rotation.MaxBackups,
			MaxAge:     rotation.MaxAge,
			Compress:   rotation.Compress,
		}
		writers = append(writers, fileWriter)
		l.closer = fileWriter

		// Escape codes would end up in the file.
		if opts.NoTerminal {
			l.NoColor = true
		}
	}

	l.writer = io.MultiWriter(writers...)
	return l
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{
		mu:     &sync.Mutex{},
		writer: io.Discard,
		exit:   os.Exit,
		Level:  Fatal + 1,
	}
}

func (l *Logger) log(level Level, msg string, args ...any) {
	if level < l.Level {
		return
	}

	timestamp := time.Now().Format(l.TimeFormat)
	formattedMsg := fmt.Sprintf(msg, args...)

	l.mu.Lock()
	if l.JSON {
		entry := logEntry{
			Timestamp: timestamp,
			Level:     level.String(),
			Service:   l.Name,
			Message:   formattedMsg,
		}

		jsonBytes, _ := json.Marshal(entry)
		fmt.Fprintf(l.writer, "%s\n", jsonBytes)
	} else {
		prefix := fmt.Sprintf("[%s] %-5s", timestamp, level)
		if l.Name != "" {
			prefix = fmt.Sprintf("%s [%s]", prefix, l.Name)
		}

		if !l.NoColor {
			fmt.Fprintf(l.writer, "%s%s %s\033[0m\n", level.color(), prefix, formattedMsg)
		} else {
			fmt.Fprintf(l.writer, "%s %s\n", prefix, formattedMsg)
		}
	}
	l.mu.Unlock()

	if level == Fatal {
		l.exit(1)
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(Debug, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(Info, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(Warn, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(Error, msg, args...)
}

func (l *Logger) Fatal(msg string, args ...any) {
	l.log(Fatal, msg, args...)
}

// Named returns a child logger sharing the same output.
func (l *Logger) Named(name string) *Logger {
	if l.Name != "" {
		name = fmt.Sprintf("%s/%s", l.Name, name)
	}

	return &Logger{
		mu:     l.mu,
		writer: l.writer,
		exit:   l.exit,

		Name:  name,
		Level: l.Level,

		TimeFormat: l.TimeFormat,
		NoColor:    l.NoColor,
		JSON:       l.JSON,
	}
}

// Close releases the rotated log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
