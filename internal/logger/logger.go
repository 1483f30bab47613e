// Package logger provides leveled logging with support for debug, info, warn,
// and error levels. It wraps the standard log package to provide level-based
// filtering and printf-style formatted output for the report pipeline.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level represents a logging level
type Level int

const (
	// DebugLevel logs per-row skip decisions and other voluminous detail.
	DebugLevel Level = iota
	// InfoLevel is the default logging priority; pipeline stages log counts here.
	InfoLevel
	// WarnLevel logs are more important than Info, but don't need individual human review.
	WarnLevel
	// ErrorLevel logs are high-priority. A clean run shouldn't generate any.
	ErrorLevel
)

// Logger provides leveled logging
type Logger struct {
	level  Level
	logger *log.Logger
}

var defaultLogger *Logger

// Init initializes the default logger with the specified level and format.
// Format "text" adds the caller file to each line; "json" keeps lines terse
// (timestamps with microseconds only).
func Init(level string, format string) {
	defaultLogger = &Logger{
		level:  parseLevel(level),
		logger: log.New(os.Stderr, "", flagsFor(format)),
	}
}

// SetOutput redirects the default logger, primarily for tests.
func SetOutput(w io.Writer) {
	if defaultLogger != nil {
		defaultLogger.logger.SetOutput(w)
	}
}

func parseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func flagsFor(format string) int {
	flags := log.LstdFlags | log.Lmicroseconds
	if strings.ToLower(format) == "text" {
		flags |= log.Lshortfile
	}
	return flags
}

func logf(level Level, tag string, format string, args ...interface{}) {
	if defaultLogger == nil || defaultLogger.level > level {
		return
	}
	msg := fmt.Sprintf(tag+" "+format, args...)
	_ = defaultLogger.logger.Output(3, msg)
}

// Debug logs a message at DebugLevel
func Debug(format string, args ...interface{}) {
	logf(DebugLevel, "[DEBUG]", format, args...)
}

// Info logs a message at InfoLevel
func Info(format string, args ...interface{}) {
	logf(InfoLevel, "[INFO]", format, args...)
}

// Warn logs a message at WarnLevel
func Warn(format string, args ...interface{}) {
	logf(WarnLevel, "[WARN]", format, args...)
}

// Error logs a message at ErrorLevel
func Error(format string, args ...interface{}) {
	logf(ErrorLevel, "[ERROR]", format, args...)
}

// Fatal logs a message at ErrorLevel and exits
func Fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf("[FATAL] "+format, args...)
	if defaultLogger != nil {
		_ = defaultLogger.logger.Output(2, msg)
	} else {
		log.Print(msg)
	}
	os.Exit(1)
}
