// Package logger wraps charmbracelet/log with per-component sub-loggers.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

// Initialize sets up the global text logger on stderr
func Initialize(logLevel string) {
	Configure(os.Stderr, logLevel, "text")
}

// Configure replaces the global logger. format is text, json or logfmt.
func Configure(w io.Writer, logLevel, format string) {
	Logger = log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(logLevel),
		Formatter:       ParseFormatter(format),
		ReportCaller:    true,
		ReportTimestamp: true,
	})
	Logger.Debug("Logger initialized", "level", strings.ToLower(logLevel), "format", format)
}

// ParseLevel maps a level name to a log level, defaulting to info
func ParseLevel(logLevel string) log.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter maps a format name to a formatter, defaulting to text
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Get returns the global logger instance
func Get() *log.Logger {
	if Logger == nil {
		Initialize("info")
	}
	return Logger
}

// Service creates a logger for a specific service
func Service(serviceName string) *log.Logger {
	return Get().With("service", serviceName)
}

func component(name string, fields ...any) *log.Logger {
	return Get().With(append([]any{"component", name}, fields...)...)
}

func Database() *log.Logger  { return component("database") }
func HTTP() *log.Logger      { return component("http") }
func Migration() *log.Logger { return component("migration") }
func Storage() *log.Logger   { return component("blob") }
func CLI() *log.Logger       { return component("cli") }

// Repository creates a logger for one repository
func Repository(repoName string) *log.Logger {
	return component("repository", "repository", repoName)
}

// Handler creates a logger for one HTTP handler
func Handler(handlerName string) *log.Logger {
	return component("handler", "handler", handlerName)
}
