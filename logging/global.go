// Package logging sets up the process-wide slog logger (console text plus a
// weekly rotating JSON file) and the HTTP request logging middleware.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/giygas/myoncologist-api/config"
)

type LoggingService struct {
	Logger *slog.Logger
	closer io.Closer
}

var DefaultLoggingService *LoggingService

// Options controls logger setup. An empty Dir disables the file output.
type Options struct {
	Dir            string
	Env            config.Environment
	Level          string
	RetentionWeeks int
	MaxFileSize    int64
}

// OptionsFromConfig builds logger options from the application config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Dir:            cfg.LogDir,
		Env:            cfg.Env,
		Level:          cfg.LogLevel,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
	}
}

// InitLogger initializes the global logger instance and makes it the slog default
func InitLogger(opts Options) {
	DefaultLoggingService = NewLoggingService(opts)
	slog.SetDefault(DefaultLoggingService.Logger)
}

// NewLoggingService builds a console logger and, when opts.Dir is set, a
// rotating JSON file logger alongside it. File setup failures fall back to
// console only.
func NewLoggingService(opts Options) *LoggingService {
	console := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: GetConsoleLogLevel(opts.Env, opts.Level),
	})

	if opts.Dir == "" {
		return &LoggingService{Logger: slog.New(console)}
	}

	retention := opts.RetentionWeeks
	if retention <= 0 {
		retention = 4
	}

	writer, err := NewRotatingWriter(opts.Dir, retention, opts.MaxFileSize)
	if err != nil {
		logger := slog.New(console)
		logger.Error("Failed to initialize rotating logger", "error", err)
		return &LoggingService{Logger: logger}
	}

	file := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: GetFileLogLevel()})

	return &LoggingService{
		Logger: slog.New(newFanoutHandler(console, file)),
		closer: writer,
	}
}

// Close flushes and closes the file output, if any.
func (s *LoggingService) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Close closes the default logging service.
func Close() error {
	return DefaultLoggingService.Close()
}

func logger() *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return slog.Default()
	}
	return DefaultLoggingService.Logger
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	logger().Info(msg, args...)
}

func Error(msg string, args ...any) {
	logger().Error(msg, args...)
}

func Warn(msg string, args ...any) {
	logger().Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	logger().Debug(msg, args...)
}
