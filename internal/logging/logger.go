// Package logging wraps charmbracelet/log with a package-level logger that
// the rest of Cookbook writes through.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
	"github.com/natefinch/lumberjack"

	"evalgo.org/cookbook/internal/config"
)

// L is the package-level logger. Configure replaces it at startup.
var L = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	Prefix:          "cookbook",
})

// Configure builds a logger from cfg and installs it as L. The returned
// closer releases the log file when Output is a path.
func Configure(cfg config.LoggingConfig) (io.Closer, error) {
	logger, closer, err := New(cfg)
	if err != nil {
		return nil, err
	}
	L = logger
	return closer, nil
}

// New builds a logger from cfg without touching L.
func New(cfg config.LoggingConfig) (*clog.Logger, io.Closer, error) {
	w, closer, err := openOutput(cfg)
	if err != nil {
		return nil, nil, err
	}

	level := clog.InfoLevel
	if cfg.Level != "" {
		level, err = clog.ParseLevel(cfg.Level)
		if err != nil {
			_ = closer.Close()
			return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	formatter, err := parseFormatter(cfg.Format)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}

	logger := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		Prefix:          "cookbook",
		Level:           level,
		Formatter:       formatter,
	})
	return logger, closer, nil
}

func parseFormatter(format string) (clog.Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return clog.TextFormatter, nil
	case "json":
		return clog.JSONFormatter, nil
	case "logfmt":
		return clog.LogfmtFormatter, nil
	default:
		return clog.TextFormatter, fmt.Errorf("invalid log format %q", format)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openOutput resolves the log destination. File paths are rotated by size.
func openOutput(cfg config.LoggingConfig) (io.Writer, io.Closer, error) {
	switch cfg.Output {
	case "", "stderr":
		return os.Stderr, nopCloser{}, nil
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	default:
		// fail early on an unwritable path; lumberjack would only report it on the first write
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		_ = f.Close()

		w := &lumberjack.Logger{
			Filename:   cfg.Output,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   true,
		}
		return w, w, nil
	}
}

// With returns a child logger carrying the given key/value pairs.
func With(keyvals ...interface{}) *clog.Logger {
	return L.With(keyvals...)
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...interface{}) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...interface{}) {
	L.Error(fmt.Sprintf(format, v...))
}
