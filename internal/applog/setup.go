package applog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Options configures Setup.
type Options struct {
	// Path is the log file. Parent directories are created as needed.
	Path string
	// Level is the minimum level written to the log file.
	Level slog.Level
	// Console receives one line per record at ConsoleLevel or above.
	// nil disables the console echo.
	Console io.Writer
}

// ConsoleLevel is the threshold for console diagnostics.
const ConsoleLevel = slog.LevelError

// Setup installs the process-wide slog logger and returns a function that
// closes the log file. When the file cannot be opened the logger still
// echoes diagnostics to the console and the open error is returned.
func Setup(opts Options) (func() error, error) {
	var (
		base    slog.Handler
		closeFn = func() error { return nil }
		openErr error
	)

	file, err := openLogFile(opts.Path)
	if err != nil {
		openErr = err
		base = slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: opts.Level})
	} else {
		base = slog.NewTextHandler(file, &slog.HandlerOptions{Level: opts.Level})
		closeFn = file.Close
	}

	var callback RecordCallback
	if opts.Console != nil {
		callback = ConsoleWriter(opts.Console)
	}
	slog.SetDefault(slog.New(NewTeeHandler(base, ConsoleLevel, callback)))
	return closeFn, openErr
}

func openLogFile(path string) (*os.File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("log path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

// ConsoleWriter returns a RecordCallback that prints each record to w as
// one diagnostic line. Lines end in CRLF because the console may be in raw
// mode, where a bare LF does not return the carriage.
func ConsoleWriter(w io.Writer) RecordCallback {
	var mu sync.Mutex
	return func(record slog.Record, _ string) {
		line := DiagnosticLine(record)
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprint(w, line+"\r\n")
	}
}

// DiagnosticLine renders record as "hotwin: <message>: <error>".
// Only the "error" attribute is appended; the file log keeps the rest.
func DiagnosticLine(record slog.Record) string {
	msg := stripTag(record.Message)
	var errText string
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == "error" {
			errText = attr.Value.String()
			return false
		}
		return true
	})
	line := "hotwin: " + msg
	if errText != "" {
		line += ": " + errText
	}
	return strings.ReplaceAll(line, "\n", " ")
}

// stripTag drops a leading "[TAG-NAME] " marker used to grep the file log.
func stripTag(msg string) string {
	if !strings.HasPrefix(msg, "[") {
		return msg
	}
	end := strings.Index(msg, "] ")
	if end < 0 {
		return msg
	}
	return msg[end+2:]
}
