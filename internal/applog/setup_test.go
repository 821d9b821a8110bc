package applog

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func restoreDefaultLogger(t *testing.T) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestSetupWritesFileAndEchoesErrors(t *testing.T) {
	restoreDefaultLogger(t)
	path := filepath.Join(t.TempDir(), "nested", "hotwin.log")
	var console bytes.Buffer

	closeFn, err := Setup(Options{Path: path, Level: slog.LevelDebug, Console: &console})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	slog.Debug("[DEBUG-CONSOLE] decoded console event", "signal", "Ignore")
	slog.Error("[ERROR-WINDOW] window creation failed", "error", errors.New("create window: access denied"))
	if err := closeFn(); err != nil {
		t.Fatalf("close log: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"decoded console event", "window creation failed"} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("log file missing %q:\n%s", want, raw)
		}
	}

	wantLine := "hotwin: window creation failed: create window: access denied\r\n"
	if console.String() != wantLine {
		t.Fatalf("console = %q, want %q", console.String(), wantLine)
	}
}

func TestSetupWithoutFileStillEchoes(t *testing.T) {
	restoreDefaultLogger(t)
	var console bytes.Buffer

	closeFn, err := Setup(Options{Path: "", Level: slog.LevelInfo, Console: &console})
	if err == nil {
		t.Fatal("Setup() with empty path should report an error")
	}
	if closeErr := closeFn(); closeErr != nil {
		t.Fatalf("close of fallback logger: %v", closeErr)
	}

	slog.Error("console input failed", "error", "EOF")
	if !strings.HasPrefix(console.String(), "hotwin: console input failed: EOF") {
		t.Fatalf("console = %q", console.String())
	}
}

func TestDiagnosticLine(t *testing.T) {
	tests := []struct {
		name  string
		msg   string
		attrs []any
		want  string
	}{
		{name: "plain", msg: "config invalid", want: "hotwin: config invalid"},
		{name: "tag stripped", msg: "[ERROR-CONSOLE] read failed", want: "hotwin: read failed"},
		{name: "unterminated tag kept", msg: "[oops", want: "hotwin: [oops"},
		{
			name:  "error attr appended",
			msg:   "window creation failed",
			attrs: []any{"stage", "control", "error", "CreateWindowExW failed"},
			want:  "hotwin: window creation failed: CreateWindowExW failed",
		},
		{
			name:  "newlines flattened",
			msg:   "bad",
			attrs: []any{"error", "line1\nline2"},
			want:  "hotwin: bad: line1 line2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := slog.NewRecord(time.Now(), slog.LevelError, tt.msg, 0)
			record.Add(tt.attrs...)
			if got := DiagnosticLine(record); got != tt.want {
				t.Fatalf("DiagnosticLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
