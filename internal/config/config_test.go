package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hotwin/internal/hotkeys"
	"hotwin/internal/testutil"
	"hotwin/internal/window"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfigMatchesBuiltInConstants(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	open, quit, err := cfg.ParsedHotkeys()
	if err != nil {
		t.Fatalf("ParsedHotkeys: %v", err)
	}
	if !open.Matches(hotkeys.ModControl, hotkeys.VKey('H')) {
		t.Errorf("open binding = %s, want Ctrl+H", open)
	}
	if !quit.Matches(hotkeys.ModControl, hotkeys.VKey('Q')) {
		t.Errorf("quit binding = %s, want Ctrl+Q", quit)
	}
	if cfg.Button.ControlID != 1001 || window.ControlID(cfg.Button.ControlID) != window.DefaultControlID {
		t.Errorf("Button.ControlID = %d, want %d", cfg.Button.ControlID, window.DefaultControlID)
	}
	if cfg.Window.Width != 200 || cfg.Window.Height != 200 {
		t.Errorf("window size = %dx%d, want 200x200", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Dialog.Title != "Action" || cfg.Dialog.Text != "Button clicked!" {
		t.Errorf("dialog = %+v", cfg.Dialog)
	}
}

func TestDefaultPath(t *testing.T) {
	tests := []struct {
		name         string
		localAppData string
		appData      string
		homeErr      error
		wantPrefix   func(home string) string
	}{
		{
			name:         "LOCALAPPDATA preferred",
			localAppData: filepath.Join("x", "local"),
			appData:      filepath.Join("x", "roaming"),
			wantPrefix:   func(string) string { return filepath.Join("x", "local") },
		},
		{
			name:       "APPDATA fallback",
			appData:    filepath.Join("x", "roaming"),
			wantPrefix: func(string) string { return filepath.Join("x", "roaming") },
		},
		{
			name:       "home fallback",
			wantPrefix: func(home string) string { return filepath.Join(home, ".config") },
		},
		{
			name:       "temp fallback",
			homeErr:    errors.New("no home"),
			wantPrefix: func(string) string { return os.TempDir() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOCALAPPDATA", tt.localAppData)
			t.Setenv("APPDATA", tt.appData)
			home := t.TempDir()
			original := userHomeDirFn
			userHomeDirFn = func() (string, error) { return home, tt.homeErr }
			t.Cleanup(func() { userHomeDirFn = original })

			got := DefaultPath()
			want := filepath.Join(tt.wantPrefix(home), "hotwin", "config.yaml")
			if got != want {
				t.Fatalf("DefaultPath() = %q, want %q", got, want)
			}
		})
	}
}

func TestLogPathSitsNextToConfig(t *testing.T) {
	path := filepath.Join("base", "hotwin", "config.yaml")
	want := filepath.Join("base", "hotwin", "hotwin.log")
	if got := LogPath(path); got != want {
		t.Fatalf("LogPath(%q) = %q, want %q", path, got, want)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatal("Load(\"\") should fail")
	}
}

func TestLoadEmptyFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, "  \n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesAndKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
hotkeys:
  open_window: "Ctrl+Shift+O"
window:
  title: "  Demo  "
  width: 320
button:
  control_id: 2002
  x: 0
dialog:
  text: "Hello"
log_level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Hotkeys.OpenWindow != "Ctrl+Shift+O" {
		t.Errorf("OpenWindow = %q", cfg.Hotkeys.OpenWindow)
	}
	if cfg.Hotkeys.Quit != "Ctrl+Q" {
		t.Errorf("Quit = %q, want default", cfg.Hotkeys.Quit)
	}
	if cfg.Window.Title != "Demo" {
		t.Errorf("Title = %q, want trimmed", cfg.Window.Title)
	}
	if cfg.Window.Width != 320 || cfg.Window.Height != 200 {
		t.Errorf("window size = %dx%d, want 320x200", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Button.ControlID != 2002 {
		t.Errorf("ControlID = %d, want 2002", cfg.Button.ControlID)
	}
	if cfg.Button.X != 0 || cfg.Button.Y != 50 {
		t.Errorf("button position = (%d,%d), want (0,50)", cfg.Button.X, cfg.Button.Y)
	}
	if cfg.Dialog.Title != "Action" || cfg.Dialog.Text != "Hello" {
		t.Errorf("dialog = %+v", cfg.Dialog)
	}
	level, err := cfg.Level()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("Level() = %v, %v; want debug", level, err)
	}
}

func TestValidateRejectsNULInWindowStrings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{name: "class name", mutate: func(c *Config) { c.Window.ClassName = "Hot\x00win" }, wantSub: "window.class_name"},
		{name: "title", mutate: func(c *Config) { c.Window.Title = "Hot\x00win" }, wantSub: "window.title"},
		{name: "button text", mutate: func(c *Config) { c.Button.Text = "Click\x00" }, wantSub: "button.text"},
		{name: "dialog title", mutate: func(c *Config) { c.Dialog.Title = "\x00Action" }, wantSub: "dialog.title"},
		{name: "dialog text", mutate: func(c *Config) { c.Dialog.Text = "Button\x00clicked!" }, wantSub: "dialog.text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) || !strings.Contains(err.Error(), "NUL") {
				t.Fatalf("Validate() error = %q, want %q and NUL", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantSub string
	}{
		{
			name:    "malformed yaml",
			content: "hotkeys: [",
			wantSub: "parse config",
		},
		{
			name:    "bad open chord",
			content: "hotkeys:\n  open_window: H\n",
			wantSub: "hotkeys.open_window",
		},
		{
			name:    "bad quit chord",
			content: "hotkeys:\n  quit: Hyper+Q\n",
			wantSub: "hotkeys.quit",
		},
		{
			name:    "same chord twice",
			content: "hotkeys:\n  open_window: ctrl+q\n",
			wantSub: "both Ctrl+Q",
		},
		{
			name:    "negative button position",
			content: "button:\n  x: -4\n",
			wantSub: "must not be negative",
		},
		{
			name:    "NUL in dialog text",
			content: "dialog:\n  text: \"Button\\0clicked\"\n",
			wantSub: "dialog.text must not contain NUL",
		},
		{
			name:    "unknown log level",
			content: "log_level: loud\n",
			wantSub: "log_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfigFile(t, tt.content))
			if err == nil {
				t.Fatalf("Load() expected error, got nil (cfg=%+v)", cfg)
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Fatalf("error = %q, want substring %q", err.Error(), tt.wantSub)
			}
			if cfg != DefaultConfig() {
				t.Fatalf("Load() on error should return defaults, got %+v", cfg)
			}
		})
	}
}

func TestLoadRejectsOversizedFile(t *testing.T) {
	path := writeConfigFile(t, "banner: \""+strings.Repeat("x", int(maxConfigFileBytes))+"\"\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Fatalf("Load() error = %v, want size limit error", err)
	}
}

func TestLoadWarnsOnUnknownFields(t *testing.T) {
	logBuf := testutil.CaptureLogBuffer(t, slog.LevelWarn)

	if _, err := Load(writeConfigFile(t, "banner: hi\nwindows:\n  title: typo\n")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	out := logBuf.String()
	if !strings.Contains(out, "unknown config fields") || !strings.Contains(out, "windows") {
		t.Fatalf("expected unknown-field warning, got %q", out)
	}
}

func TestValidateControlIDRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Button.ControlID = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() should reject control id 0")
	}
}
