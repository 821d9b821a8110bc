package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"hotwin/internal/hotkeys"
	"hotwin/internal/window"

	"go.yaml.in/yaml/v3"
)

const (
	maxConfigFileBytes int64 = 64 << 10 // 64KB
	appDirName               = "hotwin"
	configFileName           = "config.yaml"
	logFileName              = "hotwin.log"
)

var userHomeDirFn = os.UserHomeDir

// HotkeyConfig holds the console chords that drive the program.
type HotkeyConfig struct {
	OpenWindow string `yaml:"open_window"`
	Quit       string `yaml:"quit"`
}

// WindowConfig describes the top-level window opened on each OpenWindow.
// Placement is always left to the platform.
type WindowConfig struct {
	ClassName string `yaml:"class_name"`
	Title     string `yaml:"title"`
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
}

// ButtonConfig describes the single push button inside the window.
// X and Y are client coordinates and may legitimately be zero.
type ButtonConfig struct {
	Text      string `yaml:"text"`
	ControlID uint16 `yaml:"control_id"`
	X         int32  `yaml:"x"`
	Y         int32  `yaml:"y"`
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
}

// DialogConfig is the acknowledgment dialog shown when the button is clicked.
type DialogConfig struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// Config is hotwin runtime configuration.
type Config struct {
	Hotkeys HotkeyConfig `yaml:"hotkeys"`
	Window  WindowConfig `yaml:"window"`
	Button  ButtonConfig `yaml:"button"`
	Dialog  DialogConfig `yaml:"dialog"`
	// Banner is printed at the top-left of the cleared console on startup.
	Banner string `yaml:"banner"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Hotkeys: HotkeyConfig{
			OpenWindow: "Ctrl+H",
			Quit:       "Ctrl+Q",
		},
		Window: WindowConfig{
			ClassName: "MyWindowClass",
			Title:     "My Window",
			Width:     200,
			Height:    200,
		},
		Button: ButtonConfig{
			Text:      "Click Me",
			ControlID: uint16(window.DefaultControlID),
			X:         50,
			Y:         50,
			Width:     100,
			Height:    30,
		},
		Dialog: DialogConfig{
			Title: "Action",
			Text:  "Button clicked!",
		},
		Banner:   "ctrl + q to exit, ctrl + h to open new Window and after Msg Box",
		LogLevel: "info",
	}
}

// DefaultPath resolves the config file path, preferring LOCALAPPDATA over
// APPDATA, falling back to ~/.config when both are unset, and then to
// os.TempDir() if the home directory cannot be resolved.
func DefaultPath() string {
	base := strings.TrimSpace(os.Getenv("LOCALAPPDATA"))
	if base == "" {
		base = strings.TrimSpace(os.Getenv("APPDATA"))
	}
	if base == "" {
		home, err := userHomeDirFn()
		if err != nil {
			slog.Warn("[WARN-CONFIG] using temp dir as config path fallback", "error", err)
			base = os.TempDir()
		} else {
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, appDirName, configFileName)
}

// LogPath returns the log file location that sits next to configPath.
func LogPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), logFileName)
}

// Load reads the config file at path. A missing or empty file yields
// DefaultConfig. Fields absent from the file keep their default values.
// The returned config is always validated; on error the defaults are
// returned alongside it so callers can report and exit.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, errors.New("config path required")
	}

	raw, err := readLimitedFile(path, maxConfigFileBytes)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("[DEBUG-CONFIG] config file not found, using defaults", "path", path)
			return cfg, nil
		}
		return cfg, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	warnUnknownFields(raw)

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults replaces blank strings and non-positive sizes with defaults
// so a partially written file stays usable.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()

	defaultString(&cfg.Hotkeys.OpenWindow, def.Hotkeys.OpenWindow)
	defaultString(&cfg.Hotkeys.Quit, def.Hotkeys.Quit)
	defaultString(&cfg.Window.ClassName, def.Window.ClassName)
	defaultString(&cfg.Window.Title, def.Window.Title)
	defaultString(&cfg.Button.Text, def.Button.Text)
	defaultString(&cfg.Dialog.Title, def.Dialog.Title)
	defaultString(&cfg.Dialog.Text, def.Dialog.Text)
	defaultString(&cfg.LogLevel, def.LogLevel)

	defaultSize(&cfg.Window.Width, def.Window.Width)
	defaultSize(&cfg.Window.Height, def.Window.Height)
	defaultSize(&cfg.Button.Width, def.Button.Width)
	defaultSize(&cfg.Button.Height, def.Button.Height)
	if cfg.Button.ControlID == 0 {
		cfg.Button.ControlID = def.Button.ControlID
	}
}

func defaultString(field *string, fallback string) {
	trimmed := strings.TrimSpace(*field)
	if trimmed == "" {
		*field = fallback
		return
	}
	*field = trimmed
}

func defaultSize(field *int32, fallback int32) {
	if *field <= 0 {
		*field = fallback
	}
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	open, quit, err := c.ParsedHotkeys()
	if err != nil {
		return err
	}
	if open.Modifiers() == quit.Modifiers() && open.Key() == quit.Key() {
		return fmt.Errorf("hotkeys.open_window and hotkeys.quit are both %s", open.Normalized())
	}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"window.class_name", c.Window.ClassName},
		{"window.title", c.Window.Title},
		{"button.text", c.Button.Text},
		{"dialog.title", c.Dialog.Title},
		{"dialog.text", c.Dialog.Text},
	} {
		if strings.ContainsRune(field.value, 0) {
			return fmt.Errorf("%s must not contain NUL", field.name)
		}
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Button.Width <= 0 || c.Button.Height <= 0 {
		return fmt.Errorf("button size must be positive, got %dx%d", c.Button.Width, c.Button.Height)
	}
	if c.Button.X < 0 || c.Button.Y < 0 {
		return fmt.Errorf("button position must not be negative, got (%d,%d)", c.Button.X, c.Button.Y)
	}
	// uint16 already bounds the id to what LOWORD(wParam) can carry.
	if c.Button.ControlID == 0 {
		return errors.New("button.control_id must not be 0")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// ParsedHotkeys parses the open-window and quit chords.
func (c Config) ParsedHotkeys() (open hotkeys.Binding, quit hotkeys.Binding, err error) {
	open, err = hotkeys.ParseBinding(c.Hotkeys.OpenWindow)
	if err != nil {
		return hotkeys.Binding{}, hotkeys.Binding{}, fmt.Errorf("hotkeys.open_window: %w", err)
	}
	quit, err = hotkeys.ParseBinding(c.Hotkeys.Quit)
	if err != nil {
		return hotkeys.Binding{}, hotkeys.Binding{}, fmt.Errorf("hotkeys.quit: %w", err)
	}
	return open, quit, nil
}

// Level parses LogLevel into a slog level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

var knownTopLevelFields = map[string]struct{}{
	"hotkeys":   {},
	"window":    {},
	"button":    {},
	"dialog":    {},
	"banner":    {},
	"log_level": {},
}

// warnUnknownFields logs top-level keys that yaml.Unmarshal silently ignores.
func warnUnknownFields(raw []byte) {
	var rawMap map[string]any
	if err := yaml.Unmarshal(raw, &rawMap); err != nil {
		slog.Warn("[WARN-CONFIG] failed to parse config metadata", "error", err)
		return
	}
	var unknown []string
	for key := range rawMap {
		if _, ok := knownTopLevelFields[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return
	}
	sort.Strings(unknown)
	slog.Warn("[WARN-CONFIG] ignoring unknown config fields", "fields", unknown)
}

func readLimitedFile(path string, maxBytes int64) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	limited := io.LimitReader(file, maxBytes+1)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > maxBytes {
		return nil, fmt.Errorf("config file exceeds %d bytes", maxBytes)
	}
	return raw, nil
}
