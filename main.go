package main

import (
	"io"
	"log/slog"
	"os"
	"runtime"

	"hotwin/internal/applog"
	"hotwin/internal/config"
	"hotwin/internal/console"
)

func init() {
	// Window creation and the message loop are bound to the creating thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

// consoleTerminal is the part of *console.Terminal that run drives.
type consoleTerminal interface {
	Banner(text string)
	Home()
	Restore() error
}

// consoleInput is the part of *console.Reader that run drives.
type consoleInput interface {
	ReadEvent() (console.Event, error)
	Close() error
}

var (
	configPathFn               = config.DefaultPath
	loadConfigFn               = config.Load
	setupLoggingFn             = applog.Setup
	setConsoleUTF8Fn           = setConsoleUTF8
	consoleOutput    io.Writer = os.Stdout
	openTerminalFn             = func(out io.Writer) (consoleTerminal, error) {
		t, err := console.Open(os.Stdin, out)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	newConsoleInputFn = func() (consoleInput, error) {
		r, err := console.NewReader(os.Stdin)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	newSessionOpenerFn = func(cfg config.Config) sessionOpener {
		return windowOpener(windowOptions(cfg))
	}
)

// run returns the process exit code. Deferred cleanup, including terminal
// restore, runs before main exits.
func run() int {
	configPath := configPathFn()
	cfg, cfgErr := loadConfigFn(configPath)
	level, _ := cfg.Level()

	closeLog, logErr := setupLoggingFn(applog.Options{
		Path:    config.LogPath(configPath),
		Level:   level,
		Console: consoleOutput,
	})
	defer func() {
		if err := closeLog(); err != nil {
			slog.Warn("[WARN-LOG] failed to close log file", "error", err)
		}
	}()
	if logErr != nil {
		slog.Warn("[WARN-LOG] file logging disabled", "error", logErr)
	}
	if cfgErr != nil {
		slog.Error("[ERROR-CONFIG] failed to load config", "path", configPath, "error", cfgErr)
		return 1
	}
	openBinding, quitBinding, err := cfg.ParsedHotkeys()
	if err != nil {
		slog.Error("[ERROR-CONFIG] invalid hotkeys", "error", err)
		return 1
	}

	setConsoleUTF8Fn()
	term, err := openTerminalFn(consoleOutput)
	if err != nil {
		slog.Error("[ERROR-CONSOLE] failed to open console", "error", err)
		return 1
	}
	defer func() {
		if err := term.Restore(); err != nil {
			slog.Warn("[WARN-CONSOLE] failed to restore console", "error", err)
		}
	}()

	reader, err := newConsoleInputFn()
	if err != nil {
		slog.Error("[ERROR-CONSOLE] failed to open console input", "error", err)
		return 1
	}
	defer func() {
		if err := reader.Close(); err != nil {
			slog.Warn("[WARN-CONSOLE] failed to restore console input mode", "error", err)
		}
	}()

	term.Banner(cfg.Banner)
	slog.Info("[INFO-APP] listening",
		"openWindow", openBinding.Normalized(), "quit", quitBinding.Normalized(), "config", configPath)

	listener := console.NewListener(reader, console.Bindings{OpenWindow: openBinding, Quit: quitBinding}, term)
	app := NewApp(listener, newSessionOpenerFn(cfg))
	if err := app.Run(); err != nil {
		slog.Error("[ERROR-APP] fatal error", "error", err)
		return 1
	}
	return 0
}
