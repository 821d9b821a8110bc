package main

import (
	"fmt"
	"log/slog"

	"hotwin/internal/config"
	"hotwin/internal/console"
	"hotwin/internal/window"
)

// signalSource yields one console signal per blocking call.
type signalSource interface {
	NextSignal() (console.Signal, error)
}

// windowSession is one open window. RunUntilClosed blocks until the user
// closes it.
type windowSession interface {
	Show()
	RunUntilClosed()
}

// sessionOpener creates a window session. It must return a nil interface,
// not a typed nil, on error.
type sessionOpener func() (windowSession, error)

// App drives the listener and the window sessions it opens. It has two
// states: listening, and terminated once Run returns.
type App struct {
	listener    signalSource
	openSession sessionOpener

	sessionsRun int
}

// NewApp creates an App.
func NewApp(listener signalSource, openSession sessionOpener) *App {
	return &App{
		listener:    listener,
		openSession: openSession,
	}
}

// Run reads signals until Quit, which returns nil. Each OpenWindow runs one
// window session to completion before the next read. A read failure or a
// window creation failure is returned immediately, as is a panic.
func (a *App) Run() (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = recoverPanic("app", recovered)
		}
	}()

	for {
		sig, err := a.listener.NextSignal()
		if err != nil {
			return err
		}

		switch sig {
		case console.SignalQuit:
			slog.Debug("[DEBUG-APP] quit requested", "sessionsRun", a.sessionsRun)
			return nil
		case console.SignalOpenWindow:
			if err := a.runSession(); err != nil {
				return err
			}
		}
	}
}

func (a *App) runSession() error {
	session, err := a.openSession()
	if err != nil {
		return fmt.Errorf("open window session: %w", err)
	}
	session.Show()
	session.RunUntilClosed()
	a.sessionsRun++
	slog.Debug("[DEBUG-APP] window session finished, listening again", "sessionsRun", a.sessionsRun)
	return nil
}

// windowOptions maps configuration onto a window session.
func windowOptions(cfg config.Config) window.Options {
	return window.Options{
		ClassName:    cfg.Window.ClassName,
		Title:        cfg.Window.Title,
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		ButtonText:   cfg.Button.Text,
		ButtonX:      cfg.Button.X,
		ButtonY:      cfg.Button.Y,
		ButtonWidth:  cfg.Button.Width,
		ButtonHeight: cfg.Button.Height,
		ControlID:    window.ControlID(cfg.Button.ControlID),
		DialogTitle:  cfg.Dialog.Title,
		DialogText:   cfg.Dialog.Text,
	}
}

func windowOpener(opts window.Options) sessionOpener {
	return func() (windowSession, error) {
		session, err := window.Create(opts)
		if err != nil {
			return nil, err
		}
		return session, nil
	}
}
