//go:build windows

package main

import (
	"log/slog"

	"golang.org/x/sys/windows"
)

const codePageUTF8 = 65001

// setConsoleUTF8 switches the console code pages so the banner and the
// diagnostic line render correctly.
func setConsoleUTF8() {
	if err := windows.SetConsoleOutputCP(codePageUTF8); err != nil {
		slog.Warn("[WARN-CONSOLE] SetConsoleOutputCP failed", "error", err)
	}
	if err := windows.SetConsoleCP(codePageUTF8); err != nil {
		slog.Warn("[WARN-CONSOLE] SetConsoleCP failed", "error", err)
	}
}
