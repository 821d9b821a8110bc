package main

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// recoverPanic turns a recovered panic into an error so run can print the
// diagnostic and restore the console. The stack goes to the log file only.
func recoverPanic(where string, recovered any) error {
	if recovered == nil {
		return nil
	}
	slog.Warn("[WARN-PANIC] recovered from panic",
		"where", where,
		"panic", recovered,
		"stack", string(debug.Stack()),
	)
	return fmt.Errorf("panic in %s: %v", where, recovered)
}
