//go:build !windows

package window

import (
	"errors"
	"fmt"
)

// Create always fails outside Windows.
func Create(opts Options) (*Session, error) {
	if err := opts.validate(); err != nil {
		return nil, &CreationError{Stage: StageValidate, Err: err}
	}
	return nil, &CreationError{Stage: StageRegister, Err: fmt.Errorf("native windows: %w", errors.ErrUnsupported)}
}

// Show is a no-op outside Windows.
func (s *Session) Show() {}

// RunUntilClosed marks the session consumed and returns.
func (s *Session) RunUntilClosed() {
	if s != nil {
		s.consumed = true
	}
}
