//go:build !windows

package console

import (
	"errors"
	"fmt"
	"os"
)

// Reader reads key presses from a raw-mode POSIX tty.
type Reader struct {
	in      *os.File
	buf     [32]byte
	pending []byte
}

// NewReader creates a Reader on in, which should already be in raw mode.
func NewReader(in *os.File) (*Reader, error) {
	if in == nil {
		return nil, errors.New("console input file is required")
	}
	return &Reader{in: in}, nil
}

// ReadEvent returns the next key. Bytes left over from an earlier read are
// decoded before the tty is read again.
func (r *Reader) ReadEvent() (Event, error) {
	for len(r.pending) == 0 {
		n, err := r.in.Read(r.buf[:])
		if err != nil {
			return Event{}, fmt.Errorf("read stdin: %w", err)
		}
		r.pending = r.buf[:n]
	}

	ev, n := decodeNext(r.pending)
	r.pending = r.pending[n:]
	return ev, nil
}

// Close is a no-op; raw mode is owned by Terminal.
func (r *Reader) Close() error { return nil }
