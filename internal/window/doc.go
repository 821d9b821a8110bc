// Package window owns the native top-level window opened on each OpenWindow
// signal: class registration, the window and its push button, the modal
// acknowledgment dialog and the blocking message loop that runs until the
// user closes the window.
//
// Everything here must run on one locked OS thread. Windows only; other
// platforms get a Create that always fails.
package window
