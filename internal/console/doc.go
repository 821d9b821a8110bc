// Package console turns raw keyboard input from a text console into the
// three signals that drive hotwin: OpenWindow, Quit and Ignore.
//
// A Terminal owns raw mode and the banner. A Reader yields one Event per
// blocking read. A Listener decodes each Event against the configured
// Bindings.
package console
