// Package colors decorates diagnostic output with ANSI escape sequences.
//
// Colouring is on only when stderr is a terminal, so redirecting diagnostics
// to a file or another program never leaks escape codes.
package colors

import (
	"os"
	"sync/atomic"

	"golang.org/x/term"
)

// COLOR is an ANSI SGR sequence.
type COLOR string

const reset = "\x1b[0m"

const (
	RED         COLOR = "\x1b[31m"
	GREEN       COLOR = "\x1b[32m"
	YELLOW      COLOR = "\x1b[33m"
	BLUE        COLOR = "\x1b[34m"
	PURPLE      COLOR = "\x1b[35m"
	CYAN        COLOR = "\x1b[36m"
	GREY        COLOR = "\x1b[90m"
	BOLD_RED    COLOR = "\x1b[1;31m"
	BOLD_YELLOW COLOR = "\x1b[1;33m"
	BOLD_CYAN   COLOR = "\x1b[1;36m"
	BOLD_PURPLE COLOR = "\x1b[1;35m"
)

var enabled atomic.Bool

func init() {
	enabled.Store(term.IsTerminal(int(os.Stderr.Fd())))
}

// SetEnabled overrides terminal detection.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Enabled reports whether escape sequences are emitted.
func Enabled() bool {
	return enabled.Load()
}

// Sprint wraps s in the colour when colouring is enabled.
func (c COLOR) Sprint(s string) string {
	if !enabled.Load() {
		return s
	}
	return string(c) + s + reset
}
