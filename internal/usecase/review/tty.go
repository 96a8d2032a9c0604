package review

import (
	"os"

	"golang.org/x/term"
)

// IsTTY checks if the given file descriptor is a terminal.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// IsOutputTerminal reports whether stdout is a TTY. Colored summary
// output is only enabled when it is; piped or CI output stays plain.
func IsOutputTerminal() bool {
	return IsTTY(os.Stdout.Fd())
}
