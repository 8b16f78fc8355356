package main

import (
	"os"

	"golang.org/x/term"
)

// isInteractiveEnvironment returns true if the session looks like an
// interactive TTY and not CI, used to decide whether to show progress.
func isInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
