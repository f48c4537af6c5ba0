package cmd

import (
	"os"

	"github.com/charmbracelet/x/term"

	"github.com/abhisek/stride/internal/ui/layout"
)

// terminalWidth returns the stdout width, or the default when stdout is not
// a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return layout.DefaultWidth
	}
	return w
}
