package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how a command renders its result.
type OutputMode int

const (
	// OutputPlain is unstyled text safe for pipes and dumb terminals.
	OutputPlain OutputMode = iota
	// OutputStyled is colored, non-interactive output.
	OutputStyled
	// OutputInteractive runs the full-screen TUI.
	OutputInteractive
)

func (m OutputMode) String() string {
	switch m {
	case OutputStyled:
		return "styled"
	case OutputInteractive:
		return "interactive"
	default:
		return "plain"
	}
}

// DetectOutputMode resolves a requested mode. "auto" (or "") picks
// interactive on a real terminal and plain otherwise; explicit modes win.
func DetectOutputMode(requested string) OutputMode {
	switch requested {
	case "plain":
		return OutputPlain
	case "styled":
		return OutputStyled
	case "interactive":
		return OutputInteractive
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return OutputPlain
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return OutputPlain
	}
	return OutputInteractive
}

// TerminalWidth returns the current terminal width, or 80 when stdout is
// not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
