package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// drainCmd executes a command tree, flattening batches, and returns every
// message produced. Timer-backed commands run for real, so tests driving
// retry backoff take their configured delays.
func drainCmd(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drainCmd(t, c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
