package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// viewState is where a screen is in its loading/list/detail cycle.
type viewState int

const (
	stateLoading viewState = iota
	stateList
	stateDetail
	stateError
	stateQuitting
)

// LoadingState pairs a spinner with the message shown beside it.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState builds a loading indicator with an initial message.
func NewLoadingState(message string) *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = InfoStyle
	return &LoadingState{spinner: s, message: message}
}

// Tick starts the spinner animation.
func (l *LoadingState) Tick() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// SetMessage swaps the text next to the spinner.
func (l *LoadingState) SetMessage(message string) {
	l.message = message
}

// Message returns the current loading text.
func (l *LoadingState) Message() string {
	return l.message
}

// RenderLoading draws the spinner line shown while a screen fetches data.
func RenderLoading(l *LoadingState) string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("\n %s %s\n\n", l.spinner.View(), l.message)
}
