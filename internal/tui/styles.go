package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/SgtClickClack/DojoPool-sub003/internal/dojo"
)

var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	LabelStyle    = lipgloss.NewStyle().Bold(true)
	ValueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	SubtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	InfoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	WarningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	HelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1)
)

// printer formats counts and coin amounts with thousands separators.
var printer = message.NewPrinter(language.English)

// FormatCount renders an integer with separators: 1000 -> "1,000".
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatCoins renders a DojoCoin amount.
func FormatCoins(n int) string {
	return printer.Sprintf("%d DC", n)
}

// StatusStyle picks the style for a tournament status.
func StatusStyle(s dojo.TournamentStatus) lipgloss.Style {
	switch s {
	case dojo.StatusRegistration:
		return InfoStyle
	case dojo.StatusInProgress:
		return WarningStyle
	case dojo.StatusCancelled:
		return CriticalStyle
	default:
		return SubtleStyle
	}
}

// ConnStyle picks the style for a gateway link state.
func ConnStyle(s dojo.ConnState) lipgloss.Style {
	switch s {
	case dojo.ConnConnected:
		return InfoStyle
	case dojo.ConnDegraded:
		return WarningStyle
	default:
		return CriticalStyle
	}
}

// Truncate shortens s to max runes, ending with an ellipsis when cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// PadRight pads or truncates s to exactly width runes.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	if pad := width - len([]rune(s)); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
