package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/SgtClickClack/DojoPool-sub003/internal/config"
	"github.com/SgtClickClack/DojoPool-sub003/internal/dojo"
)

var statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)

// connIcon maps a link state to its status dot.
func connIcon(s dojo.ConnState) string {
	switch s {
	case dojo.ConnConnected:
		return "●"
	case dojo.ConnDegraded:
		return "◐"
	case dojo.ConnReconnecting:
		return "◌"
	default:
		return "○"
	}
}

// GatewayEndpoint formats the configured gateway location for display.
func GatewayEndpoint(gw config.GatewayConfig) string {
	where := gw.URL
	if gw.Demo {
		where = "demo"
	}
	if gw.Region == "" {
		return where
	}
	if where == "" {
		return gw.Region
	}
	return where + " · " + gw.Region
}

// RenderStatusBar draws the gateway health line shown under the dashboard.
// It is display-only: the dashboard polls health and hands snapshots in.
func RenderStatusBar(width int, health dojo.ConnectionHealth, info dojo.GatewayInfo, endpoint string) string {
	state := ConnStyle(health.State).Render(fmt.Sprintf("%s %s", connIcon(health.State), health.State))

	right := fmt.Sprintf("%s v%s", info.Name, info.APIVersion)
	if endpoint != "" {
		right = fmt.Sprintf("%s @ %s", right, endpoint)
	}
	mid := fmt.Sprintf("%dms", health.Latency.Milliseconds())
	if health.Reconnects > 0 {
		mid = fmt.Sprintf("%s · %d reconnects", mid, health.Reconnects)
	}

	line := fmt.Sprintf("%s  %s  %s", state, SubtleStyle.Render(mid), SubtleStyle.Render(right))
	if width > 0 {
		return statusBarStyle.Width(width).Render(line)
	}
	return statusBarStyle.Render(line)
}
