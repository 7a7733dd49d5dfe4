package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/SgtClickClack/DojoPool-sub003/internal/config"
	"github.com/SgtClickClack/DojoPool-sub003/internal/dojo"
	"github.com/SgtClickClack/DojoPool-sub003/internal/logging"
)

// screenID indexes the dashboard's hosted screens.
type screenID int

const (
	screenTournaments screenID = iota
	screenClans
	screenVenues
	screenChat
	numScreens
)

func (s screenID) title() string {
	switch s {
	case screenClans:
		return "Clans"
	case screenVenues:
		return "Venues"
	case screenChat:
		return "Chat"
	default:
		return "Tournaments"
	}
}

// healthEvery is how often the status bar refreshes. Reconnection itself is
// the gateway's problem; the dashboard only displays the snapshots.
const healthEvery = 3 * time.Second

type gatewayStatusMsg struct {
	info   dojo.GatewayInfo
	health dojo.ConnectionHealth
	err    error
}

type healthTickMsg struct{}

// dashboardChrome: tab bar above the screens, status bar below.
const dashboardChrome = 2

// DashboardModel hosts the four screens behind a tab bar and owns the
// gateway status bar. Each hosted screen fetches its own data, so switching
// in starts the load exactly once.
type DashboardModel struct {
	ctx     context.Context
	gateway dojo.Gateway

	screens [numScreens]tea.Model
	active  screenID

	info      dojo.GatewayInfo
	health    dojo.ConnectionHealth
	endpoint  string
	statusErr error

	width  int
	height int
}

// NewDashboardModel wires every screen to the gateway.
func NewDashboardModel(ctx context.Context, g dojo.Gateway) *DashboardModel {
	m := &DashboardModel{
		ctx:      ctx,
		gateway:  g,
		endpoint: GatewayEndpoint(config.Current().Gateway),
		width:    defaultScreenWidth,
		height:   defaultScreenRows,
	}
	m.screens[screenTournaments] = NewTournamentsModel(ctx, g.Tournaments)
	m.screens[screenClans] = NewClansModel(ctx, g.Clans, g.ClanMembers)
	m.screens[screenVenues] = NewVenuesModel(ctx, g.Venues)
	m.screens[screenChat] = NewChatModel(ctx, g)
	return m
}

// Init implements tea.Model: every screen starts loading at once.
func (m *DashboardModel) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, numScreens+2)
	for _, s := range m.screens {
		cmds = append(cmds, s.Init())
	}
	cmds = append(cmds, m.fetchStatus(), scheduleHealthTick())
	return tea.Batch(cmds...)
}

// fetchStatus pulls the gateway identity and link health in parallel.
func (m *DashboardModel) fetchStatus() tea.Cmd {
	return func() tea.Msg {
		var (
			info   dojo.GatewayInfo
			health dojo.ConnectionHealth
		)
		eg, ctx := errgroup.WithContext(m.ctx)
		eg.Go(func() error {
			i, err := m.gateway.Info(ctx)
			info = i
			return err
		})
		eg.Go(func() error {
			h, err := m.gateway.Health(ctx)
			health = h
			return err
		})
		err := eg.Wait()
		return gatewayStatusMsg{info: info, health: health, err: err}
	}
}

func scheduleHealthTick() tea.Cmd {
	return tea.Tick(healthEvery, func(time.Time) tea.Msg { return healthTickMsg{} })
}

// Update implements tea.Model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		child := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - dashboardChrome}
		return m, m.broadcast(child)

	case gatewayStatusMsg:
		if msg.err != nil {
			m.statusErr = msg.err
			m.health.State = dojo.ConnOffline
			logging.FromContext(m.ctx).Warn().Ctx(m.ctx).Err(msg.err).Msg("gateway status fetch failed")
			return m, nil
		}
		m.statusErr = nil
		m.info = msg.info
		m.health = msg.health
		return m, nil

	case healthTickMsg:
		return m, tea.Batch(m.fetchStatus(), scheduleHealthTick())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.active = (m.active + 1) % numScreens
			return m, nil
		case "shift+tab":
			m.active = (m.active + numScreens - 1) % numScreens
			return m, nil
		case "1", "2", "3", "4":
			// Digits type into the chat composer; switch elsewhere only.
			if m.active != screenChat {
				m.active = screenID(msg.String()[0] - '1')
				return m, nil
			}
		}
		return m, m.routeToActive(msg)

	case tea.MouseMsg:
		return m, m.routeToActive(msg)
	}

	// Data and spinner messages go everywhere; screens ignore what is not
	// theirs, and a background screen keeps loading while another is shown.
	return m, m.broadcast(msg)
}

func (m *DashboardModel) routeToActive(msg tea.Msg) tea.Cmd {
	updated, cmd := m.screens[m.active].Update(msg)
	m.screens[m.active] = updated
	return cmd
}

func (m *DashboardModel) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, numScreens)
	for i, s := range m.screens {
		updated, cmd := s.Update(msg)
		m.screens[i] = updated
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Active returns which screen has focus.
func (m *DashboardModel) Active() int { return int(m.active) }

// View implements tea.Model.
func (m *DashboardModel) View() string {
	return m.tabBar() + "\n" + m.screens[m.active].View() + "\n" +
		RenderStatusBar(m.width, m.health, m.info, m.endpoint)
}

func (m *DashboardModel) tabBar() string {
	out := ""
	for s := screenID(0); s < numScreens; s++ {
		label := s.title()
		if s == m.active {
			out += SelectedStyle.Render("[" + label + "]")
		} else {
			out += SubtleStyle.Render(" " + label + " ")
		}
		out += " "
	}
	if m.statusErr != nil {
		out += CriticalStyle.Render("gateway unreachable")
	}
	return out
}
