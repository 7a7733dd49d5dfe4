package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SgtClickClack/DojoPool-sub003/internal/config"
	"github.com/SgtClickClack/DojoPool-sub003/internal/dojo"
	"github.com/SgtClickClack/DojoPool-sub003/internal/logging"
	"github.com/SgtClickClack/DojoPool-sub003/internal/tui/vlist"
)

// TournamentsFetcher loads the tournament list.
type TournamentsFetcher func(ctx context.Context) ([]dojo.Tournament, error)

type tournamentsLoadedMsg struct {
	tournaments []dojo.Tournament
	err         error
}

// TournamentSortField is a sortable tournament column.
type TournamentSortField int

const (
	TournamentSortByStart TournamentSortField = iota
	TournamentSortByName
	TournamentSortByPrize
	TournamentSortByStatus
	numTournamentSortFields
)

func (f TournamentSortField) String() string {
	switch f {
	case TournamentSortByName:
		return "name"
	case TournamentSortByPrize:
		return "prize"
	case TournamentSortByStatus:
		return "status"
	default:
		return "start"
	}
}

const (
	tournamentsChrome  = 9
	minListHeight      = 5
	defaultScreenWidth = 80
	defaultScreenRows  = 24
)

// TournamentsModel is the tournaments screen: a filterable, sortable
// virtualized list with a detail view per tournament.
type TournamentsModel struct {
	ctx   context.Context
	state viewState

	all      []dojo.Tournament
	filtered []dojo.Tournament
	list     *vlist.Model[dojo.Tournament]

	filterInput textinput.Model
	showFilter  bool
	sortBy      TournamentSortField

	loading  *LoadingState
	fetchCmd tea.Cmd

	width  int
	height int
	err    error
}

// NewTournamentsModel builds the screen; fetching starts at Init.
func NewTournamentsModel(ctx context.Context, fetch TournamentsFetcher) *TournamentsModel {
	ti := textinput.New()
	ti.Placeholder = "name, venue, status, or format"
	ti.CharLimit = 64

	m := &TournamentsModel{
		ctx:         ctx,
		state:       stateLoading,
		filterInput: ti,
		loading:     NewLoadingState("Loading tournaments..."),
		width:       defaultScreenWidth,
		height:      defaultScreenRows,
		fetchCmd: func() tea.Msg {
			ts, err := fetch(ctx)
			return tournamentsLoadedMsg{tournaments: ts, err: err}
		},
	}

	ui := config.Current().UI
	m.list = vlist.New(nil, m.listHeight(), m.width, m.renderRow,
		vlist.WithOverscan[dojo.Tournament](ui.Overscan),
		vlist.WithCache[dojo.Tournament](ui.RowCacheSize),
		vlist.WithFooter[dojo.Tournament](),
		vlist.WithEmptyText[dojo.Tournament]("No tournaments match."),
	)
	return m
}

// Init implements tea.Model.
func (m *TournamentsModel) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd, m.loading.Tick())
}

// Update implements tea.Model.
func (m *TournamentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.listHeight())
		return m, nil

	case tournamentsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			logging.FromContext(m.ctx).Error().Ctx(m.ctx).Err(msg.err).Msg("tournament fetch failed")
			return m, nil
		}
		m.all = msg.tournaments
		m.state = stateList
		m.applyFilter()
		logging.FromContext(m.ctx).Debug().Ctx(m.ctx).Int("count", len(m.all)).Msg("tournaments loaded")
		return m, nil

	case spinner.TickMsg:
		if m.state == stateLoading {
			return m, m.loading.Update(msg)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.state == stateList {
			m.list.Update(msg)
		}
		return m, nil
	}
	return m, nil
}

func (m *TournamentsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateError:
		switch msg.String() {
		case "r":
			m.state = stateLoading
			m.err = nil
			return m, tea.Batch(m.fetchCmd, m.loading.Tick())
		case "q", "ctrl+c":
			m.state = stateQuitting
			return m, tea.Quit
		}
		return m, nil

	case stateDetail:
		switch msg.String() {
		case "esc", "q", "backspace":
			m.state = stateList
		case "ctrl+c":
			m.state = stateQuitting
			return m, tea.Quit
		}
		return m, nil

	case stateList:
		return m.handleListKey(msg)
	}

	if msg.String() == "ctrl+c" {
		m.state = stateQuitting
		return m, tea.Quit
	}
	return m, nil
}

func (m *TournamentsModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showFilter && m.filterInput.Focused() {
		switch msg.String() {
		case "esc":
			m.filterInput.SetValue("")
			m.filterInput.Blur()
			m.showFilter = false
			m.applyFilter()
			m.list.SetSize(m.width, m.listHeight())
			return m, nil
		case "enter":
			m.filterInput.Blur()
			return m, nil
		case "ctrl+c":
			m.state = stateQuitting
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			m.applyFilter()
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.state = stateQuitting
		return m, tea.Quit
	case "/":
		m.showFilter = true
		m.list.SetSize(m.width, m.listHeight())
		return m, m.filterInput.Focus()
	case "s":
		m.sortBy = (m.sortBy + 1) % numTournamentSortFields
		m.applyFilter()
		return m, nil
	case "r":
		m.state = stateLoading
		m.loading.SetMessage("Reloading tournaments...")
		return m, tea.Batch(m.fetchCmd, m.loading.Tick())
	case "enter":
		if _, ok := m.list.SelectedItem(); ok {
			m.state = stateDetail
		}
		return m, nil
	case "esc":
		if m.showFilter {
			m.filterInput.SetValue("")
			m.showFilter = false
			m.applyFilter()
			m.list.SetSize(m.width, m.listHeight())
		}
		return m, nil
	default:
		m.list.Update(msg)
		return m, nil
	}
}

// applyFilter recomputes the visible slice from the full set, then sorts it
// and hands it to the list. The list keeps its scroll position.
func (m *TournamentsModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))

	filtered := make([]dojo.Tournament, 0, len(m.all))
	for _, t := range m.all {
		if query == "" || tournamentMatches(t, query) {
			filtered = append(filtered, t)
		}
	}
	m.filtered = filtered
	m.applySort()
	m.list.SetItems(m.filtered)
}

func tournamentMatches(t dojo.Tournament, query string) bool {
	return strings.Contains(strings.ToLower(t.Name), query) ||
		strings.Contains(strings.ToLower(t.VenueName), query) ||
		strings.Contains(strings.ToLower(t.Status.Label()), query) ||
		strings.Contains(strings.ToLower(t.Format.Label()), query)
}

func statusRank(s dojo.TournamentStatus) int {
	switch s {
	case dojo.StatusRegistration:
		return 0
	case dojo.StatusInProgress:
		return 1
	case dojo.StatusCompleted:
		return 2
	default:
		return 3
	}
}

func (m *TournamentsModel) applySort() {
	sort.SliceStable(m.filtered, func(i, j int) bool {
		a, b := m.filtered[i], m.filtered[j]
		switch m.sortBy {
		case TournamentSortByName:
			return a.Name < b.Name
		case TournamentSortByPrize:
			return a.PrizePool > b.PrizePool
		case TournamentSortByStatus:
			if ra, rb := statusRank(a.Status), statusRank(b.Status); ra != rb {
				return ra < rb
			}
			return a.StartsAt.Before(b.StartsAt)
		default:
			return a.StartsAt.Before(b.StartsAt)
		}
	})
}

func (m *TournamentsModel) listHeight() int {
	h := m.height - tournamentsChrome
	if m.showFilter {
		h--
	}
	if h < minListHeight {
		h = minListHeight
	}
	return h
}

// renderRow draws one tournament line sized to the current width.
func (m *TournamentsModel) renderRow(t dojo.Tournament, selected bool) string {
	nameW := m.width - 44
	if nameW < 16 {
		nameW = 16
	}

	dot := StatusStyle(t.Status).Render("●")
	line := fmt.Sprintf("%s %s %s %7s %10s %s",
		dot,
		PadRight(t.Name, nameW),
		PadRight(t.Format.Label(), 12),
		fmt.Sprintf("%d/%d", t.Participants, t.MaxParticipants),
		FormatCoins(t.PrizePool),
		SubtleStyle.Render(t.StartsAt.Format("Jan 02")),
	)
	if selected {
		return SelectedStyle.Render("> ") + line
	}
	return "  " + line
}

// View implements tea.Model.
func (m *TournamentsModel) View() string {
	switch m.state {
	case stateQuitting:
		return ""
	case stateLoading:
		return HeaderStyle.Render("DojoPool Tournaments") + "\n" + RenderLoading(m.loading)
	case stateError:
		var b strings.Builder
		b.WriteString(HeaderStyle.Render("DojoPool Tournaments") + "\n\n")
		b.WriteString(CriticalStyle.Render("Error: "+m.err.Error()) + "\n\n")
		b.WriteString(HelpStyle.Render("[r] Retry  [q] Quit"))
		return b.String()
	case stateDetail:
		item, _ := m.list.SelectedItem()
		return RenderTournamentDetail(item) + "\n" + HelpStyle.Render("[Esc] Back  [Ctrl+C] Quit")
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("DojoPool Tournaments") + "\n\n")
	b.WriteString(RenderTournamentsSummary(m.all) + "\n\n")
	if m.showFilter {
		b.WriteString("Filter: " + m.filterInput.View() + "\n")
	}
	b.WriteString(m.list.View())
	b.WriteString("\n" + HelpStyle.Render(fmt.Sprintf(
		"[/] Filter  [s] Sort: %s  [r] Reload  [jk] Navigate  [Enter] Details  [q] Quit", m.sortBy)))
	return b.String()
}

// RenderTournamentsSummary draws the boxed counts shown above the list and
// reused by the styled CLI output.
func RenderTournamentsSummary(ts []dojo.Tournament) string {
	var open, live, done, cancelled, prize int
	for _, t := range ts {
		switch t.Status {
		case dojo.StatusRegistration:
			open++
		case dojo.StatusInProgress:
			live++
		case dojo.StatusCompleted:
			done++
		case dojo.StatusCancelled:
			cancelled++
		}
		prize += t.PrizePool
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s   %s %s\n",
		LabelStyle.Render("Total:"), ValueStyle.Render(FormatCount(len(ts))),
		LabelStyle.Render("Open:"), InfoStyle.Render(FormatCount(open)),
		LabelStyle.Render("Live:"), WarningStyle.Render(FormatCount(live)),
		LabelStyle.Render("Done:"), SubtleStyle.Render(FormatCount(done+cancelled)),
	))
	b.WriteString(fmt.Sprintf("%s %s",
		LabelStyle.Render("Prize pool:"), ValueStyle.Render(FormatCoins(prize))))
	return BoxStyle.Render(b.String())
}

// RenderTournamentDetail draws the full record for one tournament.
func RenderTournamentDetail(t dojo.Tournament) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(t.Name) + "\n\n")
	writeField(&b, "Venue", t.VenueName)
	writeField(&b, "Format", t.Format.Label())
	b.WriteString(fmt.Sprintf("%s %s\n", LabelStyle.Render(PadRight("Status:", 14)),
		StatusStyle(t.Status).Render(t.Status.Label())))
	writeField(&b, "Players", fmt.Sprintf("%d of %d", t.Participants, t.MaxParticipants))
	writeField(&b, "Entry fee", FormatCoins(t.EntryFee))
	writeField(&b, "Prize pool", FormatCoins(t.PrizePool))
	writeField(&b, "Starts", t.StartsAt.Format(time.RFC1123))
	if t.Open() {
		b.WriteString("\n" + InfoStyle.Render("Registration is open."))
	}
	return BoxStyle.Render(b.String())
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(fmt.Sprintf("%s %s\n", LabelStyle.Render(PadRight(label+":", 14)), ValueStyle.Render(value)))
}
