package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SgtClickClack/DojoPool-sub003/internal/config"
	"github.com/SgtClickClack/DojoPool-sub003/internal/dojo"
	"github.com/SgtClickClack/DojoPool-sub003/internal/logging"
	"github.com/SgtClickClack/DojoPool-sub003/internal/tui/vlist"
)

// VenuesFetcher loads the venue directory.
type VenuesFetcher func(ctx context.Context) ([]dojo.Venue, error)

type venuesLoadedMsg struct {
	venues []dojo.Venue
	err    error
}

// VenueSortField is a sortable venue column.
type VenueSortField int

const (
	VenueSortByRating VenueSortField = iota
	VenueSortByRate
	VenueSortByTables
	VenueSortByDistance
	numVenueSortFields
)

func (f VenueSortField) String() string {
	switch f {
	case VenueSortByRate:
		return "rate"
	case VenueSortByTables:
		return "free tables"
	case VenueSortByDistance:
		return "distance"
	default:
		return "rating"
	}
}

// venueRowHeight: venue cards are two terminal rows, name line plus detail
// line. All cards share the height, keeping the uniform-item contract.
const venueRowHeight = 2

// VenuesModel is the venue directory screen: two-row cards in a virtualized
// list with filter, sort, and a detail view.
type VenuesModel struct {
	ctx   context.Context
	state viewState

	all      []dojo.Venue
	filtered []dojo.Venue
	list     *vlist.Model[dojo.Venue]

	filterInput textinput.Model
	showFilter  bool
	sortBy      VenueSortField

	loading  *LoadingState
	fetchCmd tea.Cmd

	width  int
	height int
	err    error
}

// NewVenuesModel builds the screen; fetching starts at Init.
func NewVenuesModel(ctx context.Context, fetch VenuesFetcher) *VenuesModel {
	ti := textinput.New()
	ti.Placeholder = "name, address, feature, or clan tag"
	ti.CharLimit = 64

	m := &VenuesModel{
		ctx:         ctx,
		state:       stateLoading,
		filterInput: ti,
		loading:     NewLoadingState("Loading venues..."),
		width:       defaultScreenWidth,
		height:      defaultScreenRows,
		fetchCmd: func() tea.Msg {
			vs, err := fetch(ctx)
			return venuesLoadedMsg{venues: vs, err: err}
		},
	}

	ui := config.Current().UI
	m.list = vlist.New(nil, m.listHeight(), m.width, m.renderRow,
		vlist.WithRowHeight[dojo.Venue](venueRowHeight),
		vlist.WithOverscan[dojo.Venue](ui.Overscan),
		vlist.WithCache[dojo.Venue](ui.RowCacheSize),
		vlist.WithFooter[dojo.Venue](),
		vlist.WithEmptyText[dojo.Venue]("No venues match."),
	)
	return m
}

// Init implements tea.Model.
func (m *VenuesModel) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd, m.loading.Tick())
}

// Update implements tea.Model.
func (m *VenuesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.listHeight())
		return m, nil

	case venuesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			logging.FromContext(m.ctx).Error().Ctx(m.ctx).Err(msg.err).Msg("venue fetch failed")
			return m, nil
		}
		m.all = msg.venues
		m.state = stateList
		m.applyFilter()
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

func (m *VenuesModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

func (m *VenuesModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
		m.sortBy = (m.sortBy + 1) % numVenueSortFields
		m.applyFilter()
		return m, nil
	case "r":
		m.state = stateLoading
		m.loading.SetMessage("Reloading venues...")
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

func (m *VenuesModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))

	filtered := make([]dojo.Venue, 0, len(m.all))
	for _, v := range m.all {
		if query == "" || venueMatches(v, query) {
			filtered = append(filtered, v)
		}
	}
	m.filtered = filtered
	m.applySort()
	m.list.SetItems(m.filtered)
}

func venueMatches(v dojo.Venue, query string) bool {
	if strings.Contains(strings.ToLower(v.Name), query) ||
		strings.Contains(strings.ToLower(v.Address), query) ||
		strings.Contains(strings.ToLower(v.OwnerClan), query) {
		return true
	}
	for _, f := range v.Features {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func (m *VenuesModel) applySort() {
	sort.SliceStable(m.filtered, func(i, j int) bool {
		a, b := m.filtered[i], m.filtered[j]
		switch m.sortBy {
		case VenueSortByRate:
			return a.HourlyRate < b.HourlyRate
		case VenueSortByTables:
			return a.TablesFree > b.TablesFree
		case VenueSortByDistance:
			return a.DistanceKm < b.DistanceKm
		default:
			return a.Rating > b.Rating
		}
	})
}

func (m *VenuesModel) listHeight() int {
	h := m.height - tournamentsChrome
	if m.showFilter {
		h--
	}
	if h < minListHeight {
		h = minListHeight
	}
	return h
}

// renderRow draws one two-row venue card.
func (m *VenuesModel) renderRow(v dojo.Venue, selected bool) string {
	nameW := m.width - 30
	if nameW < 16 {
		nameW = 16
	}

	owner := "unclaimed"
	ownerStyle := SubtleStyle
	if v.OwnerClan != "" {
		owner = "[" + v.OwnerClan + "]"
		ownerStyle = WarningStyle
	}

	marker := "  "
	if selected {
		marker = SelectedStyle.Render("> ")
	}

	top := fmt.Sprintf("%s%s %s %s",
		marker,
		PadRight(v.Name, nameW),
		InfoStyle.Render(fmt.Sprintf("%.1f★", v.Rating)),
		ownerStyle.Render(owner),
	)
	bottom := fmt.Sprintf("  %s",
		SubtleStyle.Render(fmt.Sprintf("%s · %d/%d tables free · %s/hr · %.1f km",
			Truncate(v.Address, nameW), v.TablesFree, v.Tables, FormatCoins(v.HourlyRate), v.DistanceKm)),
	)
	return top + "\n" + bottom
}

// View implements tea.Model.
func (m *VenuesModel) View() string {
	switch m.state {
	case stateQuitting:
		return ""
	case stateLoading:
		return HeaderStyle.Render("DojoPool Venues") + "\n" + RenderLoading(m.loading)
	case stateError:
		var b strings.Builder
		b.WriteString(HeaderStyle.Render("DojoPool Venues") + "\n\n")
		b.WriteString(CriticalStyle.Render("Error: "+m.err.Error()) + "\n\n")
		b.WriteString(HelpStyle.Render("[r] Retry  [q] Quit"))
		return b.String()
	case stateDetail:
		venue, _ := m.list.SelectedItem()
		return RenderVenueDetail(venue) + "\n" + HelpStyle.Render("[Esc] Back  [Ctrl+C] Quit")
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("DojoPool Venues") + "\n\n")
	b.WriteString(RenderVenuesSummary(m.all) + "\n\n")
	if m.showFilter {
		b.WriteString("Filter: " + m.filterInput.View() + "\n")
	}
	b.WriteString(m.list.View())
	b.WriteString("\n" + HelpStyle.Render(fmt.Sprintf(
		"[/] Filter  [s] Sort: %s  [r] Reload  [jk] Navigate  [Enter] Details  [q] Quit", m.sortBy)))
	return b.String()
}

// RenderVenuesSummary draws the boxed directory stats.
func RenderVenuesSummary(vs []dojo.Venue) string {
	var free, tables, claimed int
	for _, v := range vs {
		free += v.TablesFree
		tables += v.Tables
		if v.OwnerClan != "" {
			claimed++
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s",
		LabelStyle.Render("Venues:"), ValueStyle.Render(FormatCount(len(vs))),
		LabelStyle.Render("Tables free:"), InfoStyle.Render(fmt.Sprintf("%s of %s", FormatCount(free), FormatCount(tables))),
		LabelStyle.Render("Clan-held:"), WarningStyle.Render(FormatCount(claimed)),
	))
	return BoxStyle.Render(b.String())
}

// RenderVenueDetail draws one venue's card.
func RenderVenueDetail(v dojo.Venue) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(v.Name) + "\n\n")
	writeField(&b, "Address", v.Address)
	writeField(&b, "Rating", fmt.Sprintf("%.1f / 5.0", v.Rating))
	writeField(&b, "Tables", fmt.Sprintf("%d free of %d", v.TablesFree, v.Tables))
	writeField(&b, "Rate", FormatCoins(v.HourlyRate)+" per hour")
	writeField(&b, "Distance", fmt.Sprintf("%.1f km", v.DistanceKm))
	if len(v.Features) > 0 {
		writeField(&b, "Features", strings.Join(v.Features, ", "))
	}
	if v.OwnerClan != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", LabelStyle.Render(PadRight("Held by:", 14)),
			WarningStyle.Render("["+v.OwnerClan+"]")))
	} else {
		b.WriteString("\n" + InfoStyle.Render("This dojo is unclaimed."))
	}
	return BoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
