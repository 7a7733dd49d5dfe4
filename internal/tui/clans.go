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
	"github.com/SgtClickClack/DojoPool-sub003/internal/lazyload"
	"github.com/SgtClickClack/DojoPool-sub003/internal/logging"
	"github.com/SgtClickClack/DojoPool-sub003/internal/tui/vlist"
)

// ClansFetcher loads the clan ladder.
type ClansFetcher func(ctx context.Context) ([]dojo.Clan, error)

// ClanMembersFetcher loads one clan's roster; it is fetched lazily when a
// clan's detail opens.
type ClanMembersFetcher func(ctx context.Context, clanID string) ([]dojo.ClanMember, error)

type clansLoadedMsg struct {
	clans []dojo.Clan
	err   error
}

// ClanSortField is a sortable clan ladder column.
type ClanSortField int

const (
	ClanSortByRating ClanSortField = iota
	ClanSortByName
	ClanSortByWinRate
	ClanSortByDojos
	numClanSortFields
)

func (f ClanSortField) String() string {
	switch f {
	case ClanSortByName:
		return "name"
	case ClanSortByWinRate:
		return "win rate"
	case ClanSortByDojos:
		return "dojos"
	default:
		return "rating"
	}
}

// rosterTagFor keys roster loads by clan so a late response from a
// previously opened clan cannot land in the one currently on screen.
func rosterTagFor(clanID string) string {
	return "clan-roster/" + clanID
}

// memberRowHeight: roster entries are two terminal rows, identity line plus
// contribution line.
const memberRowHeight = 2

// clanDetailChrome is the rows the detail header, summary card, and help
// line consume around the roster list.
const clanDetailChrome = 12

// ClansModel is the clan ladder screen. Detail views fetch the roster
// lazily with retry, so a flaky gateway shows progress instead of a blank
// panel.
type ClansModel struct {
	ctx   context.Context
	state viewState

	all      []dojo.Clan
	filtered []dojo.Clan
	list     *vlist.Model[dojo.Clan]

	filterInput textinput.Model
	showFilter  bool
	sortBy      ClanSortField

	loading  *LoadingState
	fetchCmd tea.Cmd
	members  ClanMembersFetcher

	rosterLoader  *lazyload.Loader[[]dojo.ClanMember]
	rosterList    *vlist.Model[dojo.ClanMember]
	rosterClanID  string
	rosterLoading bool
	rosterNote    string
	rosterErr     error

	width  int
	height int
	err    error
}

// NewClansModel builds the screen; fetching starts at Init.
func NewClansModel(ctx context.Context, fetch ClansFetcher, members ClanMembersFetcher) *ClansModel {
	ti := textinput.New()
	ti.Placeholder = "name, tag, or description"
	ti.CharLimit = 64

	m := &ClansModel{
		ctx:         ctx,
		state:       stateLoading,
		filterInput: ti,
		loading:     NewLoadingState("Loading clans..."),
		members:     members,
		width:       defaultScreenWidth,
		height:      defaultScreenRows,
		fetchCmd: func() tea.Msg {
			cs, err := fetch(ctx)
			return clansLoadedMsg{clans: cs, err: err}
		},
	}

	ui := config.Current().UI
	m.list = vlist.New(nil, m.listHeight(), m.width, m.renderRow,
		vlist.WithOverscan[dojo.Clan](ui.Overscan),
		vlist.WithCache[dojo.Clan](ui.RowCacheSize),
		vlist.WithFooter[dojo.Clan](),
		vlist.WithEmptyText[dojo.Clan]("No clans match."),
	)
	m.rosterList = vlist.New(nil, m.rosterHeight(), m.width, m.renderMemberRow,
		vlist.WithRowHeight[dojo.ClanMember](memberRowHeight),
		vlist.WithOverscan[dojo.ClanMember](ui.Overscan),
		vlist.WithFooter[dojo.ClanMember](),
		vlist.WithEmptyText[dojo.ClanMember]("No members."),
	)
	return m
}

// Init implements tea.Model.
func (m *ClansModel) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd, m.loading.Tick())
}

// Update implements tea.Model.
func (m *ClansModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.listHeight())
		m.rosterList.SetSize(m.width, m.rosterHeight())
		return m, nil

	case clansLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			logging.FromContext(m.ctx).Error().Ctx(m.ctx).Err(msg.err).Msg("clan fetch failed")
			return m, nil
		}
		m.all = msg.clans
		m.state = stateList
		m.applyFilter()
		return m, nil

	case lazyload.LoadedMsg[[]dojo.ClanMember]:
		if msg.Tag == rosterTagFor(m.rosterClanID) {
			roster := make([]dojo.ClanMember, len(msg.Value))
			copy(roster, msg.Value)
			sort.SliceStable(roster, func(i, j int) bool {
				return roster[i].Contribution > roster[j].Contribution
			})
			m.rosterList.SetItems(roster)
			m.rosterLoading = false
			m.rosterNote = ""
			m.rosterErr = nil
		}
		return m, nil

	case lazyload.RetryingMsg:
		if msg.Tag == rosterTagFor(m.rosterClanID) && m.rosterLoader != nil {
			m.rosterNote = fmt.Sprintf("retrying (attempt %d of %d)", msg.Attempt+1, lazyload.MaxAttempts)
			logging.FromContext(m.ctx).Warn().Ctx(m.ctx).Err(msg.Err).Int("attempt", msg.Attempt).Msg("roster fetch retrying")
			return m, m.rosterLoader.Resume(msg)
		}
		return m, nil

	case lazyload.FailedMsg:
		if msg.Tag == rosterTagFor(m.rosterClanID) {
			m.rosterLoading = false
			m.rosterNote = ""
			m.rosterErr = msg.Err
			logging.FromContext(m.ctx).Error().Ctx(m.ctx).Err(msg.Err).Int("attempts", msg.Attempts).Msg("roster fetch failed")
		}
		return m, nil

	case spinner.TickMsg:
		if m.state == stateLoading || m.rosterLoading {
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

func (m *ClansModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
			m.rosterLoader = nil
			m.rosterClanID = ""
		case "r":
			if m.rosterErr != nil {
				return m, m.openRoster()
			}
		case "ctrl+c":
			m.state = stateQuitting
			return m, tea.Quit
		default:
			if !m.rosterLoading && m.rosterErr == nil {
				m.rosterList.Update(msg)
			}
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

func (m *ClansModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
		m.sortBy = (m.sortBy + 1) % numClanSortFields
		m.applyFilter()
		return m, nil
	case "r":
		m.state = stateLoading
		m.loading.SetMessage("Reloading clans...")
		return m, tea.Batch(m.fetchCmd, m.loading.Tick())
	case "enter":
		if _, ok := m.list.SelectedItem(); ok {
			m.state = stateDetail
			return m, m.openRoster()
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

// openRoster starts the lazy roster fetch for the selected clan.
func (m *ClansModel) openRoster() tea.Cmd {
	clan, ok := m.list.SelectedItem()
	if !ok {
		return nil
	}
	m.rosterList.SetItems(nil)
	m.rosterClanID = clan.ID
	m.rosterErr = nil
	m.rosterNote = ""
	m.rosterLoading = true
	m.loading.SetMessage("Loading roster...")
	m.rosterLoader = lazyload.New(m.ctx, rosterTagFor(clan.ID), func(ctx context.Context) ([]dojo.ClanMember, error) {
		return m.members(ctx, clan.ID)
	})
	return tea.Batch(m.rosterLoader.Start(), m.loading.Tick())
}

func (m *ClansModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))

	filtered := make([]dojo.Clan, 0, len(m.all))
	for _, c := range m.all {
		if query == "" || clanMatches(c, query) {
			filtered = append(filtered, c)
		}
	}
	m.filtered = filtered
	m.applySort()
	m.list.SetItems(m.filtered)
}

func clanMatches(c dojo.Clan, query string) bool {
	return strings.Contains(strings.ToLower(c.Name), query) ||
		strings.Contains(strings.ToLower(c.Tag), query) ||
		strings.Contains(strings.ToLower(c.Description), query)
}

func (m *ClansModel) applySort() {
	sort.SliceStable(m.filtered, func(i, j int) bool {
		a, b := m.filtered[i], m.filtered[j]
		switch m.sortBy {
		case ClanSortByName:
			return a.Name < b.Name
		case ClanSortByWinRate:
			return a.WinRate() > b.WinRate()
		case ClanSortByDojos:
			return a.ControlledDojos > b.ControlledDojos
		default:
			return a.Rating > b.Rating
		}
	})
}

func (m *ClansModel) listHeight() int {
	h := m.height - tournamentsChrome
	if m.showFilter {
		h--
	}
	if h < minListHeight {
		h = minListHeight
	}
	return h
}

func (m *ClansModel) renderRow(c dojo.Clan, selected bool) string {
	nameW := m.width - 42
	if nameW < 16 {
		nameW = 16
	}

	line := fmt.Sprintf("%s %s %5d %4.0f%% %7s %s",
		SubtleStyle.Render(PadRight("["+c.Tag+"]", 7)),
		PadRight(c.Name, nameW),
		c.Rating,
		c.WinRate()*100,
		fmt.Sprintf("%d/%d", c.MemberCount, c.MaxMembers),
		SubtleStyle.Render(fmt.Sprintf("%d dojos", c.ControlledDojos)),
	)
	if selected {
		return SelectedStyle.Render("> ") + line
	}
	return "  " + line
}

// View implements tea.Model.
func (m *ClansModel) View() string {
	switch m.state {
	case stateQuitting:
		return ""
	case stateLoading:
		return HeaderStyle.Render("DojoPool Clans") + "\n" + RenderLoading(m.loading)
	case stateError:
		var b strings.Builder
		b.WriteString(HeaderStyle.Render("DojoPool Clans") + "\n\n")
		b.WriteString(CriticalStyle.Render("Error: "+m.err.Error()) + "\n\n")
		b.WriteString(HelpStyle.Render("[r] Retry  [q] Quit"))
		return b.String()
	case stateDetail:
		return m.renderDetail()
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("DojoPool Clans") + "\n\n")
	b.WriteString(RenderClansSummary(m.all) + "\n\n")
	if m.showFilter {
		b.WriteString("Filter: " + m.filterInput.View() + "\n")
	}
	b.WriteString(m.list.View())
	b.WriteString("\n" + HelpStyle.Render(fmt.Sprintf(
		"[/] Filter  [s] Sort: %s  [r] Reload  [jk] Navigate  [Enter] Roster  [q] Quit", m.sortBy)))
	return b.String()
}

func (m *ClansModel) renderDetail() string {
	clan, _ := m.list.SelectedItem()

	var b strings.Builder
	b.WriteString(RenderClanDetail(clan))
	b.WriteString("\n")

	switch {
	case m.rosterLoading:
		b.WriteString(RenderLoading(m.loading))
		if m.rosterNote != "" {
			b.WriteString(WarningStyle.Render(m.rosterNote) + "\n")
		}
	case m.rosterErr != nil:
		b.WriteString(CriticalStyle.Render("Roster unavailable: "+m.rosterErr.Error()) + "\n")
		b.WriteString(HelpStyle.Render("[r] Retry  [Esc] Back"))
		return b.String()
	default:
		b.WriteString(LabelStyle.Render("Roster") + "\n")
		b.WriteString(m.rosterList.View())
	}
	b.WriteString("\n" + HelpStyle.Render("[jk] Navigate  [Esc] Back  [Ctrl+C] Quit"))
	return b.String()
}

func (m *ClansModel) rosterHeight() int {
	h := m.height - clanDetailChrome
	if h < minListHeight {
		h = minListHeight
	}
	return h
}

// renderMemberRow draws one two-row roster card.
func (m *ClansModel) renderMemberRow(member dojo.ClanMember, selected bool) string {
	role := SubtleStyle
	switch member.Role {
	case dojo.RoleLeader:
		role = WarningStyle
	case dojo.RoleOfficer:
		role = InfoStyle
	}

	marker := "  "
	if selected {
		marker = SelectedStyle.Render("> ")
	}
	first := fmt.Sprintf("%s%s %s",
		marker,
		role.Render(PadRight(member.Role.Label(), 8)),
		PadRight(member.GamerTag, 20),
	)
	second := "    " + SubtleStyle.Render(printer.Sprintf("%d pts", member.Contribution))
	if !member.JoinedAt.IsZero() {
		second += SubtleStyle.Render("  joined " + member.JoinedAt.Format("Jan 2006"))
	}
	return first + "\n" + second
}

// RenderClansSummary draws the boxed ladder stats.
func RenderClansSummary(cs []dojo.Clan) string {
	var members, dojos int
	top := ""
	best := -1
	for _, c := range cs {
		members += c.MemberCount
		dojos += c.ControlledDojos
		if c.Rating > best {
			best = c.Rating
			top = fmt.Sprintf("[%s] %s", c.Tag, c.Name)
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		LabelStyle.Render("Clans:"), ValueStyle.Render(FormatCount(len(cs))),
		LabelStyle.Render("Players:"), ValueStyle.Render(FormatCount(members)),
		LabelStyle.Render("Dojos held:"), ValueStyle.Render(FormatCount(dojos)),
	))
	b.WriteString(fmt.Sprintf("%s %s", LabelStyle.Render("Top rated:"), ValueStyle.Render(top)))
	return BoxStyle.Render(b.String())
}

// RenderClanDetail draws one clan's card.
func RenderClanDetail(c dojo.Clan) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("[%s] %s", c.Tag, c.Name)) + "\n\n")
	b.WriteString(SubtleStyle.Render(c.Description) + "\n\n")
	writeField(&b, "Rating", FormatCount(c.Rating))
	writeField(&b, "Record", fmt.Sprintf("%d wins, %d losses (%.0f%%)", c.Wins, c.Losses, c.WinRate()*100))
	writeField(&b, "Members", fmt.Sprintf("%d of %d", c.MemberCount, c.MaxMembers))
	writeField(&b, "Dojos held", FormatCount(c.ControlledDojos))
	return BoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

