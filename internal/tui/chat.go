package tui

import (
	"context"
	"fmt"
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

// ChatFeed is the slice of the gateway the chat screen needs.
type ChatFeed interface {
	ChatHistory(ctx context.Context, limit int) ([]dojo.ChatMessage, error)
	ChatSince(ctx context.Context, afterID string) ([]dojo.ChatMessage, error)
	SendChat(ctx context.Context, author, body string) (dojo.ChatMessage, error)
}

type chatHistoryMsg struct {
	msgs []dojo.ChatMessage
	err  error
}

type chatIncomingMsg struct {
	msgs []dojo.ChatMessage
	err  error
}

type chatSentMsg struct {
	msg dojo.ChatMessage
	err error
}

type chatPollMsg struct{}

const chatChrome = 6

// ChatModel is the dojo chat widget: a follow-tail message feed over a
// virtualized list, a composer line, and a poll loop standing in for the
// server push a live gateway would provide. Scrolling up at the top of the
// feed pages older history in without moving the viewport.
type ChatModel struct {
	ctx   context.Context
	feed  ChatFeed
	state viewState

	list  *vlist.Model[dojo.ChatMessage]
	input textinput.Model

	channel string
	author  string

	// historyLimit grows as the user pages back; lastID is the newest
	// message seen, the cursor for incremental polls.
	historyLimit int
	pageSize     int
	lastID       string
	loadingOlder bool

	pollEvery time.Duration
	loading   *LoadingState
	sendErr   error

	width  int
	height int
	err    error
}

// NewChatModel builds the chat screen; the history fetch starts at Init.
func NewChatModel(ctx context.Context, feed ChatFeed) *ChatModel {
	cfg := config.Current()

	ti := textinput.New()
	ti.Placeholder = "message " + cfg.Chat.Channel
	ti.CharLimit = 280
	ti.Focus()

	m := &ChatModel{
		ctx:          ctx,
		feed:         feed,
		state:        stateLoading,
		input:        ti,
		channel:      cfg.Chat.Channel,
		author:       cfg.Chat.Author,
		historyLimit: cfg.Chat.HistoryPage,
		pageSize:     cfg.Chat.HistoryPage,
		pollEvery:    cfg.Chat.PollInterval,
		loading:      NewLoadingState("Loading chat..."),
		width:        defaultScreenWidth,
		height:       defaultScreenRows,
	}

	m.list = vlist.New(nil, m.listHeight(), m.width, m.renderRow,
		vlist.WithOverscan[dojo.ChatMessage](cfg.UI.Overscan),
		vlist.WithFollowTail[dojo.ChatMessage](),
		vlist.WithFooter[dojo.ChatMessage](),
		vlist.WithEmptyText[dojo.ChatMessage]("No messages yet."),
	)
	return m
}

// Init implements tea.Model.
func (m *ChatModel) Init() tea.Cmd {
	return tea.Batch(m.fetchHistory(), m.loading.Tick(), m.schedulePoll(), textinput.Blink)
}

func (m *ChatModel) fetchHistory() tea.Cmd {
	limit := m.historyLimit
	return func() tea.Msg {
		msgs, err := m.feed.ChatHistory(m.ctx, limit)
		return chatHistoryMsg{msgs: msgs, err: err}
	}
}

func (m *ChatModel) schedulePoll() tea.Cmd {
	return tea.Tick(m.pollEvery, func(time.Time) tea.Msg { return chatPollMsg{} })
}

func (m *ChatModel) poll() tea.Cmd {
	after := m.lastID
	return func() tea.Msg {
		msgs, err := m.feed.ChatSince(m.ctx, after)
		return chatIncomingMsg{msgs: msgs, err: err}
	}
}

func (m *ChatModel) send(body string) tea.Cmd {
	return func() tea.Msg {
		msg, err := m.feed.SendChat(m.ctx, m.author, body)
		return chatSentMsg{msg: msg, err: err}
	}
}

// Update implements tea.Model.
func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.listHeight())
		return m, nil

	case chatHistoryMsg:
		if msg.err != nil {
			if m.state == stateLoading {
				m.err = msg.err
				m.state = stateError
			}
			m.loadingOlder = false
			logging.FromContext(m.ctx).Error().Ctx(m.ctx).Err(msg.err).Msg("chat history fetch failed")
			return m, nil
		}
		m.state = stateList
		m.loadingOlder = false
		// Replacing the items keeps the live scroll offset; on first load
		// follow-tail pins the viewport to the newest message instead.
		m.list.SetItems(msg.msgs)
		if n := len(msg.msgs); n > 0 && msg.msgs[n-1].ID > m.lastID {
			m.lastID = msg.msgs[n-1].ID
		}
		return m, nil

	case chatIncomingMsg:
		if msg.err != nil {
			logging.FromContext(m.ctx).Warn().Ctx(m.ctx).Err(msg.err).Msg("chat poll failed")
			return m, nil
		}
		m.append(msg.msgs...)
		return m, nil

	case chatSentMsg:
		if msg.err != nil {
			m.sendErr = msg.err
			return m, nil
		}
		m.sendErr = nil
		m.append(msg.msg)
		return m, nil

	case chatPollMsg:
		if m.state != stateList {
			return m, m.schedulePoll()
		}
		return m, tea.Batch(m.poll(), m.schedulePoll())

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

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// append adds messages the feed has not shown yet. Polls and send echoes
// can overlap, so anything at or before the cursor is dropped.
func (m *ChatModel) append(msgs ...dojo.ChatMessage) {
	fresh := msgs[:0:0]
	for _, msg := range msgs {
		if msg.ID > m.lastID {
			fresh = append(fresh, msg)
			m.lastID = msg.ID
		}
	}
	if len(fresh) > 0 {
		m.list.AppendItems(fresh...)
	}
}

func (m *ChatModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == stateError {
		switch msg.String() {
		case "r":
			m.state = stateLoading
			m.err = nil
			return m, tea.Batch(m.fetchHistory(), m.loading.Tick())
		case "q", "ctrl+c":
			m.state = stateQuitting
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		m.state = stateQuitting
		return m, tea.Quit

	case "enter":
		body := strings.TrimSpace(m.input.Value())
		if body == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m, m.send(body)

	case "up", "pgup":
		// At the very top, reaching up means "show me older messages".
		if m.list.Offset() == 0 && !m.loadingOlder && m.state == stateList {
			m.loadingOlder = true
			m.historyLimit += m.pageSize
			return m, m.fetchHistory()
		}
		m.list.Update(msg)
		return m, nil

	case "down", "pgdown", "home", "end":
		m.list.Update(msg)
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *ChatModel) listHeight() int {
	h := m.height - chatChrome
	if h < minListHeight {
		h = minListHeight
	}
	return h
}

// renderRow draws one chat line.
func (m *ChatModel) renderRow(msg dojo.ChatMessage, selected bool) string {
	ts := SubtleStyle.Render(msg.SentAt.Format("15:04"))
	if msg.System {
		return fmt.Sprintf("%s %s", ts, SubtleStyle.Render("· "+msg.Body))
	}

	author := InfoStyle.Render(msg.Author)
	if msg.Author == m.author {
		author = SelectedStyle.Render(msg.Author)
	}
	bodyW := m.width - len([]rune(msg.Author)) - 10
	if bodyW < 16 {
		bodyW = 16
	}
	return fmt.Sprintf("%s %s %s", ts, author, Truncate(msg.Body, bodyW))
}

// View implements tea.Model.
func (m *ChatModel) View() string {
	switch m.state {
	case stateQuitting:
		return ""
	case stateLoading:
		return HeaderStyle.Render("DojoPool Chat · "+m.channel) + "\n" + RenderLoading(m.loading)
	case stateError:
		var b strings.Builder
		b.WriteString(HeaderStyle.Render("DojoPool Chat · "+m.channel) + "\n\n")
		b.WriteString(CriticalStyle.Render("Error: "+m.err.Error()) + "\n\n")
		b.WriteString(HelpStyle.Render("[r] Retry  [q] Quit"))
		return b.String()
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("DojoPool Chat · "+m.channel) + "\n")
	if m.loadingOlder {
		b.WriteString(SubtleStyle.Render("loading older messages...") + "\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString(m.list.View())
	b.WriteString("\n" + m.input.View())
	if m.sendErr != nil {
		b.WriteString("\n" + CriticalStyle.Render("Send failed: "+m.sendErr.Error()))
	} else {
		b.WriteString("\n" + HelpStyle.Render("[Enter] Send  [Up] Older  [Ctrl+C] Quit"))
	}
	return b.String()
}
