package vlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RenderFunc renders one item. The result is normalized to the model's row
// height: extra lines are dropped, missing lines padded.
type RenderFunc[T any] func(item T, selected bool) string

// wheelRows is how many rows one wheel notch scrolls. Wheel events are
// applied as they arrive, unthrottled: windowing already bounds the work a
// frame can cost, so smoothness wins over coalescing.
const wheelRows = 3

// KeyMap holds the navigation bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

// DefaultKeyMap returns vi-flavored bindings alongside the arrow keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	}
}

// Styles decorate the chrome the model draws itself. Item rows are styled
// by the RenderFunc.
type Styles struct {
	Empty  lipgloss.Style
	Footer lipgloss.Style
}

// DefaultStyles renders the empty line and footer faint.
func DefaultStyles() Styles {
	faint := lipgloss.NewStyle().Faint(true)
	return Styles{Empty: faint, Footer: faint}
}

// Model is a scrolling list that renders only the items inside the current
// window. It is a sub-component: a parent model routes messages to Update
// and embeds View's output, which is always exactly Height() rows tall.
type Model[T any] struct {
	items  []T
	render RenderFunc[T]

	width  int
	height int // total rows View occupies, footer included
	// rowHeight is rows per item; every item occupies exactly this many.
	rowHeight int
	overscan  int

	offset   int // scroll offset in rows from the top of the full list
	selected int

	followTail bool
	showFooter bool
	emptyText  string

	keyMap KeyMap
	styles Styles

	cache    *RowCache
	revision uint64

	printer *message.Printer
}

// Option configures a Model at construction time.
type Option[T any] func(*Model[T])

// WithOverscan overrides the DefaultOverscan margin.
func WithOverscan[T any](n int) Option[T] {
	return func(m *Model[T]) { m.overscan = n }
}

// WithRowHeight makes every item occupy rows terminal rows.
func WithRowHeight[T any](rows int) Option[T] {
	return func(m *Model[T]) { m.rowHeight = rows }
}

// WithCache enables the rendered-row cache with the given capacity.
func WithCache[T any](capacity int) Option[T] {
	return func(m *Model[T]) { m.cache = NewRowCache(capacity) }
}

// WithFooter reserves the bottom row for a position indicator.
func WithFooter[T any]() Option[T] {
	return func(m *Model[T]) { m.showFooter = true }
}

// WithFollowTail starts the list scrolled to the bottom and keeps it there
// when items arrive, unless the user has scrolled away from the tail.
func WithFollowTail[T any]() Option[T] {
	return func(m *Model[T]) { m.followTail = true }
}

// WithEmptyText sets the line shown when the list has no items.
func WithEmptyText[T any](text string) Option[T] {
	return func(m *Model[T]) { m.emptyText = text }
}

// WithKeyMap overrides the DefaultKeyMap bindings.
func WithKeyMap[T any](km KeyMap) Option[T] {
	return func(m *Model[T]) { m.keyMap = km }
}

// WithStyles overrides the DefaultStyles chrome styling.
func WithStyles[T any](s Styles) Option[T] {
	return func(m *Model[T]) { m.styles = s }
}

// New builds a virtualized list over items rendering with render, sized to
// height rows by width columns.
func New[T any](items []T, height, width int, render RenderFunc[T], opts ...Option[T]) *Model[T] {
	m := &Model[T]{
		items:     items,
		render:    render,
		width:     width,
		height:    height,
		rowHeight: 1,
		overscan:  DefaultOverscan,
		keyMap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		printer:   message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.height < 0 {
		m.height = 0
	}
	if m.rowHeight < 1 {
		m.rowHeight = 1
	}
	if m.overscan < 0 {
		m.overscan = 0
	}
	if m.followTail {
		m.GotoBottom()
	}
	m.clamp()
	return m
}

// Update handles navigation keys and wheel events.
func (m *Model[T]) Update(msg tea.Msg) (*Model[T], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Up):
			m.MoveSelection(-1)
		case key.Matches(msg, m.keyMap.Down):
			m.MoveSelection(1)
		case key.Matches(msg, m.keyMap.PageUp):
			m.Page(-1)
		case key.Matches(msg, m.keyMap.PageDown):
			m.Page(1)
		case key.Matches(msg, m.keyMap.Top):
			m.GotoTop()
		case key.Matches(msg, m.keyMap.Bottom):
			m.GotoBottom()
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.ScrollBy(-wheelRows)
			case tea.MouseButtonWheelDown:
				m.ScrollBy(wheelRows)
			}
		}
	}
	return m, nil
}

// View renders the visible band. The result is exactly Height() rows: the
// windowed items with the rows above the offset skipped, padded at the
// bottom to preserve the viewport extent, plus the footer when enabled.
func (m *Model[T]) View() string {
	rows := m.itemRows()
	lines := make([]string, 0, rows+1)

	if len(m.items) == 0 {
		if rows > 0 && m.emptyText != "" {
			lines = append(lines, m.styles.Empty.Render(m.emptyText))
		}
	} else {
		w := m.Window()
		block := make([]string, 0, w.Len()*m.rowHeight)
		for i := w.Start; i < w.End; i++ {
			block = append(block, m.renderRow(i)...)
		}

		// The block begins OffsetOf(w.Start) rows into the list; skipping
		// the rows above the offset is the terminal analog of translating
		// the block down and clipping to the viewport.
		skip := m.offset - w.Start*m.rowHeight
		if skip < 0 {
			skip = 0
		}
		if skip > len(block) {
			skip = len(block)
		}
		band := block[skip:]
		if len(band) > rows {
			band = band[:rows]
		}
		lines = append(lines, band...)
	}

	for len(lines) < rows {
		lines = append(lines, "")
	}
	if m.showFooter && m.height > 0 {
		lines = append(lines, m.footerLine())
	}
	return strings.Join(lines, "\n")
}

// renderRow renders item i as exactly rowHeight lines, consulting the cache
// when one is configured.
func (m *Model[T]) renderRow(i int) []string {
	selected := i == m.selected

	var key string
	if m.cache != nil {
		key = fmt.Sprintf("%d|%d|%d|%t", m.revision, i, m.width, selected)
		if cached, ok := m.cache.Get(key); ok {
			return strings.Split(cached, "\n")
		}
	}

	rendered := m.normalizeRow(m.render(m.items[i], selected))
	if m.cache != nil {
		m.cache.Put(key, rendered)
	}
	return strings.Split(rendered, "\n")
}

// normalizeRow forces a rendering to exactly rowHeight lines.
func (m *Model[T]) normalizeRow(s string) string {
	parts := strings.Split(s, "\n")
	if len(parts) > m.rowHeight {
		parts = parts[:m.rowHeight]
	}
	for len(parts) < m.rowHeight {
		parts = append(parts, "")
	}
	return strings.Join(parts, "\n")
}

func (m *Model[T]) footerLine() string {
	n := len(m.items)
	if n == 0 {
		return m.styles.Footer.Render("0 of 0")
	}
	first := m.offset/m.rowHeight + 1
	last := (m.offset + m.itemRows() + m.rowHeight - 1) / m.rowHeight
	if last > n {
		last = n
	}
	if last < first {
		last = first
	}
	return m.styles.Footer.Render(m.printer.Sprintf("%d-%d of %d  %.0f%%", first, last, n, m.ScrollPercent()*100))
}

// itemRows is the viewport height in rows, excluding the footer.
func (m *Model[T]) itemRows() int {
	rows := m.height
	if m.showFooter {
		rows--
	}
	if rows < 0 {
		rows = 0
	}
	return rows
}

func (m *Model[T]) config() Config {
	return Config{
		ItemHeight:     float64(m.rowHeight),
		ViewportHeight: float64(m.itemRows()),
		Overscan:       m.overscan,
	}
}

// Window returns the item range the current offset makes worth rendering.
func (m *Model[T]) Window() Window {
	return Compute(len(m.items), float64(m.offset), m.config())
}

// MaxOffset is the largest useful scroll offset in rows.
func (m *Model[T]) MaxOffset() int {
	max := len(m.items)*m.rowHeight - m.itemRows()
	if max < 0 {
		return 0
	}
	return max
}

// AtTail reports whether the viewport is scrolled to the bottom.
func (m *Model[T]) AtTail() bool {
	return m.offset >= m.MaxOffset()
}

// ScrollPercent reports scroll progress in [0, 1]. A list that fits in the
// viewport counts as fully scrolled.
func (m *Model[T]) ScrollPercent() float64 {
	max := m.MaxOffset()
	if max <= 0 {
		return 1
	}
	return float64(m.offset) / float64(max)
}

// MoveSelection moves the selection by delta items and scrolls just enough
// to keep it visible.
func (m *Model[T]) MoveSelection(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.selected += delta
	m.clampSelection()
	m.ensureSelectedVisible()
}

// Page moves the selection by one viewport's worth of items.
func (m *Model[T]) Page(dir int) {
	per := VisibleCount(m.config())
	if per < 1 {
		per = 1
	}
	m.MoveSelection(dir * per)
}

// GotoTop jumps to the first item.
func (m *Model[T]) GotoTop() {
	m.offset = 0
	m.selected = 0
}

// GotoBottom jumps to the last item and scrolls to the tail.
func (m *Model[T]) GotoBottom() {
	if n := len(m.items); n > 0 {
		m.selected = n - 1
	}
	m.offset = m.MaxOffset()
}

// ScrollBy moves the viewport without changing the selection.
func (m *Model[T]) ScrollBy(rows int) {
	m.offset += rows
	m.clampOffset()
}

// SetItems replaces the list contents. The scroll offset is preserved and
// re-clamped to the new extent rather than reset, so a refresh does not
// yank the user back to the top. With follow-tail enabled, a viewport that
// was at the bottom sticks to the new bottom.
func (m *Model[T]) SetItems(items []T) {
	wasAtTail := m.AtTail()
	m.items = items
	m.revision++
	if m.cache != nil {
		m.cache.Invalidate()
	}
	if m.followTail && wasAtTail {
		m.GotoBottom()
	}
	m.clamp()
}

// AppendItems adds items to the end. Existing rows keep their cache
// entries; with follow-tail enabled, a viewport at the bottom follows.
func (m *Model[T]) AppendItems(items ...T) {
	if len(items) == 0 {
		return
	}
	wasAtTail := m.AtTail()
	m.items = append(m.items, items...)
	if m.followTail && wasAtTail {
		m.GotoBottom()
	}
	m.clamp()
}

// SetSize resizes the viewport, keeping the offset inside the new extent.
func (m *Model[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.height < 0 {
		m.height = 0
	}
	m.clamp()
}

// SetOffset scrolls to an absolute row offset, clamped to the extent.
func (m *Model[T]) SetOffset(rows int) {
	m.offset = rows
	m.clampOffset()
}

// SetSelected selects item i, clamped into range, and scrolls it into view.
func (m *Model[T]) SetSelected(i int) {
	m.selected = i
	m.clampSelection()
	m.ensureSelectedVisible()
}

// Items returns the backing slice.
func (m *Model[T]) Items() []T { return m.items }

// Len returns the number of items.
func (m *Model[T]) Len() int { return len(m.items) }

// Selected returns the selected index, 0 when the list is empty.
func (m *Model[T]) Selected() int { return m.selected }

// SelectedItem returns the selected item, or the zero value and false when
// the list is empty.
func (m *Model[T]) SelectedItem() (T, bool) {
	if len(m.items) == 0 {
		var zero T
		return zero, false
	}
	return m.items[m.selected], true
}

// Offset returns the scroll offset in rows.
func (m *Model[T]) Offset() int { return m.offset }

// Width returns the viewport width in columns.
func (m *Model[T]) Width() int { return m.width }

// Height returns the total rows View occupies.
func (m *Model[T]) Height() int { return m.height }

// Metrics returns row cache counters; zero when caching is disabled.
func (m *Model[T]) Metrics() CacheMetrics {
	if m.cache == nil {
		return CacheMetrics{}
	}
	return m.cache.Metrics()
}

func (m *Model[T]) ensureSelectedVisible() {
	top := m.selected * m.rowHeight
	bottom := top + m.rowHeight
	if top < m.offset {
		m.offset = top
	} else if rows := m.itemRows(); bottom > m.offset+rows {
		m.offset = bottom - rows
	}
	m.clampOffset()
}

func (m *Model[T]) clamp() {
	m.clampOffset()
	m.clampSelection()
}

func (m *Model[T]) clampOffset() {
	if m.offset < 0 {
		m.offset = 0
	}
	if max := m.MaxOffset(); m.offset > max {
		m.offset = max
	}
}

func (m *Model[T]) clampSelection() {
	if m.selected < 0 {
		m.selected = 0
	}
	if n := len(m.items); n > 0 && m.selected >= n {
		m.selected = n - 1
	} else if n == 0 {
		m.selected = 0
	}
}
