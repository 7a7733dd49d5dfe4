package vlist

import "math"

// DefaultOverscan is the overscan applied by Model when no option overrides
// it. An explicit zero in Config means zero; the default lives one layer up.
const DefaultOverscan = 3

// Config is the geometry of a virtualized list. Heights are in abstract
// units; the TUI model uses terminal rows, a pixel UI would use pixels.
type Config struct {
	// ItemHeight is the uniform height of one item. Zero or negative
	// geometry yields an empty window.
	ItemHeight float64
	// ViewportHeight is the height of the scrollable area.
	ViewportHeight float64
	// Overscan is how many extra items to include above and below the
	// visible band. Negative values are treated as zero.
	Overscan int
}

// normalize repairs degenerate inputs so Compute never divides by zero or
// overflows converting to int.
func (c Config) normalize() Config {
	if c.Overscan < 0 {
		c.Overscan = 0
	}
	if math.IsNaN(c.ItemHeight) || math.IsInf(c.ItemHeight, 0) || c.ItemHeight < 0 {
		c.ItemHeight = 0
	}
	if math.IsNaN(c.ViewportHeight) || c.ViewportHeight < 0 {
		c.ViewportHeight = 0
	}
	return c
}

// Window is the half-open item index range [Start, End) to render.
type Window struct {
	Start int
	End   int
}

// Len returns the number of items in the window.
func (w Window) Len() int {
	return w.End - w.Start
}

// Contains reports whether item index i falls inside the window.
func (w Window) Contains(i int) bool {
	return i >= w.Start && i < w.End
}

// Compute maps a scroll offset onto the window of items worth rendering.
//
// The visible band holds ceil(viewport/item) items; the window widens by
// Overscan items on each side and is clamped to [0, count] independently at
// both ends, so the top of the list simply has no upper margin rather than
// a shifted window. Out-of-range offsets are clamped, never rejected: a
// negative offset behaves like zero and an offset past the end yields an
// empty window at the tail.
func Compute(count int, scrollOffset float64, cfg Config) Window {
	cfg = cfg.normalize()
	if count <= 0 || cfg.ItemHeight == 0 {
		return Window{}
	}
	if math.IsNaN(scrollOffset) || scrollOffset < 0 {
		scrollOffset = 0
	}

	visible := cfg.ViewportHeight / cfg.ItemHeight
	if visible > float64(count) {
		visible = float64(count)
	}
	size := int(math.Ceil(visible)) + 2*cfg.Overscan

	first := math.Floor(scrollOffset/cfg.ItemHeight) - float64(cfg.Overscan)
	switch {
	case first < 0:
		first = 0
	case first > float64(count):
		first = float64(count)
	}

	w := Window{Start: int(first)}
	w.End = w.Start + size
	if w.End > count {
		w.End = count
	}
	return w
}

// VisibleCount returns how many items fit in the viewport, rounding partial
// items up.
func VisibleCount(cfg Config) int {
	cfg = cfg.normalize()
	if cfg.ItemHeight == 0 {
		return 0
	}
	return int(math.Ceil(cfg.ViewportHeight / cfg.ItemHeight))
}

// TotalHeight returns the full extent of the list: count * itemHeight.
// The scrollable region spans this even though only a window is rendered.
func TotalHeight(count int, itemHeight float64) float64 {
	if count <= 0 || math.IsNaN(itemHeight) || math.IsInf(itemHeight, 0) || itemHeight <= 0 {
		return 0
	}
	return float64(count) * itemHeight
}

// MaxOffset returns the largest useful scroll offset: the position where
// the last item sits flush with the bottom of the viewport.
func MaxOffset(count int, cfg Config) float64 {
	cfg = cfg.normalize()
	max := TotalHeight(count, cfg.ItemHeight) - cfg.ViewportHeight
	if max < 0 {
		return 0
	}
	return max
}

// OffsetOf returns the distance from the top of the list to item index i,
// which is the translation applied to a rendered block starting at i.
func OffsetOf(i int, itemHeight float64) float64 {
	if i <= 0 || math.IsNaN(itemHeight) || math.IsInf(itemHeight, 0) || itemHeight <= 0 {
		return 0
	}
	return float64(i) * itemHeight
}

// Slice returns the windowed portion of items. The window is re-clamped to
// the slice bounds, so a stale window cannot panic.
func Slice[T any](items []T, w Window) []T {
	if w.Start < 0 {
		w.Start = 0
	}
	if w.End > len(items) {
		w.End = len(items)
	}
	if w.Start >= w.End {
		return nil
	}
	return items[w.Start:w.End]
}
