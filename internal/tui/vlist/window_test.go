package vlist_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SgtClickClack/DojoPool-sub003/internal/tui/vlist"
)

func TestCompute(t *testing.T) {
	base := vlist.Config{ItemHeight: 50, ViewportHeight: 400, Overscan: 3}

	tests := []struct {
		name   string
		count  int
		scroll float64
		cfg    vlist.Config
		want   vlist.Window
	}{
		{
			// 8 visible + 3 overscan each side; floor(1000/50)=20, minus 3.
			name:   "interior position",
			count:  1000,
			scroll: 1000,
			cfg:    base,
			want:   vlist.Window{Start: 17, End: 31},
		},
		{
			name:   "top of list has no upper margin",
			count:  1000,
			scroll: 0,
			cfg:    base,
			want:   vlist.Window{Start: 0, End: 14},
		},
		{
			name:   "overscan partially clamped at top",
			count:  1000,
			scroll: 100, // floor(100/50)=2, minus 3 clamps to 0
			cfg:    base,
			want:   vlist.Window{Start: 0, End: 14},
		},
		{
			name:   "bottom of list ends exactly at count",
			count:  1000,
			scroll: 49600, // max offset: 1000*50 - 400
			cfg:    base,
			want:   vlist.Window{Start: 989, End: 1000},
		},
		{
			name:   "empty list",
			count:  0,
			scroll: 1000,
			cfg:    base,
			want:   vlist.Window{},
		},
		{
			name:   "negative scroll behaves like zero",
			count:  1000,
			scroll: -500,
			cfg:    base,
			want:   vlist.Window{Start: 0, End: 14},
		},
		{
			name:   "scroll past the extent collapses at the tail",
			count:  1000,
			scroll: 100000,
			cfg:    base,
			want:   vlist.Window{Start: 1000, End: 1000},
		},
		{
			name:   "zero overscan is exactly the visible band",
			count:  1000,
			scroll: 1000,
			cfg:    vlist.Config{ItemHeight: 50, ViewportHeight: 400},
			want:   vlist.Window{Start: 20, End: 28},
		},
		{
			name:   "negative overscan treated as zero",
			count:  1000,
			scroll: 1000,
			cfg:    vlist.Config{ItemHeight: 50, ViewportHeight: 400, Overscan: -2},
			want:   vlist.Window{Start: 20, End: 28},
		},
		{
			name:   "partial item rounds the visible count up",
			count:  1000,
			scroll: 0,
			cfg:    vlist.Config{ItemHeight: 50, ViewportHeight: 30},
			want:   vlist.Window{Start: 0, End: 1},
		},
		{
			name:   "non-integer viewport ratio rounds up",
			count:  1000,
			scroll: 0,
			cfg:    vlist.Config{ItemHeight: 60, ViewportHeight: 400, Overscan: 3},
			want:   vlist.Window{Start: 0, End: 13}, // ceil(6.67)=7, +6 overscan
		},
		{
			name:   "fractional scroll floors to the covering item",
			count:  1000,
			scroll: 125,
			cfg:    vlist.Config{ItemHeight: 50, ViewportHeight: 400},
			want:   vlist.Window{Start: 2, End: 10},
		},
		{
			name:   "window never exceeds the item count",
			count:  5,
			scroll: 0,
			cfg:    base,
			want:   vlist.Window{Start: 0, End: 5},
		},
		{
			name:   "zero item height yields nothing to render",
			count:  1000,
			scroll: 1000,
			cfg:    vlist.Config{ItemHeight: 0, ViewportHeight: 400, Overscan: 3},
			want:   vlist.Window{},
		},
		{
			name:   "zero viewport still renders the overscan margin",
			count:  1000,
			scroll: 500,
			cfg:    vlist.Config{ItemHeight: 50, ViewportHeight: 0, Overscan: 3},
			want:   vlist.Window{Start: 7, End: 13},
		},
		{
			name:   "NaN scroll behaves like zero",
			count:  1000,
			scroll: math.NaN(),
			cfg:    base,
			want:   vlist.Window{Start: 0, End: 14},
		},
		{
			name:   "NaN item height yields nothing to render",
			count:  1000,
			scroll: 1000,
			cfg:    vlist.Config{ItemHeight: math.NaN(), ViewportHeight: 400},
			want:   vlist.Window{},
		},
		{
			name:   "infinite viewport renders everything once",
			count:  40,
			scroll: 0,
			cfg:    vlist.Config{ItemHeight: 50, ViewportHeight: math.Inf(1), Overscan: 3},
			want:   vlist.Window{Start: 0, End: 40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := vlist.Compute(tt.count, tt.scroll, tt.cfg)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestComputeBounds sweeps a grid of inputs checking the structural
// invariants: the window stays inside [0, count] and covers every item that
// intersects the viewport.
func TestComputeBounds(t *testing.T) {
	cfg := vlist.Config{ItemHeight: 50, ViewportHeight: 400, Overscan: 3}

	for _, count := range []int{0, 1, 7, 8, 100, 1000} {
		for scroll := float64(-100); scroll <= 55000; scroll += 333 {
			w := vlist.Compute(count, scroll, cfg)

			assert.GreaterOrEqual(t, w.Start, 0)
			assert.LessOrEqual(t, w.Start, w.End)
			assert.LessOrEqual(t, w.End, count)

			if count == 0 {
				continue
			}
			max := vlist.MaxOffset(count, cfg)
			eff := scroll
			if eff < 0 {
				eff = 0
			}
			if eff > max {
				continue // past the extent; emptiness already allowed above
			}
			firstVisible := int(eff / 50)
			lastVisible := int((eff + 400 - 1) / 50)
			if lastVisible >= count {
				lastVisible = count - 1
			}
			assert.True(t, w.Contains(firstVisible),
				"count=%d scroll=%v window=%+v misses first visible %d", count, scroll, w, firstVisible)
			assert.True(t, w.Contains(lastVisible),
				"count=%d scroll=%v window=%+v misses last visible %d", count, scroll, w, lastVisible)
		}
	}
}

func TestWindowLenAndContains(t *testing.T) {
	w := vlist.Window{Start: 17, End: 31}

	assert.Equal(t, 14, w.Len())
	assert.True(t, w.Contains(17))
	assert.True(t, w.Contains(30))
	assert.False(t, w.Contains(31), "End is exclusive")
	assert.False(t, w.Contains(16))
	assert.Zero(t, vlist.Window{}.Len())
}

func TestVisibleCount(t *testing.T) {
	assert.Equal(t, 8, vlist.VisibleCount(vlist.Config{ItemHeight: 50, ViewportHeight: 400}))
	assert.Equal(t, 7, vlist.VisibleCount(vlist.Config{ItemHeight: 60, ViewportHeight: 400}))
	assert.Equal(t, 1, vlist.VisibleCount(vlist.Config{ItemHeight: 50, ViewportHeight: 30}))
	assert.Zero(t, vlist.VisibleCount(vlist.Config{ItemHeight: 0, ViewportHeight: 400}))
	assert.Zero(t, vlist.VisibleCount(vlist.Config{ItemHeight: 50, ViewportHeight: 0}))
}

func TestTotalHeight(t *testing.T) {
	assert.Equal(t, 50000.0, vlist.TotalHeight(1000, 50))
	assert.Zero(t, vlist.TotalHeight(0, 50))
	assert.Zero(t, vlist.TotalHeight(10, 0))
	assert.Zero(t, vlist.TotalHeight(10, math.NaN()))
}

func TestMaxOffset(t *testing.T) {
	cfg := vlist.Config{ItemHeight: 50, ViewportHeight: 400}

	assert.Equal(t, 49600.0, vlist.MaxOffset(1000, cfg))
	assert.Zero(t, vlist.MaxOffset(0, cfg))
	assert.Zero(t, vlist.MaxOffset(5, cfg), "list shorter than the viewport cannot scroll")
}

func TestOffsetOf(t *testing.T) {
	assert.Equal(t, 850.0, vlist.OffsetOf(17, 50))
	assert.Zero(t, vlist.OffsetOf(0, 50))
	assert.Zero(t, vlist.OffsetOf(-3, 50))
	assert.Zero(t, vlist.OffsetOf(17, 0))
}

func TestSlice(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	assert.Equal(t, []int{2, 3, 4}, vlist.Slice(items, vlist.Window{Start: 2, End: 5}))
	assert.Nil(t, vlist.Slice(items, vlist.Window{Start: 5, End: 5}))
	assert.Nil(t, vlist.Slice([]int{}, vlist.Window{Start: 0, End: 3}))

	// A window computed against a longer list re-clamps instead of panicking.
	assert.Equal(t, []int{8, 9}, vlist.Slice(items, vlist.Window{Start: 8, End: 14}))
	assert.Equal(t, []int{0, 1}, vlist.Slice(items, vlist.Window{Start: -2, End: 2}))
}
