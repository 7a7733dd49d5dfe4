package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SgtClickClack/DojoPool-sub003/internal/dojo"
)

func demoVenues(n int) []dojo.Venue {
	vs := make([]dojo.Venue, 0, n)
	for i := 0; i < n; i++ {
		v := dojo.Venue{
			ID:         fmt.Sprintf("v-%03d", i),
			Name:       fmt.Sprintf("Hall %03d", i),
			Address:    fmt.Sprintf("%d Brunswick St, Fortitude Valley", i+1),
			Tables:     10,
			TablesFree: i % 11,
			HourlyRate: 10 + i%20,
			Rating:     2.5 + float64(i%26)/10,
			DistanceKm: float64(i) / 4,
			Features:   []string{"9ft tables"},
		}
		if i%4 == 0 {
			v.OwnerClan = "JT"
		}
		vs = append(vs, v)
	}
	return vs
}

func newTestVenuesModel(vs []dojo.Venue) *VenuesModel {
	return NewVenuesModel(context.Background(), func(context.Context) ([]dojo.Venue, error) {
		return vs, nil
	})
}

func loadVenues(t *testing.T, m *VenuesModel) {
	t.Helper()
	_, _ = m.Update(m.fetchCmd())
	require.Equal(t, stateList, m.state)
}

func TestVenuesModelTwoRowCards(t *testing.T) {
	m := newTestVenuesModel(demoVenues(200))
	loadVenues(t, m)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	// Every card occupies exactly two rows, so the list body holds
	// floor(rows/2) full cards plus a partial one at most.
	view := m.list.View()
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, m.list.Height())

	w := m.list.Window()
	assert.LessOrEqual(t, w.Len(), m.list.Height()/venueRowHeight+2*3+1,
		"windowed cards stay proportional to the viewport")
}

func TestVenuesModelSortCycle(t *testing.T) {
	m := newTestVenuesModel(demoVenues(40))
	loadVenues(t, m)

	// Default: rating, descending.
	for i := 1; i < len(m.filtered); i++ {
		assert.GreaterOrEqual(t, m.filtered[i-1].Rating, m.filtered[i].Rating)
	}

	_, _ = m.Update(keyMsg("s"))
	require.Equal(t, VenueSortByRate, m.sortBy)
	for i := 1; i < len(m.filtered); i++ {
		assert.LessOrEqual(t, m.filtered[i-1].HourlyRate, m.filtered[i].HourlyRate)
	}

	_, _ = m.Update(keyMsg("s"))
	require.Equal(t, VenueSortByTables, m.sortBy)
	for i := 1; i < len(m.filtered); i++ {
		assert.GreaterOrEqual(t, m.filtered[i-1].TablesFree, m.filtered[i].TablesFree)
	}

	_, _ = m.Update(keyMsg("s"))
	require.Equal(t, VenueSortByDistance, m.sortBy)
	_, _ = m.Update(keyMsg("s"))
	assert.Equal(t, VenueSortByRating, m.sortBy, "cycle wraps")
}

func TestVenuesModelFilterByFeatureAndClan(t *testing.T) {
	vs := demoVenues(20)
	vs[3].Features = []string{"snooker"}
	m := newTestVenuesModel(vs)
	loadVenues(t, m)

	_, _ = m.Update(keyMsg("/"))
	for _, r := range "snooker" {
		_, _ = m.Update(keyMsg(string(r)))
	}
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "Hall 003", m.filtered[0].Name)

	// Clear, then filter by owning clan tag.
	_, _ = m.Update(keyMsg("esc"))
	_, _ = m.Update(keyMsg("/"))
	for _, r := range "jt" {
		_, _ = m.Update(keyMsg(string(r)))
	}
	require.NotEmpty(t, m.filtered)
	for _, v := range m.filtered {
		assert.Equal(t, "JT", v.OwnerClan)
	}
}

func TestVenuesModelDetail(t *testing.T) {
	m := newTestVenuesModel(demoVenues(5))
	loadVenues(t, m)

	_, _ = m.Update(keyMsg("enter"))
	require.Equal(t, stateDetail, m.state)

	selected, ok := m.list.SelectedItem()
	require.True(t, ok)
	view := m.View()
	assert.Contains(t, view, selected.Name)
	assert.Contains(t, view, "tables")

	_, _ = m.Update(keyMsg("backspace"))
	assert.Equal(t, stateList, m.state)
}

func TestRenderVenuesSummary(t *testing.T) {
	out := RenderVenuesSummary(demoVenues(8))
	assert.Contains(t, out, "Venues:")
	assert.Contains(t, out, "8")
	assert.Contains(t, out, "Clan-held:")
}
