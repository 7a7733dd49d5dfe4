package dojo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SgtClickClack/DojoPool-sub003/internal/dojo"
)

func TestCheckCompatibility(t *testing.T) {
	tests := []struct {
		name    string
		got     string
		min     string
		wantErr string
	}{
		{name: "exact match", got: "1.0.0", min: "1.0.0"},
		{name: "newer minor", got: "1.4.2", min: "1.0.0"},
		{name: "older minor", got: "1.0.0", min: "1.2.0", wantErr: "at least"},
		{name: "newer major", got: "2.0.0", min: "1.0.0", wantErr: "major"},
		{name: "older major", got: "1.9.0", min: "2.0.0", wantErr: "major"},
		{name: "bad gateway version", got: "not-a-version", min: "1.0.0", wantErr: "parse gateway"},
		{name: "bad required version", got: "1.0.0", min: "", wantErr: "parse required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dojo.CheckCompatibility(dojo.GatewayInfo{Name: "demo", APIVersion: tt.got}, tt.min)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTournamentOpen(t *testing.T) {
	tr := dojo.Tournament{Status: dojo.StatusRegistration, Participants: 5, MaxParticipants: 16}
	assert.True(t, tr.Open())

	tr.Participants = 16
	assert.False(t, tr.Open(), "full bracket is closed")

	tr.Participants = 5
	tr.Status = dojo.StatusInProgress
	assert.False(t, tr.Open(), "running tournament is closed")
}

func TestClanWinRate(t *testing.T) {
	assert.Zero(t, dojo.Clan{}.WinRate())
	assert.InDelta(t, 0.75, dojo.Clan{Wins: 75, Losses: 25}.WinRate(), 1e-9)
}

func TestEnumLabels(t *testing.T) {
	assert.Equal(t, "Double Elimination", dojo.FormatDoubleElimination.Label())
	assert.Equal(t, "Registration", dojo.StatusRegistration.Label())
	assert.Equal(t, "Officer", dojo.RoleOfficer.Label())

	// Unknown values fall through verbatim rather than panicking.
	assert.Equal(t, "freeze_tag", dojo.TournamentFormat("freeze_tag").Label())
}
