package dojo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SgtClickClack/DojoPool-sub003/internal/dojo"
)

func TestDemoGatewayDeterministic(t *testing.T) {
	ctx := context.Background()
	a := dojo.NewDemoGateway(7)
	b := dojo.NewDemoGateway(7)

	ta, err := a.Tournaments(ctx)
	require.NoError(t, err)
	tb, err := b.Tournaments(ctx)
	require.NoError(t, err)
	assert.Equal(t, ta, tb, "same seed must yield the same tournaments")
	assert.Len(t, ta, 1000)

	va, err := a.Venues(ctx)
	require.NoError(t, err)
	vb, err := b.Venues(ctx)
	require.NoError(t, err)
	assert.Equal(t, va, vb)

	other := dojo.NewDemoGateway(8)
	to, err := other.Tournaments(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, ta[0].ID, to[0].ID, "different seeds diverge")
}

func TestDemoGatewayReturnsCopies(t *testing.T) {
	ctx := context.Background()
	g := dojo.NewDemoGateway(1)

	first, err := g.Clans(ctx)
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := g.Clans(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second[0].Name, "callers must not share backing arrays")
}

func TestDemoGatewayInfoCompatible(t *testing.T) {
	g := dojo.NewDemoGateway(1)
	info, err := g.Info(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "demo", info.Name)
	assert.NoError(t, dojo.CheckCompatibility(info, "1.0.0"))
}

func TestDemoGatewayTournamentInvariants(t *testing.T) {
	g := dojo.NewDemoGateway(3)
	ts, err := g.Tournaments(context.Background())
	require.NoError(t, err)

	for _, tr := range ts {
		assert.NotEmpty(t, tr.ID)
		assert.NotEmpty(t, tr.VenueID)
		assert.LessOrEqual(t, tr.Participants, tr.MaxParticipants, tr.Name)
		assert.Equal(t, tr.EntryFee*tr.Participants, tr.PrizePool, tr.Name)
	}
}

func TestDemoGatewayClanMembers(t *testing.T) {
	ctx := context.Background()
	g := dojo.NewDemoGateway(5)

	clans, err := g.Clans(ctx)
	require.NoError(t, err)
	clan := clans[0]

	roster, err := g.ClanMembers(ctx, clan.ID)
	require.NoError(t, err)
	require.Len(t, roster, clan.MemberCount)
	assert.Equal(t, dojo.RoleLeader, roster[0].Role)

	again, err := g.ClanMembers(ctx, clan.ID)
	require.NoError(t, err)
	assert.Equal(t, roster, again, "rosters are stable per clan")

	_, err = g.ClanMembers(ctx, "no-such-clan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDemoGatewayChat(t *testing.T) {
	ctx := context.Background()
	g := dojo.NewDemoGateway(2)

	history, err := g.ChatHistory(ctx, 50)
	require.NoError(t, err)
	require.Len(t, history, 50)
	for i := 1; i < len(history); i++ {
		assert.Greater(t, history[i].ID, history[i-1].ID, "history is oldest first")
	}

	last := history[len(history)-1]

	sent, err := g.SendChat(ctx, "RackEmUp", "race to 5 anyone?")
	require.NoError(t, err)
	assert.Greater(t, sent.ID, last.ID)

	fresh, err := g.ChatSince(ctx, last.ID)
	require.NoError(t, err)
	require.NotEmpty(t, fresh)
	ids := make([]string, 0, len(fresh))
	for _, m := range fresh {
		ids = append(ids, m.ID)
	}
	assert.Contains(t, ids, sent.ID)

	_, err = g.SendChat(ctx, "RackEmUp", "")
	require.Error(t, err)
}

func TestDemoGatewayChatAmbient(t *testing.T) {
	ctx := context.Background()
	g := dojo.NewDemoGateway(2)

	history, err := g.ChatHistory(ctx, 1)
	require.NoError(t, err)
	after := history[0].ID

	// Every third poll synthesizes an ambient message.
	var got []dojo.ChatMessage
	for i := 0; i < 3; i++ {
		msgs, err := g.ChatSince(ctx, after)
		require.NoError(t, err)
		got = append(got, msgs...)
	}
	assert.NotEmpty(t, got)
}

func TestDemoGatewayHealthRotation(t *testing.T) {
	ctx := context.Background()
	g := dojo.NewDemoGateway(2)

	seen := map[dojo.ConnState]bool{}
	for i := 0; i < 30; i++ {
		h, err := g.Health(ctx)
		require.NoError(t, err)
		assert.Positive(t, h.Latency)
		seen[h.State] = true
	}
	assert.True(t, seen[dojo.ConnConnected])
	assert.True(t, seen[dojo.ConnDegraded])
	assert.True(t, seen[dojo.ConnReconnecting])
}

func TestDemoGatewayHonorsContext(t *testing.T) {
	g := dojo.NewDemoGateway(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Tournaments(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = g.ChatHistory(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = g.Health(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
