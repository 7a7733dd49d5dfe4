package dojo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SgtClickClack/DojoPool-sub003/internal/dojo"
)

func TestLoadSnapshot(t *testing.T) {
	g := dojo.NewDemoGateway(7)

	snap, err := dojo.LoadSnapshot(context.Background(), g, 25)
	require.NoError(t, err)

	assert.Equal(t, "demo", snap.Info.Name)
	assert.NotEmpty(t, snap.Tournaments)
	assert.NotEmpty(t, snap.Clans)
	assert.NotEmpty(t, snap.Venues)
	assert.Len(t, snap.Chat, 25)
	assert.NotZero(t, snap.Health.State)
}

// failingGateway wraps the demo gateway and fails one feed.
type failingGateway struct {
	*dojo.DemoGateway
	err error
}

func (f *failingGateway) Venues(ctx context.Context) ([]dojo.Venue, error) {
	return nil, f.err
}

func TestLoadSnapshotPropagatesError(t *testing.T) {
	boom := errors.New("venue feed down")
	g := &failingGateway{DemoGateway: dojo.NewDemoGateway(7), err: boom}

	snap, err := dojo.LoadSnapshot(context.Background(), g, 10)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, snap, "a failed snapshot returns nothing partial")
}

func TestLoadSnapshotCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dojo.LoadSnapshot(ctx, dojo.NewDemoGateway(7), 10)
	assert.ErrorIs(t, err, context.Canceled)
}
