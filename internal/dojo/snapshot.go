package dojo

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Snapshot is everything the dashboard shows, fetched in one round trip
// fan-out.
type Snapshot struct {
	Info        GatewayInfo      `json:"info"`
	Tournaments []Tournament     `json:"tournaments"`
	Clans       []Clan           `json:"clans"`
	Venues      []Venue          `json:"venues"`
	Chat        []ChatMessage    `json:"chat"`
	Health      ConnectionHealth `json:"health"`
}

// LoadSnapshot fetches every feed concurrently. The first error cancels the
// remaining fetches and is returned.
func LoadSnapshot(ctx context.Context, g Gateway, chatLimit int) (Snapshot, error) {
	var snap Snapshot
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		info, err := g.Info(ctx)
		snap.Info = info
		return err
	})
	eg.Go(func() error {
		ts, err := g.Tournaments(ctx)
		snap.Tournaments = ts
		return err
	})
	eg.Go(func() error {
		cs, err := g.Clans(ctx)
		snap.Clans = cs
		return err
	})
	eg.Go(func() error {
		vs, err := g.Venues(ctx)
		snap.Venues = vs
		return err
	})
	eg.Go(func() error {
		msgs, err := g.ChatHistory(ctx, chatLimit)
		snap.Chat = msgs
		return err
	})
	eg.Go(func() error {
		h, err := g.Health(ctx)
		snap.Health = h
		return err
	})

	if err := eg.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
