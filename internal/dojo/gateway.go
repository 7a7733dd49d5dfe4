package dojo

import "context"

// Gateway is the read surface the screens are built against. The demo
// gateway is the only in-tree implementation; network-backed gateways plug
// in behind the same contract.
type Gateway interface {
	// Info identifies the gateway for the API compatibility gate.
	Info(ctx context.Context) (GatewayInfo, error)

	Tournaments(ctx context.Context) ([]Tournament, error)
	Clans(ctx context.Context) ([]Clan, error)
	ClanMembers(ctx context.Context, clanID string) ([]ClanMember, error)
	Venues(ctx context.Context) ([]Venue, error)

	// ChatHistory returns up to limit most recent messages, oldest first.
	ChatHistory(ctx context.Context, limit int) ([]ChatMessage, error)
	// ChatSince returns messages newer than afterID, oldest first.
	ChatSince(ctx context.Context, afterID string) ([]ChatMessage, error)
	// SendChat posts a message and returns it with its assigned ID.
	SendChat(ctx context.Context, author, body string) (ChatMessage, error)

	// Health reports the link state shown in the status bar.
	Health(ctx context.Context) (ConnectionHealth, error)
}
