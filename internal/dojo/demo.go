package dojo

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// DemoAPIVersion is the API version the demo gateway reports.
const DemoAPIVersion = "1.2.0"

// demoEpoch anchors all generated timestamps so a given seed always
// produces the same dataset.
var demoEpoch = time.Date(2026, time.March, 14, 18, 0, 0, 0, time.UTC)

// DemoGateway serves a deterministic, seed-derived dataset. It lets every
// screen run full size without a live backend: the same seed always yields
// the same tournaments, clans, venues, and chat backlog.
type DemoGateway struct {
	seed        int64
	tournaments []Tournament
	clans       []Clan
	venues      []Venue

	mu         sync.Mutex
	chat       []ChatMessage
	ambientIdx int
	healthTick int
}

// NewDemoGateway builds the full demo dataset for seed.
func NewDemoGateway(seed int64) *DemoGateway {
	g := &DemoGateway{seed: seed}
	g.venues = generateVenues(seed)
	g.clans = generateClans(seed)
	g.tournaments = generateTournaments(seed, g.venues)
	g.chat = generateChatBacklog(seed)
	return g
}

// Info implements Gateway.
func (g *DemoGateway) Info(ctx context.Context) (GatewayInfo, error) {
	if err := ctx.Err(); err != nil {
		return GatewayInfo{}, err
	}
	return GatewayInfo{Name: "demo", APIVersion: DemoAPIVersion}, nil
}

// Tournaments implements Gateway.
func (g *DemoGateway) Tournaments(ctx context.Context) ([]Tournament, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Tournament, len(g.tournaments))
	copy(out, g.tournaments)
	return out, nil
}

// Clans implements Gateway.
func (g *DemoGateway) Clans(ctx context.Context) ([]Clan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Clan, len(g.clans))
	copy(out, g.clans)
	return out, nil
}

// ClanMembers implements Gateway. Rosters are derived from the clan ID, so
// repeated calls for the same clan return the same members.
func (g *DemoGateway) ClanMembers(ctx context.Context, clanID string) ([]ClanMember, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, c := range g.clans {
		if c.ID == clanID {
			return generateRoster(g.seed, c), nil
		}
	}
	return nil, fmt.Errorf("clan %s not found", clanID)
}

// Venues implements Gateway.
func (g *DemoGateway) Venues(ctx context.Context) ([]Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Venue, len(g.venues))
	copy(out, g.venues)
	return out, nil
}

// ChatHistory implements Gateway.
func (g *DemoGateway) ChatHistory(ctx context.Context, limit int) ([]ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	msgs := g.chat
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

// ChatSince implements Gateway. Every third poll the demo room chimes in
// with an ambient message so the feed stays alive.
func (g *DemoGateway) ChatSince(ctx context.Context, afterID string) ([]ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ambientIdx++
	if g.ambientIdx%3 == 0 {
		line := ambientLines[(g.ambientIdx/3)%len(ambientLines)]
		author := gamerTags[(g.ambientIdx*7)%len(gamerTags)]
		g.chat = append(g.chat, ChatMessage{
			ID:     g.nextChatIDLocked(),
			Author: author,
			Body:   line,
			SentAt: time.Now(),
		})
	}

	// ULIDs sort lexicographically by creation time, so ID comparison is
	// enough to find the tail.
	var out []ChatMessage
	for _, m := range g.chat {
		if m.ID > afterID {
			out = append(out, m)
		}
	}
	return out, nil
}

// SendChat implements Gateway.
func (g *DemoGateway) SendChat(ctx context.Context, author, body string) (ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return ChatMessage{}, err
	}
	if body == "" {
		return ChatMessage{}, fmt.Errorf("empty message")
	}
	if author == "" {
		author = "you"
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	msg := ChatMessage{
		ID:     g.nextChatIDLocked(),
		Author: author,
		Body:   body,
		SentAt: time.Now(),
	}
	g.chat = append(g.chat, msg)
	return msg, nil
}

// Health implements Gateway. The link cycles through a mostly-healthy
// pattern so the status bar has something to show.
func (g *DemoGateway) Health(ctx context.Context) (ConnectionHealth, error) {
	if err := ctx.Err(); err != nil {
		return ConnectionHealth{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.healthTick++
	h := ConnectionHealth{
		State:     ConnConnected,
		Latency:   time.Duration(18+g.healthTick%9*4) * time.Millisecond,
		LastEvent: time.Now(),
	}
	switch {
	case g.healthTick%23 == 0:
		h.State = ConnReconnecting
		h.Reconnects = g.healthTick / 23
	case g.healthTick%7 == 0:
		h.State = ConnDegraded
		h.Latency = time.Duration(140+g.healthTick%5*30) * time.Millisecond
	}
	return h, nil
}

// nextChatIDLocked mints a ULID newer than every ID already in the log, so
// ChatSince can page on ID alone.
func (g *DemoGateway) nextChatIDLocked() string {
	id := ulid.Make().String()
	if n := len(g.chat); n > 0 && id <= g.chat[n-1].ID {
		last := ulid.MustParse(g.chat[n-1].ID)
		id = ulid.MustNew(last.Time()+1, ulid.DefaultEntropy()).String()
	}
	return id
}

var (
	venueAdjectives = []string{"Jade", "Golden", "Iron", "Lucky", "Neon", "Silent", "Crimson", "Velvet", "Rusty", "Electric", "Midnight", "Emerald"}
	venueNouns      = []string{"Tiger", "Dragon", "Cue", "Rack", "Eight", "Pocket", "Break", "Chalk", "Felt", "Diamond"}
	venueSuffixes   = []string{"Billiards", "Pool Hall", "Dojo", "Club", "Tables", "Parlour"}
	streets         = []string{"Brunswick St", "George St", "Vulture St", "Boundary Rd", "Ann St", "Stanley St", "Logan Rd", "Ipswich Rd", "Sandgate Rd", "Kingsford Smith Dr"}
	suburbs         = []string{"Fortitude Valley", "West End", "Woolloongabba", "New Farm", "Paddington", "Chermside", "Sunnybank", "Toowong"}
	venueFeatures   = []string{"9ft tables", "coin-op", "tournament room", "bar", "coaching", "late night", "snooker", "streaming booth"}

	clanAdjectives = []string{"Crimson", "Shadow", "Jade", "Thunder", "Phantom", "Obsidian", "Scarlet", "Drifting", "Howling", "Gilded"}
	clanNouns      = []string{"Cue Syndicate", "Break Brigade", "Rack Runners", "Felt Wolves", "Bank Shot Society", "Chalk Guard", "Pocket Rats", "Masse Order", "Safety Dancers", "Nine Ball Pact"}

	gamerTags = []string{"ShadowBreak", "MidnightScratch", "ChalkDust", "BankShotBetty", "The_Hustler", "RailRider", "NineBallNina", "SafetyFirst", "JumpCueJoe", "SpinDoctor", "CornerPocket", "RunoutRex", "BreakAndRun", "KissShotKai", "DeadStroke"}

	ambientLines = []string{
		"anyone up for a race to 7?",
		"table 3 is free",
		"gg, that clearance was clean",
		"who's in for thursday's bracket?",
		"new house rule: call your banks",
		"that jump shot was illegal and you know it",
		"streaming the final on table 1",
		"rack em",
	}

	chatBacklogLines = []string{
		"welcome to the dojo",
		"season 4 ladder is live",
		"remember to confirm your entry before 6pm",
		"nice win last night",
		"anyone seen my lucky chalk?",
		"scrim vs CCS at 8",
		"table felt on 5 got replaced, plays fast",
		"sign-ups for the open close friday",
	}

	tournamentSeries = []string{"Open", "Masters", "Clan Cup", "Midweek Nine", "Challenge", "Invitational"}
)

func generateVenues(seed int64) []Venue {
	rng := rand.New(rand.NewSource(seed + 1))
	entropy := ulid.Monotonic(rng, 0)

	const count = 240
	venues := make([]Venue, 0, count)
	for i := 0; i < count; i++ {
		ts := demoEpoch.Add(time.Duration(i) * time.Minute)
		name := fmt.Sprintf("%s %s %s",
			venueAdjectives[rng.Intn(len(venueAdjectives))],
			venueNouns[rng.Intn(len(venueNouns))],
			venueSuffixes[rng.Intn(len(venueSuffixes))])
		tables := 4 + rng.Intn(18)
		v := Venue{
			ID:         ulid.MustNew(ulid.Timestamp(ts), entropy).String(),
			Name:       name,
			Address:    fmt.Sprintf("%d %s, %s", 1+rng.Intn(400), streets[rng.Intn(len(streets))], suburbs[rng.Intn(len(suburbs))]),
			Tables:     tables,
			TablesFree: rng.Intn(tables + 1),
			HourlyRate: 8 + rng.Intn(25),
			Rating:     float64(25+rng.Intn(26)) / 10, // 2.5 .. 5.0
			DistanceKm: float64(rng.Intn(250)) / 10,
		}
		nf := 1 + rng.Intn(3)
		for j := 0; j < nf; j++ {
			v.Features = append(v.Features, venueFeatures[rng.Intn(len(venueFeatures))])
		}
		if rng.Intn(3) == 0 {
			v.OwnerClan = clanTag(clanAdjectives[rng.Intn(len(clanAdjectives))], clanNouns[rng.Intn(len(clanNouns))])
		}
		venues = append(venues, v)
	}
	return venues
}

func generateClans(seed int64) []Clan {
	rng := rand.New(rand.NewSource(seed + 2))
	entropy := ulid.Monotonic(rng, 0)

	const count = 380
	clans := make([]Clan, 0, count)
	for i := 0; i < count; i++ {
		ts := demoEpoch.Add(time.Duration(i) * time.Minute)
		adj := clanAdjectives[rng.Intn(len(clanAdjectives))]
		noun := clanNouns[rng.Intn(len(clanNouns))]
		name := adj + " " + noun
		max := 10 + rng.Intn(40)
		wins := rng.Intn(200)
		c := Clan{
			ID:              ulid.MustNew(ulid.Timestamp(ts), entropy).String(),
			Name:            name,
			Tag:             clanTag(adj, noun),
			Description:     fmt.Sprintf("%s, holding down %s.", name, suburbs[rng.Intn(len(suburbs))]),
			MemberCount:     1 + rng.Intn(max),
			MaxMembers:      max,
			Rating:          800 + rng.Intn(1400),
			Wins:            wins,
			Losses:          rng.Intn(150),
			ControlledDojos: rng.Intn(7),
		}
		clans = append(clans, c)
	}
	return clans
}

func clanTag(adj, noun string) string {
	tag := adj[:1]
	for _, w := range []byte(noun) {
		if w >= 'A' && w <= 'Z' {
			tag += string(w)
		}
	}
	if len(tag) > 4 {
		tag = tag[:4]
	}
	return tag
}

func generateTournaments(seed int64, venues []Venue) []Tournament {
	rng := rand.New(rand.NewSource(seed + 3))
	entropy := ulid.Monotonic(rng, 0)

	formats := []TournamentFormat{FormatSingleElimination, FormatDoubleElimination, FormatRoundRobin, FormatSwiss}

	const count = 1000
	ts := make([]Tournament, 0, count)
	for i := 0; i < count; i++ {
		created := demoEpoch.Add(time.Duration(i) * time.Minute)
		venue := venues[rng.Intn(len(venues))]
		max := 8 << rng.Intn(4) // 8, 16, 32, 64
		entry := 5 * (1 + rng.Intn(20))

		t := Tournament{
			ID:              ulid.MustNew(ulid.Timestamp(created), entropy).String(),
			Name:            fmt.Sprintf("%s %s #%d", venue.Name, tournamentSeries[rng.Intn(len(tournamentSeries))], 1+rng.Intn(40)),
			VenueID:         venue.ID,
			VenueName:       venue.Name,
			Format:          formats[rng.Intn(len(formats))],
			EntryFee:        entry,
			MaxParticipants: max,
			StartsAt:        demoEpoch.Add(time.Duration(rng.Intn(60*24*28)-60*24*14) * time.Minute),
		}

		switch roll := rng.Intn(100); {
		case roll < 25:
			t.Status = StatusRegistration
			t.Participants = rng.Intn(max)
		case roll < 40:
			t.Status = StatusInProgress
			t.Participants = max/2 + rng.Intn(max/2+1)
		case roll < 95:
			t.Status = StatusCompleted
			t.Participants = max
		default:
			t.Status = StatusCancelled
			t.Participants = rng.Intn(max / 2)
		}
		t.PrizePool = t.EntryFee * t.Participants
		ts = append(ts, t)
	}
	return ts
}

// generateRoster derives a clan's members from its ID so every call agrees.
func generateRoster(seed int64, c Clan) []ClanMember {
	h := fnv.New64a()
	h.Write([]byte(c.ID))
	rng := rand.New(rand.NewSource(seed ^ int64(h.Sum64())))
	entropy := ulid.Monotonic(rng, 0)

	members := make([]ClanMember, 0, c.MemberCount)
	for i := 0; i < c.MemberCount; i++ {
		role := RoleMember
		switch {
		case i == 0:
			role = RoleLeader
		case i < 1+c.MemberCount/10:
			role = RoleOfficer
		}
		joined := demoEpoch.Add(-time.Duration(rng.Intn(60*24*365)) * time.Minute)
		members = append(members, ClanMember{
			ID:           ulid.MustNew(ulid.Timestamp(joined), entropy).String(),
			GamerTag:     fmt.Sprintf("%s%02d", gamerTags[rng.Intn(len(gamerTags))], rng.Intn(100)),
			Role:         role,
			Contribution: rng.Intn(5000),
			JoinedAt:     joined,
		})
	}
	return members
}

func generateChatBacklog(seed int64) []ChatMessage {
	rng := rand.New(rand.NewSource(seed + 4))
	entropy := ulid.Monotonic(rng, 0)

	const count = 160
	msgs := make([]ChatMessage, 0, count+1)
	opened := demoEpoch.Add(-time.Duration(count+1) * time.Minute)
	msgs = append(msgs, ChatMessage{
		ID:     ulid.MustNew(ulid.Timestamp(opened), entropy).String(),
		Author: "dojopool",
		Body:   "channel opened",
		SentAt: opened,
		System: true,
	})
	for i := 0; i < count; i++ {
		at := demoEpoch.Add(-time.Duration(count-i) * time.Minute)
		msgs = append(msgs, ChatMessage{
			ID:     ulid.MustNew(ulid.Timestamp(at), entropy).String(),
			Author: gamerTags[rng.Intn(len(gamerTags))],
			Body:   chatBacklogLines[rng.Intn(len(chatBacklogLines))],
			SentAt: at,
		})
	}
	return msgs
}
