// Package dojo defines the DojoPool domain model and the gateway contract
// the TUI screens read from.
package dojo

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
)

// TournamentFormat is the bracket structure of a tournament.
type TournamentFormat string

const (
	FormatSingleElimination TournamentFormat = "single_elimination"
	FormatDoubleElimination TournamentFormat = "double_elimination"
	FormatRoundRobin        TournamentFormat = "round_robin"
	FormatSwiss             TournamentFormat = "swiss"
)

// Label returns a human-readable format name.
func (f TournamentFormat) Label() string {
	switch f {
	case FormatSingleElimination:
		return "Single Elimination"
	case FormatDoubleElimination:
		return "Double Elimination"
	case FormatRoundRobin:
		return "Round Robin"
	case FormatSwiss:
		return "Swiss"
	default:
		return string(f)
	}
}

// TournamentStatus is the lifecycle state of a tournament.
type TournamentStatus string

const (
	StatusRegistration TournamentStatus = "registration"
	StatusInProgress   TournamentStatus = "in_progress"
	StatusCompleted    TournamentStatus = "completed"
	StatusCancelled    TournamentStatus = "cancelled"
)

// Label returns a human-readable status name.
func (s TournamentStatus) Label() string {
	switch s {
	case StatusRegistration:
		return "Registration"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// Tournament is a scheduled or running pool tournament at a venue.
type Tournament struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	VenueID         string           `json:"venue_id"`
	VenueName       string           `json:"venue_name"`
	Format          TournamentFormat `json:"format"`
	Status          TournamentStatus `json:"status"`
	EntryFee        int              `json:"entry_fee"`  // DojoCoins
	PrizePool       int              `json:"prize_pool"` // DojoCoins
	Participants    int              `json:"participants"`
	MaxParticipants int              `json:"max_participants"`
	StartsAt        time.Time        `json:"starts_at"`
}

// Open reports whether the tournament still accepts registrations.
func (t Tournament) Open() bool {
	return t.Status == StatusRegistration && t.Participants < t.MaxParticipants
}

// ClanRole is a member's rank within a clan.
type ClanRole string

const (
	RoleLeader  ClanRole = "leader"
	RoleOfficer ClanRole = "officer"
	RoleMember  ClanRole = "member"
)

// Label returns a human-readable role name.
func (r ClanRole) Label() string {
	switch r {
	case RoleLeader:
		return "Leader"
	case RoleOfficer:
		return "Officer"
	case RoleMember:
		return "Member"
	default:
		return string(r)
	}
}

// Clan is a player crew competing for control of dojos.
type Clan struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Tag             string `json:"tag"`
	Description     string `json:"description"`
	MemberCount     int    `json:"member_count"`
	MaxMembers      int    `json:"max_members"`
	Rating          int    `json:"rating"`
	Wins            int    `json:"wins"`
	Losses          int    `json:"losses"`
	ControlledDojos int    `json:"controlled_dojos"`
}

// WinRate returns wins/(wins+losses), or 0 when the clan has no matches.
func (c Clan) WinRate() float64 {
	total := c.Wins + c.Losses
	if total == 0 {
		return 0
	}
	return float64(c.Wins) / float64(total)
}

// ClanMember is one player's membership record.
type ClanMember struct {
	ID           string    `json:"id"`
	GamerTag     string    `json:"gamer_tag"`
	Role         ClanRole  `json:"role"`
	Contribution int       `json:"contribution"`
	JoinedAt     time.Time `json:"joined_at"`
}

// Venue is a pool hall (a "dojo") players can check in at.
type Venue struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Tables     int      `json:"tables"`
	TablesFree int      `json:"tables_free"`
	HourlyRate int      `json:"hourly_rate"` // DojoCoins per hour
	Rating     float64  `json:"rating"`
	DistanceKm float64  `json:"distance_km"`
	Features   []string `json:"features,omitempty"`
	OwnerClan  string   `json:"owner_clan,omitempty"` // clan tag, "" when unclaimed
}

// ChatMessage is one line in a dojo chat channel.
type ChatMessage struct {
	ID     string    `json:"id"`
	Author string    `json:"author"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sent_at"`
	System bool      `json:"system,omitempty"`
}

// ConnState is the gateway link state shown in the status bar.
type ConnState string

const (
	ConnConnected    ConnState = "connected"
	ConnDegraded     ConnState = "degraded"
	ConnReconnecting ConnState = "reconnecting"
	ConnOffline      ConnState = "offline"
)

// ConnectionHealth is a read-only snapshot of the gateway link.
type ConnectionHealth struct {
	State      ConnState     `json:"state"`
	Latency    time.Duration `json:"latency"`
	LastEvent  time.Time     `json:"last_event"`
	Reconnects int           `json:"reconnects"`
}

// GatewayInfo identifies a gateway and the API version it speaks.
type GatewayInfo struct {
	Name       string `json:"name"`
	APIVersion string `json:"api_version"`
}

// CheckCompatibility verifies the gateway speaks at least minVersion and
// shares its major version. Majors signal breaking API changes.
func CheckCompatibility(info GatewayInfo, minVersion string) error {
	min, err := semver.NewVersion(minVersion)
	if err != nil {
		return fmt.Errorf("parse required API version %q: %w", minVersion, err)
	}
	got, err := semver.NewVersion(info.APIVersion)
	if err != nil {
		return fmt.Errorf("parse gateway API version %q: %w", info.APIVersion, err)
	}
	if got.Major() != min.Major() {
		return fmt.Errorf("gateway %s speaks API v%s, need major v%d", info.Name, info.APIVersion, min.Major())
	}
	if got.LessThan(min) {
		return fmt.Errorf("gateway %s speaks API v%s, need at least v%s", info.Name, info.APIVersion, minVersion)
	}
	return nil
}
