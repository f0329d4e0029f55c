package player

import (
	"fmt"
	"strings"
)

// Status of a player in the game. Once a player leaves Alive they never come back.
type Status string

const (
	Alive  Status = "alive"
	Dead   Status = "dead"
	GaveUp Status = "gave_up"
)

// NoEliminationOrder is stored while a player is still alive
const NoEliminationOrder = -1

func (s Status) IsTerminal() bool {
	return s == Dead || s == GaveUp
}

func (s Status) Valid() bool {
	return s == Alive || s == Dead || s == GaveUp
}

// ParseStatus accepts the stored form as well as the french labels used in the original sheet
func ParseStatus(input string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "alive", "vivant":
		return Alive, nil
	case "dead", "mort":
		return Dead, nil
	case "gave_up", "gaveup", "abandon":
		return GaveUp, nil
	default:
		return "", fmt.Errorf("unknown player status %q", input)
	}
}

// Profile fields are opaque to the game rules and only passed through to the views
type Profile struct {
	Name        string `json:"name"`
	Firstname   string `json:"firstname"`
	Year        string `json:"year"`
	PersonPhoto string `json:"personPhoto"`
	FeetPhoto   string `json:"feetPhoto"`
	Phone       string `json:"phone"`
}

// Player struct
type Player struct {
	Nickname string `json:"nickname"`
	// PasswordHash is a bcrypt hash, see HashPassword
	PasswordHash string `json:"-"`
	IsAdmin  bool   `json:"isAdmin"`
	Status   Status `json:"status"`

	// Target is the ID of the hunted player; empty when there is none
	Target string `json:"target"`
	// Action belongs to the edge Player -> Target
	Action string `json:"action"`

	KillCount        int     `json:"killCount"`
	KilledBy         *string `json:"killedBy"`
	EliminationOrder int     `json:"eliminationOrder"`
	// HuntedBy is the last player who had this one as target, kept once the edge is gone
	HuntedBy         *string `json:"huntedBy"`

	Profile
}

// Key normalizes a nickname for lookups
func Key(nickname string) string {
	return strings.ToLower(strings.TrimSpace(nickname))
}

func (p *Player) ID() string {
	return Key(p.Nickname)
}

func (p *Player) IsAlive() bool {
	return p.Status == Alive
}

// InPlay reports whether the player takes part in the assignment graph
func (p *Player) InPlay() bool {
	return !p.IsAdmin && p.Status == Alive
}

func (p *Player) HasTarget() bool {
	return p.Target != ""
}

func (p *Player) HasDeparted() bool {
	return p.EliminationOrder != NoEliminationOrder
}

func (p *Player) Clone() *Player {
	c := *p
	if p.KilledBy != nil {
		k := *p.KilledBy
		c.KilledBy = &k
	}
	if p.HuntedBy != nil {
		h := *p.HuntedBy
		c.HuntedBy = &h
	}
	return &c
}

// New returns an alive player with no assignment yet
func New(nickname, passwordHash string, profile Profile) *Player {
	return &Player{
		Nickname:         strings.TrimSpace(nickname),
		PasswordHash:     passwordHash,
		Status:           Alive,
		EliminationOrder: NoEliminationOrder,
		Profile:          profile,
	}
}
