package player

import (
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var ErrNotFound = errors.New("player not found")

// Registry holds every participant, keyed by lowercase nickname.
// It performs existence checks only; the game rules live in the graph and the session.
type Registry struct {
	players map[string]*Player
}

func NewRegistry(players ...*Player) (*Registry, error) {
	reg := &Registry{players: make(map[string]*Player, len(players))}
	for _, p := range players {
		if err := reg.Add(p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (reg *Registry) Add(p *Player) error {
	if p == nil || p.ID() == "" {
		return errors.New("cannot register a player without a nickname")
	}
	if _, ok := reg.players[p.ID()]; ok {
		return fmt.Errorf("duplicate nickname %q", p.Nickname)
	}
	if p.Status == "" {
		p.Status = Alive
	}
	if !p.Status.Valid() {
		return fmt.Errorf("player %q has invalid status %q", p.Nickname, p.Status)
	}
	reg.players[p.ID()] = p
	return nil
}

func (reg *Registry) Get(id string) (*Player, error) {
	p, ok := reg.players[Key(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

func (reg *Registry) Exists(id string) bool {
	_, ok := reg.players[Key(id)]
	return ok
}

// UpsertStatus sets the status of an existing player; extra, when not nil, applies further field changes
func (reg *Registry) UpsertStatus(id string, status Status, extra func(p *Player)) error {
	p, err := reg.Get(id)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	p.Status = status
	if extra != nil {
		extra(p)
	}
	return nil
}

// All returns every player ordered by ID. Callers resort as they need.
func (reg *Registry) All() []*Player {
	ids := maps.Keys(reg.players)
	slices.Sort(ids)
	ret := make([]*Player, 0, len(ids))
	for _, id := range ids {
		ret = append(ret, reg.players[id])
	}
	return ret
}

// InPlay returns the alive non-admin players ordered by ID
func (reg *Registry) InPlay() []*Player {
	var ret []*Player
	for _, p := range reg.All() {
		if p.InPlay() {
			ret = append(ret, p)
		}
	}
	return ret
}

func (reg *Registry) CountInPlay() int {
	n := 0
	for _, p := range reg.players {
		if p.InPlay() {
			n++
		}
	}
	return n
}

func (reg *Registry) Len() int {
	return len(reg.players)
}

// Clone deep-copies every player
func (reg *Registry) Clone() *Registry {
	c := &Registry{players: make(map[string]*Player, len(reg.players))}
	for k, p := range reg.players {
		c.players[k] = p.Clone()
	}
	return c
}
