package graph

import (
	"github.com/Skyxo/killer/pkg/player"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Validate returns the first violation found, nil when the graph is sound
func (g *Graph) Validate() error {
	if v := g.Violations(); len(v) > 0 {
		return v[0]
	}
	return nil
}

// Violations checks that the players in play form disjoint cycles with no self-loop, no edge into an admin
// or a departed player, and no edge at all once a single player is left.
func (g *Graph) Violations() []*InconsistentGraphError {
	var ret []*InconsistentGraphError
	inPlay := g.reg.CountInPlay()

	for _, p := range g.reg.All() {
		id := p.ID()
		if !p.InPlay() {
			if p.HasTarget() {
				ret = append(ret, inconsistent(id, "player out of play still holds target %q", p.Target))
			}
			continue
		}
		if inPlay <= 1 {
			if p.HasTarget() {
				ret = append(ret, inconsistent(id, "sole remaining player still holds target %q", p.Target))
			}
			continue
		}
		if !p.HasTarget() {
			ret = append(ret, inconsistent(id, "player in play has no target"))
		} else if p.Target == id {
			ret = append(ret, inconsistent(id, "player targets itself"))
		} else if t, err := g.reg.Get(p.Target); err != nil {
			ret = append(ret, inconsistent(id, "target %q does not exist", p.Target))
		} else if t.IsAdmin {
			ret = append(ret, inconsistent(id, "target %q is an admin", p.Target))
		} else if t.Status != player.Alive {
			ret = append(ret, inconsistent(id, "target %q is %s", p.Target, t.Status))
		}
		if _, ok := g.hunters[id]; !ok {
			ret = append(ret, inconsistent(id, "nobody is hunting this player"))
		}
	}

	targets := maps.Keys(g.hunters)
	slices.Sort(targets)
	for _, target := range targets {
		hunterID := g.hunters[target]
		h, err := g.reg.Get(hunterID)
		if err != nil || h.Target != target {
			ret = append(ret, inconsistent(target, "reverse index says %q hunts this player", hunterID))
		}
	}
	return ret
}
