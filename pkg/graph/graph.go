package graph

import (
	"errors"
	"math/rand"

	"github.com/Skyxo/killer/pkg/player"
)

// Graph is the functional graph of hunters and targets over the players in play.
// Forward edges live on player.Target; hunters is the reverse index (target ID -> hunter ID).
type Graph struct {
	reg     *player.Registry
	hunters map[string]string
}

// New indexes the targets already stored on the registry's players and validates the result
func New(reg *player.Registry) (*Graph, error) {
	g := &Graph{
		reg:     reg,
		hunters: make(map[string]string, reg.Len()),
	}
	for _, p := range reg.All() {
		if !p.HasTarget() {
			continue
		}
		p.Target = player.Key(p.Target)
		if prev, ok := g.hunters[p.Target]; ok {
			return nil, inconsistent(p.Target, "targeted by both %q and %q", prev, p.ID())
		}
		g.hunters[p.Target] = p.ID()
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// NewCycle links the given players into a single cycle, in order, keeping each player's action text
func NewCycle(reg *player.Registry, order []string) (*Graph, error) {
	if len(order) < 2 {
		return nil, errors.New("a cycle needs at least 2 players")
	}
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		p, err := reg.Get(id)
		if err != nil {
			return nil, err
		}
		if !p.InPlay() {
			return nil, inconsistent(p.ID(), "only alive non-admin players can be assigned")
		}
		if seen[p.ID()] {
			return nil, inconsistent(p.ID(), "listed twice in the cycle")
		}
		seen[p.ID()] = true
	}
	for i, id := range order {
		p, _ := reg.Get(id)
		p.Target = player.Key(order[(i+1)%len(order)])
	}
	return New(reg)
}

// NewShuffledCycle links every player in play into one randomly ordered cycle
func NewShuffledCycle(reg *player.Registry, rnd *rand.Rand) (*Graph, error) {
	var order []string
	for _, p := range reg.InPlay() {
		order = append(order, p.ID())
	}
	rnd.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return NewCycle(reg, order)
}

func (g *Graph) Registry() *player.Registry {
	return g.reg
}

func (g *Graph) HunterOf(id string) (string, bool) {
	h, ok := g.hunters[player.Key(id)]
	return h, ok
}

func (g *Graph) TargetOf(id string) (string, bool) {
	p, err := g.reg.Get(id)
	if err != nil || !p.HasTarget() {
		return "", false
	}
	return p.Target, true
}

// Clone returns a graph over a deep copy of the registry; the original is left untouched
func (g *Graph) Clone() *Graph {
	c := &Graph{
		reg:     g.reg.Clone(),
		hunters: make(map[string]string, len(g.hunters)),
	}
	for k, v := range g.hunters {
		c.hunters[k] = v
	}
	return c
}

// Winner reports whether the game is over, and the sole remaining player if there is one
func (g *Graph) Winner() (string, bool) {
	inPlay := g.reg.InPlay()
	switch len(inPlay) {
	case 0:
		return "", true
	case 1:
		return inPlay[0].ID(), true
	default:
		return "", false
	}
}

// Cycles lists every cycle, each starting from its smallest ID
func (g *Graph) Cycles() [][]string {
	var cycles [][]string
	visited := make(map[string]bool)
	for _, p := range g.reg.InPlay() {
		if visited[p.ID()] || !p.HasTarget() {
			continue
		}
		var cycle []string
		cur := p
		for cur != nil && !visited[cur.ID()] {
			visited[cur.ID()] = true
			cycle = append(cycle, cur.ID())
			next, err := g.reg.Get(cur.Target)
			if err != nil {
				break
			}
			cur = next
		}
		cycles = append(cycles, cycle)
	}
	return cycles
}
