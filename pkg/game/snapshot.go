package game

import (
	"time"

	"github.com/Skyxo/killer/pkg/graph"
	"github.com/Skyxo/killer/pkg/player"
)

// Snapshot is a consistent, read-only view of the game taken between two departures.
// The players it returns are shared with other readers and must not be modified.
type Snapshot struct {
	graph *graph.Graph

	GameOver   bool      `json:"gameOver"`
	Winner     string    `json:"winner,omitempty"`
	Departures int       `json:"departures"`
	TakenAt    time.Time `json:"takenAt"`
}

type Counts struct {
	Alive  int `json:"alive"`
	Dead   int `json:"dead"`
	GaveUp int `json:"gaveUp"`
	Admins int `json:"admins"`
}

func newSnapshot(g *graph.Graph, departures int, now time.Time) *Snapshot {
	winner, over := g.Winner()
	return &Snapshot{
		graph:      g,
		GameOver:   over,
		Winner:     winner,
		Departures: departures,
		TakenAt:    now,
	}
}

func (snap *Snapshot) Get(id string) (*player.Player, error) {
	return snap.graph.Registry().Get(id)
}

// Players returns every player, admins included, ordered by ID
func (snap *Snapshot) Players() []*player.Player {
	return snap.graph.Registry().All()
}

func (snap *Snapshot) Graph() *graph.Graph {
	return snap.graph
}

// Target returns the player hunted by id, nil when there is none
func (snap *Snapshot) Target(id string) *player.Player {
	tid, ok := snap.graph.TargetOf(id)
	if !ok {
		return nil
	}
	t, err := snap.graph.Registry().Get(tid)
	if err != nil {
		return nil
	}
	return t
}

func (snap *Snapshot) Counts() Counts {
	var c Counts
	for _, p := range snap.Players() {
		if p.IsAdmin {
			c.Admins++
			continue
		}
		switch p.Status {
		case player.Alive:
			c.Alive++
		case player.Dead:
			c.Dead++
		case player.GaveUp:
			c.GaveUp++
		}
	}
	return c
}
