package game

import (
	"fmt"

	"github.com/Skyxo/killer/pkg/graph"
	"github.com/Skyxo/killer/pkg/player"
)

// Audit checks the whole snapshot: the assignment graph, the kill bookkeeping and the elimination orders.
// An empty result means the state is sound.
func Audit(snap *Snapshot) []*graph.InconsistentGraphError {
	ret := snap.Graph().Violations()

	kills, killed := 0, 0
	orders := make(map[int]string)
	for _, p := range snap.Players() {
		id := p.ID()
		kills += p.KillCount
		if p.Status == player.Dead && p.KilledBy != nil {
			killed++
		}
		if p.IsAdmin {
			if p.KillCount != 0 || p.HasDeparted() {
				ret = append(ret, &graph.InconsistentGraphError{PlayerID: id, Reason: "admin takes part in the game statistics"})
			}
			continue
		}
		switch {
		case p.KillCount < 0:
			ret = append(ret, &graph.InconsistentGraphError{PlayerID: id, Reason: "negative kill count"})
		case p.KilledBy != nil && p.Status != player.Dead:
			ret = append(ret, &graph.InconsistentGraphError{PlayerID: id, Reason: fmt.Sprintf("killed by %q but %s", *p.KilledBy, p.Status)})
		case p.Status == player.Alive && p.HasDeparted():
			ret = append(ret, &graph.InconsistentGraphError{PlayerID: id, Reason: "alive with an elimination order"})
		}
		if !p.HasDeparted() {
			continue
		}
		if p.EliminationOrder < 1 {
			ret = append(ret, &graph.InconsistentGraphError{PlayerID: id, Reason: fmt.Sprintf("invalid elimination order %d", p.EliminationOrder)})
		} else if other, ok := orders[p.EliminationOrder]; ok {
			ret = append(ret, &graph.InconsistentGraphError{PlayerID: id, Reason: fmt.Sprintf("elimination order %d shared with %q", p.EliminationOrder, other)})
		} else {
			orders[p.EliminationOrder] = id
		}
	}
	if kills != killed {
		ret = append(ret, &graph.InconsistentGraphError{PlayerID: "*", Reason: fmt.Sprintf("%d kills credited for %d players killed", kills, killed)})
	}
	return ret
}
