package graph

import (
	"fmt"

	"github.com/Skyxo/killer/pkg/player"
)

// Repair describes the edges rewritten by RemoveFromCycle
type Repair struct {
	Leaver    string `json:"leaver"`
	Hunter    string `json:"hunter"`
	NewTarget string `json:"newTarget"`
	Action    string `json:"action"`

	// Spliced is set when the hunter was left alone in a 2-cycle and got linked into another cycle
	Spliced string `json:"spliced,omitempty"`
	// Winner is set when the removal leaves a single player in play
	Winner string `json:"winner,omitempty"`
}

// Touched returns the IDs of every player whose edge changed
func (r Repair) Touched() []string {
	ids := []string{r.Leaver, r.Hunter}
	if r.Spliced != "" {
		ids = append(ids, r.Spliced)
	}
	return ids
}

// RemoveFromCycle unlinks a player who is about to leave the game (still Alive when called).
// The leaver's hunter takes over the leaver's target along with the action attached to that edge.
// Nothing is mutated unless every lookup succeeds.
func (g *Graph) RemoveFromCycle(leavingID string) (Repair, error) {
	leaver, err := g.reg.Get(leavingID)
	if err != nil {
		return Repair{}, err
	}
	id := leaver.ID()
	if !leaver.InPlay() {
		return Repair{}, inconsistent(id, "leaving player is not in play")
	}

	hunterID, ok := g.hunters[id]
	if !ok {
		return Repair{}, inconsistent(id, "nobody is hunting this player")
	}
	if hunterID == id {
		return Repair{}, inconsistent(id, "player hunts itself")
	}
	hunter, err := g.reg.Get(hunterID)
	if err != nil || !hunter.InPlay() || hunter.Target != id {
		return Repair{}, inconsistent(id, "reverse index points to %q which does not hunt this player", hunterID)
	}
	if !leaver.HasTarget() {
		return Repair{}, inconsistent(id, "player in play has no target")
	}
	newTargetID := leaver.Target
	newTarget, err := g.reg.Get(newTargetID)
	if err != nil || !newTarget.InPlay() {
		return Repair{}, inconsistent(id, "target %q is not in play", newTargetID)
	}

	repair := Repair{
		Leaver:    id,
		Hunter:    hunterID,
		NewTarget: newTargetID,
		Action:    leaver.Action,
	}
	remaining := g.reg.CountInPlay() - 1

	if hunterID == newTargetID {
		if remaining <= 1 {
			hunter.Target = ""
			hunter.Action = ""
			delete(g.hunters, hunterID)
			repair.NewTarget = ""
			repair.Action = ""
			repair.Winner = hunterID
		} else {
			// other cycles remain: link the stranded hunter into one of them
			other, err := g.spliceCandidate(id, hunterID)
			if err != nil {
				return Repair{}, err
			}
			next := other.Target
			hunter.Target = next
			hunter.Action = other.Action
			other.Target = hunterID
			other.Action = leaver.Action
			g.hunters[next] = hunterID
			g.hunters[hunterID] = other.ID()

			repair.NewTarget = next
			repair.Action = hunter.Action
			repair.Spliced = other.ID()
		}
	} else {
		hunter.Target = newTargetID
		hunter.Action = leaver.Action
		g.hunters[newTargetID] = hunterID
	}

	delete(g.hunters, id)
	leaver.Target = ""
	leaver.Action = ""
	return repair, nil
}

func (g *Graph) spliceCandidate(exclude ...string) (*player.Player, error) {
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	for _, p := range g.reg.InPlay() {
		if skip[p.ID()] {
			continue
		}
		if !p.HasTarget() || skip[p.Target] {
			return nil, inconsistent(p.ID(), "cannot splice through a broken edge")
		}
		return p, nil
	}
	return nil, inconsistent(fmt.Sprint(exclude), "no other cycle to splice into")
}
