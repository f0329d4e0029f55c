package graph

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/Skyxo/killer/pkg/player"
)

// makeRing builds A->B->C->D->A where the action of each edge is the action of hunting the next player
func makeRing(t *testing.T, names ...string) *Graph {
	t.Helper()
	var players []*player.Player
	for i, n := range names {
		p := player.New(n, "pw", player.Profile{})
		p.Target = names[(i+1)%len(names)]
		p.Action = "a" + names[(i+1)%len(names)]
		players = append(players, p)
	}
	reg, err := player.NewRegistry(players...)
	if err != nil {
		t.Fatal(err)
	}
	g, err := New(reg)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func get(t *testing.T, g *Graph, id string) *player.Player {
	t.Helper()
	p, err := g.Registry().Get(id)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// departs mimics the session: unlink, then mark the player as gone
func departs(t *testing.T, g *Graph, id string) Repair {
	t.Helper()
	r, err := g.RemoveFromCycle(id)
	if err != nil {
		t.Fatalf("removing %s: %v", id, err)
	}
	if err := g.Registry().UpsertStatus(id, player.Dead, nil); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRemoveFromCycle_Relinks(t *testing.T) {
	g := makeRing(t, "A", "B", "C", "D")

	r := departs(t, g, "b")
	if r.Hunter != "a" || r.NewTarget != "c" {
		t.Errorf("Expected a to take over c, got %+v", r)
	}
	a := get(t, g, "a")
	if a.Target != "c" {
		t.Error("Hunter was not relinked to the leaver's target")
	}
	if a.Action != "aC" {
		t.Error("Hunter should inherit the action of the edge b->c, got " + a.Action)
	}
	b := get(t, g, "b")
	if b.HasTarget() || b.Action != "" {
		t.Error("Leaver should hold neither a target nor an action")
	}
	if h, _ := g.HunterOf("c"); h != "a" {
		t.Error("Reverse index was not updated")
	}
	if _, ok := g.HunterOf("b"); ok {
		t.Error("Leaver should be dropped from the reverse index")
	}
	if err := g.Validate(); err != nil {
		t.Error(err)
	}
	// untouched pairs stay as they were
	if get(t, g, "c").Target != "d" || get(t, g, "d").Target != "a" {
		t.Error("Removing one player disturbed unrelated edges")
	}
}

func TestRemoveFromCycle_DownToWinner(t *testing.T) {
	g := makeRing(t, "A", "B", "C")

	departs(t, g, "b")
	if get(t, g, "a").Target != "c" || get(t, g, "c").Target != "a" {
		t.Fatal("Expected a 2-cycle a<->c after b left")
	}
	if _, over := g.Winner(); over {
		t.Error("Game should not be over with 2 players left")
	}

	r := departs(t, g, "c")
	if r.Winner != "a" {
		t.Errorf("Expected a to be reported as the winner, got %+v", r)
	}
	a := get(t, g, "a")
	if a.HasTarget() || a.Action != "" {
		t.Error("Winner must not target anyone, not even itself")
	}
	if w, over := g.Winner(); !over || w != "a" {
		t.Error("Expected the game to be over with a as winner")
	}
	if err := g.Validate(); err != nil {
		t.Error(err)
	}
}

func TestRemoveFromCycle_SplicesStrandedHunter(t *testing.T) {
	players := []*player.Player{
		player.New("a", "pw", player.Profile{}),
		player.New("b", "pw", player.Profile{}),
		player.New("c", "pw", player.Profile{}),
		player.New("d", "pw", player.Profile{}),
		player.New("e", "pw", player.Profile{}),
	}
	// cycles: a<->b and c->d->e->c
	edges := map[string]string{"a": "b", "b": "a", "c": "d", "d": "e", "e": "c"}
	for _, p := range players {
		p.Target = edges[p.ID()]
		p.Action = "hunt " + p.Target
	}
	reg, _ := player.NewRegistry(players...)
	g, err := New(reg)
	if err != nil {
		t.Fatal(err)
	}

	r := departs(t, g, "b")
	if r.Spliced != "c" {
		t.Errorf("Expected a to be spliced in after c, got %+v", r)
	}
	if get(t, g, "c").Target != "a" || get(t, g, "c").Action != "hunt a" {
		t.Error("c should now hunt a with the action that was attached to hunting a")
	}
	if get(t, g, "a").Target != "d" || get(t, g, "a").Action != "hunt d" {
		t.Error("a should take over c's former target and action")
	}
	if err := g.Validate(); err != nil {
		t.Error(err)
	}
	if len(g.Cycles()) != 1 {
		t.Error("Expected the splice to merge everything into one cycle")
	}
}

func TestRemoveFromCycle_InconsistentGraph(t *testing.T) {
	g := makeRing(t, "A", "B", "C")
	// corrupt the reverse index out of band
	delete(g.hunters, "b")

	before := g.Clone()
	_, err := g.RemoveFromCycle("b")
	var ige *InconsistentGraphError
	if !errors.As(err, &ige) {
		t.Fatalf("Expected an InconsistentGraphError, got %v", err)
	}
	for _, id := range []string{"a", "b", "c"} {
		if get(t, g, id).Target != get(t, before, id).Target {
			t.Error("A failed removal must not mutate anything")
		}
	}
}

func TestRemoveFromCycle_NotInPlay(t *testing.T) {
	g := makeRing(t, "A", "B", "C")
	departs(t, g, "b")
	if _, err := g.RemoveFromCycle("b"); err == nil {
		t.Error("Removing a player twice should fail")
	}
	if _, err := g.RemoveFromCycle("zed"); !errors.Is(err, player.ErrNotFound) {
		t.Error("Removing an unknown player should report ErrNotFound")
	}
}

func TestNew_RejectsBrokenSeeds(t *testing.T) {
	admin := player.New("admin", "pw", player.Profile{})
	admin.IsAdmin = true
	a := player.New("a", "pw", player.Profile{})
	a.Target = "admin"
	b := player.New("b", "pw", player.Profile{})
	b.Target = "a"
	reg, _ := player.NewRegistry(admin, a, b)
	if _, err := New(reg); err == nil {
		t.Error("Targeting an admin should be rejected")
	}

	c := player.New("c", "pw", player.Profile{})
	c.Target = "e"
	d := player.New("d", "pw", player.Profile{})
	d.Target = "e"
	e := player.New("e", "pw", player.Profile{})
	e.Target = "c"
	reg, _ = player.NewRegistry(c, d, e)
	if _, err := New(reg); err == nil {
		t.Error("Two hunters on the same target should be rejected")
	}

	f := player.New("f", "pw", player.Profile{})
	f.Target = "f"
	g := player.New("g", "pw", player.Profile{})
	g.Target = "g"
	reg, _ = player.NewRegistry(f, g)
	if _, err := New(reg); err == nil {
		t.Error("Self-loops should be rejected")
	}
}

func TestNewShuffledCycle(t *testing.T) {
	var players []*player.Player
	for _, n := range []string{"a", "b", "c", "d", "e", "f"} {
		players = append(players, player.New(n, "pw", player.Profile{}))
	}
	admin := player.New("admin", "pw", player.Profile{})
	admin.IsAdmin = true
	players = append(players, admin)
	reg, _ := player.NewRegistry(players...)

	g, err := NewShuffledCycle(reg, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	cycles := g.Cycles()
	if len(cycles) != 1 || len(cycles[0]) != 6 {
		t.Errorf("Expected one cycle over the 6 players, got %v", cycles)
	}
	if admin.HasTarget() {
		t.Error("Admins must never be assigned a target")
	}
}

// Departing players in any order keeps the cycle invariant until one player remains
func TestRemoveFromCycle_RandomSequences(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for seed := int64(0); seed < 50; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		g := makeRing(t, names...)

		order := append([]string(nil), names...)
		rnd.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		for _, id := range order[:len(order)-1] {
			hunter, _ := g.HunterOf(id)
			leaverAction := get(t, g, id).Action
			leaverTarget := get(t, g, id).Target

			r := departs(t, g, id)
			if err := g.Validate(); err != nil {
				t.Fatalf("seed %d: invariant broken after %s left: %v", seed, id, err)
			}
			if r.Winner == "" && r.Spliced == "" {
				h := get(t, g, hunter)
				if h.Target != leaverTarget || h.Action != leaverAction {
					t.Fatalf("seed %d: hunter %s did not inherit %s's edge", seed, hunter, id)
				}
			}
		}
		if _, over := g.Winner(); !over {
			t.Fatalf("seed %d: expected game over", seed)
		}
	}
}
