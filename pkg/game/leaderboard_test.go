package game

import (
	"testing"

	"github.com/Skyxo/killer/pkg/graph"
	"github.com/Skyxo/killer/pkg/player"
)

func snapshotOf(t *testing.T, players ...*player.Player) *Snapshot {
	t.Helper()
	reg, err := player.NewRegistry(players...)
	if err != nil {
		t.Fatal(err)
	}
	g, err := graph.New(reg)
	if err != nil {
		t.Fatal(err)
	}
	return NewSession(g).Snapshot()
}

func dead(nickname, by string, order int) *player.Player {
	p := player.New(nickname, "pw", player.Profile{})
	p.Status = player.Dead
	p.KilledBy = &by
	p.EliminationOrder = order
	return p
}

func TestLeaderboard(t *testing.T) {
	zoe := player.New("Zoe", "pw", player.Profile{})
	bob := player.New("bob", "pw", player.Profile{})
	amy := player.New("Amy", "pw", player.Profile{})
	zoe.Target, bob.Target, amy.Target = "bob", "amy", "zoe"
	zoe.KillCount = 2
	bob.KillCount = 2
	amy.KillCount = 1
	admin := player.New("orga", "pw", player.Profile{})
	admin.IsAdmin = true

	snap := snapshotOf(t, zoe, bob, amy, admin,
		dead("d1", "zoe", 1), dead("d2", "zoe", 2), dead("d3", "bob", 3), dead("d4", "bob", 4), dead("d5", "amy", 5))
	if v := Audit(snap); len(v) > 0 {
		t.Fatal(v[0])
	}

	board := Leaderboard(snap)
	if len(board) != 8 {
		t.Fatalf("Expected every non-admin player on the leaderboard, got %d", len(board))
	}
	expect := []struct {
		id    string
		rank  int
		medal Medal
	}{
		{"bob", 1, Gold},
		{"zoe", 1, Gold},
		{"amy", 3, Bronze},
		{"d1", 0, NoMedal},
	}
	for i, e := range expect {
		got := board[i]
		if got.Player.ID() != e.id || got.Rank != e.rank || got.Medal != e.medal {
			t.Errorf("Position %d: expected %s rank %d %q, got %s rank %d %q",
				i, e.id, e.rank, e.medal, got.Player.ID(), got.Rank, got.Medal)
		}
	}
	for _, entry := range board {
		if entry.Player.IsAdmin {
			t.Error("Admins must not appear on the leaderboard")
		}
		if entry.Rankable != (entry.Player.KillCount > 0) {
			t.Error("Only players with a kill are rankable")
		}
	}
}

func TestPodium_EmptyWhileRunning(t *testing.T) {
	a := player.New("a", "pw", player.Profile{})
	b := player.New("b", "pw", player.Profile{})
	a.Target, b.Target = "b", "a"
	if p := Podium(snapshotOf(t, a, b)); p != nil {
		t.Error("No podium while the game is running")
	}
}

func TestAudit_FlagsBrokenBookkeeping(t *testing.T) {
	a := player.New("a", "pw", player.Profile{})
	b := player.New("b", "pw", player.Profile{})
	a.Target, b.Target = "b", "a"
	a.KillCount = 1
	c := player.New("c", "pw", player.Profile{})
	c.Status = player.GaveUp
	c.EliminationOrder = 1
	d := player.New("d", "pw", player.Profile{})
	d.Status = player.GaveUp
	d.EliminationOrder = 1

	v := Audit(snapshotOf(t, a, b, c, d))
	if len(v) != 2 {
		t.Fatalf("Expected a kill count mismatch and a shared order, got %v", v)
	}
}
