package game

import (
	"sort"

	"github.com/Skyxo/killer/pkg/player"
)

type Medal string

const (
	NoMedal Medal = ""
	Gold    Medal = "gold"
	Silver  Medal = "silver"
	Bronze  Medal = "bronze"
)

var medals = map[int]Medal{1: Gold, 2: Silver, 3: Bronze}

type LeaderboardEntry struct {
	// Rank uses competition ranking (1, 2, 2, 4); 0 for players without a kill
	Rank     int
	Medal    Medal
	Rankable bool
	Player   *player.Player
}

// Leaderboard lists every non-admin player by kill count, most kills first. Ties are broken on the
// lowercase nickname so the order never depends on map iteration.
func Leaderboard(snap *Snapshot) []LeaderboardEntry {
	var players []*player.Player
	for _, p := range snap.Players() {
		if !p.IsAdmin {
			players = append(players, p)
		}
	}
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].KillCount != players[j].KillCount {
			return players[i].KillCount > players[j].KillCount
		}
		return players[i].ID() < players[j].ID()
	})

	ret := make([]LeaderboardEntry, 0, len(players))
	rank := 0
	for i, p := range players {
		entry := LeaderboardEntry{Player: p, Rankable: p.KillCount > 0}
		if entry.Rankable {
			if i == 0 || players[i-1].KillCount != p.KillCount {
				rank = i + 1
			}
			entry.Rank = rank
			entry.Medal = medals[rank]
		}
		ret = append(ret, entry)
	}
	return ret
}

type PodiumEntry struct {
	Rank   int
	Player *player.Player
}

// Podium is the final standing once the game is over: the winner first, then everybody else from the last
// player to leave to the first. It is empty while the game is running.
func Podium(snap *Snapshot) []PodiumEntry {
	if !snap.GameOver {
		return nil
	}
	var ret []PodiumEntry
	if snap.Winner != "" {
		if w, err := snap.Get(snap.Winner); err == nil {
			ret = append(ret, PodiumEntry{Rank: 1, Player: w})
		}
	}

	var rest []*player.Player
	for _, p := range snap.Players() {
		if p.IsAdmin || p.ID() == snap.Winner {
			continue
		}
		rest = append(rest, p)
	}
	sort.SliceStable(rest, func(i, j int) bool {
		a, b := rest[i], rest[j]
		// players loaded as departed but without an order go last
		if a.HasDeparted() != b.HasDeparted() {
			return a.HasDeparted()
		}
		if a.EliminationOrder != b.EliminationOrder {
			return a.EliminationOrder > b.EliminationOrder
		}
		return a.ID() < b.ID()
	})
	for _, p := range rest {
		ret = append(ret, PodiumEntry{Rank: len(ret) + 1, Player: p})
	}
	return ret
}
