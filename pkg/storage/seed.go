package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/Skyxo/killer/pkg/graph"
	"github.com/Skyxo/killer/pkg/player"
)

// BuildSeed hashes the passwords and links the players. Targets given in the file are kept as long as they form
// a valid assignment; when no target is given at all the players in play are shuffled into one cycle.
func BuildSeed(rows []SeedRow, rnd *rand.Rand) (*graph.Graph, error) {
	var players []*player.Player
	hasTargets := false
	for _, row := range rows {
		hash, err := player.HashPassword(row.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password of %s: %w", row.Player.Nickname, err)
		}
		row.Player.PasswordHash = hash
		if row.Player.HasTarget() {
			hasTargets = true
		}
		players = append(players, row.Player)
	}
	reg, err := player.NewRegistry(players...)
	if err != nil {
		return nil, err
	}
	if hasTargets {
		return graph.New(reg)
	}
	return graph.NewShuffledCycle(reg, rnd)
}

// SeedFromCSV fills an empty players table from a seed file. It does nothing when players already exist.
func (psqlInterface *PsqlInterface) SeedFromCSV(ctx context.Context, r io.Reader, rnd *rand.Rand) (int, error) {
	count, err := psqlInterface.CountPlayers(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("[Storage] %d players already stored, skipping seed\n", count)
		return 0, nil
	}
	rows, err := ReadPlayersCSV(r)
	if err != nil {
		return 0, err
	}
	g, err := BuildSeed(rows, rnd)
	if err != nil {
		return 0, err
	}
	players := g.Registry().All()
	if err := psqlInterface.InsertPlayers(ctx, players); err != nil {
		return 0, err
	}
	log.Printf("[Storage] seeded %d players in %d cycle(s)\n", len(players), len(g.Cycles()))
	return len(players), nil
}
