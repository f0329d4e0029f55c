package game

import (
	"errors"

	"github.com/Skyxo/killer/pkg/player"
)

var (
	ErrNotFound        = player.ErrNotFound
	ErrAlreadyTerminal = errors.New("player has already left the game")
	ErrAdminCannotPlay = errors.New("admins do not take part in the game")
	// ErrGameOver is returned to the last player standing, who has nobody left to hunt
	ErrGameOver = errors.New("the game is over")
)
