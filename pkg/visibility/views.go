package visibility

import "github.com/Skyxo/killer/pkg/player"

// ProfileView holds the public part of a player, visible to everybody
type ProfileView struct {
	Nickname    string `json:"nickname"`
	Name        string `json:"name"`
	Firstname   string `json:"firstname"`
	Year        string `json:"year"`
	PersonPhoto string `json:"personPhoto,omitempty"`
	FeetPhoto   string `json:"feetPhoto,omitempty"`
	IsAdmin     bool   `json:"isAdmin"`
}

// TargetView is what a hunter knows about their target
type TargetView struct {
	ProfileView
	Action string `json:"action"`
}

// SelfView is a player's own record. KilledBy and EliminationOrder stay empty while the player is alive.
type SelfView struct {
	ProfileView
	Phone            string        `json:"phone,omitempty"`
	Status           player.Status `json:"status"`
	KillCount        int           `json:"killCount"`
	KilledBy         *string       `json:"killedBy,omitempty"`
	EliminationOrder *int          `json:"eliminationOrder,omitempty"`
}

type Me struct {
	Player   SelfView    `json:"player"`
	Target   *TargetView `json:"target"`
	GameOver bool        `json:"gameOver"`
	Winner   string      `json:"winner,omitempty"`
}

// PeerView is a roster entry. Status and kill count are only filled once the viewer may see them;
// who hunted whom only once the game is over.
type PeerView struct {
	ProfileView
	Status           player.Status `json:"status,omitempty"`
	KillCount        *int          `json:"killCount,omitempty"`
	HuntedBy         *string       `json:"huntedBy,omitempty"`
	KilledBy         *string       `json:"killedBy,omitempty"`
	EliminationOrder *int          `json:"eliminationOrder,omitempty"`
}

type Viewer struct {
	Nickname      string        `json:"nickname"`
	Status        player.Status `json:"status"`
	IsAdmin       bool          `json:"isAdmin"`
	CanViewStatus bool          `json:"canViewStatus"`
}

type Roster struct {
	Viewer   Viewer     `json:"viewer"`
	GameOver bool       `json:"gameOver"`
	Players  []PeerView `json:"players"`
}

type LeaderboardView struct {
	Rank      int           `json:"rank,omitempty"`
	Medal     string        `json:"medal,omitempty"`
	Nickname  string        `json:"nickname"`
	KillCount int           `json:"killCount"`
	Status    player.Status `json:"status,omitempty"`
	IsAdmin   bool          `json:"isAdmin"`
	Photo     string        `json:"photo,omitempty"`
	Year      string        `json:"year"`
}

type Leaderboard struct {
	Leaderboard []LeaderboardView `json:"leaderboard"`
}

type PodiumView struct {
	Rank      int    `json:"rank"`
	Nickname  string `json:"nickname"`
	KillCount int    `json:"killCount"`
	Photo     string `json:"photo,omitempty"`
	Year      string `json:"year"`
}

type Podium struct {
	GameOver bool         `json:"gameOver"`
	Podium   []PodiumView `json:"podium"`
}

// AdminView is every stored field but the password
type AdminView struct {
	ProfileView
	Phone            string        `json:"phone"`
	Status           player.Status `json:"status"`
	Target           string        `json:"target"`
	Hunter           string        `json:"hunter"`
	Action           string        `json:"action"`
	KillCount        int           `json:"killCount"`
	KilledBy         *string       `json:"killedBy"`
	HuntedBy         *string       `json:"huntedBy"`
	EliminationOrder int           `json:"eliminationOrder"`
}

type AdminOverview struct {
	GameOver   bool        `json:"gameOver"`
	Winner     string      `json:"winner,omitempty"`
	Departures int         `json:"departures"`
	Cycles     [][]string  `json:"cycles"`
	Players    []AdminView `json:"players"`
}
