package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Skyxo/killer/pkg"
	"github.com/Skyxo/killer/pkg/game"
	"github.com/Skyxo/killer/pkg/player"
	"github.com/Skyxo/killer/pkg/redis"
	"github.com/Skyxo/killer/pkg/visibility"
	"github.com/gin-gonic/gin"
)

type InfoResponse struct {
	redis.Info
	Counts   game.Counts `json:"counts"`
	GameOver bool        `json:"gameOver"`
}

// GetInfo godoc
// @Summary Get game info
// @Schemes GET
// @Description Get basic information about the running game and the server
// @Tags game
// @Produce json
// @Success 200 {object} InfoResponse
// @Router /api/info [get]
func handleGetInfo(api *Api) func(c *gin.Context) {
	return func(c *gin.Context) {
		snap := api.game.Snapshot()
		resp := InfoResponse{
			Counts:   snap.Counts(),
			GameOver: snap.GameOver,
		}
		if api.info != nil {
			resp.Info = api.info(c.Request.Context())
		}
		if resp.Version == "" {
			resp.Version = pkg.Version
			resp.Commit = pkg.Commit
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetRoster godoc
// @Summary Get roster
// @Schemes GET
// @Description Get every participant. Statuses are only shown once the caller has left the game or the game is over.
// @Tags game
// @Produce json
// @Success 200 {object} visibility.Roster
// @Failure 401 {object} HttpError
// @Router /api/roster [get]
func handleGetRoster(api *Api) func(c *gin.Context) {
	return func(c *gin.Context) {
		snap, viewer := fromContext(c)
		c.JSON(http.StatusOK, api.filter.Roster(c.Request.Context(), snap, viewer))
	}
}

func leaderboardVisibility(snap *game.Snapshot, viewer *player.Player) string {
	switch {
	case viewer.IsAdmin:
		return "admin"
	case visibility.CanViewStatus(viewer, snap):
		return "status"
	default:
		return "public"
	}
}

// GetLeaderboard godoc
// @Summary Get leaderboard
// @Schemes GET
// @Description Get players ranked by kill count
// @Tags game
// @Produce json
// @Success 200 {object} visibility.Leaderboard
// @Failure 401 {object} HttpError
// @Router /api/leaderboard [get]
func handleGetLeaderboard(api *Api) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		snap, viewer := fromContext(c)
		variant := redis.LeaderboardVariant(leaderboardVisibility(snap, viewer), snap.Departures)

		if api.cache != nil {
			data, err := api.cache.GetCachedLeaderboard(ctx, variant)
			if err != nil {
				log.Println("[API] reading cached leaderboard:", err)
			} else if data != nil {
				c.Data(http.StatusOK, "application/json; charset=utf-8", data)
				return
			}
		}

		board := api.filter.Leaderboard(ctx, snap, viewer)
		data, err := json.Marshal(board)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if api.cache != nil {
			if err := api.cache.SetCachedLeaderboard(ctx, variant, data); err != nil {
				log.Println("[API] caching leaderboard:", err)
			}
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
	}
}

// GetPodium godoc
// @Summary Get podium
// @Schemes GET
// @Description Get the final ranking. Empty until the game is over.
// @Tags game
// @Produce json
// @Success 200 {object} visibility.Podium
// @Failure 401 {object} HttpError
// @Router /api/podium [get]
func handleGetPodium(api *Api) func(c *gin.Context) {
	return func(c *gin.Context) {
		snap, _ := fromContext(c)
		c.JSON(http.StatusOK, api.filter.Podium(c.Request.Context(), snap))
	}
}
