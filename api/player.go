package api

import (
	"errors"
	"net/http"

	"github.com/Skyxo/killer/pkg/game"
	"github.com/Skyxo/killer/pkg/locale"
	"github.com/Skyxo/killer/pkg/player"
	"github.com/Skyxo/killer/pkg/redis"
	"github.com/Skyxo/killer/pkg/visibility"
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

type LoginRequest struct {
	Nickname string `json:"nickname" form:"nickname"`
	Password string `json:"password" form:"password"`
}

type MeResponse struct {
	visibility.Me
	Message string `json:"message,omitempty"`
}

type DepartureResponse struct {
	Message string        `json:"message"`
	Me      visibility.Me `json:"me"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Login godoc
// @Summary Log in
// @Schemes POST
// @Description Open a session for a player. The token is set as a cookie and returned in the X-Session-Token header.
// @Tags session
// @Accept json
// @Produce json
// @Param   LoginRequest body LoginRequest true "Credentials"
// @Success 200 {object} visibility.Me
// @Failure 400 {object} HttpError
// @Failure 401 {object} HttpError
// @Failure 429 {object} HttpError
// @Failure 500 {object} HttpError
// @Router /api/login [post]
func handlePostLogin(api *Api) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBind(&req); err != nil || req.Nickname == "" || req.Password == "" {
			abortWithError(c, ErrMissingCredentials)
			return
		}
		ctx := c.Request.Context()
		id := player.Key(req.Nickname)
		if api.guard != nil && api.guard.IsLoginLocked(ctx, id) {
			api.record(redis.FailedLogin)
			abortWithError(c, ErrTooManyAttempts)
			return
		}
		snap := api.game.Snapshot()
		p, err := snap.Get(id)
		if err != nil {
			p = nil
		}
		if !player.Authenticate(p, req.Password) {
			api.record(redis.FailedLogin)
			if p != nil && api.guard != nil {
				api.guard.RecordFailedLogin(ctx, id)
			}
			abortWithError(c, ErrBadCredentials)
			return
		}
		if api.guard != nil {
			api.guard.ClearFailedLogins(ctx, id)
		}
		token, err := api.sessions.CreateSession(ctx, p.ID(), api.sessionTTL)
		if err != nil {
			abortWithError(c, err)
			return
		}
		api.record(redis.LoginRequest)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, token, int(api.sessionTTL.Seconds()), "/", "", api.secure, true)
		c.Header(SessionHeader, token)
		c.JSON(http.StatusOK, api.filter.Self(ctx, snap, p))
	}
}

// Logout godoc
// @Summary Log out
// @Schemes POST
// @Description Close the current session. Has no effect on the game.
// @Tags session
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /api/logout [post]
func handlePostLogout(api *Api) func(c *gin.Context) {
	return func(c *gin.Context) {
		if token := sessionToken(c); token != "" {
			if err := api.sessions.DeleteSession(c.Request.Context(), token); err != nil {
				abortWithError(c, err)
				return
			}
		}
		c.SetCookie(SessionCookie, "", -1, "/", "", api.secure, true)
		c.JSON(http.StatusOK, MessageResponse{
			Message: locale.LocalizeMessage(&i18n.Message{
				ID:    "api.logout.success",
				Other: "Tu es déconnecté",
			}, nil, c.GetHeader("Accept-Language")),
		})
	}
}

// GetMe godoc
// @Summary Get own record
// @Schemes GET
// @Description Get the caller's record and current target
// @Tags player
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} HttpError
// @Router /api/me [get]
func handleGetMe(api *Api) func(c *gin.Context) {
	return func(c *gin.Context) {
		snap, viewer := fromContext(c)
		resp := MeResponse{Me: api.filter.Self(c.Request.Context(), snap, viewer)}
		if viewer.IsAlive() && !viewer.IsAdmin && resp.Target == nil {
			resp.Message = locale.LocalizeMessage(&i18n.Message{
				ID:    "api.me.noTarget",
				Other: "Tu n'as pas de cible, la partie est peut-être terminée",
			}, nil, c.GetHeader("Accept-Language"))
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ConfirmKill godoc
// @Summary Confirm own death
// @Schemes POST
// @Description The caller confirms they were killed. Their hunter is credited and inherits their target and action.
// @Tags player
// @Produce json
// @Success 200 {object} DepartureResponse
// @Failure 401 {object} HttpError
// @Failure 403 {object} HttpError
// @Failure 409 {object} HttpError
// @Failure 500 {object} HttpError
// @Router /api/kill [post]
func handlePostKill(api *Api) func(c *gin.Context) {
	return func(c *gin.Context) {
		_, viewer := fromContext(c)
		d, err := api.game.ConfirmKill(c.Request.Context(), viewer.ID())
		if err != nil {
			api.recordRejection(err)
			abortWithError(c, err)
			return
		}
		api.record(redis.KillRequest)
		snap := api.game.Snapshot()
		data := map[string]interface{}{"Hunter": nickname(snap, d.Hunter)}
		msg := &i18n.Message{
			ID:    "api.kill.confirmed",
			Other: "Ta mort est confirmée, {{.Hunter}} récupère ta cible",
		}
		if d.GameOver {
			data["Winner"] = nickname(snap, d.Winner)
			msg = &i18n.Message{
				ID:    "api.kill.gameOver",
				Other: "Ta mort est confirmée, {{.Winner}} remporte la partie !",
			}
		}
		api.departureResponse(c, snap, viewer.ID(), locale.LocalizeMessage(msg, data, c.GetHeader("Accept-Language")))
	}
}

// Forfeit godoc
// @Summary Give up
// @Schemes POST
// @Description The caller leaves the game. Their hunter inherits their target without being credited.
// @Tags player
// @Produce json
// @Success 200 {object} DepartureResponse
// @Failure 401 {object} HttpError
// @Failure 403 {object} HttpError
// @Failure 409 {object} HttpError
// @Failure 500 {object} HttpError
// @Router /api/forfeit [post]
func handlePostForfeit(api *Api) func(c *gin.Context) {
	return func(c *gin.Context) {
		_, viewer := fromContext(c)
		if _, err := api.game.Forfeit(c.Request.Context(), viewer.ID()); err != nil {
			api.recordRejection(err)
			abortWithError(c, err)
			return
		}
		api.record(redis.ForfeitRequest)
		api.departureResponse(c, api.game.Snapshot(), viewer.ID(), locale.LocalizeMessage(&i18n.Message{
			ID:    "api.forfeit.confirmed",
			Other: "Tu as abandonné la partie",
		}, nil, c.GetHeader("Accept-Language")))
	}
}

func (api *Api) departureResponse(c *gin.Context, snap *game.Snapshot, playerID, message string) {
	p, err := snap.Get(playerID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, DepartureResponse{
		Message: message,
		Me:      api.filter.Self(c.Request.Context(), snap, p),
	})
}

func (api *Api) recordRejection(err error) {
	if errors.Is(err, game.ErrAlreadyTerminal) || errors.Is(err, game.ErrAdminCannotPlay) || errors.Is(err, game.ErrGameOver) {
		api.record(redis.RejectedRequest)
	}
}

func nickname(snap *game.Snapshot, id string) string {
	if p, err := snap.Get(id); err == nil {
		return p.Nickname
	}
	return id
}
