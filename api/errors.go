package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/Skyxo/killer/pkg/game"
	"github.com/Skyxo/killer/pkg/graph"
	"github.com/Skyxo/killer/pkg/locale"
	"github.com/Skyxo/killer/pkg/redis"
	"github.com/Skyxo/killer/pkg/visibility"
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

var (
	ErrUnauthenticated    = errors.New("not logged in")
	ErrBadCredentials     = errors.New("bad nickname or password")
	ErrMissingCredentials = errors.New("nickname and password are required")
	ErrUnavailable        = errors.New("feature not configured")
	ErrTooManyAttempts    = errors.New("too many failed logins")
)

type HttpError struct {
	StatusCode int
	Error      string
}

type errorMapping struct {
	err     error
	status  int
	message *i18n.Message
}

var errorMappings = []errorMapping{
	{ErrUnauthenticated, http.StatusUnauthorized, &i18n.Message{
		ID:    "api.error.unauthenticated",
		Other: "Tu n'es pas connecté",
	}},
	{ErrBadCredentials, http.StatusUnauthorized, &i18n.Message{
		ID:    "api.error.badCredentials",
		Other: "Pseudo ou mot de passe incorrect",
	}},
	{ErrMissingCredentials, http.StatusBadRequest, &i18n.Message{
		ID:    "api.error.missingCredentials",
		Other: "Le pseudo et le mot de passe sont obligatoires",
	}},
	{ErrTooManyAttempts, http.StatusTooManyRequests, &i18n.Message{
		ID:    "api.error.tooManyAttempts",
		Other: "Trop de tentatives, réessaie dans quelques minutes",
	}},
	{game.ErrAlreadyTerminal, http.StatusConflict, &i18n.Message{
		ID:    "api.error.alreadyTerminal",
		Other: "Tu as déjà quitté la partie",
	}},
	{game.ErrGameOver, http.StatusConflict, &i18n.Message{
		ID:    "api.error.gameOver",
		Other: "La partie est terminée",
	}},
	{game.ErrAdminCannotPlay, http.StatusForbidden, &i18n.Message{
		ID:    "api.error.adminCannotPlay",
		Other: "Les organisateurs ne participent pas à la partie",
	}},
	{visibility.ErrForbidden, http.StatusForbidden, &i18n.Message{
		ID:    "api.error.forbidden",
		Other: "Réservé aux organisateurs",
	}},
	{game.ErrNotFound, http.StatusNotFound, &i18n.Message{
		ID:    "api.error.notFound",
		Other: "Joueur introuvable",
	}},
	{redis.ErrDeparturesBusy, http.StatusServiceUnavailable, &i18n.Message{
		ID:    "api.error.busy",
		Other: "Une autre élimination est en cours, réessaie dans un instant",
	}},
	{redis.ErrDepartureLockLost, http.StatusServiceUnavailable, &i18n.Message{
		ID:    "api.error.busy",
		Other: "Une autre élimination est en cours, réessaie dans un instant",
	}},
	{ErrUnavailable, http.StatusNotImplemented, &i18n.Message{
		ID:    "api.error.unavailable",
		Other: "Fonctionnalité non configurée",
	}},
}

var internalErrorMessage = &i18n.Message{
	ID:    "api.error.internal",
	Other: "Erreur interne, préviens un organisateur",
}

// toHttpError maps err to a status code and a message in the caller's language
func toHttpError(c *gin.Context, err error) HttpError {
	lang := c.GetHeader("Accept-Language")
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return HttpError{
				StatusCode: m.status,
				Error:      locale.LocalizeMessage(m.message, nil, lang),
			}
		}
	}
	var inconsistent *graph.InconsistentGraphError
	if errors.As(err, &inconsistent) {
		log.Printf("[API] %s %s aborted on an inconsistent graph: %v\n", c.Request.Method, c.FullPath(), err)
	} else {
		log.Printf("[API] %s %s failed: %v\n", c.Request.Method, c.FullPath(), err)
	}
	return HttpError{
		StatusCode: http.StatusInternalServerError,
		Error:      locale.LocalizeMessage(internalErrorMessage, nil, lang),
	}
}

func abortWithError(c *gin.Context, err error) {
	httpErr := toHttpError(c, err)
	c.AbortWithStatusJSON(httpErr.StatusCode, httpErr)
}
