package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Skyxo/killer/docs"
	"github.com/Skyxo/killer/pkg"
	"github.com/Skyxo/killer/pkg/audit"
	"github.com/Skyxo/killer/pkg/game"
	"github.com/Skyxo/killer/pkg/player"
	"github.com/Skyxo/killer/pkg/redis"
	"github.com/Skyxo/killer/pkg/storage"
	"github.com/Skyxo/killer/pkg/visibility"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	SessionCookie = "killer_session"
	SessionHeader = "X-Session-Token"

	snapshotKey = "snapshot"
	viewerKey   = "viewer"
)

// Game is the live session the handlers read from and write to
type Game interface {
	Snapshot() *game.Snapshot
	ConfirmKill(ctx context.Context, subjectID string) (*game.Departure, error)
	Forfeit(ctx context.Context, subjectID string) (*game.Departure, error)
}

// SessionStore maps opaque login tokens to player IDs
type SessionStore interface {
	CreateSession(ctx context.Context, playerID string, ttl time.Duration) (string, error)
	GetSession(ctx context.Context, token string, ttl time.Duration) (string, error)
	DeleteSession(ctx context.Context, token string) error
}

type RequestRecorder interface {
	RecordRequest(requestType redis.EventType)
}

// LoginGuard throttles password guessing on a single account
type LoginGuard interface {
	IsLoginLocked(ctx context.Context, playerID string) bool
	RecordFailedLogin(ctx context.Context, playerID string)
	ClearFailedLogins(ctx context.Context, playerID string)
}

type LeaderboardCache interface {
	GetCachedLeaderboard(ctx context.Context, variant string) ([]byte, error)
	SetCachedLeaderboard(ctx context.Context, variant string, data []byte) error
}

// Exporter reads the authoritative tables for the admin CSV export
type Exporter interface {
	GetPlayers(ctx context.Context) ([]*storage.PostgresPlayer, error)
	GetDepartures(ctx context.Context) ([]*storage.PostgresDeparture, error)
}

type Auditor interface {
	Run(ctx context.Context) *audit.Report
	Last() *audit.Report
}

// Options carries the optional collaborators of the API; every nil field disables the matching feature
type Options struct {
	URL        string
	SessionTTL time.Duration
	Recorder   RequestRecorder
	Guard      LoginGuard
	Cache      LeaderboardCache
	Exporter   Exporter
	Auditor    Auditor
	Info       func(ctx context.Context) redis.Info
	Metrics    http.Handler
	// PhotoDir is served under /photos when set
	PhotoDir string
}

type Api struct {
	url        string
	secure     bool
	sessionTTL time.Duration

	game     Game
	sessions SessionStore
	filter   *visibility.Filter

	recorder RequestRecorder
	guard    LoginGuard
	cache    LeaderboardCache
	exporter Exporter
	auditor  Auditor
	info     func(ctx context.Context) redis.Info
	metrics  http.Handler
	photoDir string
}

func NewApi(g Game, sessions SessionStore, filter *visibility.Filter, opts Options) *Api {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = redis.DefaultSessionTTL
	}
	if filter == nil {
		filter = visibility.NewFilter(nil)
	}
	return &Api{
		url:        opts.URL,
		secure:     strings.HasPrefix(opts.URL, "https://"),
		sessionTTL: ttl,
		game:       g,
		sessions:   sessions,
		filter:     filter,
		recorder:   opts.Recorder,
		guard:      opts.Guard,
		cache:      opts.Cache,
		exporter:   opts.Exporter,
		auditor:    opts.Auditor,
		info:       opts.Info,
		metrics:    opts.Metrics,
		photoDir:   opts.PhotoDir,
	}
}

func (api *Api) Router() *gin.Engine {
	r := gin.Default()

	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Title = "Killer"
	docs.SwaggerInfo.Version = pkg.Version
	docs.SwaggerInfo.Description = "Killer game API"
	var schemes []string
	host := api.url
	if strings.HasPrefix(host, "http://") {
		schemes = append(schemes, "http")
		host = strings.Replace(host, "http://", "", 1)
	} else if strings.HasPrefix(host, "https://") {
		schemes = append(schemes, "https")
		host = strings.Replace(host, "https://", "", 1)
	}
	docs.SwaggerInfo.Host = host
	docs.SwaggerInfo.Schemes = schemes

	apiGroup := r.Group("/api")
	apiGroup.POST("/login", handlePostLogin(api))
	apiGroup.POST("/logout", handlePostLogout(api))
	apiGroup.GET("/info", handleGetInfo(api))

	playerGroup := apiGroup.Group("", requireSession(api))
	playerGroup.GET("/me", handleGetMe(api))
	playerGroup.POST("/kill", handlePostKill(api))
	playerGroup.POST("/forfeit", handlePostForfeit(api))
	playerGroup.GET("/roster", handleGetRoster(api))
	playerGroup.GET("/leaderboard", handleGetLeaderboard(api))
	playerGroup.GET("/podium", handleGetPodium(api))

	adminGroup := apiGroup.Group("/admin", requireSession(api), requireAdmin(api))
	adminGroup.GET("/overview", handleGetAdminOverview(api))
	adminGroup.GET("/export.csv", handleGetAdminExport(api))
	adminGroup.GET("/audit", handleGetAdminAudit(api))

	if api.metrics != nil {
		r.GET("/metrics", gin.WrapH(api.metrics))
	}
	if api.photoDir != "" {
		r.Static("/photos", api.photoDir)
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func (api *Api) StartServer(port string) error {
	return api.Router().Run(":" + port)
}

func (api *Api) record(t redis.EventType) {
	if api.recorder != nil {
		api.recorder.RecordRequest(t)
	}
}

func sessionToken(c *gin.Context) string {
	if token := c.GetHeader(SessionHeader); token != "" {
		return token
	}
	token, _ := c.Cookie(SessionCookie)
	return token
}

// requireSession resolves the caller and pins one snapshot for the whole request
func requireSession(api *Api) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			abortWithError(c, ErrUnauthenticated)
			return
		}
		playerID, err := api.sessions.GetSession(c.Request.Context(), token, api.sessionTTL)
		if errors.Is(err, redis.ErrNoSession) {
			abortWithError(c, ErrUnauthenticated)
			return
		} else if err != nil {
			abortWithError(c, err)
			return
		}
		snap := api.game.Snapshot()
		viewer, err := snap.Get(playerID)
		if err != nil {
			// the player was removed from the game after logging in
			_ = api.sessions.DeleteSession(c.Request.Context(), token)
			abortWithError(c, ErrUnauthenticated)
			return
		}
		c.Set(snapshotKey, snap)
		c.Set(viewerKey, viewer)
		c.Next()
	}
}

func requireAdmin(api *Api) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, viewer := fromContext(c)
		if !viewer.IsAdmin {
			api.record(redis.RejectedRequest)
			abortWithError(c, visibility.ErrForbidden)
			return
		}
		api.record(redis.AdminRequest)
		c.Next()
	}
}

func fromContext(c *gin.Context) (*game.Snapshot, *player.Player) {
	return c.MustGet(snapshotKey).(*game.Snapshot), c.MustGet(viewerKey).(*player.Player)
}
