package http

import (
	"cardclash/internal/arena"
	"cardclash/internal/config"
	"cardclash/internal/http/handlers"
	"cardclash/internal/http/middleware"
	"cardclash/internal/store"
	"cardclash/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps bundles what the router needs. DB may be nil when running on
// in-memory stores; the health probes then skip the database check.
type Deps struct {
	Cfg      *config.Config
	DB       *pgxpool.Pool
	Arena    *arena.Arena
	Profiles store.ProfileStore
	History  store.HistorySink
	Boards   store.Leaderboard
	Hub      *ws.Hub
	Version  string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	h := handlers.NewHandler(handlers.HandlerConfig{
		MinStake:  d.Cfg.MinStake,
		MaxStake:  d.Cfg.MaxStake,
		JWTSecret: []byte(d.Cfg.JWTSecret),
	}, d.Arena, d.Profiles, d.History, d.Boards)
	healthHandler := handlers.NewHealthHandler(d.DB, d.Version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	jwt := middleware.JWT([]byte(d.Cfg.JWTSecret))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(d.Cfg.APIRateLimit, d.Cfg.APIRateWindow))

	v1.POST("/auth", middleware.RedisRateLimit(d.Cfg.AuthRateLimit, d.Cfg.AuthRateWindow), h.Auth)

	v1.GET("/me", jwt, h.Me)
	v1.GET("/me/matches", jwt, h.MyMatches)
	v1.GET("/profile/:wallet", h.Profile)
	v1.GET("/leaderboard", h.Leaderboard)

	v1.POST("/queue", jwt, h.EnterQueue)
	v1.POST("/queue/cancel", jwt, h.CancelQueue)
	v1.GET("/match/:id", jwt, h.Match)

	// WebSocket for live match events
	r.GET("/ws", h.WS(d.Hub))
}
