package handlers

import (
	"cardclash/internal/arena"
	"cardclash/internal/http/middleware"
	"cardclash/internal/store"

	"github.com/gin-gonic/gin"
)

// HandlerConfig carries the request-validation limits.
type HandlerConfig struct {
	MinStake  int64
	MaxStake  int64
	JWTSecret []byte
}

// Handler bundles the collaborators the HTTP endpoints need.
type Handler struct {
	Cfg      HandlerConfig
	Arena    *arena.Arena
	Profiles store.ProfileStore
	History  store.HistorySink
	Boards   store.Leaderboard
}

func NewHandler(cfg HandlerConfig, a *arena.Arena, profiles store.ProfileStore, history store.HistorySink, boards store.Leaderboard) *Handler {
	return &Handler{
		Cfg:      cfg,
		Arena:    a,
		Profiles: profiles,
		History:  history,
		Boards:   boards,
	}
}

// walletFrom reads the wallet the JWT middleware stored in the context.
func walletFrom(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.WalletKey)
	if !ok {
		return "", false
	}
	wallet, ok := v.(string)
	return wallet, ok && wallet != ""
}
