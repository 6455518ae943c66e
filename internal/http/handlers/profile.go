package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cardclash/internal/store"

	"github.com/gin-gonic/gin"
)

// Me returns the caller's own profile.
func (h *Handler) Me(c *gin.Context) {
	wallet, ok := walletFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	p, err := h.Profiles.GetOrCreate(c.Request.Context(), wallet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// Profile returns a public profile by wallet. Unlike Me it never creates one.
func (h *Handler) Profile(c *gin.Context) {
	p, err := h.Profiles.Get(c.Request.Context(), c.Param("wallet"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wallet":   p.Wallet,
		"username": p.Username,
		"deck_id":  p.DeckID,
		"elo":      p.Elo,
		"level":    p.Level,
		"stats":    p.Stats,
	})
}

// MyMatches returns the caller's recent match history, newest first.
func (h *Handler) MyMatches(c *gin.Context) {
	wallet, ok := walletFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := h.History.ByWallet(c.Request.Context(), wallet, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	if entries == nil {
		entries = []*store.HistoryEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": entries})
}

// Leaderboard returns the wins-ranked top players.
func (h *Handler) Leaderboard(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := h.Boards.Top(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}
	if entries == nil {
		entries = []*store.LeaderboardEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
