package handlers

import (
	"errors"
	"net/http"

	"cardclash/internal/domain"
	"cardclash/internal/store"

	"github.com/gin-gonic/gin"
)

// Match returns the match by id as the caller is allowed to see it: before
// the seats are ready a participant does not get the opponent's cards, and a
// spectator gets neither hand until the match finishes.
func (h *Handler) Match(c *gin.Context) {
	wallet, ok := walletFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	m, err := h.Arena.GetMatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load match"})
		return
	}

	view := m.ViewFor(wallet)
	if m.SeatOf(wallet) == nil && m.State != domain.MatchFinished {
		view.SeatA.Cards = domain.Hand{}
		view.SeatB.Cards = domain.Hand{}
	}
	c.JSON(http.StatusOK, view)
}
