package handlers

import (
	"errors"
	"net/http"

	"cardclash/internal/arena"
	"cardclash/internal/ledger"
	"cardclash/internal/queue"

	"github.com/gin-gonic/gin"
)

type QueueRequest struct {
	Stake int64 `json:"stake"`
	VsBot bool  `json:"vs_bot"`
}

// EnterQueue stakes credits and joins matchmaking. The response is either a
// waiting ticket or, when the request completed a pair, the created match.
func (h *Handler) EnterQueue(c *gin.Context) {
	wallet, ok := walletFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req QueueRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.Stake < h.Cfg.MinStake || req.Stake > h.Cfg.MaxStake {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "stake out of range",
			"min_stake": h.Cfg.MinStake,
			"max_stake": h.Cfg.MaxStake,
		})
		return
	}

	out, err := h.Arena.Queue(c.Request.Context(), wallet, req.Stake, req.VsBot)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInsufficientFunds):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient credits"})
		case errors.Is(err, queue.ErrAlreadyQueued):
			c.JSON(http.StatusConflict, gin.H{"error": "already queued"})
		case errors.Is(err, arena.ErrShuttingDown):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "shutting down"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "queue failed"})
		}
		return
	}

	if out.Match != nil {
		out.Match = out.Match.ViewFor(wallet)
	}
	c.JSON(http.StatusOK, out)
}

// CancelQueue withdraws the caller's waiting ticket and refunds the stake.
// A ticket that already paired cannot be cancelled.
func (h *Handler) CancelQueue(c *gin.Context) {
	wallet, ok := walletFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	found, err := h.Arena.Cancel(c.Request.Context(), wallet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cancel failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no waiting ticket"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}
