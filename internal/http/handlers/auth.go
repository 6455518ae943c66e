package handlers

import (
	"net/http"

	"cardclash/internal/auth"

	"github.com/gin-gonic/gin"
)

const maxWalletLen = 128

type AuthRequest struct {
	Wallet   string `json:"wallet"`
	Username string `json:"username"`
}

// Auth exchanges a wallet address for a bearer token, creating the profile on
// first sight. There is no signature challenge here; callers are trusted on
// the address they present, which is fine for the credit economy this serves.
func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.Wallet == "" || len(req.Wallet) > maxWalletLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wallet required"})
		return
	}

	ctx := c.Request.Context()
	p, err := h.Profiles.GetOrCreate(ctx, req.Wallet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	if req.Username != "" && req.Username != p.Username {
		p.Username = req.Username
		if err := h.Profiles.Save(ctx, p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
			return
		}
	}

	token, err := auth.GenerateToken(h.Cfg.JWTSecret, p.Wallet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"profile": p,
	})
}
