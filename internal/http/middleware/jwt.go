package middleware

import (
	"net/http"
	"strings"

	"cardclash/internal/auth"

	"github.com/gin-gonic/gin"
)

// WalletKey is the gin context key the JWT middleware stores the caller's
// wallet under.
const WalletKey = "wallet"

// JWT validates the bearer token and puts the wallet into the context.
func JWT(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		wallet, err := auth.ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(WalletKey, wallet)
		c.Next()
	}
}
