package httpapi

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/collectkeeper/internal/common"
	"github.com/dmitrijs2005/collectkeeper/internal/logging"
	"github.com/gin-gonic/gin"
)

const ctxUserID = "userID"

// RequireAuth validates the bearer access token and stores the owner id in
// the request context for the handlers.
func RequireAuth(users TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(c, common.ErrNotAuthenticated)
			return
		}

		userID, err := users.VerifyAccessToken(token)
		if err != nil {
			writeError(c, err)
			return
		}

		c.Set(ctxUserID, userID)
		c.Next()
	}
}

// TokenVerifier is the slice of the user service the auth middleware needs.
type TokenVerifier interface {
	VerifyAccessToken(token string) (string, error)
}

func userID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// RequestLogger logs one line per request after it completes.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
