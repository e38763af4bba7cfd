package middleware

import (
	"errors"
	"net/http"
	"strings"

	"taskboard/internal/auth"
	"taskboard/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthMiddleware validates the bearer token and puts the numeric user id
// in the request context. Requests without a usable token are rejected
// before any handler runs. Failure responses are deliberately generic so
// they leak nothing about which check failed.
func AuthMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			rejectToken(c, "missing")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			rejectToken(c, "malformed")
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				rejectToken(c, "expired")
			} else {
				rejectToken(c, "invalid")
			}
			return
		}

		userID, err := claims.ResolveUserID()
		if err != nil {
			// Validate already guarantees the claim; reaching here means
			// the token service and middleware disagree on claim shape.
			logrus.WithError(err).Error("Valid token without usable identity claim")
			rejectToken(c, "invalid")
			return
		}

		c.Set(auth.UserIDKey, userID)
		c.Next()
	}
}

func rejectToken(c *gin.Context, reason string) {
	if observability.GlobalMetrics != nil {
		observability.GlobalMetrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
	}
	c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
	c.Abort()
}
