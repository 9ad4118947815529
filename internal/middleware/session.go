package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/mf_receipt_desk/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// MFSessionMiddleware loads the cashier's MF backend cookie from the client state
// store and attaches it to the request context for the gateway.
// It must run after AuthMiddleware.
func MFSessionMiddleware(sessions portssvc.SessionReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		cookie, err := sessions.SessionCookie(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				// Login succeeded without a Set-Cookie header; calls go out unauthenticated.
				c.Next()
				return
			}
			logger.Error("Failed to load MF session cookie", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			return
		}

		c.Request = c.Request.WithContext(gateways.ContextWithSessionCookie(c.Request.Context(), cookie))
		c.Next()
	}
}
