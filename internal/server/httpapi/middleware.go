package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/prisynced/internal/common"
	"github.com/dmitrijs2005/prisynced/internal/server/auth"
)

const (
	requestIDHeader = "X-Request-ID"

	ctxRequestID = "requestID"
	ctxUserID    = "userID"
)

// requestID propagates the caller's X-Request-ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"request_id", c.GetString(ctxRequestID),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"user_id", c.GetString(ctxUserID),
			"duration", time.Since(start),
		)
	}
}

// authRequired accepts a bearer token or the session cookie.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, common.AuthorizationScheme) {
			token = strings.TrimPrefix(h, common.AuthorizationScheme)
		}
		if token == "" {
			if cookie, err := c.Cookie(common.AccessTokenCookieName); err == nil {
				token = cookie
			}
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			s.logger.Debug(c.Request.Context(), "token rejected", "request_id", c.GetString(ctxRequestID), "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Next()
	}
}
