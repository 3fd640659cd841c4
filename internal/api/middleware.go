package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rpggio/costtrack/internal/domain/activity"
)

// LocalActor is recorded as the actor when authentication is disabled.
const LocalActor = "local"

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if logger == nil {
			return
		}
		level := slog.LevelDebug
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

func bearerAuth(resolver KeyResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		label, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil || label == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid bearer token"})
			return
		}
		c.Request = c.Request.WithContext(activity.WithActor(c.Request.Context(), label))
		c.Next()
	}
}

func localActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(activity.WithActor(c.Request.Context(), LocalActor))
		c.Next()
	}
}
