package httpserver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"accesshub/internal/apperrors"
	"accesshub/internal/response"
	"accesshub/pkg/metrics"
	"accesshub/pkg/ratelimit"
)

// Recovery converts panics into the standard 500 envelope instead of
// letting gin's default plain-text handler answer.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				response.AbortFail(c, apperrors.Internal("internal server error", fmt.Errorf("panic: %v", r)))
			}
		}()
		c.Next()
	}
}

// RequestLogger logs one line per request and feeds the HTTP duration
// histogram.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()

		metrics.RecordHTTPRequestDuration(c.Request.Method, path, strconv.Itoa(status), latency)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// SecurityHeaders sets CORS and basic hardening headers. Origins outside
// the allow-list get no CORS grants; preflights are answered directly.
func SecurityHeaders(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
			break
		}
	}

	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")

		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || originAllowed(origin, allowedOrigins)) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Header("Access-Control-Max-Age", "3600")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == origin {
			return true
		}
	}
	return false
}

// RateLimit enforces the per-client fixed-window budget. A Redis outage
// fails open: throttling is protection, not a dependency worth an outage.
func RateLimit(limiter *ratelimit.Limiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			metrics.RateLimitedCount.Inc()
			response.AbortFail(c, apperrors.RateLimited("too many requests"))
			return
		}
		c.Next()
	}
}

// RequestTimeout attaches the wall-clock budget to the request context.
// Store calls observe the deadline and surface context.DeadlineExceeded,
// which the envelope layer maps to a 504. A store operation already in
// flight may still complete server-side after the client got its answer.
func RequestTimeout(budget time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), budget)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
