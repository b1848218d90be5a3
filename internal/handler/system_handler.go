package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"

	"accesshub/config"
	"accesshub/internal/apperrors"
	"accesshub/internal/response"
)

const serviceName = "accesshub"

// Version is stamped at build time via -ldflags.
var Version = "dev"

// SystemHandler serves the operational introspection endpoints.
type SystemHandler struct {
	db      *pgxpool.Pool
	rdb     *redislib.Client
	cfg     *config.Config
	started time.Time
}

func NewSystemHandler(db *pgxpool.Pool, rdb *redislib.Client, cfg *config.Config) *SystemHandler {
	return &SystemHandler{db: db, rdb: rdb, cfg: cfg, started: time.Now()}
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "service healthy", gin.H{
		"status": "healthy",
	})
}

// HealthDetailed handles GET /health/detailed
func (h *SystemHandler) HealthDetailed(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	dbStatus := "up"
	if err := h.db.Ping(ctx); err != nil {
		dbStatus = "down"
	}
	redisStatus := "up"
	if err := h.rdb.Ping(ctx).Err(); err != nil {
		redisStatus = "down"
	}

	if dbStatus == "down" {
		response.Fail(c, apperrors.Internal("database unreachable", nil))
		return
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	response.OK(c, http.StatusOK, "detailed health", gin.H{
		"status":        "healthy",
		"uptimeSeconds": int64(time.Since(h.started).Seconds()),
		"database":      dbStatus,
		"redis":         redisStatus,
		"memory": gin.H{
			"allocBytes":      mem.Alloc,
			"totalAllocBytes": mem.TotalAlloc,
			"sysBytes":        mem.Sys,
			"numGC":           mem.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	})
}

// Info handles GET /info
func (h *SystemHandler) Info(c *gin.Context) {
	response.OK(c, http.StatusOK, "service info", gin.H{
		"name":          serviceName,
		"version":       Version,
		"mode":          h.cfg.Mode(),
		"goVersion":     runtime.Version(),
		"uptimeSeconds": int64(time.Since(h.started).Seconds()),
	})
}
