package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"accesshub/config"
	"accesshub/internal/handler"
	"accesshub/internal/httpserver"
	"accesshub/internal/repository"
	"accesshub/internal/service/access"
	"accesshub/internal/service/auth"
	"accesshub/internal/service/user"
	"accesshub/pkg/db"
	"accesshub/pkg/logger"
	"accesshub/pkg/ratelimit"
	redisclient "accesshub/pkg/redis"
)

func main() {
	// Load config; a missing mandatory value must stop the process here.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	if cfg.Mode() == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	zlog := logger.New(cfg.Mode())
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, zlog)
	if err != nil {
		zlog.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	if err := repository.EnsureSchema(ctx, dbConn); err != nil {
		zlog.Fatal("schema bootstrap failed", zap.Error(err))
	}

	// Init Redis; the rate limiter fails open, so a down Redis is a
	// warning at boot, not a fatal.
	rdb := redisclient.NewClient(cfg.Redis)
	defer rdb.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		zlog.Warn("Redis unreachable at startup", zap.Error(err))
	}
	cancel()

	// Init Repositories
	userRepo := repository.NewUserRepository(dbConn)
	counterRepo := repository.NewCounterRepository(dbConn)

	// Init Services
	userService := user.NewService(userRepo, cfg.Auth.BcryptCost)
	accessService := access.NewService(counterRepo, cfg.Mode)
	authService := auth.NewService(userService, cfg.JWT.Secret)

	// Init Handlers
	accessHandler := handler.NewAccessHandler(accessService)
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	systemHandler := handler.NewSystemHandler(dbConn, rdb, cfg)

	limiter := ratelimit.New(rdb,
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
		cfg.RateLimit.MaxRequests,
	)

	router := httpserver.NewRouter(accessHandler, userHandler, authHandler, systemHandler, limiter, cfg, zlog)
	server := httpserver.NewServer(router, cfg.Server.Port, zlog)

	if err := server.Run(ctx); err != nil {
		zlog.Fatal("server exited with error", zap.Error(err))
	}
}
