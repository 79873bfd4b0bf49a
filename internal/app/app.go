package app

import (
	"context"
	"net/http"

	"go-vacation/internal/bootstrap"
	"go-vacation/internal/config"
	"go-vacation/internal/middleware"
	"go-vacation/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BuildApp connects the infrastructure and mounts every module on router.
// The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config, audit bootstrap.AuditLogger) (func(), error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database.DSN(), cfg.Database.MaxRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := migrate(context.Background(), gormDB, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("database schema migrated")
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		_ = redisClient.Close()
		_ = sqlDB.Close()
	}

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.IPRate), cfg.RateLimit.IPBurst),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := registerModules(router, cfg, sqlDB, gormDB, redisClient, audit); err != nil {
		cleanup()
		return nil, err
	}

	logger.Info("modules registered")
	return cleanup, nil
}
