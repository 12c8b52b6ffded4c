package app

import (
	"errors"
	"net/http"

	"go-settlement/internal/config"
	"go-settlement/internal/middleware"
	"go-settlement/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BuildApp connects infrastructure, migrates, and mounts every module on
// router. The returned func releases connections.
func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) (func(), error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	db, err := connection.ConnectGORMWithRetry(cfg.DB, cfg.IsProduction())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	if err := migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() { _ = sqlDB.Close() }

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DB.MaxRetries)
	if err != nil {
		cleanup()
		return nil, err
	}
	logger.Info("redis connection established")
	cleanup = func() {
		_ = rdb.Close()
		_ = sqlDB.Close()
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if err := registerModules(router, cfg, db, rdb, logger); err != nil {
		cleanup()
		return nil, err
	}
	return cleanup, nil
}
