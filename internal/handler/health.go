package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Hemantbam/Catalog-management/internal/dto"
	"github.com/Hemantbam/Catalog-management/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports database and Redis connectivity plus the Redis breaker
// state. Redis is optional: a nil client reports "disabled" and never makes
// the service unhealthy.
func Health(db *gorm.DB, rdb *redis.Client, breaker *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "disabled"
		if rdb != nil {
			redisStatus = "connected"
			if rdb.Ping(ctx).Err() != nil {
				redisStatus = "error"
			}
		}

		details := gin.H{"db": dbStatus, "redis": redisStatus}
		if breaker != nil {
			details["redis_breaker"] = breaker.State().String()
		}

		// A Redis outage degrades rate limiting to memory; only the
		// database decides liveness.
		status := http.StatusOK
		message := "Service healthy"
		if dbStatus != "connected" {
			status = http.StatusServiceUnavailable
			message = "Service unavailable"
		}

		c.JSON(status, dto.Envelope{
			Success: status == http.StatusOK,
			Status:  status,
			Message: message,
			Details: details,
		})
	}
}
