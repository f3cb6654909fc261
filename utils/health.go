package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HealthStatus is a snapshot of connectivity to the backing services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Cache     bool      `json:"cache"`
	AuthCache bool      `json:"authCache"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every backing service responded to the last check.
func (h HealthStatus) Healthy() bool {
	return h.Mongo && h.Cache && h.AuthCache
}

var (
	currentHealth   HealthStatus
	currentHealthMu sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	currentHealthMu.RLock()
	defer currentHealthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor pings MongoDB and both Redis clients once immediately and
// then every minute, updating the in-memory snapshot served by /health.
func StartHealthMonitor(mongoClient *mongo.Client, cache, authCache *redis.Client) {
	check := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		status := HealthStatus{CheckedAt: time.Now()}
		status.Mongo = mongoClient.Ping(ctx, nil) == nil
		status.Cache = cache.Ping(ctx).Err() == nil
		status.AuthCache = authCache.Ping(ctx).Err() == nil

		if !status.Healthy() {
			GetLogger().Warn("health check degraded",
				zap.Bool("mongo", status.Mongo),
				zap.Bool("cache", status.Cache),
				zap.Bool("authCache", status.AuthCache))
		}

		currentHealthMu.Lock()
		currentHealth = status
		currentHealthMu.Unlock()
	}

	check()
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			check()
		}
	}()
}
