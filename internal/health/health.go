package health

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	StatusHealthy     = "healthy"
	StatusDegraded    = "degraded"
	StatusUnavailable = "unavailable"
	StatusDisabled    = "disabled"
)

type DependencyStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Checker pings the database and, when configured, redis.
type Checker struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewChecker(db *gorm.DB, redisClient *redis.Client) *Checker {
	return &Checker{db: db, redis: redisClient}
}

func (c *Checker) Database(ctx context.Context) DependencyStatus {
	if c.db == nil {
		return DependencyStatus{Status: StatusUnavailable, Message: "database not initialized"}
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return DependencyStatus{Status: StatusUnavailable, Message: err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return DependencyStatus{Status: StatusUnavailable, Message: "database ping failed: " + err.Error()}
	}
	return DependencyStatus{Status: StatusHealthy, Message: "database is responding"}
}

func (c *Checker) Cache(ctx context.Context) DependencyStatus {
	if c.redis == nil {
		return DependencyStatus{Status: StatusDisabled, Message: "cache not configured"}
	}
	if err := c.redis.Ping(ctx).Err(); err != nil {
		return DependencyStatus{Status: StatusUnavailable, Message: "redis ping failed: " + err.Error()}
	}
	return DependencyStatus{Status: StatusHealthy, Message: "redis is responding"}
}

// Report checks every dependency under one timeout. The overall status is
// unavailable without a database and degraded when only the cache is down.
func (c *Checker) Report(ctx context.Context) (string, map[string]DependencyStatus) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	services := map[string]DependencyStatus{
		"database": c.Database(ctx),
		"cache":    c.Cache(ctx),
	}

	overall := StatusHealthy
	if services["cache"].Status == StatusUnavailable {
		overall = StatusDegraded
	}
	if services["database"].Status != StatusHealthy {
		overall = StatusUnavailable
	}
	return overall, services
}
