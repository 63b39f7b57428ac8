package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"clinic-scheduling-api/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	dialTimeout = 5 * time.Second
	// Slot cache reads give up after 2s; the socket timeouts stay below that.
	ioTimeout = 1500 * time.Millisecond
)

// NewRedisClient connects to Redis and verifies the connection with a PING
// bounded by ctx. The client is closed again if the ping fails.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, log *logrus.Logger) (*redis.Client, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	log.WithFields(logrus.Fields{"addr": addr, "db": cfg.DB}).Info("Connected to Redis")
	return client, nil
}
