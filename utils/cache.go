package utils

import (
	"context"
	"log"
	"time"

	"edupath/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient holds live wizard sessions.
	SessionCacheClient *redis.Client
	// OTPCacheClient holds OTP cooldowns and verified-email markers.
	OTPCacheClient *redis.Client
	// QueryCacheClient backs the tuple-keyed query cache.
	QueryCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (DB %d): %v", db, err)
	}
	return client
}

// InitRedis initializes all Redis clients used by the service.
func InitRedis() {
	SessionCacheClient = newRedisClient(config.AppConfig.RedisSessionDB)
	OTPCacheClient = newRedisClient(config.AppConfig.RedisOTPDB)
	QueryCacheClient = newRedisClient(config.AppConfig.RedisQueryDB)
}

// GetSessionCacheClient returns the wizard session cache client.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		SessionCacheClient = newRedisClient(config.AppConfig.RedisSessionDB)
	}
	return SessionCacheClient
}

// GetOTPCacheClient returns the OTP cache client.
func GetOTPCacheClient() *redis.Client {
	if OTPCacheClient == nil {
		OTPCacheClient = newRedisClient(config.AppConfig.RedisOTPDB)
	}
	return OTPCacheClient
}

// GetQueryCacheClient returns the query cache client.
func GetQueryCacheClient() *redis.Client {
	if QueryCacheClient == nil {
		QueryCacheClient = newRedisClient(config.AppConfig.RedisQueryDB)
	}
	return QueryCacheClient
}
