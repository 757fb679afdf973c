package redis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotel/config"
	"hotel/infras/redis"
)

func TestOptions(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "hotel"
	cfg.Cache.Redis.Primary.Host = "cache.internal"
	cfg.Cache.Redis.Primary.Port = "6380"
	cfg.Cache.Redis.Primary.DB = 2
	cfg.Cache.Redis.Primary.PoolSize = 20
	cfg.Cache.Redis.Primary.DialTimeoutSeconds = 3

	opts := redis.Options(cfg)

	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 20, opts.PoolSize)
	assert.Equal(t, 3*time.Second, opts.DialTimeout)
	assert.Equal(t, "hotel", opts.ClientName)
}

func TestOptions_DefaultDialTimeout(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Redis.Primary.Host = "::1"
	cfg.Cache.Redis.Primary.Port = "6379"

	opts := redis.Options(cfg)

	assert.Equal(t, "[::1]:6379", opts.Addr)
	assert.Equal(t, 5*time.Second, opts.DialTimeout)
	assert.Zero(t, opts.PoolSize)
}
