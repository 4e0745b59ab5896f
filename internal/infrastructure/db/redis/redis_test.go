package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptions_Defaults(t *testing.T) {
	opts := options(Config{Addr: "localhost:6379"})

	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, defaultPoolSize, opts.PoolSize)
	assert.Equal(t, defaultPoolSize/4, opts.MinIdleConns)
	assert.Equal(t, defaultTimeout, opts.DialTimeout)
	assert.Equal(t, defaultTimeout, opts.ReadTimeout)
	assert.Equal(t, defaultTimeout, opts.WriteTimeout)
}

func TestOptions_Overrides(t *testing.T) {
	opts := options(Config{Addr: "cache:6380", DB: 2, ClientName: "user-service", PoolSize: 40, Timeout: time.Second})

	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "user-service", opts.ClientName)
	assert.Equal(t, 40, opts.PoolSize)
	assert.Equal(t, 10, opts.MinIdleConns)
	assert.Equal(t, time.Second, opts.ReadTimeout)
}
