package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_OptionsDefaults(t *testing.T) {
	opts := Config{Addr: "cache:6379", DB: 2}.options()

	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, DefaultPoolSize, opts.PoolSize)
	assert.Equal(t, DefaultDialTimeout, opts.DialTimeout)
	assert.Equal(t, DefaultIOTimeout, opts.ReadTimeout)
}

func TestNewClient_Unreachable(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to Redis")
}

func TestPVPStats_TopNonPositive(t *testing.T) {
	s := NewPVPStats(nil)
	out, err := s.Top(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}
