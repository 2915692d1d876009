package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Disabled(t *testing.T) {
	c, err := NewClient(context.Background(), "")

	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewClient_BadURL(t *testing.T) {
	c, err := NewClient(context.Background(), "http://not-redis")

	assert.Nil(t, c)
	require.ErrorContains(t, err, "parse redis URL")
}

func TestClient_HealthUnreachable(t *testing.T) {
	c := &Client{Client: redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})}
	t.Cleanup(func() { c.Close() })

	assert.Error(t, c.Health(context.Background()))
}
