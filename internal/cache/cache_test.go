package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dharmasatrya/flightreservation/internal/models"
)

func TestGenerateKey(t *testing.T) {
	base := RouteKey{Epoch: "e1", Origin: "NYC", Destination: "LAX", Version: 3}

	assert.Equal(t, generateKey(base), generateKey(base))
	assert.True(t, strings.HasPrefix(generateKey(base), "route:e1:v3:"))

	tests := []struct {
		name  string
		other RouteKey
	}{
		{name: "reversed", other: RouteKey{Epoch: "e1", Origin: "LAX", Destination: "NYC", Version: 3}},
		{name: "newer graph", other: RouteKey{Epoch: "e1", Origin: "NYC", Destination: "LAX", Version: 4}},
		{name: "boundary shift", other: RouteKey{Epoch: "e1", Origin: "NYCL", Destination: "AX", Version: 3}},
		{name: "other process", other: RouteKey{Epoch: "e2", Origin: "NYC", Destination: "LAX", Version: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, generateKey(base), generateKey(tt.other))
		})
	}
}

func TestNoOpCache(t *testing.T) {
	c := NewNoOpCache()
	ctx := context.Background()
	key := RouteKey{Origin: "A", Destination: "B"}

	assert.NoError(t, c.Set(ctx, key, models.RouteResponse{Origin: "A"}))
	_, ok := c.Get(ctx, key)
	assert.False(t, ok)
	assert.NoError(t, c.Close())
}

func TestDefaultRedisConfig(t *testing.T) {
	cfg := DefaultRedisConfig()
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "6379", cfg.Port)
	assert.Positive(t, cfg.TTL)
}
