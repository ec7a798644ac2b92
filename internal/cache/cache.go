package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/flightreservation/internal/models"
)

// RouteKey identifies a cheapest-route answer. Version is the route graph's
// version, so any flight added or deleted moves lookups to fresh keys. The
// version restarts with the process, so Epoch names the process that produced
// it and entries written before a restart are never read back.
type RouteKey struct {
	Epoch       string
	Origin      string
	Destination string
	Version     uint64
}

type Cache interface {
	Get(ctx context.Context, key RouteKey) (models.RouteResponse, bool)
	Set(ctx context.Context, key RouteKey, route models.RouteResponse) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      5 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, key RouteKey) (models.RouteResponse, bool) {
	data, err := c.client.Get(ctx, generateKey(key)).Bytes()
	if err != nil {
		return models.RouteResponse{}, false
	}

	var route models.RouteResponse
	if err := json.Unmarshal(data, &route); err != nil {
		return models.RouteResponse{}, false
	}

	return route, true
}

func (c *RedisCache) Set(ctx context.Context, key RouteKey, route models.RouteResponse) error {
	data, err := json.Marshal(route)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, generateKey(key), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, key RouteKey) (models.RouteResponse, bool) {
	return models.RouteResponse{}, false
}

func (c *NoOpCache) Set(ctx context.Context, key RouteKey, route models.RouteResponse) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func generateKey(key RouteKey) string {
	data, _ := json.Marshal(struct {
		Origin      string
		Destination string
	}{key.Origin, key.Destination})
	hash := sha256.Sum256(data)
	return "route:" + key.Epoch + ":v" + strconv.FormatUint(key.Version, 10) + ":" + hex.EncodeToString(hash[:])
}
