package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/kapu/senate-directory-go/internal/constants"
	"github.com/kapu/senate-directory-go/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheService stores raw dataset bodies in Redis so that several server
// instances share one upstream fetch per TTL.
type CacheService struct {
	client redis.Cmdable
	closer func() error
	logger *zap.Logger
}

type CacheConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func NewCacheService(cfg CacheConfig, logger *zap.Logger) (*CacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  constants.RedisConfig.DialTimeout,
		ReadTimeout:  constants.RedisConfig.ReadTimeout,
		WriteTimeout: constants.RedisConfig.WriteTimeout,
		PoolSize:     constants.RedisConfig.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.RedisConfig.PingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewCacheError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)

	return &CacheService{
		client: client,
		closer: client.Close,
		logger: logger,
	}, nil
}

// NewCacheServiceWithClient wraps an existing client. The caller keeps
// ownership of the client.
func NewCacheServiceWithClient(client redis.Cmdable, logger *zap.Logger) *CacheService {
	return &CacheService{
		client: client,
		logger: logger,
	}
}

// DatasetKey is the cache key for the dataset fetched from source.
func DatasetKey(source string) string {
	return fmt.Sprintf("%s:%s", constants.DatasetConfig.CacheKey, source)
}

// Get returns the value at key; found is false when the key does not exist.
func (c *CacheService) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	value, err = c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false, errors.NewCacheError("get failed", "get", key, err)
	}
	return value, true, nil
}

func (c *CacheService) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("set failed", "set", key, err)
	}
	return nil
}

func (c *CacheService) Del(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("delete failed", "del", key, err)
	}
	return nil
}

// GetDataset returns a cached dataset body. Cache failures read as a miss.
func (c *CacheService) GetDataset(ctx context.Context, source string) ([]byte, bool) {
	body, found, err := c.Get(ctx, DatasetKey(source))
	if err != nil || !found {
		c.logger.Debug("Dataset cache miss", zap.String("source", source))
		return nil, false
	}
	return body, true
}

// SetDataset caches a dataset body; failures are logged only.
func (c *CacheService) SetDataset(ctx context.Context, source string, body []byte) {
	if err := c.Set(ctx, DatasetKey(source), body, constants.CacheTTL.Dataset); err != nil {
		c.logger.Warn("Failed to cache dataset, continuing without cache", zap.String("source", source))
	}
}

// DropDataset removes a cached body, e.g. after it failed to parse.
func (c *CacheService) DropDataset(ctx context.Context, source string) {
	_ = c.Del(ctx, DatasetKey(source))
}

func (c *CacheService) IsConnected(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}

func (c *CacheService) Close() error {
	if c.closer == nil {
		return nil
	}
	if err := c.closer(); err != nil {
		c.logger.Error("Failed to close Redis connection", zap.Error(err))
		return err
	}
	c.logger.Info("Redis disconnected")
	return nil
}
