package cache

import (
	"context"
	stderrors "errors"
	"net"
	"testing"
	"time"

	"github.com/kapu/senate-directory-go/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDatasetKey(t *testing.T) {
	assert.Equal(t, "directory:dataset:https://example.com/senators.json", DatasetKey("https://example.com/senators.json"))
}

func TestNewCacheServiceUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	svc, err := NewCacheService(CacheConfig{Host: "127.0.0.1", Port: port}, zap.NewNop())

	assert.Nil(t, svc)
	var cacheErr *errors.CacheError
	require.True(t, stderrors.As(err, &cacheErr), "got %T", err)
	assert.Equal(t, "ping", cacheErr.Operation)
}

func TestCloseWithoutOwnedClient(t *testing.T) {
	svc := NewCacheServiceWithClient(nil, zap.NewNop())
	assert.NoError(t, svc.Close())
}

func TestIsConnectedReportsLostServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	client := redis.NewClient(&redis.Options{Addr: addr, MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.False(t, NewCacheServiceWithClient(client, zap.NewNop()).IsConnected(ctx))
}
