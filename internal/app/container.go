package app

import (
	"fmt"
	"net/http"

	"github.com/kapu/senate-directory-go/internal/adapter"
	"github.com/kapu/senate-directory-go/internal/config"
	"github.com/kapu/senate-directory-go/internal/server"
	"github.com/kapu/senate-directory-go/internal/service/cache"
	"github.com/kapu/senate-directory-go/internal/service/dataset"
	"github.com/kapu/senate-directory-go/internal/service/photo"
	"github.com/kapu/senate-directory-go/internal/service/store"
	"go.uber.org/zap"
)

// Container bundles the assembled services of one process.
type Container struct {
	Config    *config.Config
	Logger    *zap.Logger
	Store     *store.Store
	Photos    *photo.Service
	Formatter *adapter.Formatter

	// Watcher is nil unless the dataset is a local file and watching is on.
	Watcher *store.Watcher
	// Cache is nil when Redis is disabled or unreachable at startup.
	Cache *cache.CacheService

	closers []func()
}

// Build assembles every service. Nothing is fetched yet; callers decide
// whether a failed first load is fatal.
func Build(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Formatter: adapter.NewFormatter(0),
	}

	// 캐시는 선택 사항: 연결 실패 시 캐시 없이 진행
	var datasetCache store.DatasetCache
	if cfg.Redis.Enabled() {
		cacheSvc, err := cache.NewCacheService(cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without dataset cache", zap.Error(err))
		} else {
			c.Cache = cacheSvc
			datasetCache = cacheSvc
			c.closers = append(c.closers, func() { _ = cacheSvc.Close() })
		}
	}

	httpClient := &http.Client{}

	var source dataset.Source
	switch {
	case cfg.Dataset.UsesFile():
		fileSource := dataset.NewFileSource(cfg.Dataset.File)
		source = fileSource
		c.Store = store.NewStore(source, datasetCache, logger)
		if cfg.Dataset.Watch {
			c.Watcher = store.NewWatcher(c.Store, fileSource.Path(), logger)
		}
	case cfg.Dataset.UsesBundled():
		source = dataset.NewBundledSource()
		c.Store = store.NewStore(source, datasetCache, logger)
	default:
		source = dataset.NewHTTPSource(httpClient, cfg.Dataset.URL, cfg.Dataset.Timeout, logger)
		c.Store = store.NewStore(source, datasetCache, logger)
	}

	c.Photos = photo.NewService(httpClient, cfg.Photo.BaseURL, logger)

	logger.Info("Directory services assembled",
		zap.String("source", source.Name()),
		zap.Bool("cache", datasetCache != nil),
		zap.Bool("watch", c.Watcher != nil),
	)

	return c, nil
}

// NewServer creates the HTTP server over the container's services.
func (c *Container) NewServer() *server.Server {
	opts := server.Options{
		Addr:        c.Config.Server.Addr,
		CORSOrigins: c.Config.Server.CORSOrigins,
	}
	// nil 인터페이스 방지: 캐시가 없으면 Options.Cache 도 nil 로 둔다
	if c.Cache != nil {
		opts.Cache = c.Cache
	}
	return server.New(opts, c.Store, c.Photos, c.Logger)
}

// Close releases resources in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
