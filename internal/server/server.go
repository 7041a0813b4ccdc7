package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kapu/senate-directory-go/internal/constants"
	"github.com/kapu/senate-directory-go/internal/directory"
	"github.com/kapu/senate-directory-go/internal/service/photo"
	"github.com/kapu/senate-directory-go/internal/service/store"
	"github.com/kapu/senate-directory-go/internal/util"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// SnapshotStore is the part of the store the server reads from.
type SnapshotStore interface {
	Current() (*directory.Snapshot, bool)
	Reload(ctx context.Context) (*directory.Snapshot, error)
	Status() store.Status
	LastError() error
	Subscribe(fn store.Listener) func()
}

// PhotoFetcher returns legislator photos.
type PhotoFetcher interface {
	Fetch(ctx context.Context, imageID string) (photo.Photo, error)
	Breaker() util.CircuitBreakerStatus
}

// CacheChecker reports whether the shared dataset cache is reachable.
type CacheChecker interface {
	IsConnected(ctx context.Context) bool
}

type Options struct {
	Addr        string
	CORSOrigins []string
	// Cache is nil when no shared cache is configured.
	Cache CacheChecker
}

// Server is the directory's HTTP surface: page, JSON API, photos and the
// live websocket.
type Server struct {
	opts   Options
	store  SnapshotStore
	photos PhotoFetcher
	live   *Hub
	logger *zap.Logger

	httpServer  *http.Server
	unsubscribe func()
}

func New(opts Options, st SnapshotStore, photos PhotoFetcher, logger *zap.Logger) *Server {
	s := &Server{
		opts:   opts,
		store:  st,
		photos: photos,
		logger: logger,
	}
	s.live = NewHub(st, logger)
	s.unsubscribe = st.Subscribe(s.live.Broadcast)
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	origins := s.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "If-None-Match"},
		ExposedHeaders: []string{"ETag"},
		MaxAge:         constants.ServerConfig.CORSMaxAge,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsHandler.Handler)

	// websocket 연결은 Timeout 미들웨어 밖에 둔다
	r.Get("/ws", s.live.ServeWS)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(constants.ServerConfig.RequestTimeout))

		r.Get("/", s.handleIndex)
		r.Get("/healthz", s.handleHealth)

		r.Route("/api", func(r chi.Router) {
			r.Get("/senators", s.handleSenators)
			r.Get("/parties", s.handleParties)
			r.Get("/leaders", s.handleLeaders)
			r.Get("/facets", s.handleFacets)
			r.Get("/photos/{imageID}", s.handlePhoto)
			r.Post("/reload", s.handleReload)
		})
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(started)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: constants.ServerConfig.ReadHeaderTimeout,
	}

	s.logger.Info("HTTP server listening", zap.String("addr", s.opts.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and closes live sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.live.Close()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
