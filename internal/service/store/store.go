package store

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kapu/senate-directory-go/internal/directory"
	"github.com/kapu/senate-directory-go/internal/service/dataset"
	"github.com/kapu/senate-directory-go/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DatasetCache is the optional shared cache in front of the dataset source.
type DatasetCache interface {
	GetDataset(ctx context.Context, source string) ([]byte, bool)
	SetDataset(ctx context.Context, source string, body []byte)
	DropDataset(ctx context.Context, source string)
}

// Listener is called with every newly published snapshot.
type Listener func(snap *directory.Snapshot)

// Store holds the current directory snapshot. Readers never block; loads
// replace the snapshot atomically and a failed load keeps the previous one.
type Store struct {
	source dataset.Source
	cache  DatasetCache
	logger *zap.Logger

	current atomic.Pointer[directory.Snapshot]
	failure atomic.Pointer[loadFailure]
	group   singleflight.Group

	// 세대 번호: 늦게 끝난 이전 로드가 새 스냅샷을 덮어쓰지 않도록
	generation atomic.Uint64
	publishMu  sync.Mutex
	published  uint64

	listenersMu    sync.RWMutex
	listeners      map[int]Listener
	nextListenerID int
}

type loadFailure struct {
	err error
	at  time.Time
}

// Status describes the store for health reporting.
type Status struct {
	Loaded      bool       `json:"loaded"`
	SnapshotID  string     `json:"snapshot_id,omitempty"`
	Source      string     `json:"source"`
	FetchedAt   *time.Time `json:"fetched_at,omitempty"`
	Senators    int        `json:"senators"`
	Skipped     int        `json:"skipped"`
	LastError   string     `json:"last_error,omitempty"`
	LastErrorAt *time.Time `json:"last_error_at,omitempty"`
}

// NewStore creates an empty store. cache may be nil.
func NewStore(source dataset.Source, cache DatasetCache, logger *zap.Logger) *Store {
	return &Store{
		source:    source,
		cache:     cache,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

// Current returns the published snapshot, if any.
func (s *Store) Current() (*directory.Snapshot, bool) {
	snap := s.current.Load()
	return snap, snap != nil
}

// Load builds a snapshot, using the shared cache when it holds the dataset.
func (s *Store) Load(ctx context.Context) (*directory.Snapshot, error) {
	return s.load(ctx, true)
}

// Reload always fetches from the source and refreshes the cache.
func (s *Store) Reload(ctx context.Context) (*directory.Snapshot, error) {
	return s.load(ctx, false)
}

func (s *Store) load(ctx context.Context, useCache bool) (*directory.Snapshot, error) {
	// Load and Reload never share a flight: a Reload must not be answered
	// by a cache-backed Load that started before it.
	key := "reload"
	if useCache {
		key = "load"
	}
	// concurrent callers share one fetch; one caller going away must not
	// cancel it for the others
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.fetchAndBuild(shared, useCache)
	})
	if err != nil {
		return nil, err
	}
	return v.(*directory.Snapshot), nil
}

func (s *Store) fetchAndBuild(ctx context.Context, useCache bool) (*directory.Snapshot, error) {
	name := s.source.Name()
	gen := s.generation.Add(1)

	var (
		body   []byte
		cached bool
	)
	if useCache && s.cache != nil {
		body, cached = s.cache.GetDataset(ctx, name)
	}
	if !cached {
		fetched, err := s.source.Fetch(ctx)
		if err != nil {
			s.recordFailure(gen, err)
			return nil, err
		}
		body = fetched
	}

	ds, err := dataset.Parse(body, name)
	if err != nil {
		if cached {
			s.cache.DropDataset(ctx, name)
		}
		s.recordFailure(gen, err)
		return nil, err
	}
	if !cached && s.cache != nil {
		s.cache.SetDataset(ctx, name, body)
	}

	return s.publish(gen, directory.BuildSnapshot(ds, name, s.logger)), nil
}

// publish installs snap unless a load that started later already published.
// It returns whichever snapshot is current afterwards.
func (s *Store) publish(gen uint64, snap *directory.Snapshot) *directory.Snapshot {
	s.publishMu.Lock()
	if gen < s.published {
		current := s.current.Load()
		s.publishMu.Unlock()
		s.logger.Debug("Discarding superseded snapshot", zap.String("snapshot_id", snap.ID))
		return current
	}
	s.published = gen
	s.current.Store(snap)
	s.failure.Store(nil)
	s.publishMu.Unlock()

	s.notify(snap)
	return snap
}

func (s *Store) recordFailure(gen uint64, err error) {
	s.publishMu.Lock()
	if gen > s.published {
		s.failure.Store(&loadFailure{err: err, at: time.Now()})
	}
	s.publishMu.Unlock()

	var (
		netErr   *errors.NetworkError
		parseErr *errors.ParsingError
	)
	switch {
	case stderrors.As(err, &netErr):
		s.logger.Error("Network error, please check the dataset source",
			zap.String("source", netErr.Source),
			zap.Int("status", netErr.StatusCode),
			zap.Error(err),
		)
	case stderrors.As(err, &parseErr):
		s.logger.Error("Dataset parsing error",
			zap.String("source", parseErr.Source),
			zap.Error(err),
		)
	default:
		s.logger.Error("There was a problem loading the dataset", zap.Error(err))
	}
}

// LastError returns the error of the most recent load if it failed.
func (s *Store) LastError() error {
	if f := s.failure.Load(); f != nil {
		return f.err
	}
	return nil
}

func (s *Store) Status() Status {
	status := Status{Source: s.source.Name()}
	if snap, ok := s.Current(); ok {
		fetched := snap.FetchedAt
		status.Loaded = true
		status.SnapshotID = snap.ID
		status.FetchedAt = &fetched
		status.Senators = snap.Len()
		status.Skipped = snap.Skipped
	}
	if f := s.failure.Load(); f != nil {
		at := f.at
		status.LastError = f.err.Error()
		status.LastErrorAt = &at
	}
	return status
}

// Subscribe registers fn for future snapshots and returns its cancel func.
func (s *Store) Subscribe(fn Listener) func() {
	s.listenersMu.Lock()
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *Store) notify(snap *directory.Snapshot) {
	s.listenersMu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenersMu.RUnlock()

	for _, fn := range listeners {
		fn(snap)
	}
}
