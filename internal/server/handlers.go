package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kapu/senate-directory-go/internal/constants"
	"github.com/kapu/senate-directory-go/internal/directory"
	"github.com/kapu/senate-directory-go/internal/domain"
	"github.com/kapu/senate-directory-go/internal/service/store"
	"github.com/kapu/senate-directory-go/internal/util"
	"github.com/kapu/senate-directory-go/pkg/errors"
	"go.uber.org/zap"
)

const unavailableMessage = "Data unavailable"

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to write JSON response", zap.Error(err))
	}
}

// writeError maps typed errors to their status; anything else is a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := errors.CodeDirectoryError

	var (
		netErr        *errors.NetworkError
		parseErr      *errors.ParsingError
		validationErr *errors.ValidationError
	)
	switch {
	case stderrors.As(err, &netErr):
		status, code = http.StatusBadGateway, netErr.Code
		if netErr.StatusCode == http.StatusGatewayTimeout {
			status = http.StatusGatewayTimeout
		}
	case stderrors.As(err, &parseErr):
		status, code = http.StatusBadGateway, parseErr.Code
	case stderrors.As(err, &validationErr):
		status, code = validationErr.StatusCode, validationErr.Code
	}

	s.writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

// snapshot returns the current snapshot or answers 503.
func (s *Server) snapshot(w http.ResponseWriter) (*directory.Snapshot, bool) {
	snap, ok := s.store.Current()
	if !ok {
		resp := errorResponse{Error: unavailableMessage}
		if err := s.store.LastError(); err != nil {
			resp.Error = fmt.Sprintf("%s: %s", unavailableMessage, err)
		}
		s.writeJSON(w, http.StatusServiceUnavailable, resp)
		return nil, false
	}
	return snap, true
}

// notModified sets the snapshot ETag and reports whether the client copy is
// current.
func notModified(w http.ResponseWriter, r *http.Request, snap *directory.Snapshot) bool {
	etag := strconv.Quote(snap.ID)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

// filterStateFromQuery reads party, state, rank and q.
func filterStateFromQuery(r *http.Request) domain.FilterState {
	q := r.URL.Query()
	return domain.FilterState{
		Party:  q.Get("party"),
		State:  q.Get("state"),
		Rank:   q.Get("rank"),
		Search: q.Get("q"),
	}.Normalized()
}

func (s *Server) handleSenators(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok || notModified(w, r, snap) {
		return
	}
	s.writeJSON(w, http.StatusOK, directory.View(snap, filterStateFromQuery(r)))
}

func (s *Server) handleParties(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok || notModified(w, r, snap) {
		return
	}
	s.writeJSON(w, http.StatusOK, snap.Parties)
}

func (s *Server) handleLeaders(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok || notModified(w, r, snap) {
		return
	}
	s.writeJSON(w, http.StatusOK, snap.Leaders)
}

func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok || notModified(w, r, snap) {
		return
	}
	s.writeJSON(w, http.StatusOK, snap.Facets)
}

func (s *Server) handlePhoto(w http.ResponseWriter, r *http.Request) {
	imageID := chi.URLParam(r, "imageID")

	p, err := s.photos.Fetch(r.Context(), imageID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", p.ContentType)
	if p.Placeholder {
		w.Header().Set("Cache-Control", "no-cache")
	} else {
		w.Header().Set("Cache-Control", constants.PhotoConfig.CacheControl)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(p.Body)
}

type reloadResponse struct {
	SnapshotID string `json:"snapshot_id"`
	Senators   int    `json:"senators"`
	Skipped    int    `json:"skipped"`
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Reload(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, reloadResponse{
		SnapshotID: snap.ID,
		Senators:   snap.Len(),
		Skipped:    snap.Skipped,
	})
}

type cacheHealth struct {
	Connected bool `json:"connected"`
}

type healthReport struct {
	Store  store.Status              `json:"store"`
	Photos util.CircuitBreakerStatus `json:"photos"`
	Cache  *cacheHealth              `json:"cache,omitempty"`
}

// handleHealth is 503 only while no snapshot is loaded. An open photo
// circuit or a lost cache connection degrade the page but do not fail it.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := healthReport{
		Store:  s.store.Status(),
		Photos: s.photos.Breaker(),
	}
	if s.opts.Cache != nil {
		ctx, cancel := context.WithTimeout(r.Context(), constants.ServerConfig.HealthCacheTimeout)
		defer cancel()
		report.Cache = &cacheHealth{Connected: s.opts.Cache.IsConnected(ctx)}
	}

	code := http.StatusOK
	if !report.Store.Loaded {
		code = http.StatusServiceUnavailable
	}
	s.writeJSON(w, code, report)
}
