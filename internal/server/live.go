package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kapu/senate-directory-go/internal/constants"
	"github.com/kapu/senate-directory-go/internal/directory"
	"github.com/kapu/senate-directory-go/internal/domain"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// LiveMessage is what the server sends on /ws.
type LiveMessage struct {
	Type  string                `json:"type"`
	View  *directory.ViewResult `json:"view,omitempty"`
	Error string                `json:"error,omitempty"`
}

const (
	liveTypeView  = "view"
	liveTypeError = "error"
)

type snapshotReader interface {
	Current() (*directory.Snapshot, bool)
}

// session is one websocket client and the filter state it last sent.
type session struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	mu    sync.Mutex
	state domain.FilterState
}

func (c *session) filterState() domain.FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *session) setFilterState(state domain.FilterState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

// Hub tracks live sessions. Each session gets a fresh view after every
// filter message it sends and after every snapshot reload.
type Hub struct {
	store    snapshotReader
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu       sync.RWMutex
	sessions map[*session]struct{}
	closed   bool
}

func NewHub(store snapshotReader, logger *zap.Logger) *Hub {
	return &Hub{
		store: store,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:   logger,
		sessions: make(map[*session]struct{}),
	}
}

func (h *Hub) register(c *session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.sessions[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *session) {
	h.mu.Lock()
	delete(h.sessions, c)
	h.mu.Unlock()
}

// Len is the number of connected sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// ServeWS upgrades the connection and runs the session until either side
// closes it.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	c := &session{
		conn:  conn,
		send:  make(chan []byte, constants.LiveConfig.SendBuffer),
		done:  make(chan struct{}),
		state: domain.DefaultFilterState(),
	}
	if !h.register(c) {
		_ = conn.Close()
		return
	}
	defer h.unregister(c)

	h.logger.Debug("Live session opened", zap.String("remote", r.RemoteAddr))
	h.push(c, h.render(c.filterState()))

	var wg conc.WaitGroup
	wg.Go(func() { h.writeLoop(c) })
	wg.Go(func() {
		defer close(c.done)
		h.readLoop(c)
	})
	wg.Wait()

	_ = conn.Close()
	h.logger.Debug("Live session closed", zap.String("remote", r.RemoteAddr))
}

func (h *Hub) readLoop(c *session) {
	c.conn.SetReadLimit(constants.LiveConfig.MaxMessage)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var state domain.FilterState
		if err := json.Unmarshal(data, &state); err != nil {
			h.push(c, encodeLive(LiveMessage{Type: liveTypeError, Error: "invalid filter state"}))
			continue
		}

		state = state.Normalized()
		c.setFilterState(state)
		h.push(c, h.render(state))
	}
}

func (h *Hub) writeLoop(c *session) {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(constants.LiveConfig.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				// 읽기 루프를 깨워 세션을 정리한다
				_ = c.conn.Close()
				return
			}
		}
	}
}

// push queues msg for c, dropping it when the client is not keeping up.
func (h *Hub) push(c *session, msg []byte) {
	if msg == nil {
		return
	}
	select {
	case c.send <- msg:
	default:
		h.logger.Warn("Live session send buffer full, dropping message")
	}
}

func (h *Hub) render(state domain.FilterState) []byte {
	snap, ok := h.store.Current()
	if !ok {
		return encodeLive(LiveMessage{Type: liveTypeError, Error: unavailableMessage})
	}
	return renderView(snap, state)
}

func renderView(snap *directory.Snapshot, state domain.FilterState) []byte {
	view := directory.View(snap, state)
	return encodeLive(LiveMessage{Type: liveTypeView, View: &view})
}

func encodeLive(msg LiveMessage) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil
	}
	return data
}

// Broadcast sends every session its view of snap.
func (h *Hub) Broadcast(snap *directory.Snapshot) {
	h.mu.RLock()
	sessions := make([]*session, 0, len(h.sessions))
	for c := range h.sessions {
		sessions = append(sessions, c)
	}
	h.mu.RUnlock()

	for _, c := range sessions {
		h.push(c, renderView(snap, c.filterState()))
	}

	if len(sessions) > 0 {
		h.logger.Info("Pushed reloaded directory to live sessions",
			zap.String("snapshot", snap.ID),
			zap.Int("sessions", len(sessions)),
		)
	}
}

// Close disconnects every session and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	sessions := make([]*session, 0, len(h.sessions))
	for c := range h.sessions {
		sessions = append(sessions, c)
	}
	h.mu.Unlock()

	for _, c := range sessions {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		_ = c.conn.Close()
	}
}
