package hub

import (
	"net/http"
	"sync"

	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/logging"
	"github.com/enbility/telemetry-go/model"
	"github.com/enbility/telemetry-go/ws"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Connection Handling

// HTTP callback for handling incoming websocket connection requests
func (h *Hub) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  ws.MaxMessageSize,
		WriteBufferSize: ws.MaxMessageSize,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Log().Debug("error during connection upgrading:", err)
		return
	}

	dataHandler := ws.NewWebsocketConnection(conn, uuid.NewString(), h.cfg.Server.SendQueueSize)
	s, ok := h.registerSession(dataHandler)
	if !ok {
		dataHandler.Close(websocket.CloseGoingAway, "server shutdown")
		return
	}

	logging.Log().Debug(dataHandler.ID(), "connection opened from", r.RemoteAddr)

	dataHandler.InitDataProcessing(s)
}

// add a session for a new connection
//
// returns false once the hub is shutting down
func (h *Hub) registerSession(conn api.ConnectionInterface) (*session, bool) {
	s := newSession(h, conn)

	h.muxSessions.Lock()
	if h.sessionsClosed {
		h.muxSessions.Unlock()
		return nil, false
	}
	h.sessions[conn.ID()] = s
	h.muxSessions.Unlock()

	h.metrics.connectionOpened()

	return s, true
}

func (h *Hub) unregisterSession(s *session) {
	h.muxSessions.Lock()
	if current, ok := h.sessions[s.conn.ID()]; ok && current == s {
		delete(h.sessions, s.conn.ID())
	}
	h.muxSessions.Unlock()

	h.metrics.connectionClosed()
}

// SessionCount returns the number of open websocket sessions
func (h *Hub) SessionCount() int {
	h.muxSessions.Lock()
	defer h.muxSessions.Unlock()

	return len(h.sessions)
}

func (h *Hub) closeAllSessions(closeCode int, reason string) {
	// closing re-enters the hub through ReportConnectionClosed
	h.muxSessions.Lock()
	h.sessionsClosed = true
	sessions := make([]*session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.muxSessions.Unlock()

	for _, s := range sessions {
		s.close(closeCode, reason)
	}
}

// A websocket connection registered in the hub
//
// The session mutex serializes membership changes against the close
// cleanup, so no membership can be added once the connection is removed
// from the registry.
type session struct {
	hub  *Hub
	conn api.ConnectionInterface

	closed bool

	mux       sync.Mutex
	closeOnce sync.Once
}

var _ api.ConnectionReaderInterface = (*session)(nil)

func newSession(hub *Hub, conn api.ConnectionInterface) *session {
	return &session{
		hub:  hub,
		conn: conn,
	}
}

func (s *session) HandleIncomingMessage(message []byte) {
	s.hub.handleCommand(s, message)
}

func (s *session) ReportConnectionClosed(err error) {
	if err != nil {
		logging.Log().Debug(s.conn.ID(), "connection closed with error:", err)
	}

	s.cleanup()
}

// remove the connection from every topic, runs exactly once
func (s *session) cleanup() {
	s.closeOnce.Do(func() {
		s.mux.Lock()
		s.closed = true
		removed := s.hub.registry.RemoveEverywhere(s.conn)
		s.mux.Unlock()

		s.hub.unregisterSession(s)

		logging.Log().Debugf("%s connection closed, removed %d subscriptions", s.conn.ID(), removed)
	})
}

// close the connection and clean up
func (s *session) close(closeCode int, reason string) {
	s.conn.Close(closeCode, reason)
	s.cleanup()
}

func (s *session) subscribe(topic model.Topic) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.closed {
		return api.ErrConnectionClosed
	}

	s.hub.registry.Subscribe(topic, s.conn)

	return nil
}

func (s *session) unsubscribe(topic model.Topic) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.closed {
		return api.ErrConnectionClosed
	}

	s.hub.registry.Unsubscribe(topic, s.conn)

	return nil
}

func (s *session) send(event model.Event) {
	s.hub.sendTo(s.conn, event)
}
