package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/geombridge/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Handler returns the HTTP handler serving the bridge WebSocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.WebSocket.Path, s.handleWebSocket)
	return mux
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.accepting() {
		http.Error(w, ErrServerClosed.Error(), http.StatusServiceUnavailable)
		return
	}
	if s.SessionCount() >= s.config.Limits.MaxSessions {
		http.Error(w, ErrMaxSessionsReached.Error(), http.StatusServiceUnavailable)
		return
	}

	// Shutdown stops tracking the connection once Upgrade hijacks it.
	s.workerGroup.Add(1)
	defer s.workerGroup.Done()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed",
			log.String("remote_addr", r.RemoteAddr),
			log.Error(err))
		return
	}

	cs, err := s.openSession("websocket", conn.RemoteAddr().String(), conn)
	if err != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()),
			time.Now().Add(time.Second))
		_ = conn.Close()
		return
	}
	if !s.admit(cs) {
		return
	}

	defer s.closeSession(cs)
	defer func() { _ = conn.Close() }()

	s.serveWebSocket(conn, cs)
}

// serveWebSocket answers text frames one at a time until the peer leaves.
func (s *Server) serveWebSocket(conn *websocket.Conn, cs *connSession) {
	conn.SetReadLimit(int64(s.config.Limits.MaxMessageSize))
	logger := s.logger.With(log.String("session_id", cs.ID()))

	for {
		if timeout := s.config.Limits.ReadTimeout; timeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(timeout))
		}

		msgType, data, err := conn.ReadMessage()
		if err != nil {
			switch {
			case errors.Is(err, websocket.ErrReadLimit):
				logger.Warn("Frame exceeds size limit", log.Int("max_message_size", s.config.Limits.MaxMessageSize))
			case websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
				logger.Debug("Connection closed unexpectedly", log.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}

		resp := s.dispatcher.handle(cs.Session, data)
		if err := conn.WriteMessage(websocket.TextMessage, resp); err != nil {
			logger.Debug("Failed to write response", log.Error(err))
			return
		}
	}
}
