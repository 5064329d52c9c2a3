package http

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"

	"chatroom/domain"
	"chatroom/errors"
	"chatroom/sink"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// handleSocket owns one streaming connection for its whole lifetime. The
// first intent must be a well-formed JOIN; everything after that is CHAT or
// LEAVE. The read loop runs here, the write pump drains the session's
// bounded sink in its own goroutine.
func (s *Server) handleSocket(conn *websocket.Conn) {
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	var intent domain.Intent
	if err := conn.ReadJSON(&intent); err != nil {
		return
	}
	if err := intent.Validate(); err != nil || intent.Type != domain.EventJoin {
		s.log.Debug("dropping malformed first intent", "error", err)
		return
	}

	ctx := context.Background()
	snk := sink.NewBuffered(s.connectionBufferSize)
	sess, err := s.chat.Join(ctx, intent.Sender, snk)
	if err != nil {
		// Rejected registration: tell the requester why, then drop the
		// connection. Nothing was broadcast or appended.
		s.writeError(conn, err)
		return
	}
	defer s.chat.Leave(ctx, sess)

	done := make(chan struct{})
	defer close(done)
	go s.writePump(conn, snk, done)

	for {
		var intent domain.Intent
		if err := conn.ReadJSON(&intent); err != nil {
			// Transport-detected disconnect: implicit LEAVE via the defer,
			// never surfaced to the room as an error.
			return
		}
		if err := intent.Validate(); err != nil {
			s.log.Debug("dropping malformed intent", "identifier", sess.Identifier, "error", err)
			continue
		}
		switch intent.Type {
		case domain.EventChat:
			if err := s.chat.Chat(ctx, sess, intent); err != nil {
				// Chat-path failures are silent drops: no error broadcast.
				s.log.Debug("chat intent rejected", "identifier", sess.Identifier, "error", err)
			}
		case domain.EventLeave:
			return
		default:
			s.log.Debug("dropping unexpected intent", "identifier", sess.Identifier, "type", intent.Type)
		}
	}
}

func (s *Server) writePump(conn *websocket.Conn, snk *sink.Buffered, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case evt := <-snk.Events():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(toWireEvent(evt)); err != nil {
				s.log.Debug("stream write failed", "error", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) writeError(conn *websocket.Conn, err error) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	message := "connection rejected"
	if err == errors.ErrDuplicateIdentifier {
		message = "that name is already taken"
	}
	_ = conn.WriteJSON(wireError{Type: "ERROR", Error: message})
}
