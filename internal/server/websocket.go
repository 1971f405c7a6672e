package server

import (
	"bytes"
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/minimax-chess-go/internal/config"
	"github.com/lgbarn/minimax-chess-go/internal/uci"
)

const sessionLocal = "session"

// upgrade admits websocket handshakes for known sessions only.
func (s *Server) upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	sess, err := s.sessions.Get(c.Params("id"))
	if err != nil {
		return err
	}
	c.Locals(sessionLocal, sess)
	return c.Next()
}

// protocolLoop runs protocol lines received as text messages against the
// session. Each message gets the command's output as one text message.
func (s *Server) protocolLoop(conn *websocket.Conn) {
	sess := conn.Locals(sessionLocal).(*uci.Session)
	id := conn.Params("id")
	s.cfg.Logf(config.Verbose, "session %s: websocket connected", id)
	defer s.cfg.Logf(config.Verbose, "session %s: websocket closed", id)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		out.Reset()
		quit, err := sess.Execute(ctx, string(message), &out)
		if err != nil {
			s.cfg.Logf(config.Verbose, "session %s: %v", id, err)
		}
		if out.Len() > 0 {
			if err := conn.WriteMessage(websocket.TextMessage, out.Bytes()); err != nil {
				return
			}
		}
		if quit {
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "quit"))
			return
		}
	}
}
