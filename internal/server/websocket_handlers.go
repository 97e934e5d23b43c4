package server

import (
	"log/slog"

	"chirp/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// NotificationsHandler returns a websocket handler that streams mention
// notifications to the connected user. The user id comes from the query
// string; identity verification belongs to the gateway in front of this
// service.
func (s *Server) NotificationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		userID := c.QueryInt("user_id")
		if userID <= 0 {
			return fiber.ErrBadRequest
		}
		c.Locals("userID", uint(userID))

		if s.hub == nil {
			return fiber.ErrServiceUnavailable
		}

		return websocket.New(func(conn *websocket.Conn) {
			uid, ok := conn.Locals("userID").(uint)
			if !ok {
				_ = conn.Close()
				return
			}

			client, err := s.hub.Register(uid, conn)
			if err != nil {
				middleware.Logger.Warn("websocket registration failed",
					slog.Any("user_id", uid),
					slog.String("error", err.Error()),
				)
				_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
				_ = conn.Close()
				return
			}
			defer s.hub.UnregisterClient(client)

			go client.WritePump()
			client.ReadPump()
		})(c)
	}
}
