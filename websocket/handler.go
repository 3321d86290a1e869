package websocket

import (
	"time"

	"dvsubmit-backend/config"
	"dvsubmit-backend/db/models"
	"dvsubmit-backend/token"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type WsHandler struct {
	hub        *Hub
	tokenMaker token.Maker
}

func NewWsHandler(hub *Hub, tokenMaker token.Maker) *WsHandler {
	return &WsHandler{hub: hub, tokenMaker: tokenMaker}
}

// HandleWebSocket upgrades the connection for admin dashboards. The access
// token rides in the cookie (same as HTTP); only admin roles may connect.
func (h *WsHandler) HandleWebSocket(c *fiber.Ctx) error {
	accessToken := c.Cookies("access_token")
	if accessToken == "" {
		accessToken = c.Query("token")
	}

	payload, err := h.tokenMaker.VerifyToken(accessToken)
	if err != nil {
		config.Logger.Debug("WebSocket auth failed", zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Authentication required",
		})
	}

	if payload.Role != models.AdminRole && payload.Role != models.SuperAdminRole {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"code":    "FORBIDDEN",
			"message": "Admin access required",
		})
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userID := payload.UserID
	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			ID:     uuid.New(),
			UserID: userID,
			Conn:   conn,
			Hub:    h.hub,
			Send:   make(chan Event, 16),
		}

		h.hub.register <- client
		config.Logger.Info("Admin dashboard connected",
			zap.String("user_id", userID.String()),
			zap.Int("clients", h.hub.GetClientCount()),
		)

		go client.writePump()
		client.readPump()
	})(c)
}

// readPump drains inbound frames (the feed is one-way) and detects closes.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
