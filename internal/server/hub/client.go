package hub

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/codraft/codraft/internal/server/handlers"
	"github.com/codraft/codraft/internal/validation"
)

const (
	// sendBufferSize размер исходящего буфера клиента
	sendBufferSize = 64
	// pingPeriod период keepalive ping
	pingPeriod = 30 * time.Second
	// writeWait предельное время записи одного сообщения
	writeWait = 10 * time.Second
	// pongWait предельное время ожидания pong от клиента
	pongWait = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client представляет одно websocket-подключение участника к комнате документа
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	logger *slog.Logger

	documentID string
	userID     string
	username   string

	send chan []byte
}

// ServeWs обрабатывает GET /api/v1/ws?document_id=...
// Требует прохождения AuthMiddleware: участник берется из контекста.
func ServeWs(h *Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := handlers.GetUserID(ctx)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		username, _ := handlers.GetUsername(ctx)

		documentID := r.URL.Query().Get("document_id")
		if err := validation.ValidateDocumentID(documentID); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("websocket upgrade failed", "error", err)
			return
		}

		client := &Client{
			hub:        h,
			conn:       conn,
			logger:     logger,
			documentID: documentID,
			userID:     userID,
			username:   username,
			send:       make(chan []byte, sendBufferSize),
		}

		if !h.attach(client) {
			// Хаб остановлен, комнаты распущены
			_ = conn.Close()
			return
		}

		go client.writePump()
		go client.readPump()
	}
}

// readPump читает входящие сообщения до закрытия соединения.
// Канал односторонний: клиент только слушает события, поэтому входящие
// кадры используются лишь для контроля жизни соединения.
func (c *Client) readPump() {
	defer func() {
		c.hub.detach(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(1024)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error",
					"error", err,
					"username", c.username)
			}
			return
		}
	}
}

// writePump пишет события из send-буфера и шлет keepalive ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Хаб закрыл канал: комната распущена или клиент отстал
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
