package ws

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/hilthontt/roombook/internal/infrastructure/logging"
)

const (
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client is one browser watching a room's slots.
type Client struct {
	conn    *connWrapper
	Message chan *WSMessage
	ID      string `json:"id"`
	RoomID  string `json:"roomId"`
}

func NewClient(conn *websocket.Conn, id, roomID string) *Client {
	return &Client{
		conn:    newConnWrapper(conn),
		Message: make(chan *WSMessage, 16),
		ID:      id,
		RoomID:  roomID,
	}
}

// ReadMessage consumes control frames until the peer goes away. Clients only
// listen; anything they send is discarded.
func (c *Client) ReadMessage(core *Core) {
	defer func() {
		core.leave(c)
		_ = c.conn.Close()
	}()

	c.conn.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.conn.SetPongHandler(func(string) error {
		return c.conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				core.logger.Warn(logging.WebSocket, logging.ExternalService, "unexpected websocket close", map[logging.ExtraKey]any{
					logging.RoomID:       c.RoomID,
					logging.ErrorMessage: err.Error(),
				})
			}
			return
		}
	}
}

func (c *Client) WriteMessage(core *Core) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Message:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				core.logger.Warn(logging.WebSocket, logging.Notify, "websocket write failed", map[logging.ExtraKey]any{
					logging.RoomID:       c.RoomID,
					logging.ErrorMessage: err.Error(),
				})
				return
			}
		case <-ticker.C:
			if err := c.conn.Ping(); err != nil {
				return
			}
		}
	}
}
