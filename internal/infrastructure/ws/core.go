package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hilthontt/roombook/internal/domain"
	"github.com/hilthontt/roombook/internal/infrastructure/logging"
)

// Core owns the subscriber registry. All registry changes and broadcasts run
// on the Run goroutine.
type Core struct {
	roomMgr    *RoomManager
	register   chan *Client
	unregister chan *Client
	broadcast  chan *WSMessage
	upgrader   websocket.Upgrader
	done       chan struct{}
	logger     logging.Logger
	now        func() time.Time
}

var _ domain.SlotChangeNotifier = (*Core)(nil)

func NewCore(logger logging.Logger, checkOrigin func(r *http.Request) bool) *Core {
	if logger == nil {
		logger = logging.NewNop()
	}
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}

	return &Core{
		roomMgr:    NewRoomManager(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *WSMessage, 256),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		done:   make(chan struct{}),
		logger: logger,
		now:    time.Now,
	}
}

func (c *Core) Run(ctx context.Context) {
	defer func() {
		close(c.done)
		c.roomMgr.closeAll()
	}()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info(logging.WebSocket, logging.Shutdown, "websocket hub stopped", nil)
			return

		case cl := <-c.register:
			c.roomMgr.AddClient(cl)
			cl.Message <- NewSubscribed(cl.RoomID)

		case cl := <-c.unregister:
			c.roomMgr.RemoveClient(cl)

		case msg := <-c.broadcast:
			dropped, err := c.roomMgr.Broadcast(msg)
			if errors.Is(err, ErrRoomNotWatched) {
				continue
			}
			for _, id := range dropped {
				c.logger.Warn(logging.WebSocket, logging.Notify, "client queue full, dropping message", map[logging.ExtraKey]any{
					logging.RoomID:   msg.RoomID,
					logging.ClientID: id,
				})
			}
		}
	}
}

var ErrHubStopped = errors.New("websocket hub stopped")

func (c *Core) leave(cl *Client) {
	select {
	case c.unregister <- cl:
	case <-c.done:
	}
}

func (c *Core) Subscribers(roomID string) int {
	return c.roomMgr.Count(roomID)
}

// NotifySlotsChanged never blocks; a full broadcast queue drops the notice.
// Rooms nobody watches are skipped.
func (c *Core) NotifySlotsChanged(roomID string) {
	if c.Subscribers(roomID) == 0 {
		return
	}

	select {
	case c.broadcast <- NewSlotsChanged(roomID, c.now()):
	default:
		c.logger.Warn(logging.WebSocket, logging.Notify, "broadcast queue full, dropping slot change", map[logging.ExtraKey]any{
			logging.RoomID: roomID,
		})
	}
}

// Serve upgrades the request and streams slot changes of roomID until the
// connection closes.
func (c *Core) Serve(w http.ResponseWriter, r *http.Request, roomID string) error {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	cl := NewClient(conn, uuid.NewString(), roomID)
	select {
	case c.register <- cl:
	case <-c.done:
		_ = conn.Close()
		return ErrHubStopped
	}

	go cl.WriteMessage(c)
	go cl.ReadMessage(c)

	return nil
}
