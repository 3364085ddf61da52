package ws

import (
	"errors"
	"sync"
)

var ErrRoomNotWatched = errors.New("no subscribers for room")

// RoomManager tracks which clients watch which booking room.
type RoomManager struct {
	rooms map[string]map[string]*Client // roomID → clientID → client
	mu    sync.RWMutex
}

func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms: make(map[string]map[string]*Client),
	}
}

func (rm *RoomManager) AddClient(cl *Client) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	clients, ok := rm.rooms[cl.RoomID]
	if !ok {
		clients = make(map[string]*Client)
		rm.rooms[cl.RoomID] = clients
	}
	clients[cl.ID] = cl
}

// RemoveClient drops cl and closes its outgoing queue. Removing twice is a no-op.
func (rm *RoomManager) RemoveClient(cl *Client) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	clients, ok := rm.rooms[cl.RoomID]
	if !ok {
		return
	}
	if _, ok := clients[cl.ID]; !ok {
		return
	}

	delete(clients, cl.ID)
	close(cl.Message)

	if len(clients) == 0 {
		delete(rm.rooms, cl.RoomID)
	}
}

func (rm *RoomManager) Count(roomID string) int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms[roomID])
}

// Broadcast queues msg for every client of msg.RoomID and returns the ids of
// clients whose queue was full.
func (rm *RoomManager) Broadcast(msg *WSMessage) ([]string, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	clients, ok := rm.rooms[msg.RoomID]
	if !ok {
		return nil, ErrRoomNotWatched
	}

	var dropped []string
	for _, cl := range clients {
		select {
		case cl.Message <- msg:
		default:
			dropped = append(dropped, cl.ID)
		}
	}
	return dropped, nil
}

func (rm *RoomManager) closeAll() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	for roomID, clients := range rm.rooms {
		for _, cl := range clients {
			close(cl.Message)
		}
		delete(rm.rooms, roomID)
	}
}
