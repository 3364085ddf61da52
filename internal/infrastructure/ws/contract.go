package ws

import "time"

type WSMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	Data   any    `json:"data,omitempty"`
}

type SlotsChangedPayload struct {
	ChangedAt string `json:"changedAt"`
}

func NewSlotsChanged(roomID string, at time.Time) *WSMessage {
	return &WSMessage{
		Type:   SlotsChanged,
		RoomID: roomID,
		Data: SlotsChangedPayload{
			ChangedAt: at.UTC().Format(time.RFC3339),
		},
	}
}

func NewSubscribed(roomID string) *WSMessage {
	return &WSMessage{
		Type:   Subscribed,
		RoomID: roomID,
	}
}
