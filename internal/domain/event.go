package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// EventDuration is the length of every booking.
	EventDuration = time.Hour

	EventDeletedMessage = "Event deleted"
)

type Event struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	RoomID     string    `json:"roomId"`
	RoomNumber string    `json:"roomNumber,omitempty"`
	UserID     string    `json:"userId,omitempty"`
	UserEmail  string    `json:"userEmail,omitempty"`
}

// NewEvent is the input of a booking mutation.
type NewEvent struct {
	Name      string
	StartTime time.Time
	RoomID    string
}

// NewBooking builds the booking of hour h in room for user on now's UTC day.
func NewBooking(user *User, room *Room, h Hour, now time.Time) (NewEvent, error) {
	if user == nil || room == nil || room.ID == "" {
		return NewEvent{}, ErrInvalidInput
	}
	if !h.Valid() {
		return NewEvent{}, fmt.Errorf("%w: %d", ErrInvalidHour, int(h))
	}

	return NewEvent{
		Name:      fmt.Sprintf("Meet %s on room %s", user.Email, room.Number),
		StartTime: h.On(now),
		RoomID:    room.ID,
	}, nil
}

// ParseTimestamp accepts RFC 3339 timestamps, with or without fractional
// seconds, and epoch milliseconds. The result is in UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty timestamp", ErrInvalidInput)
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("%w: timestamp %q", ErrInvalidInput, raw)
}

// FormatTimestamp renders t the way the booking API expects it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
