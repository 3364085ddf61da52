package domain

import (
	"context"
	"strings"
	"time"
)

type Room struct {
	ID     string  `json:"id"`
	Number string  `json:"number"`
	Image  string  `json:"image"`
	Events []Event `json:"events"`
}

// Brand is the building wing a room belongs to, derived from its number.
func (r *Room) Brand() string {
	if strings.HasPrefix(r.Number, "C") {
		return "Coke"
	}
	return "Pepsi"
}

// RoomAvailability is a room with its slots resolved for one viewer.
type RoomAvailability struct {
	Room  Room     `json:"room"`
	Slots SlotList `json:"slots"`
}

// Appointment is one of the viewer's bookings as listed to them.
type Appointment struct {
	EventID    string    `json:"eventId"`
	RoomID     string    `json:"roomId"`
	RoomNumber string    `json:"roomNumber"`
	StartTime  time.Time `json:"startTime"`
	Start      string    `json:"start"`
	Duration   string    `json:"duration"`
}

func NewAppointment(e Event) Appointment {
	return Appointment{
		EventID:    e.ID,
		RoomID:     e.RoomID,
		RoomNumber: e.RoomNumber,
		StartTime:  e.StartTime.UTC(),
		Start:      e.StartTime.UTC().Format("15:04"),
		Duration:   "60 minutes",
	}
}

// BookingGateway is the upstream data layer holding rooms and events.
type BookingGateway interface {
	Rooms(ctx context.Context) ([]Room, error)
	Viewer(ctx context.Context, token string) (*Viewer, error)
	CreateEvent(ctx context.Context, token string, event NewEvent) (string, error)
	DeleteEvent(ctx context.Context, token string, eventID string) (string, error)
}

// AuthGateway exchanges credentials for a session token.
type AuthGateway interface {
	Login(ctx context.Context, credentials Credentials) (*Session, error)
	Signup(ctx context.Context, credentials Credentials) (*Session, error)
}

// SlotChangeNotifier is told when a room's slots changed through this service.
type SlotChangeNotifier interface {
	NotifySlotsChanged(roomID string)
}

// BookingPublisher emits booking lifecycle events to other systems.
type BookingPublisher interface {
	PublishBookingCreated(ctx context.Context, event Event) error
	PublishBookingCancelled(ctx context.Context, event Event) error
}
