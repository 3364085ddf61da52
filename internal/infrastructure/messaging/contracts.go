package messaging

import "time"

// Routing keys on the bookings exchange.
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

type BookingEventData struct {
	EventID    string    `json:"eventId"`
	RoomID     string    `json:"roomId"`
	RoomNumber string    `json:"roomNumber,omitempty"`
	UserID     string    `json:"userId,omitempty"`
	StartTime  time.Time `json:"startTime"`
	OccurredAt time.Time `json:"occurredAt"`
}
