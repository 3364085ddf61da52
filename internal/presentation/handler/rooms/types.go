package rooms

import (
	"github.com/hilthontt/roombook/internal/application/booking"
	"github.com/hilthontt/roombook/internal/domain"
)

const (
	labelTakenByOther  = "Booked"
	labelTakenByViewer = "My Booking"
)

type bookSlotRequest struct {
	Hour string `json:"hour"`
}

type bookSlotResponse struct {
	EventID   string `json:"eventId"`
	RoomID    string `json:"roomId"`
	Hour      string `json:"hour"`
	StartTime string `json:"startTime"`
}

type slotResponse struct {
	Hour     string            `json:"hour"`
	Status   domain.SlotStatus `json:"status"`
	Bookable bool              `json:"bookable"`
	Label    string            `json:"label"`
}

type roomResponse struct {
	ID     string         `json:"id"`
	Number string         `json:"number"`
	Image  string         `json:"image"`
	Brand  string         `json:"brand"`
	Slots  []slotResponse `json:"slots"`
}

type listRoomsResponse struct {
	Authenticated bool           `json:"authenticated"`
	Rooms         []roomResponse `json:"rooms"`
}

func newSlotResponse(s domain.Slot) slotResponse {
	resp := slotResponse{
		Hour:   s.Hour,
		Status: s.Status,
	}

	switch s.Status {
	case domain.SlotPast:
		resp.Label = s.Hour
	case domain.SlotAvailable:
		resp.Label = s.Hour
		resp.Bookable = true
	case domain.SlotTakenByOther:
		resp.Label = labelTakenByOther
	case domain.SlotTakenByViewer:
		resp.Label = labelTakenByViewer
	}

	return resp
}

func newRoomResponse(ra domain.RoomAvailability) roomResponse {
	slots := make([]slotResponse, 0, len(ra.Slots))
	for _, s := range ra.Slots {
		slots = append(slots, newSlotResponse(s))
	}

	return roomResponse{
		ID:     ra.Room.ID,
		Number: ra.Room.Number,
		Image:  ra.Room.Image,
		Brand:  ra.Room.Brand(),
		Slots:  slots,
	}
}

func newListRoomsResponse(o *booking.Overview) listRoomsResponse {
	rooms := make([]roomResponse, 0, len(o.Rooms))
	for _, ra := range o.Rooms {
		rooms = append(rooms, newRoomResponse(ra))
	}

	return listRoomsResponse{
		Authenticated: o.Viewer != nil,
		Rooms:         rooms,
	}
}
