package rooms

import (
	"context"
	"errors"
	"net/http"

	"github.com/hilthontt/roombook/internal/application/booking"
	"github.com/hilthontt/roombook/internal/domain"
	"github.com/hilthontt/roombook/internal/infrastructure/json"
	"github.com/hilthontt/roombook/internal/infrastructure/logging"
	"github.com/hilthontt/roombook/internal/presentation/utils"
)

type BookingService interface {
	ListRooms(ctx context.Context, session *domain.Session) (*booking.Overview, error)
	RoomSlots(ctx context.Context, session *domain.Session, roomID string) (*booking.Overview, error)
	Book(ctx context.Context, session *domain.Session, roomID string, hour domain.Hour) (domain.Event, error)
}

// LiveHub streams slot change notices over a websocket.
type LiveHub interface {
	Serve(w http.ResponseWriter, r *http.Request, roomID string) error
}

type Handler struct {
	bookings BookingService
	hub      LiveHub
	sessions utils.SessionEnder
	cookie   utils.CookieOptions
	logger   logging.Logger
}

func NewHandler(
	bookings BookingService,
	hub LiveHub,
	sessions utils.SessionEnder,
	cookie utils.CookieOptions,
	logger logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		bookings: bookings,
		hub:      hub,
		sessions: sessions,
		cookie:   cookie,
		logger:   logger,
	}
}

func (h *Handler) ListRoomsHandler(w http.ResponseWriter, r *http.Request) {
	overview, err := h.bookings.ListRooms(r.Context(), utils.SessionFrom(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if overview.SessionExpired {
		utils.EndSession(w, r, h.sessions, h.cookie)
	}

	json.Write(w, http.StatusOK, newListRoomsResponse(overview))
}

func (h *Handler) RoomSlotsHandler(w http.ResponseWriter, r *http.Request) {
	roomID, err := utils.IDParam(r, "roomId")
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	overview, err := h.bookings.RoomSlots(r.Context(), utils.SessionFrom(r.Context()), roomID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if overview.SessionExpired {
		utils.EndSession(w, r, h.sessions, h.cookie)
	}

	json.Write(w, http.StatusOK, newRoomResponse(overview.Rooms[0]))
}

func (h *Handler) BookSlotHandler(w http.ResponseWriter, r *http.Request) {
	roomID, err := utils.IDParam(r, "roomId")
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	var req bookSlotRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	hour, err := domain.ParseHour(req.Hour)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	event, err := h.bookings.Book(r.Context(), utils.SessionFrom(r.Context()), roomID, hour)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	json.Write(w, http.StatusCreated, bookSlotResponse{
		EventID:   event.ID,
		RoomID:    event.RoomID,
		Hour:      hour.Label(),
		StartTime: domain.FormatTimestamp(event.StartTime),
	})
}

// LiveSlotsHandler upgrades to a websocket that announces slot changes of the
// room. Clients re-fetch the slots when told.
func (h *Handler) LiveSlotsHandler(w http.ResponseWriter, r *http.Request) {
	roomID, err := utils.IDParam(r, "roomId")
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if err := h.hub.Serve(w, r, roomID); err != nil {
		h.logger.Warn(logging.WebSocket, logging.ExternalService, "websocket upgrade failed", map[logging.ExtraKey]any{
			logging.RoomID:       roomID,
			logging.ErrorMessage: err.Error(),
		})
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		utils.EndSession(w, r, h.sessions, h.cookie)
	case errors.Is(err, domain.ErrUpstream):
		h.logger.Error(logging.Upstream, logging.GraphQL, "booking API request failed", map[logging.ExtraKey]any{
			logging.Path:         r.URL.Path,
			logging.ErrorMessage: err.Error(),
		})
	}
	utils.WriteError(w, err)
}
