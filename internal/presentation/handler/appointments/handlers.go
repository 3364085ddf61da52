package appointments

import (
	"context"
	"errors"
	"net/http"

	"github.com/hilthontt/roombook/internal/domain"
	"github.com/hilthontt/roombook/internal/infrastructure/json"
	"github.com/hilthontt/roombook/internal/presentation/utils"
)

type BookingService interface {
	Appointments(ctx context.Context, session *domain.Session) ([]domain.Appointment, error)
	Cancel(ctx context.Context, session *domain.Session, eventID string) (string, error)
}

type Handler struct {
	bookings BookingService
	sessions utils.SessionEnder
	cookie   utils.CookieOptions
}

func NewHandler(bookings BookingService, sessions utils.SessionEnder, cookie utils.CookieOptions) *Handler {
	return &Handler{
		bookings: bookings,
		sessions: sessions,
		cookie:   cookie,
	}
}

func (h *Handler) ListAppointmentsHandler(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.bookings.Appointments(r.Context(), utils.SessionFrom(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, listAppointmentsResponse{Appointments: appointments})
}

func (h *Handler) CancelAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	eventID, err := utils.IDParam(r, "eventId")
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	msg, err := h.bookings.Cancel(r.Context(), utils.SessionFrom(r.Context()), eventID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, cancelResponse{Message: msg})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrUnauthenticated) {
		utils.EndSession(w, r, h.sessions, h.cookie)
	}
	utils.WriteError(w, err)
}
