package appointments

import "github.com/hilthontt/roombook/internal/domain"

type listAppointmentsResponse struct {
	Appointments []domain.Appointment `json:"appointments"`
}

type cancelResponse struct {
	Message string `json:"message"`
}
