package domain

import (
	"strings"

	"github.com/hilthontt/roombook/internal/infrastructure/validate"
)

const (
	minPasswordLength = 1
	maxPasswordLength = 128
	maxEmailLength    = 254
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Credentials struct {
	Email    string
	Password string
}

// NewCredentials validates and normalises a login or signup form.
func NewCredentials(email, password string) (Credentials, error) {
	validateEmail := validate.Field("email",
		validate.Required(),
		validate.MaxLength(maxEmailLength),
		validate.Email(),
	)
	validatePassword := validate.Field("password",
		validate.Required(),
		validate.LengthBetween(minPasswordLength, maxPasswordLength),
	)

	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return Credentials{}, err
	}
	if err := validatePassword(password); err != nil {
		return Credentials{}, err
	}

	return Credentials{
		Email:    strings.ToLower(email),
		Password: password,
	}, nil
}

// Viewer is the authenticated user together with their own bookings.
type Viewer struct {
	User   User    `json:"user"`
	Events []Event `json:"events"`
}

// FindEvent returns the viewer's event with the given id.
func (v *Viewer) FindEvent(eventID string) (Event, bool) {
	if v == nil {
		return Event{}, false
	}
	for _, e := range v.Events {
		if e.ID == eventID {
			return e, true
		}
	}
	return Event{}, false
}
