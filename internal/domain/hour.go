package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hilthontt/roombook/internal/infrastructure/validate"
)

// HoursPerDay is the number of bookable one-hour slots in a day.
const HoursPerDay = 24

// Hour is an hour of the day in UTC, 0 through 23.
type Hour int

var validateHour = validate.Compose(
	validate.Required(),
	validate.MaxLength(2),
	validate.DigitsOnly(),
)

// ParseHour accepts "7", "07" and "07:00". Signs and other characters are
// rejected.
func ParseHour(raw string) (Hour, error) {
	s := strings.TrimSuffix(strings.TrimSpace(raw), ":00")
	if err := validateHour(s); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHour, raw)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHour, raw)
	}

	h := Hour(n)
	if !h.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHour, raw)
	}

	return h, nil
}

// HourOf returns the UTC hour component of t.
func HourOf(t time.Time) Hour {
	return Hour(t.UTC().Hour())
}

// ReferenceHour is the current hour used to tell past slots from future ones.
func ReferenceHour(now time.Time) Hour {
	return HourOf(now)
}

func (h Hour) Valid() bool {
	return h >= 0 && h < HoursPerDay
}

// String returns the zero-padded two-digit hour, e.g. "07".
func (h Hour) String() string {
	return fmt.Sprintf("%02d", int(h))
}

// Label returns the slot label, e.g. "07:00".
func (h Hour) Label() string {
	return h.String() + ":00"
}

// On returns the instant at the start of this hour on t's UTC calendar day.
func (h Hour) On(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), int(h), 0, 0, 0, time.UTC)
}
