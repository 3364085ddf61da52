package utils

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/roombook/internal/infrastructure/validate"
)

const maxIDLength = 64

var validateID = validate.Compose(
	validate.Required(),
	validate.MaxLength(maxIDLength),
	validate.NoSpaces(),
)

// IDParam returns the unescaped URL parameter name, checked to look like an
// upstream id.
func IDParam(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)

	id, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	if err := validate.Field(name, validateID)(id); err != nil {
		return "", err
	}
	return id, nil
}
