package graphql

import (
	"errors"
	"fmt"
	"strings"
)

const CodeUnauthenticated = "UNAUTHENTICATED"

// Error is one entry of a GraphQL response's "errors" array.
type Error struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions ErrorExtension `json:"extensions"`
}

type ErrorExtension struct {
	Code string `json:"code"`
}

func (e Error) Error() string {
	if e.Extensions.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Extensions.Code)
}

type Errors []Error

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

func (e Errors) HasCode(code string) bool {
	for _, err := range e {
		if err.Extensions.Code == code {
			return true
		}
	}
	return false
}

// StatusError is returned for a non-2xx response that carried no GraphQL errors.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("graphql: unexpected status %d: %s", e.StatusCode, e.Body)
}

// IsUnauthenticated reports whether err says the token was missing or rejected.
func IsUnauthenticated(err error) bool {
	var gqlErrs Errors
	if errors.As(err, &gqlErrs) {
		return gqlErrs.HasCode(CodeUnauthenticated)
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == 401
	}

	return false
}
