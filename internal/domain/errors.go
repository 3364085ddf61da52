package domain

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrSessionNotFound = errors.New("session not found")
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var (
	ErrSlotUnavailable = errors.New("slot is not available")
	ErrInvalidHour     = errors.New("invalid hour")
	ErrInvalidInput    = errors.New("invalid input")
)

var (
	ErrUpstream = errors.New("upstream error")
)
