package domain

import "context"

// Session is the authenticated state of one browser: the upstream token and
// the user it belongs to.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func NewSession(token string, user *User) *Session {
	return &Session{
		Token: token,
		User:  user,
	}
}

func (s *Session) Authenticated() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// SessionStore keeps sessions keyed by an opaque session id.
type SessionStore interface {
	// Get returns ErrSessionNotFound when id is unknown or expired.
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, id string, session *Session) error
	Clear(ctx context.Context, id string) error
}
