package utils

import (
	"context"
	"net/http"

	"github.com/hilthontt/roombook/internal/domain"
)

type sessionKey struct{}

type sessionValue struct {
	id      string
	session *domain.Session
}

func WithSession(ctx context.Context, id string, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionValue{id: id, session: session})
}

// SessionFrom returns the request's session, or nil for anonymous requests.
func SessionFrom(ctx context.Context) *domain.Session {
	v, _ := ctx.Value(sessionKey{}).(sessionValue)
	return v.session
}

func SessionIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(sessionKey{}).(sessionValue)
	return v.id
}

// SessionEnder forgets a session server-side.
type SessionEnder interface {
	Logout(ctx context.Context, id string) error
}

// EndSession drops the request's session and its cookie. Used when the
// booking API stops accepting the stored token.
func EndSession(w http.ResponseWriter, r *http.Request, ender SessionEnder, opts CookieOptions) {
	if id := SessionIDFrom(r.Context()); id != "" && ender != nil {
		_ = ender.Logout(r.Context(), id)
	}
	ClearSessionCookie(w, opts)
}
