package utils

import (
	"net/http"
	"time"
)

const DefaultSessionCookie = "roombook_session"

type CookieOptions struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

func (o CookieOptions) name() string {
	if o.Name == "" {
		return DefaultSessionCookie
	}
	return o.Name
}

// SessionID returns the session id carried by the request, or "".
func SessionID(r *http.Request, opts CookieOptions) string {
	cookie, err := r.Cookie(opts.name())
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetSessionCookie writes an HttpOnly cookie; a zero TTL makes it a browser
// session cookie.
func SetSessionCookie(w http.ResponseWriter, opts CookieOptions, id string) {
	cookie := &http.Cookie{
		Name:     opts.name(),
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if opts.TTL > 0 {
		cookie.Expires = time.Now().Add(opts.TTL)
		cookie.MaxAge = int(opts.TTL.Seconds())
	}
	http.SetCookie(w, cookie)
}

func ClearSessionCookie(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.name(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}
