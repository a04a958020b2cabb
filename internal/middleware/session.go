package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-enrollment/internal/access"
	"github.com/iliyamo/course-enrollment/internal/session"
)

const sessionIDKey = "session_id"

// IdentityResolver turns a session id into the caller's identity.
type IdentityResolver interface {
	Identify(ctx context.Context, sid string) (access.Identity, error)
}

// Sessions reads and writes the session cookie.
type Sessions struct {
	Codec      *session.Codec
	Resolver   IdentityResolver
	CookieName string
	Secure     bool
	Log        *slog.Logger
}

// Middleware resolves the session cookie, when present, into a request
// identity. Missing, forged, expired or unknown sessions leave the request
// anonymous; guards decide whether that is acceptable.
func (s *Sessions) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(s.CookieName)
			if err != nil || ck.Value == "" {
				return next(c)
			}
			sid, err := s.Codec.Decode(ck.Value)
			if err != nil {
				return next(c)
			}
			c.Set(sessionIDKey, sid)

			id, err := s.Resolver.Identify(c.Request().Context(), sid)
			if err != nil {
				s.Log.Warn("session lookup failed", "err", err)
				return next(c)
			}
			if id.Authenticated() {
				setIdentity(c, id)
			}
			return next(c)
		}
	}
}

// SessionID returns the verified session id from the request cookie, if
// any. The session itself may no longer exist.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(sessionIDKey).(string)
	return sid
}

// Issue sets the cookie for session sid.
func (s *Sessions) Issue(c echo.Context, sid string) error {
	raw, err := s.Codec.Encode(sid)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     s.CookieName,
		Value:    raw,
		Path:     "/",
		MaxAge:   int(s.Codec.TTL() / time.Second),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (s *Sessions) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     s.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
