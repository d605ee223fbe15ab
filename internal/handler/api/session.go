package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	HeaderSessionID   = "X-Session-ID"
	DefaultCookieName = "quantai_session"
	sessionContextKey = "session_id"
)

// SessionResolver picks the session id from the header, then the cookie, else issues a new one.
// Only UUIDs are accepted so clients cannot address arbitrary cache keys.
type SessionResolver struct {
	cookie string
	ttl    time.Duration
	secure bool
}

func NewSessionResolver(cookie string, ttl time.Duration, secure bool) *SessionResolver {
	if cookie == "" {
		cookie = DefaultCookieName
	}
	return &SessionResolver{cookie: cookie, ttl: ttl, secure: secure}
}

func (r *SessionResolver) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, issued := r.resolve(c.Request())
			if issued {
				c.SetCookie(&http.Cookie{
					Name:     r.cookie,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(r.ttl.Seconds()),
					HttpOnly: true,
					Secure:   r.secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Response().Header().Set(HeaderSessionID, sid)
			c.Set(sessionContextKey, sid)
			return next(c)
		}
	}
}

func (r *SessionResolver) resolve(req *http.Request) (string, bool) {
	if id, ok := parseSessionID(req.Header.Get(HeaderSessionID)); ok {
		return id, false
	}
	if ck, err := req.Cookie(r.cookie); err == nil {
		if id, ok := parseSessionID(ck.Value); ok {
			return id, false
		}
	}
	return uuid.NewString(), true
}

func parseSessionID(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// SessionID returns the id set by the resolver middleware.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(sessionContextKey).(string)
	return sid
}
