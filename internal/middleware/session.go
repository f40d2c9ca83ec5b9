package middleware

// session.go resolves the signed session cookie into request context
// values. Every route runs through this middleware; downstream handlers
// read the authentication state via CurrentUser rather than touching the
// cookie or the store themselves.

import (
	"github.com/labstack/echo/v4"

	"github.com/streamtv/streamtv/internal/session"
)

// Context keys set by ResolveSession.
const (
	CtxSessionID = "sid"
	CtxIsUser    = "is_user"
	CtxUser      = "user"
)

// ResolveSession returns middleware that validates the session cookie and
// loads the session's is_user/user values into the Echo context. Requests
// without a valid cookie, or whose server-side session has expired, pass
// through as anonymous.
func ResolveSession(secret string, store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(CtxIsUser, false)
			c.Set(CtxUser, "")

			cookie, err := c.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			sid, err := session.ParseToken(secret, cookie.Value)
			if err != nil {
				return next(c)
			}
			c.Set(CtxSessionID, sid)

			ctx := c.Request().Context()
			flag, ok, err := store.Get(ctx, sid, session.KeyIsUser)
			if err != nil || !ok || flag != "1" {
				return next(c)
			}
			user, ok, err := store.Get(ctx, sid, session.KeyUser)
			if err != nil || !ok || user == "" {
				return next(c)
			}
			c.Set(CtxIsUser, true)
			c.Set(CtxUser, user)
			return next(c)
		}
	}
}

// CurrentUser returns the logged-in username and whether the request
// carries an authenticated session.
func CurrentUser(c echo.Context) (string, bool) {
	isUser, _ := c.Get(CtxIsUser).(bool)
	if !isUser {
		return "", false
	}
	user, _ := c.Get(CtxUser).(string)
	return user, user != ""
}

// SessionID returns the session ID resolved from the cookie, if any.
func SessionID(c echo.Context) (string, bool) {
	sid, _ := c.Get(CtxSessionID).(string)
	return sid, sid != ""
}
