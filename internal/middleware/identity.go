package middleware

// identity.go holds the context keys shared by the middleware and the
// handlers, and small accessors for them.

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tutor-marketplace/internal/model"
)

const (
    ctxUserID    = "user_id"
    ctxRole      = "role"
    ctxSessionID = "session_id"
    ctxUser      = "user"
)

// Guest is the viewer key used for unauthenticated requests.
const Guest = "guest"

// UserID returns the authenticated user's id, or Guest.
func UserID(c echo.Context) string {
    if s, ok := c.Get(ctxUserID).(string); ok && s != "" {
        return s
    }
    return Guest
}

// SessionID returns the session bound to the access token, if any.
func SessionID(c echo.Context) string {
    s, _ := c.Get(ctxSessionID).(string)
    return s
}

// CurrentUser returns the signed-in user resolved by JWTAuth.
func CurrentUser(c echo.Context) (model.User, bool) {
    u, ok := c.Get(ctxUser).(model.User)
    return u, ok
}

// Actor returns the acting identity of the request. Unauthenticated
// requests yield an empty Actor, which fails every authorization check.
func Actor(c echo.Context) model.Actor {
    if u, ok := CurrentUser(c); ok {
        return u.Actor()
    }
    return model.Actor{}
}

func setIdentity(c echo.Context, u model.User, session string) {
    c.Set(ctxUserID, u.ID)
    c.Set(ctxRole, string(u.Role))
    c.Set(ctxSessionID, session)
    c.Set(ctxUser, u)
}
