package middleware // middleware provides reusable HTTP middleware for the API

import (
    "context"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tutor-marketplace/internal/model"
    "github.com/iliyamo/tutor-marketplace/internal/utils"
)

// SessionResolver returns the identity currently signed in on a session.
type SessionResolver interface {
    Current(ctx context.Context, session string) (model.User, bool)
}

// JWTAuth validates the Bearer access token and then checks that its
// session is still signed in as the token's subject. Signing out therefore
// invalidates every token issued for the session. Handlers read the
// identity through CurrentUser, Actor, UserID and SessionID.
func JWTAuth(secret string, sessions SessionResolver) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw, ok := bearer(c)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            claims, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            u, ok := sessions.Current(c.Request().Context(), claims.SessionID)
            if !ok || u.ID != claims.UserID {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session ended"})
            }
            setIdentity(c, u, claims.SessionID)
            return next(c)
        }
    }
}

// OptionalJWT resolves the identity when a valid token is present and
// otherwise lets the request through as a guest. Public catalog routes use
// it so that search results are kept per viewer.
func OptionalJWT(secret string, sessions SessionResolver) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if raw, ok := bearer(c); ok {
                if claims, err := utils.ParseAccessToken(secret, raw); err == nil {
                    if u, ok := sessions.Current(c.Request().Context(), claims.SessionID); ok && u.ID == claims.UserID {
                        setIdentity(c, u, claims.SessionID)
                    }
                }
            }
            return next(c)
        }
    }
}

func bearer(c echo.Context) (string, bool) {
    auth := c.Request().Header.Get("Authorization")
    if !strings.HasPrefix(auth, "Bearer ") {
        return "", false
    }
    raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
    return raw, raw != ""
}
