package handler // handler defines the HTTP handlers of the marketplace API

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tutor-marketplace/internal/model"
    "github.com/iliyamo/tutor-marketplace/internal/repository"
    "github.com/iliyamo/tutor-marketplace/internal/service"
)

// requestTimeout bounds work done on behalf of a single request.
const requestTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// errorStatus maps repository sentinels to an HTTP status and message.
// Unknown errors become 500 without leaking details.
func errorStatus(err error) (int, string) {
    switch {
    case errors.Is(err, repository.ErrInvalidCredentials):
        return http.StatusUnauthorized, "invalid credentials"
    case errors.Is(err, repository.ErrUserAlreadyExists):
        return http.StatusConflict, "user already exists"
    case errors.Is(err, repository.ErrUnauthorized):
        return http.StatusForbidden, "not allowed"
    case errors.Is(err, repository.ErrInvalidTransition):
        return http.StatusConflict, "invalid status transition"
    case errors.Is(err, repository.ErrNotFound):
        return http.StatusNotFound, "not found"
    case errors.Is(err, repository.ErrValidation):
        return http.StatusBadRequest, "invalid input"
    case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
        return http.StatusServiceUnavailable, "request timed out"
    }
    return http.StatusInternalServerError, "internal error"
}

func writeError(c echo.Context, err error) error {
    code, msg := errorStatus(err)
    if code == http.StatusInternalServerError {
        c.Logger().Error(err)
    }
    return c.JSON(code, echo.Map{"error": msg})
}

// optFloat parses an optional numeric query parameter. Empty means absent.
func optFloat(c echo.Context, name string) (*float64, error) {
    s := strings.TrimSpace(c.QueryParam(name))
    if s == "" {
        return nil, nil
    }
    v, err := strconv.ParseFloat(s, 64)
    if err != nil {
        return nil, repository.ErrValidation
    }
    return &v, nil
}

// splitList splits a comma separated query value and drops blanks.
func splitList(s string) []string {
    var out []string
    for _, p := range strings.Split(s, ",") {
        if p = strings.TrimSpace(p); p != "" {
            out = append(out, p)
        }
    }
    return out
}

// notifyUser raises an info notification for a user. Delivery problems are
// logged by the notifier and never fail the request.
func notifyUser(c echo.Context, n service.Notifier, userID, msg string) {
    _ = n.Notify(c.Request().Context(), model.Notification{
        Audience:  model.UserAudience(userID),
        Level:     model.LevelInfo,
        Message:   msg,
        CreatedAt: time.Now(),
    })
}
