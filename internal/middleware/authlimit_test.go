package middleware

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
)

func TestLimiterStore_Allow(t *testing.T) {
    s := NewLimiterStore(5, 5, 0)
    defer s.Stop()

    for i := 0; i < 5; i++ {
        if !s.Allow("student@example.com") {
            t.Fatalf("expected allow at iteration %d", i)
        }
    }
    if s.Allow("student@example.com") {
        t.Fatal("expected limiter to block after burst consumed")
    }
    if !s.Allow("tutor@example.com") {
        t.Fatal("keys must not share a bucket")
    }
}

func TestAuthRateLimit_KeysByEmail(t *testing.T) {
    s := NewLimiterStore(1, 1, time.Minute)
    defer s.Stop()
    e := echo.New()
    var seen []string
    h := AuthRateLimit(s)(func(c echo.Context) error {
        var body struct {
            Email string `json:"email"`
        }
        if err := c.Bind(&body); err != nil {
            return err
        }
        seen = append(seen, body.Email)
        return c.NoContent(http.StatusOK)
    })

    do := func(email string) int {
        req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"`+email+`"}`))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
        rec := httptest.NewRecorder()
        if err := h(e.NewContext(req, rec)); err != nil {
            t.Fatalf("handler: %v", err)
        }
        return rec.Code
    }

    if code := do("A@example.com"); code != http.StatusOK {
        t.Fatalf("first request: %d", code)
    }
    if code := do("a@example.com "); code != http.StatusTooManyRequests {
        t.Fatalf("same normalized email should be limited, got %d", code)
    }
    if code := do("b@example.com"); code != http.StatusOK {
        t.Fatalf("other email: %d", code)
    }
    if len(seen) != 2 || seen[0] != "A@example.com" {
        t.Fatalf("body not restored for the handler: %v", seen)
    }
}
