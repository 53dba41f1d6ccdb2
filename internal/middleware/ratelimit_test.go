package middleware

import (
    "context"
    "fmt"
    "net/http"
    "net/http/httptest"
    "os"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/iliyamo/tutor-marketplace/internal/config"
)

func TestBuildRateKey(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/tutors?subject=math", nil)
    req.RemoteAddr = "10.0.0.7:5555"
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/v1/tutors")

    cases := map[string]string{
        "ip":            "rl:ip:10.0.0.7",
        "user":          "rl:user:guest",
        "ip_route":      "rl:ip:10.0.0.7:route:GET /v1/tutors",
        "ip_user_route": "rl:ip:10.0.0.7:user:guest:route:GET /v1/tutors",
    }
    for strategy, want := range cases {
        got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}, c)
        if got != want {
            t.Fatalf("%s: got %q, want %q", strategy, got, want)
        }
    }
}

// Requires a running Redis; set REDIS_ADDR to enable.
func TestTokenBucket_Redis(t *testing.T) {
    addr := os.Getenv("REDIS_ADDR")
    if addr == "" {
        t.Skip("REDIS_ADDR not set")
    }
    rdb := redis.NewClient(&redis.Options{Addr: addr})
    defer rdb.Close()

    cfg := config.RateLimitConfig{
        Enabled:        true,
        Capacity:       2,
        RefillTokens:   1,
        RefillInterval: time.Hour,
        TTL:            time.Minute,
        KeyStrategy:    "ip",
        Prefix:         fmt.Sprintf("rl-test-%d", time.Now().UnixNano()),
    }
    defer rdb.Del(context.Background(), cfg.Prefix+":ip:192.0.2.1")

    mw := NewTokenBucket(cfg, rdb, zap.NewNop())
    e := echo.New()
    h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
    codes := []int{}
    for i := 0; i < 3; i++ {
        req := httptest.NewRequest(http.MethodGet, "/v1/tutors", nil)
        req.RemoteAddr = "192.0.2.1:1234"
        rec := httptest.NewRecorder()
        _ = h(e.NewContext(req, rec))
        codes = append(codes, rec.Code)
    }
    if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
        t.Fatalf("codes = %v", codes)
    }
}
