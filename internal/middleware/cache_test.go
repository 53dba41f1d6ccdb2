package middleware

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tutor-marketplace/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
    hdr := http.Header{"Content-Type": {"application/json"}}
    bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"id":"1"}`))
    if err != nil {
        t.Fatalf("encodePayload: %v", err)
    }
    status, got, body, ok := decodePayload(bs)
    if !ok || status != http.StatusOK || got.Get("Content-Type") != "application/json" || string(body) != `{"id":"1"}` {
        t.Fatalf("decodePayload: %d %v %q %v", status, got, body, ok)
    }
    if _, _, _, ok := decodePayload([]byte{1, 2}); ok {
        t.Fatal("short payload accepted")
    }
}

func TestCacheKeyFrom(t *testing.T) {
    e := echo.New()
    key := func(cfg config.CacheConfig, target string) string {
        c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
        return cacheKeyFrom(cfg, c)
    }
    cfg := config.CacheConfig{KeyStrategy: "route_query", Prefix: "cache:tutors"}
    a, b := key(cfg, "/v1/tutors/1"), key(cfg, "/v1/tutors/2")
    if a == b || !strings.HasPrefix(a, "cache:tutors:") {
        t.Fatalf("keys %q %q", a, b)
    }
    cfg.KeyStrategy = "route"
    if key(cfg, "/v1/tutors/1?x=1") != key(cfg, "/v1/tutors/1?x=2") {
        t.Fatal("route strategy should ignore the query")
    }
}

func TestCacheDisabledWithoutRedis(t *testing.T) {
    mw := NewRedisCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil)
    rec, _ := serve([]echo.MiddlewareFunc{mw}, "")
    if rec.Code != http.StatusOK || rec.Header().Get("X-Cache") != "" {
        t.Fatalf("expected pass-through, got %d %q", rec.Code, rec.Header().Get("X-Cache"))
    }
}
