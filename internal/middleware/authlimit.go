package middleware

import (
    "bytes"
    "encoding/json"
    "io"
    "net/http"
    "sync"
    "time"

    "github.com/labstack/echo/v4"
    "golang.org/x/time/rate"

    "github.com/iliyamo/tutor-marketplace/internal/model"
)

// LimiterStore keeps one rate.Limiter per key and drops keys that have
// been idle for ten minutes.
type LimiterStore struct {
    mu      sync.Mutex
    limit   rate.Limit
    burst   int
    clients map[string]*clientEntry
    stopCh  chan struct{}
    once    sync.Once
}

type clientEntry struct {
    limiter  *rate.Limiter
    lastSeen time.Time
}

// NewLimiterStore allows perMinute events per key with the given burst.
// A cleanupInterval of zero disables the background sweep.
func NewLimiterStore(perMinute, burst int, cleanupInterval time.Duration) *LimiterStore {
    if perMinute <= 0 {
        perMinute = 60
    }
    if burst <= 0 {
        burst = 1
    }
    s := &LimiterStore{
        limit:   rate.Every(time.Minute / time.Duration(perMinute)),
        burst:   burst,
        clients: map[string]*clientEntry{},
        stopCh:  make(chan struct{}),
    }
    if cleanupInterval > 0 {
        go s.cleanupLoop(cleanupInterval)
    }
    return s
}

func (s *LimiterStore) cleanupLoop(every time.Duration) {
    ticker := time.NewTicker(every)
    defer ticker.Stop()
    for {
        select {
        case <-ticker.C:
            cutoff := time.Now().Add(-10 * time.Minute)
            s.mu.Lock()
            for k, v := range s.clients {
                if v.lastSeen.Before(cutoff) {
                    delete(s.clients, k)
                }
            }
            s.mu.Unlock()
        case <-s.stopCh:
            return
        }
    }
}

// Stop ends the cleanup goroutine.
func (s *LimiterStore) Stop() { s.once.Do(func() { close(s.stopCh) }) }

// Allow reports whether an event for key is permitted now.
func (s *LimiterStore) Allow(key string) bool {
    s.mu.Lock()
    e, ok := s.clients[key]
    if !ok {
        e = &clientEntry{limiter: rate.NewLimiter(s.limit, s.burst)}
        s.clients[key] = e
    }
    e.lastSeen = time.Now()
    s.mu.Unlock()
    return e.limiter.Allow()
}

// AuthRateLimit throttles credential endpoints in process. Requests are
// keyed by the email in the JSON body so that one account cannot be
// hammered from many addresses; requests without an email fall back to
// the client IP. The body is restored for the handler.
func AuthRateLimit(store *LimiterStore) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := "ip:" + c.RealIP()
            req := c.Request()
            if req.Body != nil {
                body, err := io.ReadAll(io.LimitReader(req.Body, 1<<16))
                if err == nil {
                    req.Body = io.NopCloser(bytes.NewReader(body))
                    var probe struct {
                        Email string `json:"email"`
                    }
                    if json.Unmarshal(body, &probe) == nil {
                        if e := model.NormalizeEmail(probe.Email); e != "" {
                            key = "email:" + e
                        }
                    }
                }
            }
            if !store.Allow(key) {
                return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
            }
            return next(c)
        }
    }
}
