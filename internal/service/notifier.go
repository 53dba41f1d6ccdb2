// Package service holds the application services that sit between the
// HTTP handlers and the repositories: identity sessions, notification
// delivery and scheduled appointment reminders.
package service

import (
    "context"
    "sync"

    "go.uber.org/zap"

    "github.com/iliyamo/tutor-marketplace/internal/model"
)

// Notifier delivers user-visible notifications.
type Notifier interface {
    Notify(ctx context.Context, n model.Notification) error
}

// Recorder keeps the latest notifications per audience in memory so the
// API can hand them to the client. It is also the test double.
//
// Both dimensions are bounded: an audience holds at most limit entries and
// at most maxAudiences audiences are kept. When full, the audience written
// least recently is dropped.
type Recorder struct {
    mu           sync.Mutex
    limit        int
    maxAudiences int
    seq          uint64
    items        map[string][]model.Notification
    touched      map[string]uint64
}

// NewRecorder keeps at most limit notifications for each of at most
// maxAudiences audiences.
func NewRecorder(limit, maxAudiences int) *Recorder {
    if limit <= 0 {
        limit = 50
    }
    if maxAudiences <= 0 {
        maxAudiences = 10000
    }
    return &Recorder{
        limit:        limit,
        maxAudiences: maxAudiences,
        items:        map[string][]model.Notification{},
        touched:      map[string]uint64{},
    }
}

func (r *Recorder) Notify(ctx context.Context, n model.Notification) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    if _, ok := r.items[n.Audience]; !ok && len(r.items) >= r.maxAudiences {
        r.evictOldest()
    }
    list := append(r.items[n.Audience], n)
    if len(list) > r.limit {
        list = list[len(list)-r.limit:]
    }
    r.items[n.Audience] = list
    r.seq++
    r.touched[n.Audience] = r.seq
    return nil
}

func (r *Recorder) evictOldest() {
    var (
        oldest   string
        oldestAt uint64
    )
    for a, at := range r.touched {
        if oldest == "" || at < oldestAt {
            oldest, oldestAt = a, at
        }
    }
    delete(r.items, oldest)
    delete(r.touched, oldest)
}

// Len reports how many audiences have pending notifications.
func (r *Recorder) Len() int {
    r.mu.Lock()
    defer r.mu.Unlock()
    return len(r.items)
}

// Drain returns and forgets the notifications of the given audiences.
func (r *Recorder) Drain(audiences ...string) []model.Notification {
    r.mu.Lock()
    defer r.mu.Unlock()
    out := []model.Notification{}
    for _, a := range audiences {
        out = append(out, r.items[a]...)
        delete(r.items, a)
        delete(r.touched, a)
    }
    return out
}

// Peek returns the notifications of an audience without removing them.
func (r *Recorder) Peek(audience string) []model.Notification {
    r.mu.Lock()
    defer r.mu.Unlock()
    return append([]model.Notification(nil), r.items[audience]...)
}

// Fanout delivers to every notifier. A failing target is logged and does
// not stop the others or fail the caller.
type Fanout struct {
    targets []Notifier
    log     *zap.Logger
}

func NewFanout(log *zap.Logger, targets ...Notifier) *Fanout {
    return &Fanout{targets: targets, log: log}
}

func (f *Fanout) Notify(ctx context.Context, n model.Notification) error {
    for _, t := range f.targets {
        if err := t.Notify(ctx, n); err != nil {
            f.log.Warn("notification delivery failed",
                zap.String("audience", n.Audience), zap.Error(err))
        }
    }
    return nil
}
