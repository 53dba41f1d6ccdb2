package model

import "time"

// NotificationLevel mirrors the toast variants shown to the user.
type NotificationLevel string

const (
    LevelSuccess NotificationLevel = "success"
    LevelError   NotificationLevel = "error"
    LevelInfo    NotificationLevel = "info"
)

// Notification is a user-visible message raised by a store operation.
// Audience is "session:<id>", "user:<id>" or "email:<addr>".
type Notification struct {
    Audience  string            `json:"audience"`
    Level     NotificationLevel `json:"level"`
    Message   string            `json:"message"`
    CreatedAt time.Time         `json:"created_at"`
}

func SessionAudience(id string) string { return "session:" + id }
func UserAudience(id string) string    { return "user:" + id }
func EmailAudience(e string) string    { return "email:" + e }
