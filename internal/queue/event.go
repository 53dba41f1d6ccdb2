// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import (
    "time"

    "github.com/iliyamo/tutor-marketplace/internal/model"
)

// NotificationEvent is published for every user-visible notification:
// authentication outcomes, marketplace activity and appointment reminders.
// Consumers can act on it without querying the stores.
type NotificationEvent struct {
    Audience  string `json:"audience"`
    Level     string `json:"level"`
    Message   string `json:"message"`
    CreatedAt string `json:"created_at"`
}

// NewNotificationEvent converts n into its wire form.
func NewNotificationEvent(n model.Notification) NotificationEvent {
    at := n.CreatedAt
    if at.IsZero() {
        at = time.Now()
    }
    return NotificationEvent{
        Audience:  n.Audience,
        Level:     string(n.Level),
        Message:   n.Message,
        CreatedAt: at.UTC().Format(time.RFC3339),
    }
}
