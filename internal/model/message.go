package model

import "time"

// Message is a single direct message. Read is scoped to the receiver.
type Message struct {
    ID         string    `json:"id"`
    SenderID   string    `json:"sender_id"`
    SenderName string    `json:"sender_name"`
    ReceiverID string    `json:"receiver_id"`
    Content    string    `json:"content"`
    Timestamp  time.Time `json:"timestamp"`
    Read       bool      `json:"read"`
}

// Conversation is the thread between an unordered pair of participants.
// Unread is keyed by participant id.
type Conversation struct {
    ID                   string         `json:"id"`
    Participants         [2]string      `json:"participants"`
    LastMessage          string         `json:"last_message"`
    LastMessageTimestamp time.Time      `json:"last_message_timestamp"`
    Unread               map[string]int `json:"-"`
}

// Has reports whether userID is one of the two participants.
func (c Conversation) Has(userID string) bool {
    return c.Participants[0] == userID || c.Participants[1] == userID
}

// Other returns the participant that is not userID.
func (c Conversation) Other(userID string) string {
    if c.Participants[0] == userID {
        return c.Participants[1]
    }
    return c.Participants[0]
}

// Contact is the display identity of a conversation partner.
type Contact struct {
    ID    string `json:"id"`
    Name  string `json:"name"`
    Image string `json:"image,omitempty"`
}

// ConversationView is a conversation as seen by one participant.
type ConversationView struct {
    ID                   string    `json:"id"`
    Participants         [2]string `json:"participants"`
    With                 Contact   `json:"with"`
    LastMessage          string    `json:"last_message"`
    LastMessageTimestamp time.Time `json:"last_message_timestamp"`
    UnreadCount          int       `json:"unread_count"`
}
