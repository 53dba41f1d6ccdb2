package repository

import (
    "context"
    "sort"
    "strings"
    "sync"
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/tutor-marketplace/internal/model"
)

// UnknownContactName is shown for conversation partners that cannot be
// resolved.
const UnknownContactName = "Unknown User"

// Directory resolves a user id to a display identity.
type Directory interface {
    Lookup(ctx context.Context, id string) (model.Contact, bool)
}

// ContactDirectory resolves ids against the tutor catalog first and the
// credential list second.
type ContactDirectory struct {
    Tutors *TutorRepo
    Users  *UserRepo
}

func (d ContactDirectory) Lookup(ctx context.Context, id string) (model.Contact, bool) {
    if d.Tutors != nil {
        if t, err := d.Tutors.Get(id); err == nil {
            return model.Contact{ID: t.ID, Name: t.Name, Image: t.ProfileImage}, true
        }
    }
    if d.Users != nil {
        if u, err := d.Users.GetByID(ctx, id); err == nil {
            return model.Contact{ID: u.ID, Name: u.Name, Image: u.Avatar}, true
        }
    }
    return model.Contact{}, false
}

// MessageRepo is the messaging ledger. Conversations are created lazily,
// one per unordered pair, and each keeps an unread count per participant
// equal to the unread messages addressed to them.
type MessageRepo struct {
    mu        sync.RWMutex
    messages  []model.Message
    msgIndex  map[string]int
    convs     []model.Conversation
    convIndex map[string]int
    byPair    map[string]int
    now       func() time.Time
}

// NewMessageRepo seeds the ledger. Unread counters of seeded conversations
// are recomputed from the seeded messages.
func NewMessageRepo(messages []model.Message, convs []model.Conversation, now func() time.Time) *MessageRepo {
    if now == nil {
        now = time.Now
    }
    r := &MessageRepo{
        msgIndex:  map[string]int{},
        convIndex: map[string]int{},
        byPair:    map[string]int{},
        now:       now,
    }
    for _, c := range convs {
        c.Unread = map[string]int{}
        r.addConvLocked(c)
    }
    for _, m := range messages {
        r.msgIndex[m.ID] = len(r.messages)
        r.messages = append(r.messages, m)
        if _, ok := r.byPair[pairKey(m.SenderID, m.ReceiverID)]; !ok {
            r.addConvLocked(model.Conversation{
                ID:                   uuid.NewString(),
                Participants:         [2]string{m.SenderID, m.ReceiverID},
                LastMessage:          m.Content,
                LastMessageTimestamp: m.Timestamp,
                Unread:               map[string]int{},
            })
        }
    }
    for i := range r.convs {
        for _, p := range r.convs[i].Participants {
            r.convs[i].Unread[p] = r.countUnreadLocked(r.convs[i], p)
        }
    }
    return r
}

func pairKey(a, b string) string {
    if a > b {
        a, b = b, a
    }
    return a + "\x00" + b
}

func (r *MessageRepo) addConvLocked(c model.Conversation) int {
    i := len(r.convs)
    r.convs = append(r.convs, c)
    r.convIndex[c.ID] = i
    r.byPair[pairKey(c.Participants[0], c.Participants[1])] = i
    return i
}

func (r *MessageRepo) countUnreadLocked(c model.Conversation, userID string) int {
    n := 0
    for _, m := range r.messages {
        if m.ReceiverID == userID && !m.Read && c.Has(m.SenderID) {
            n++
        }
    }
    return n
}

// Send appends an unread message, creating the conversation for the pair
// if needed, and bumps the receiver's unread count.
func (r *MessageRepo) Send(sender model.Actor, receiverID, content string) (model.Message, error) {
    content = strings.TrimSpace(content)
    receiverID = strings.TrimSpace(receiverID)
    if sender.ID == "" {
        return model.Message{}, ErrUnauthorized
    }
    if content == "" || receiverID == "" || receiverID == sender.ID {
        return model.Message{}, ErrValidation
    }
    m := model.Message{
        ID:         uuid.NewString(),
        SenderID:   sender.ID,
        SenderName: sender.Name,
        ReceiverID: receiverID,
        Content:    content,
        Timestamp:  r.now().UTC(),
    }

    r.mu.Lock()
    defer r.mu.Unlock()
    r.msgIndex[m.ID] = len(r.messages)
    r.messages = append(r.messages, m)

    i, ok := r.byPair[pairKey(sender.ID, receiverID)]
    if !ok {
        i = r.addConvLocked(model.Conversation{
            ID:           uuid.NewString(),
            Participants: [2]string{sender.ID, receiverID},
            Unread:       map[string]int{},
        })
    }
    c := &r.convs[i]
    c.LastMessage = m.Content
    c.LastMessageTimestamp = m.Timestamp
    c.Unread[receiverID]++
    return m, nil
}

// MarkRead flags one message as read by its receiver and recomputes the
// receiver's unread count for the conversation.
func (r *MessageRepo) MarkRead(actor model.Actor, messageID string) (model.Message, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    i, ok := r.msgIndex[messageID]
    if !ok {
        return model.Message{}, ErrNotFound
    }
    m := &r.messages[i]
    if m.ReceiverID != actor.ID {
        return model.Message{}, ErrUnauthorized
    }
    m.Read = true
    if ci, ok := r.byPair[pairKey(m.SenderID, m.ReceiverID)]; ok {
        r.convs[ci].Unread[actor.ID] = r.countUnreadLocked(r.convs[ci], actor.ID)
    }
    return *m, nil
}

// MarkConversationRead flags every message addressed to actor in the
// conversation as read. It returns how many messages changed.
func (r *MessageRepo) MarkConversationRead(actor model.Actor, convID string) (int, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    ci, ok := r.convIndex[convID]
    if !ok {
        return 0, ErrNotFound
    }
    c := &r.convs[ci]
    if !c.Has(actor.ID) {
        return 0, ErrUnauthorized
    }
    n := 0
    for i := range r.messages {
        m := &r.messages[i]
        if m.ReceiverID == actor.ID && !m.Read && c.Has(m.SenderID) {
            m.Read = true
            n++
        }
    }
    c.Unread[actor.ID] = 0
    return n, nil
}

// ConversationMessages returns the messages of a conversation oldest first.
// Only participants may read them.
func (r *MessageRepo) ConversationMessages(actor model.Actor, convID string) ([]model.Message, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    ci, ok := r.convIndex[convID]
    if !ok {
        return nil, ErrNotFound
    }
    c := r.convs[ci]
    if !c.Has(actor.ID) {
        return nil, ErrUnauthorized
    }
    key := pairKey(c.Participants[0], c.Participants[1])
    out := []model.Message{}
    for _, m := range r.messages {
        if pairKey(m.SenderID, m.ReceiverID) == key {
            out = append(out, m)
        }
    }
    sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
    return out, nil
}

// ConversationsFor lists the conversations containing userID, newest first,
// with the partner resolved through dir.
func (r *MessageRepo) ConversationsFor(ctx context.Context, userID string, dir Directory) []model.ConversationView {
    r.mu.RLock()
    views := []model.ConversationView{}
    for _, c := range r.convs {
        if !c.Has(userID) {
            continue
        }
        views = append(views, model.ConversationView{
            ID:                   c.ID,
            Participants:         c.Participants,
            With:                 model.Contact{ID: c.Other(userID)},
            LastMessage:          c.LastMessage,
            LastMessageTimestamp: c.LastMessageTimestamp,
            UnreadCount:          c.Unread[userID],
        })
    }
    r.mu.RUnlock()

    for i := range views {
        other := views[i].With.ID
        if dir != nil {
            if contact, ok := dir.Lookup(ctx, other); ok {
                views[i].With = contact
                continue
            }
        }
        views[i].With = model.Contact{ID: other, Name: UnknownContactName}
    }
    sort.SliceStable(views, func(i, j int) bool {
        return views[i].LastMessageTimestamp.After(views[j].LastMessageTimestamp)
    })
    return views
}

// UnreadFor returns the total unread count for userID across conversations.
func (r *MessageRepo) UnreadFor(userID string) int {
    r.mu.RLock()
    defer r.mu.RUnlock()
    n := 0
    for _, c := range r.convs {
        n += c.Unread[userID]
    }
    return n
}
