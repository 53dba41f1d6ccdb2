package repository

import (
    "context"
    "errors"
    "testing"

    "github.com/iliyamo/tutor-marketplace/internal/model"
    "github.com/iliyamo/tutor-marketplace/internal/seed"
)

func newMessages() *MessageRepo {
    return NewMessageRepo(seed.Messages(), seed.Conversations(), clock)
}

func TestSeededUnreadCounts(t *testing.T) {
    r := newMessages()
    if n := r.UnreadFor("1"); n != 1 {
        t.Fatalf("user 1 unread = %d, want 1", n)
    }
    if n := r.UnreadFor("201"); n != 0 {
        t.Fatalf("user 201 unread = %d, want 0", n)
    }
    if n := r.UnreadFor("3"); n != 1 {
        t.Fatalf("user 3 unread = %d, want 1", n)
    }
}

func TestSend_OneConversationPerPair(t *testing.T) {
    r := newMessages()
    a := model.Actor{ID: "1", Name: "Dr. Emily Johnson"}
    b := model.Actor{ID: "5", Name: "Dr. Robert Chen"}

    if _, err := r.Send(a, "5", "hello"); err != nil {
        t.Fatalf("Send: %v", err)
    }
    if _, err := r.Send(b, "1", "hi back"); err != nil {
        t.Fatalf("Send: %v", err)
    }
    views := r.ConversationsFor(context.Background(), "5", nil)
    if len(views) != 1 {
        t.Fatalf("expected one conversation, got %d", len(views))
    }
    if views[0].LastMessage != "hi back" || views[0].UnreadCount != 1 {
        t.Fatalf("unexpected view: %+v", views[0])
    }
    msgs, err := r.ConversationMessages(b, views[0].ID)
    if err != nil || len(msgs) != 2 {
        t.Fatalf("messages: %d %v", len(msgs), err)
    }
}

func TestSend_Validation(t *testing.T) {
    r := newMessages()
    a := model.Actor{ID: "1", Name: "x"}
    if _, err := r.Send(a, "5", "   "); !errors.Is(err, ErrValidation) {
        t.Fatalf("blank content: %v", err)
    }
    if _, err := r.Send(a, "1", "me"); !errors.Is(err, ErrValidation) {
        t.Fatalf("self message: %v", err)
    }
    if _, err := r.Send(model.Actor{}, "5", "hi"); !errors.Is(err, ErrUnauthorized) {
        t.Fatalf("anonymous: %v", err)
    }
}

func TestUnread_ResetOnRead(t *testing.T) {
    r := newMessages()
    michael := model.Actor{ID: "201", Name: "Michael Brown"}
    m, err := r.Send(michael, "1", "Are we still on for Tuesday?")
    if err != nil {
        t.Fatalf("Send: %v", err)
    }
    if n := r.UnreadFor("1"); n != 2 {
        t.Fatalf("unread after send = %d, want 2", n)
    }

    if _, err := r.MarkRead(michael, m.ID); !errors.Is(err, ErrUnauthorized) {
        t.Fatalf("sender cannot mark read: %v", err)
    }
    receiver := model.Actor{ID: "1"}
    got, err := r.MarkRead(receiver, m.ID)
    if err != nil || !got.Read {
        t.Fatalf("MarkRead: %+v %v", got, err)
    }
    if n := r.UnreadFor("1"); n != 1 {
        t.Fatalf("unread after MarkRead = %d, want 1", n)
    }

    n, err := r.MarkConversationRead(receiver, "2001")
    if err != nil || n != 1 {
        t.Fatalf("MarkConversationRead: n=%d err=%v", n, err)
    }
    if n := r.UnreadFor("1"); n != 0 {
        t.Fatalf("unread after bulk read = %d, want 0", n)
    }
    if _, err := r.MarkConversationRead(model.Actor{ID: "9"}, "2001"); !errors.Is(err, ErrUnauthorized) {
        t.Fatalf("outsider: %v", err)
    }
    if _, err := r.MarkRead(receiver, "nope"); !errors.Is(err, ErrNotFound) {
        t.Fatalf("missing message: %v", err)
    }
}

func TestConversationsFor_NewestFirstWithContacts(t *testing.T) {
    r := newMessages()
    tutors := NewTutorRepo(seed.Tutors())
    users := NewUserRepo(seed.Users("x"))
    dir := ContactDirectory{Tutors: tutors, Users: users}

    if _, err := r.Send(model.Actor{ID: "1", Name: "Dr. Emily Johnson"}, "5", "Can you cover my Friday slot?"); err != nil {
        t.Fatalf("Send: %v", err)
    }
    views := r.ConversationsFor(context.Background(), "1", dir)
    if len(views) != 2 {
        t.Fatalf("expected 2 conversations, got %d", len(views))
    }
    if views[0].With.Name != "Dr. Robert Chen" {
        t.Fatalf("newest conversation should be with tutor 5, got %+v", views[0].With)
    }
    if views[1].ID != "2001" || views[1].With.Name != UnknownContactName {
        t.Fatalf("seeded conversation partner should be unknown, got %+v", views[1])
    }
}

func TestSeededStudent_HasOwnInbox(t *testing.T) {
    ctx := context.Background()
    r := newMessages()
    tutors := NewTutorRepo(seed.Tutors())
    users := NewUserRepo(seed.Users("x"))
    dir := ContactDirectory{Tutors: tutors, Users: users}

    student, err := users.GetByEmail(ctx, "student@example.com")
    if err != nil {
        t.Fatalf("GetByEmail: %v", err)
    }
    if _, err := tutors.Get(student.ID); !errors.Is(err, ErrNotFound) {
        t.Fatalf("student id %q names a catalog tutor", student.ID)
    }
    if views := r.ConversationsFor(ctx, student.ID, dir); len(views) != 0 {
        t.Fatalf("student sees threads of others: %+v", views)
    }
    if _, err := r.ConversationMessages(student.Actor(), "2001"); !errors.Is(err, ErrUnauthorized) {
        t.Fatalf("student reading a tutor thread: %v", err)
    }
    if c, ok := dir.Lookup(ctx, student.ID); !ok || c.Name != "John Doe" {
        t.Fatalf("Lookup(%q) = %+v %v", student.ID, c, ok)
    }
}

func TestConversationMessages_ParticipantsOnly(t *testing.T) {
    r := newMessages()
    if _, err := r.ConversationMessages(model.Actor{ID: "2"}, "2001"); !errors.Is(err, ErrUnauthorized) {
        t.Fatalf("expected ErrUnauthorized, got %v", err)
    }
    msgs, err := r.ConversationMessages(model.Actor{ID: "201"}, "2001")
    if err != nil || len(msgs) != 2 || msgs[0].ID != "1001" {
        t.Fatalf("unexpected history: %+v %v", msgs, err)
    }
    if _, err := r.ConversationMessages(model.Actor{ID: "1"}, "9999"); !errors.Is(err, ErrNotFound) {
        t.Fatalf("expected ErrNotFound, got %v", err)
    }
}
