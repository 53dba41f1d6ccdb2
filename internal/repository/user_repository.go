package repository

import (
    "context"
    "strings"
    "sync"

    "github.com/iliyamo/tutor-marketplace/internal/model"
)

// UserRepo is the credential list. Records are appended by sign-up and
// never removed.
type UserRepo struct {
    mu    sync.RWMutex
    users []model.User
}

// NewUserRepo seeds the list with users. Emails are normalized on the way in.
func NewUserRepo(seed []model.User) *UserRepo {
    r := &UserRepo{}
    for _, u := range seed {
        u.Email = model.NormalizeEmail(u.Email)
        r.users = append(r.users, u)
    }
    return r
}

// Create appends u. It fails with ErrUserAlreadyExists if the email is
// registered under any role.
func (r *UserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
    u.Email = model.NormalizeEmail(u.Email)
    if u.Email == "" || strings.TrimSpace(u.ID) == "" {
        return model.User{}, ErrValidation
    }
    r.mu.Lock()
    defer r.mu.Unlock()
    for _, existing := range r.users {
        if existing.Email == u.Email {
            return model.User{}, ErrUserAlreadyExists
        }
    }
    r.users = append(r.users, u)
    return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = model.NormalizeEmail(email)
    r.mu.RLock()
    defer r.mu.RUnlock()
    for _, u := range r.users {
        if u.Email == email {
            return u, nil
        }
    }
    return model.User{}, ErrNotFound
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    for _, u := range r.users {
        if u.ID == id {
            return u, nil
        }
    }
    return model.User{}, ErrNotFound
}

// UpdateProfile changes the display name and avatar. Empty values keep the
// current ones.
func (r *UserRepo) UpdateProfile(ctx context.Context, id, name, avatar string) (model.User, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    for i := range r.users {
        if r.users[i].ID != id {
            continue
        }
        if n := strings.TrimSpace(name); n != "" {
            r.users[i].Name = n
        }
        if a := strings.TrimSpace(avatar); a != "" {
            r.users[i].Avatar = a
        }
        return r.users[i], nil
    }
    return model.User{}, ErrNotFound
}

// Count returns the number of registered users.
func (r *UserRepo) Count() int {
    r.mu.RLock()
    defer r.mu.RUnlock()
    return len(r.users)
}
