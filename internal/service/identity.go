package service

import (
    "context"
    "errors"
    "fmt"
    "math/rand"
    "strings"
    "sync"
    "time"

    "github.com/google/uuid"
    "go.uber.org/zap"

    "github.com/iliyamo/tutor-marketplace/internal/model"
    "github.com/iliyamo/tutor-marketplace/internal/repository"
    "github.com/iliyamo/tutor-marketplace/internal/utils"
)

// Notification texts raised by the identity flows.
const (
    MsgSignUpOK     = "Account created successfully!"
    MsgSignUpFailed = "Signup failed: User already exists"
    MsgSignInFailed = "Login failed: Invalid credentials"
    MsgSignedOut    = "You have been logged out"
)

// Provisioner creates the catalog profile of a newly registered tutor.
type Provisioner interface {
    Provision(u model.User) (model.Tutor, bool)
}

// IdentityOptions tunes an IdentityService.
type IdentityOptions struct {
    Latency time.Duration // simulated round trip of sign-in and sign-up
    Hasher  utils.PasswordHasher
    Now     func() time.Time
    // EndedTTL is how long a signed-out session is refused a restore. It
    // should cover the lifetime of the session's access tokens.
    EndedTTL time.Duration
}

// IdentityService tracks the current identity of each session. A session
// is signed in after SignIn or SignUp and stays so until SignOut; its
// identity is mirrored to a SnapshotStore so it survives restarts.
type IdentityService struct {
    users     *repository.UserRepo
    snapshots repository.SnapshotStore
    tutors    Provisioner
    notifier  Notifier
    log       *zap.Logger
    opts      IdentityOptions

    mu       sync.RWMutex
    sessions map[string]model.User
    ended    map[string]time.Time // signed-out session -> sign-out time
}

func NewIdentityService(users *repository.UserRepo, snapshots repository.SnapshotStore, tutors Provisioner,
    notifier Notifier, log *zap.Logger, opts IdentityOptions) *IdentityService {
    if opts.Now == nil {
        opts.Now = time.Now
    }
    if opts.EndedTTL <= 0 {
        opts.EndedTTL = time.Hour
    }
    return &IdentityService{
        users:     users,
        snapshots: snapshots,
        tutors:    tutors,
        notifier:  notifier,
        log:       log,
        opts:      opts,
        sessions:  map[string]model.User{},
        ended:     map[string]time.Time{},
    }
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string { return uuid.NewString() }

// SignIn matches email and role against the credential list and checks the
// password. On success the session's identity is set and persisted.
func (s *IdentityService) SignIn(ctx context.Context, session, email, password string, role model.Role) (model.User, error) {
    if err := s.wait(ctx); err != nil {
        return model.User{}, err
    }
    email = model.NormalizeEmail(email)
    u, err := s.users.GetByEmail(ctx, email)
    if err != nil || u.Role != role || !s.opts.Hasher.Verify(u.PasswordHash, password) {
        s.notify(ctx, model.EmailAudience(email), model.LevelError, MsgSignInFailed)
        return model.User{}, repository.ErrInvalidCredentials
    }
    s.setCurrent(ctx, session, u)
    s.notify(ctx, model.SessionAudience(session), model.LevelSuccess, fmt.Sprintf("Welcome back, %s!", u.Name))
    return u, nil
}

// SignUp registers a new user with a placeholder avatar and signs them in.
// Tutors also get an empty catalog profile.
func (s *IdentityService) SignUp(ctx context.Context, session, name, email, password string, role model.Role) (model.User, error) {
    if err := s.wait(ctx); err != nil {
        return model.User{}, err
    }
    name = strings.TrimSpace(name)
    email = model.NormalizeEmail(email)
    if name == "" || email == "" || password == "" {
        return model.User{}, repository.ErrValidation
    }
    hash, err := s.opts.Hasher.Hash(password)
    if err != nil {
        return model.User{}, fmt.Errorf("hash password: %w", err)
    }
    u, err := s.users.Create(ctx, model.User{
        ID:           uuid.NewString(),
        Name:         name,
        Email:        email,
        Role:         role,
        Avatar:       fmt.Sprintf("https://i.pravatar.cc/150?img=%d", rand.Intn(70)),
        PasswordHash: hash,
    })
    if errors.Is(err, repository.ErrUserAlreadyExists) {
        s.notify(ctx, model.EmailAudience(email), model.LevelError, MsgSignUpFailed)
        return model.User{}, err
    }
    if err != nil {
        return model.User{}, err
    }
    if s.tutors != nil {
        if _, created := s.tutors.Provision(u); created {
            s.log.Info("tutor profile provisioned", zap.String("user_id", u.ID))
        }
    }
    s.setCurrent(ctx, session, u)
    s.notify(ctx, model.SessionAudience(session), model.LevelSuccess, MsgSignUpOK)
    return u, nil
}

// SignOut forgets the session's identity and deletes its snapshot. The
// session is marked ended before the snapshot is cleared, so a concurrent
// Current cannot restore it.
func (s *IdentityService) SignOut(ctx context.Context, session string) {
    now := s.opts.Now()
    s.mu.Lock()
    delete(s.sessions, session)
    s.ended[session] = now
    for id, at := range s.ended {
        if now.Sub(at) > s.opts.EndedTTL {
            delete(s.ended, id)
        }
    }
    s.mu.Unlock()
    if err := s.snapshots.Clear(ctx, session); err != nil {
        s.log.Warn("clear identity snapshot failed", zap.String("session", session), zap.Error(err))
    }
    s.notify(ctx, model.SessionAudience(session), model.LevelInfo, MsgSignedOut)
}

// Current returns the identity of session. Sessions unknown to this
// process are restored from the snapshot store unless they were signed out.
func (s *IdentityService) Current(ctx context.Context, session string) (model.User, bool) {
    s.mu.RLock()
    u, ok := s.sessions[session]
    _, gone := s.ended[session]
    s.mu.RUnlock()
    if ok {
        return u, true
    }
    if gone {
        return model.User{}, false
    }
    u, err := s.snapshots.Load(ctx, session)
    if err != nil {
        if !errors.Is(err, repository.ErrSnapshotMissing) {
            s.log.Warn("load identity snapshot failed", zap.String("session", session), zap.Error(err))
        }
        return model.User{}, false
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    // SignOut may have run while the snapshot was loading.
    if _, gone := s.ended[session]; gone {
        return model.User{}, false
    }
    s.sessions[session] = u
    return u, true
}

// UpdateProfile changes the signed-in user's name and avatar.
func (s *IdentityService) UpdateProfile(ctx context.Context, session, name, avatar string) (model.User, error) {
    cur, ok := s.Current(ctx, session)
    if !ok {
        return model.User{}, repository.ErrUnauthorized
    }
    u, err := s.users.UpdateProfile(ctx, cur.ID, name, avatar)
    if errors.Is(err, repository.ErrNotFound) {
        // Restored from a snapshot after the in-memory list was reset.
        if n := strings.TrimSpace(name); n != "" {
            cur.Name = n
        }
        if a := strings.TrimSpace(avatar); a != "" {
            cur.Avatar = a
        }
        u, err = cur, nil
    }
    if err != nil {
        return model.User{}, err
    }
    s.mu.Lock()
    if _, live := s.sessions[session]; !live {
        s.mu.Unlock()
        return model.User{}, repository.ErrUnauthorized
    }
    s.sessions[session] = u
    s.mu.Unlock()
    if err := s.snapshots.Save(ctx, session, u); err != nil {
        s.log.Warn("save identity snapshot failed", zap.String("session", session), zap.Error(err))
    }
    return u, nil
}

func (s *IdentityService) setCurrent(ctx context.Context, session string, u model.User) {
    s.mu.Lock()
    s.sessions[session] = u
    delete(s.ended, session)
    s.mu.Unlock()
    if err := s.snapshots.Save(ctx, session, u); err != nil {
        s.log.Warn("save identity snapshot failed", zap.String("session", session), zap.Error(err))
    }
}

func (s *IdentityService) notify(ctx context.Context, audience string, level model.NotificationLevel, msg string) {
    if s.notifier == nil {
        return
    }
    _ = s.notifier.Notify(ctx, model.Notification{
        Audience:  audience,
        Level:     level,
        Message:   msg,
        CreatedAt: s.opts.Now(),
    })
}

func (s *IdentityService) wait(ctx context.Context) error {
    if s.opts.Latency <= 0 {
        return ctx.Err()
    }
    t := time.NewTimer(s.opts.Latency)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return ctx.Err()
    case <-t.C:
        return nil
    }
}
