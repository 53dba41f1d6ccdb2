package service

import (
    "context"
    "errors"
    "fmt"
    "testing"
    "time"

    "go.uber.org/zap"

    "github.com/iliyamo/tutor-marketplace/internal/model"
    "github.com/iliyamo/tutor-marketplace/internal/repository"
    "github.com/iliyamo/tutor-marketplace/internal/seed"
    "github.com/iliyamo/tutor-marketplace/internal/utils"
)

type identityFixture struct {
    svc       *IdentityService
    users     *repository.UserRepo
    tutors    *repository.TutorRepo
    snapshots *repository.MemorySnapshotStore
    inbox     *Recorder
}

func newIdentity(t *testing.T) identityFixture {
    t.Helper()
    hasher := utils.PasswordHasher{Cost: 4}
    hash, err := hasher.Hash("password")
    if err != nil {
        t.Fatalf("hash: %v", err)
    }
    f := identityFixture{
        users:     repository.NewUserRepo(seed.Users(hash)),
        tutors:    repository.NewTutorRepo(seed.Tutors()),
        snapshots: repository.NewMemorySnapshotStore(),
        inbox:     NewRecorder(10, 100),
    }
    f.svc = NewIdentityService(f.users, f.snapshots, f.tutors, f.inbox, zap.NewNop(), IdentityOptions{Hasher: hasher})
    return f
}

func messages(ns []model.Notification) []string {
    out := make([]string, len(ns))
    for i, n := range ns {
        out[i] = n.Message
    }
    return out
}

func TestSignIn_SignOutRoundTrip(t *testing.T) {
    ctx := context.Background()
    f := newIdentity(t)

    u, err := f.svc.SignIn(ctx, "s1", "Student@Example.com", "password", model.RoleStudent)
    if err != nil {
        t.Fatalf("SignIn: %v", err)
    }
    if u.ID != "u1" || u.Name != "John Doe" {
        t.Fatalf("unexpected user: %+v", u)
    }
    if cur, ok := f.svc.Current(ctx, "s1"); !ok || cur.ID != "u1" {
        t.Fatalf("Current after sign-in: %+v %v", cur, ok)
    }
    if got := messages(f.inbox.Drain(model.SessionAudience("s1"))); len(got) != 1 || got[0] != "Welcome back, John Doe!" {
        t.Fatalf("welcome notification: %v", got)
    }

    f.svc.SignOut(ctx, "s1")
    if _, ok := f.svc.Current(ctx, "s1"); ok {
        t.Fatal("session still signed in after SignOut")
    }
    if f.snapshots.Len() != 0 {
        t.Fatal("snapshot not cleared")
    }
    if got := messages(f.inbox.Drain(model.SessionAudience("s1"))); len(got) != 1 || got[0] != MsgSignedOut {
        t.Fatalf("sign-out notification: %v", got)
    }
    // Signing out twice is harmless.
    f.svc.SignOut(ctx, "s1")
}

func TestSignIn_Failures(t *testing.T) {
    ctx := context.Background()
    f := newIdentity(t)

    cases := []struct {
        email, password string
        role            model.Role
    }{
        {"student@example.com", "nope", model.RoleStudent},
        {"student@example.com", "password", model.RoleTutor},
        {"ghost@example.com", "password", model.RoleStudent},
    }
    for _, tc := range cases {
        if _, err := f.svc.SignIn(ctx, "s", tc.email, tc.password, tc.role); !errors.Is(err, repository.ErrInvalidCredentials) {
            t.Fatalf("%+v: expected ErrInvalidCredentials, got %v", tc, err)
        }
    }
    if _, ok := f.svc.Current(ctx, "s"); ok {
        t.Fatal("failed sign-in must not sign the session in")
    }
    if got := f.inbox.Peek(model.EmailAudience("student@example.com")); len(got) != 2 || got[0].Message != MsgSignInFailed || got[0].Level != model.LevelError {
        t.Fatalf("failure notifications: %+v", got)
    }
}

func TestSignUp_TutorGetsProfile(t *testing.T) {
    ctx := context.Background()
    f := newIdentity(t)

    u, err := f.svc.SignUp(ctx, "s2", "Grace Hopper", "grace@example.com", "cobol", model.RoleTutor)
    if err != nil {
        t.Fatalf("SignUp: %v", err)
    }
    if u.ID == "" || u.Avatar == "" || u.Role != model.RoleTutor {
        t.Fatalf("unexpected user: %+v", u)
    }
    tu, err := f.tutors.Get(u.ID)
    if err != nil || tu.HourlyRate != repository.DefaultHourlyRate || tu.Name != "Grace Hopper" {
        t.Fatalf("tutor profile: %+v %v", tu, err)
    }
    if got := messages(f.inbox.Drain(model.SessionAudience("s2"))); len(got) != 1 || got[0] != MsgSignUpOK {
        t.Fatalf("sign-up notification: %v", got)
    }

    // The new account signs in with its own password.
    f.svc.SignOut(ctx, "s2")
    if _, err := f.svc.SignIn(ctx, "s3", "grace@example.com", "cobol", model.RoleTutor); err != nil {
        t.Fatalf("SignIn with chosen password: %v", err)
    }
}

func TestSignUp_Duplicate(t *testing.T) {
    ctx := context.Background()
    f := newIdentity(t)
    if _, err := f.svc.SignUp(ctx, "s", "Imposter", "TUTOR@example.com", "x", model.RoleStudent); !errors.Is(err, repository.ErrUserAlreadyExists) {
        t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
    }
    if _, ok := f.svc.Current(ctx, "s"); ok {
        t.Fatal("duplicate sign-up must not sign in")
    }
    if f.users.Count() != 2 {
        t.Fatalf("user list grew to %d", f.users.Count())
    }
    if got := f.inbox.Peek(model.EmailAudience("tutor@example.com")); len(got) != 1 || got[0].Message != MsgSignUpFailed {
        t.Fatalf("failure notification: %+v", got)
    }
}

func TestCurrent_RestoresFromSnapshot(t *testing.T) {
    ctx := context.Background()
    f := newIdentity(t)
    if _, err := f.svc.SignIn(ctx, "s1", "tutor@example.com", "password", model.RoleTutor); err != nil {
        t.Fatalf("SignIn: %v", err)
    }

    // A fresh service over the same snapshot store simulates a restart.
    restarted := NewIdentityService(f.users, f.snapshots, f.tutors, f.inbox, zap.NewNop(), IdentityOptions{})
    u, ok := restarted.Current(ctx, "s1")
    if !ok || u.ID != "2" || u.Name != "Jane Smith" {
        t.Fatalf("restore: %+v %v", u, ok)
    }
    if _, ok := restarted.Current(ctx, "unknown"); ok {
        t.Fatal("unknown session restored")
    }
}

func TestUpdateProfile(t *testing.T) {
    ctx := context.Background()
    f := newIdentity(t)
    if _, err := f.svc.UpdateProfile(ctx, "nobody", "x", ""); !errors.Is(err, repository.ErrUnauthorized) {
        t.Fatalf("signed-out update: %v", err)
    }
    _, _ = f.svc.SignIn(ctx, "s1", "student@example.com", "password", model.RoleStudent)
    u, err := f.svc.UpdateProfile(ctx, "s1", "Johnny", "https://example.com/a.png")
    if err != nil || u.Name != "Johnny" {
        t.Fatalf("UpdateProfile: %+v %v", u, err)
    }
    if cur, _ := f.svc.Current(ctx, "s1"); cur.Name != "Johnny" || cur.Avatar != "https://example.com/a.png" {
        t.Fatalf("current not refreshed: %+v", cur)
    }
}

func TestSignIn_HonorsContext(t *testing.T) {
    f := newIdentity(t)
    slow := NewIdentityService(f.users, f.snapshots, f.tutors, f.inbox, zap.NewNop(),
        IdentityOptions{Latency: time.Second, Hasher: utils.PasswordHasher{Cost: 4}})
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
    defer cancel()
    if _, err := slow.SignIn(ctx, "s", "student@example.com", "password", model.RoleStudent); !errors.Is(err, context.DeadlineExceeded) {
        t.Fatalf("expected DeadlineExceeded, got %v", err)
    }
}

// blockingClear holds Clear until release is closed.
type blockingClear struct {
    *repository.MemorySnapshotStore
    clearing chan struct{}
    release  chan struct{}
}

func (b *blockingClear) Clear(ctx context.Context, session string) error {
    close(b.clearing)
    <-b.release
    return b.MemorySnapshotStore.Clear(ctx, session)
}

func TestSignOut_NotUndoneWhileClearing(t *testing.T) {
    ctx := context.Background()
    f := newIdentity(t)
    store := &blockingClear{
        MemorySnapshotStore: repository.NewMemorySnapshotStore(),
        clearing:            make(chan struct{}),
        release:             make(chan struct{}),
    }
    svc := NewIdentityService(f.users, store, f.tutors, f.inbox, zap.NewNop(), IdentityOptions{Hasher: utils.PasswordHasher{Cost: 4}})
    if _, err := svc.SignIn(ctx, "s1", "student@example.com", "password", model.RoleStudent); err != nil {
        t.Fatalf("SignIn: %v", err)
    }

    done := make(chan struct{})
    go func() {
        svc.SignOut(ctx, "s1")
        close(done)
    }()
    <-store.clearing
    if u, ok := svc.Current(ctx, "s1"); ok {
        t.Fatalf("session restored while its snapshot was being cleared: %+v", u)
    }
    close(store.release)
    <-done
    if u, ok := svc.Current(ctx, "s1"); ok {
        t.Fatalf("session signed in after SignOut returned: %+v", u)
    }
}

// staleLoad reads the snapshot, then waits for release before returning it.
type staleLoad struct {
    *repository.MemorySnapshotStore
    loading chan struct{}
    release chan struct{}
}

func (s *staleLoad) Load(ctx context.Context, session string) (model.User, error) {
    u, err := s.MemorySnapshotStore.Load(ctx, session)
    close(s.loading)
    <-s.release
    return u, err
}

func TestSignOut_DuringRestore(t *testing.T) {
    ctx := context.Background()
    f := newIdentity(t)
    if _, err := f.svc.SignIn(ctx, "s1", "tutor@example.com", "password", model.RoleTutor); err != nil {
        t.Fatalf("SignIn: %v", err)
    }
    store := &staleLoad{MemorySnapshotStore: f.snapshots, loading: make(chan struct{}), release: make(chan struct{})}
    restarted := NewIdentityService(f.users, store, f.tutors, f.inbox, zap.NewNop(), IdentityOptions{})

    restored := make(chan bool)
    go func() {
        _, ok := restarted.Current(ctx, "s1")
        restored <- ok
    }()
    <-store.loading
    restarted.SignOut(ctx, "s1")
    close(store.release)
    if <-restored {
        t.Fatal("stale snapshot restored a signed-out session")
    }
    if _, ok := restarted.Current(ctx, "s1"); ok {
        t.Fatal("session signed in after SignOut")
    }
}

func TestSignIn_ReusesEndedSession(t *testing.T) {
    ctx := context.Background()
    f := newIdentity(t)
    _, _ = f.svc.SignIn(ctx, "s1", "student@example.com", "password", model.RoleStudent)
    f.svc.SignOut(ctx, "s1")
    if _, err := f.svc.SignIn(ctx, "s1", "student@example.com", "password", model.RoleStudent); err != nil {
        t.Fatalf("SignIn: %v", err)
    }
    if _, ok := f.svc.Current(ctx, "s1"); !ok {
        t.Fatal("fresh sign-in on an ended session id not honoured")
    }
}

func TestSignIn_FailuresKeepInboxBounded(t *testing.T) {
    ctx := context.Background()
    f := newIdentity(t)
    for i := 0; i < 1000; i++ {
        email := fmt.Sprintf("nobody%d@example.com", i)
        if _, err := f.svc.SignIn(ctx, "s", email, "password", model.RoleStudent); !errors.Is(err, repository.ErrInvalidCredentials) {
            t.Fatalf("%s: %v", email, err)
        }
    }
    if n := f.inbox.Len(); n > 100 {
        t.Fatalf("inbox kept %d audiences", n)
    }
    // The newest failure is still there to be collected.
    if got := f.inbox.Peek(model.EmailAudience("nobody999@example.com")); len(got) != 1 {
        t.Fatalf("latest failure: %+v", got)
    }
}
