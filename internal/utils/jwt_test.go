package utils

import (
    "errors"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

func TestAccessToken_RoundTrip(t *testing.T) {
    now := time.Now()
    tok, err := NewAccessToken("test-secret", Claims{UserID: "1", Role: "student", SessionID: "s-1"}, 5, now)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    if want := now.UTC().Add(5 * time.Minute).Unix(); tok.Exp.Unix() != want {
        t.Fatalf("exp = %d, want %d", tok.Exp.Unix(), want)
    }
    c, err := ParseAccessToken("test-secret", tok.Token)
    if err != nil {
        t.Fatalf("ParseAccessToken: %v", err)
    }
    if c.UserID != "1" || c.Role != "student" || c.SessionID != "s-1" {
        t.Fatalf("claims mismatch: %+v", c)
    }
}

func TestParseAccessToken_Rejects(t *testing.T) {
    tok, _ := NewAccessToken("test-secret", Claims{UserID: "1", SessionID: "s"}, 5, time.Now())
    if _, err := ParseAccessToken("other-secret", tok.Token); !errors.Is(err, ErrInvalidToken) {
        t.Fatalf("wrong secret: %v", err)
    }

    expired, _ := NewAccessToken("test-secret", Claims{UserID: "1", SessionID: "s"}, 1, time.Now().Add(-time.Hour))
    if _, err := ParseAccessToken("test-secret", expired.Token); !errors.Is(err, ErrInvalidToken) {
        t.Fatalf("expired: %v", err)
    }

    noSession, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
        "sub": "1", "exp": time.Now().Add(time.Minute).Unix(),
    }).SignedString([]byte("test-secret"))
    if _, err := ParseAccessToken("test-secret", noSession); !errors.Is(err, ErrInvalidToken) {
        t.Fatalf("missing sid: %v", err)
    }

    if _, err := ParseAccessToken("test-secret", "not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
        t.Fatalf("garbage: %v", err)
    }
}

func TestPasswordHasher(t *testing.T) {
    h := PasswordHasher{Cost: 4}
    hash, err := h.Hash("s3cr3t-password")
    if err != nil {
        t.Fatalf("Hash: %v", err)
    }
    if !h.Verify(hash, "s3cr3t-password") {
        t.Fatal("Verify failed for the right password")
    }
    if h.Verify(hash, "wrong") {
        t.Fatal("Verify succeeded for the wrong password")
    }
    if h.Verify("", "") {
        t.Fatal("empty hash must never match")
    }
}
