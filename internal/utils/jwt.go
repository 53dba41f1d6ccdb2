package utils // package utils provides helpers for access tokens and password hashing

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed JWT together with its expiry.
type AccessToken struct {
    Token string
    Exp   time.Time
}

// Claims are the values carried by an access token. SessionID ties the
// token to an identity session; signing out ends the session and with it
// every token that references it.
type Claims struct {
    UserID    string
    Role      string
    SessionID string
}

var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT with the standard sub, exp
// and iat claims plus role and sid.
func NewAccessToken(secret string, c Claims, ttlMin int, now time.Time) (AccessToken, error) {
    if ttlMin <= 0 {
        ttlMin = 60
    }
    now = now.UTC()
    exp := now.Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub":  c.UserID,
        "role": c.Role,
        "sid":  c.SessionID,
        "exp":  exp.Unix(),
        "iat":  now.Unix(),
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw against secret and extracts its claims.
// Tokens signed with anything other than HMAC are rejected.
func ParseAccessToken(secret, raw string) (Claims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return Claims{}, ErrInvalidToken
    }
    mc, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return Claims{}, ErrInvalidToken
    }
    c := Claims{}
    c.UserID, _ = mc["sub"].(string)
    c.Role, _ = mc["role"].(string)
    c.SessionID, _ = mc["sid"].(string)
    if c.UserID == "" || c.SessionID == "" {
        return Claims{}, ErrInvalidToken
    }
    return c, nil
}
