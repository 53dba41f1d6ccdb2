package model

import "strings"

// Role is the marketplace role a user signs in with.
type Role string

const (
    RoleStudent Role = "student"
    RoleTutor   Role = "tutor"
    RoleNone    Role = ""
)

// ParseRole normalizes a role string. Unknown values map to RoleNone.
func ParseRole(s string) Role {
    switch Role(strings.ToLower(strings.TrimSpace(s))) {
    case RoleStudent:
        return RoleStudent
    case RoleTutor:
        return RoleTutor
    }
    return RoleNone
}

// User is an entry in the credential list. PasswordHash never leaves the
// process; handlers and snapshots only see the public fields.
type User struct {
    ID           string `json:"id"`
    Name         string `json:"name"`
    Email        string `json:"email"`
    Role         Role   `json:"role"`
    Avatar       string `json:"avatar,omitempty"`
    PasswordHash string `json:"-"`
}

// Actor identifies who is performing an operation. ID and Role drive
// authorization; Name and Avatar are copied into records the actor creates.
type Actor struct {
    ID     string
    Role   Role
    Name   string
    Avatar string
}

// Actor returns the acting identity of u.
func (u User) Actor() Actor {
    return Actor{ID: u.ID, Role: u.Role, Name: u.Name, Avatar: u.Avatar}
}

// NormalizeEmail lower-cases and trims an address before lookups.
func NormalizeEmail(email string) string {
    return strings.ToLower(strings.TrimSpace(email))
}
