// Package repository holds the in-memory stores backing the marketplace:
// users, the tutor catalog, favorites, appointments, messages and reviews,
// plus the pluggable backends used to persist identity snapshots and
// favorite sets. The sentinel values below let handlers map failures to
// HTTP status codes with errors.Is.
package repository

import "errors"

// ErrInvalidCredentials is returned when no user matches the supplied
// email, role and password. Handlers translate it into HTTP 401.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserAlreadyExists is returned by sign-up when the email is taken
// under any role. Handlers translate it into HTTP 409.
var ErrUserAlreadyExists = errors.New("user already exists")

// ErrUnauthorized is returned when the acting user may not perform the
// operation, such as editing another tutor's profile. HTTP 403.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidTransition is returned when an appointment status change is
// not allowed from its current state. HTTP 409.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned for malformed input (bad rating, empty
// message, unparsable date).
var ErrValidation = errors.New("validation failed")

// ErrSnapshotMissing is returned by snapshot stores when nothing is saved
// under the key.
var ErrSnapshotMissing = errors.New("snapshot missing")
