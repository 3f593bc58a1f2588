package domain

import (
	"errors"
	"fmt"
	"time"
)

// Role is the closed set of identity roles. Matching is case-sensitive;
// any other string is invalid.
type Role string

const (
	RoleTeacher Role = "Teacher"
	RoleStudent Role = "Student"
)

// ErrInvalidRole reports a role string outside the closed enum.
var ErrInvalidRole = errors.New("domain: invalid role")

// ParseRole maps a stored role string onto the closed enum.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleTeacher:
		return RoleTeacher, nil
	case RoleStudent:
		return RoleStudent, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// SDKRoleType is the fixed role mapping the meeting SDK expects:
// Student is a participant (0), Teacher is a host (1).
func (r Role) SDKRoleType() int {
	if r == RoleTeacher {
		return 1
	}
	return 0
}

// User is an identity record as the store holds it. Role stays a raw string
// here; services parse it through ParseRole so a corrupted record surfaces
// as ErrInvalidRole instead of silently granting or denying access.
type User struct {
	ID           string
	FirstName    string
	FamilyName   string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthContext is the per-request authenticated-principal view derived from a
// verified access token. Ephemeral; never persisted.
type AuthContext struct {
	ID    string
	Email string
	Role  Role
}
