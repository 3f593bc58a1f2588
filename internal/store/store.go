package store

import (
	"context"
	"errors"

	"github.com/classmeet/classmeet/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (memory, sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Meetings() Meetings

	// Ping verifies the backing storage is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

// Users is the identity lookup contract the auth core depends on. Lookups
// are total: absence comes back as ErrNotFound, never a panic.
type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during credential validation.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the service as a
	// UUID). Duplicate id or email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser replaces the stored record matched by u.ID.
	UpdateUser(ctx context.Context, u domain.User) error

	// DeleteUser removes the record; meetings owned by the user are the
	// caller's concern.
	DeleteUser(ctx context.Context, id string) error

	// ListUsers returns all users ordered by creation date.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// Meetings stores meeting ownership records.
type Meetings interface {
	// GetMeetingByID returns a meeting by id.
	GetMeetingByID(ctx context.Context, id string) (domain.Meeting, error)

	// CreateMeeting inserts a new meeting (id provided by the service).
	CreateMeeting(ctx context.Context, m domain.Meeting) error

	// UpdateMeeting replaces the stored record matched by m.ID.
	UpdateMeeting(ctx context.Context, m domain.Meeting) error

	// DeleteMeeting removes the record.
	DeleteMeeting(ctx context.Context, id string) error

	// ListMeetings returns all meetings; visibility filtering is policy,
	// not storage.
	ListMeetings(ctx context.Context) ([]domain.Meeting, error)
}
