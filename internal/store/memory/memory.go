// Package memory is the default list-backed store driver. It keeps records
// in slices behind an RWMutex, which is plenty for a single-process
// deployment and keeps tests hermetic.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/classmeet/classmeet/internal/domain"
	"github.com/classmeet/classmeet/internal/store"
)

type Store struct {
	mu       sync.RWMutex
	users    []domain.User
	meetings []domain.Meeting
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Users() store.Users       { return (*usersRepo)(s) }
func (s *Store) Meetings() store.Meetings { return (*meetingsRepo)(s) }

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close() error               { return nil }

type usersRepo Store

func (r *usersRepo) GetUserByID(_ context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (r *usersRepo) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (r *usersRepo) CreateUser(_ context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.ID == u.ID || existing.Email == u.Email {
			return store.ErrAlreadyExists
		}
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users = append(r.users, u)
	return nil
}

func (r *usersRepo) UpdateUser(_ context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.users {
		if existing.ID == u.ID {
			u.CreatedAt = existing.CreatedAt
			u.UpdatedAt = time.Now().UTC()
			r.users[i] = u
			return nil
		}
	}
	return store.ErrNotFound
}

func (r *usersRepo) DeleteUser(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.users {
		if existing.ID == id {
			r.users = slices.Delete(r.users, i, i+1)
			return nil
		}
	}
	return store.ErrNotFound
}

func (r *usersRepo) ListUsers(context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.users), nil
}

type meetingsRepo Store

func (r *meetingsRepo) GetMeetingByID(_ context.Context, id string) (domain.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.meetings {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Meeting{}, store.ErrNotFound
}

func (r *meetingsRepo) CreateMeeting(_ context.Context, m domain.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.meetings {
		if existing.ID == m.ID {
			return store.ErrAlreadyExists
		}
	}

	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	r.meetings = append(r.meetings, m)
	return nil
}

func (r *meetingsRepo) UpdateMeeting(_ context.Context, m domain.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.meetings {
		if existing.ID == m.ID {
			m.CreatedAt = existing.CreatedAt
			m.UpdatedAt = time.Now().UTC()
			r.meetings[i] = m
			return nil
		}
	}
	return store.ErrNotFound
}

func (r *meetingsRepo) DeleteMeeting(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.meetings {
		if existing.ID == id {
			r.meetings = slices.Delete(r.meetings, i, i+1)
			return nil
		}
	}
	return store.ErrNotFound
}

func (r *meetingsRepo) ListMeetings(context.Context) ([]domain.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.meetings), nil
}
