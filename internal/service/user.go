package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/classmeet/classmeet/internal/domain"
	"github.com/classmeet/classmeet/internal/policy"
	"github.com/classmeet/classmeet/internal/store"
	"github.com/classmeet/classmeet/pkg/cryptox"
)

// UserService owns the identity records: registration and self-service
// profile management. Mutations are gated on the self-only policy.
type UserService struct {
	Store store.Store
}

type CreateUserRequest struct {
	FirstName  string `json:"firstName"`
	FamilyName string `json:"familyName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
}

type UpdateUserRequest struct {
	FirstName  string `json:"firstName"`
	FamilyName string `json:"familyName"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}

// UserResponse is the public identity view. Password material never leaves
// the service.
type UserResponse struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	FamilyName string `json:"familyName"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}

// Create registers a new identity. The role is fixed at registration; this
// core never changes it afterwards.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return UserResponse{}, err
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return UserResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		FirstName:    req.FirstName,
		FamilyName:   req.FamilyName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         string(role),
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return UserResponse{}, ErrEmailExists
		}
		return UserResponse{}, fmt.Errorf("%w: %v", ErrStorageTransaction, err)
	}

	return toUserResponse(user), nil
}

// GetByID returns a user by id.
func (s *UserService) GetByID(ctx context.Context, id string) (UserResponse, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return UserResponse{}, ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]UserResponse, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}
	return responses, nil
}

// Update replaces profile fields of an existing user. Existence is checked
// before permissions; only the user themselves may update. The stored
// password hash is carried over untouched.
func (s *UserService) Update(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
	actor domain.AuthContext,
) (UserResponse, error) {
	existing, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return UserResponse{}, ErrUserNotFound
		}
		return UserResponse{}, err
	}

	if err := policy.CanMutateUser(actor, existing.ID); err != nil {
		return UserResponse{}, err
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return UserResponse{}, err
	}

	if req.Email != existing.Email {
		if _, err := s.Store.Users().GetUserByEmail(ctx, req.Email); err == nil {
			return UserResponse{}, ErrEmailExists
		} else if !errors.Is(err, store.ErrNotFound) {
			return UserResponse{}, err
		}
	}

	updated := domain.User{
		ID:           existing.ID,
		FirstName:    req.FirstName,
		FamilyName:   req.FamilyName,
		Email:        req.Email,
		PasswordHash: existing.PasswordHash,
		Role:         string(role),
	}

	if err := s.Store.Users().UpdateUser(ctx, updated); err != nil {
		return UserResponse{}, fmt.Errorf("%w: %v", ErrStorageTransaction, err)
	}
	return toUserResponse(updated), nil
}

// Delete removes a user record. Existence first, then the self-only gate.
func (s *UserService) Delete(ctx context.Context, id string, actor domain.AuthContext) error {
	existing, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := policy.CanMutateUser(actor, existing.ID); err != nil {
		return err
	}

	if err := s.Store.Users().DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageTransaction, err)
	}
	return nil
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		FamilyName: u.FamilyName,
		Email:      u.Email,
		Role:       u.Role,
	}
}
