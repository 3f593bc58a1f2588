package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/classmeet/classmeet/internal/domain"
	"github.com/classmeet/classmeet/internal/store"
	"github.com/classmeet/classmeet/pkg/cryptox"
	"github.com/classmeet/classmeet/pkg/jwtx"
	"github.com/classmeet/classmeet/pkg/slogx"
)

// TokenType is the scheme reported in login responses and required in
// authorization headers. Case-sensitive.
const TokenType = "Bearer"

// AuthService authenticates credentials, issues access tokens and derives
// the per-request AuthContext from bearer headers.
type AuthService struct {
	Store    store.Store
	Signer   *jwtx.Signer
	Verifier *jwtx.Verifier
	Issuer   string

	// SessionTTL is the session lifetime reported to clients as
	// expires_in. Independent from the signed artifact's own lifetime.
	SessionTTL time.Duration
}

// UserInfo is the normalized identity view returned by credential
// validation: role parsed onto the closed enum, no password material.
type UserInfo struct {
	ID         string
	FirstName  string
	FamilyName string
	Email      string
	Role       domain.Role
}

// LoginResponse is the token envelope handed to a successfully
// authenticated client.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Credential is the closed set of authentication inputs the service
// accepts: local email+password or a bearer header.
type Credential interface {
	credential()
}

// LocalCredential authenticates with email and password.
type LocalCredential struct {
	Email    string
	Password string
}

// BearerToken authenticates with a raw Authorization header value.
type BearerToken struct {
	Header string
}

func (LocalCredential) credential() {}
func (BearerToken) credential()     {}

// Authenticate resolves any supported credential into an AuthContext.
func (s *AuthService) Authenticate(ctx context.Context, c Credential) (domain.AuthContext, error) {
	switch cred := c.(type) {
	case LocalCredential:
		info, err := s.ValidateUser(ctx, cred.Email, cred.Password)
		if err != nil {
			return domain.AuthContext{}, err
		}
		return domain.AuthContext{ID: info.ID, Email: info.Email, Role: info.Role}, nil
	case BearerToken:
		return s.ValidateAccessToken(ctx, cred.Header)
	default:
		return domain.AuthContext{}, ErrInvalidAuthorizationHeader
	}
}

// ValidateUser checks email+password against the identity store. The two
// failure kinds stay distinct internally; the HTTP layer collapses them.
func (s *AuthService) ValidateUser(ctx context.Context, email, password string) (UserInfo, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return UserInfo{}, ErrInvalidEmail
		}
		return UserInfo{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return UserInfo{}, ErrInvalidPassword
	}

	role, err := domain.ParseRole(user.Role)
	if err != nil {
		return UserInfo{}, err
	}

	return UserInfo{
		ID:         user.ID,
		FirstName:  user.FirstName,
		FamilyName: user.FamilyName,
		Email:      user.Email,
		Role:       role,
	}, nil
}

// Login issues an access token for an already-validated identity.
func (s *AuthService) Login(ctx context.Context, info UserInfo) (LoginResponse, error) {
	now := time.Now().UTC()
	claims := jwtx.NewAccessClaims(info.ID, info.Email, string(info.Role), s.Issuer, now)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		slogx.FromContext(ctx).Error("access token signing failed", "err", err)
		return LoginResponse{}, err
	}

	return LoginResponse{
		AccessToken: token,
		TokenType:   TokenType,
		ExpiresIn:   int64(s.SessionTTL.Seconds()),
	}, nil
}

// ValidateAccessToken parses a raw Authorization header, verifies the
// bearer token and resolves the acting identity. The returned AuthContext
// is built from the verified claims, not the re-resolved record, so role
// and email reflect what was signed.
func (s *AuthService) ValidateAccessToken(ctx context.Context, rawHeader string) (domain.AuthContext, error) {
	token, err := bearerToken(rawHeader)
	if err != nil {
		return domain.AuthContext{}, err
	}

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		slogx.FromContext(ctx).Warn("access token rejected", "reason", err)
		return domain.AuthContext{}, ErrInvalidAccessToken
	}

	// Re-resolve the subject: a token issued for a since-deleted identity
	// must not authenticate.
	if _, err := s.Store.Users().GetUserByID(ctx, claims.Subject); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.AuthContext{}, ErrInvalidEmail
		}
		return domain.AuthContext{}, err
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.AuthContext{}, err
	}

	return domain.AuthContext{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  role,
	}, nil
}

// bearerToken extracts the token from a header that must be exactly
// "Bearer <token>": case-sensitive scheme, single space, nothing else.
func bearerToken(raw string) (string, error) {
	scheme, token, ok := strings.Cut(raw, " ")
	if !ok || scheme != TokenType {
		return "", ErrInvalidAuthorizationHeader
	}
	if token == "" || strings.ContainsRune(token, ' ') {
		return "", ErrInvalidAuthorizationHeader
	}
	return token, nil
}
