package jwtx

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// Verifier validates ES256 compact tokens against a single public key.
// Any token declaring another algorithm is rejected outright; "alg":"none"
// in particular never gets near signature verification.
type Verifier struct {
	key    *ecdsa.PublicKey
	issuer string

	// now is the clock used for expiry checks, overridable in tests.
	now func() time.Time
}

// NewVerifier builds a verifier for the given public key and expected issuer.
func NewVerifier(key *ecdsa.PublicKey, issuer string) *Verifier {
	return &Verifier{key: key, issuer: issuer, now: time.Now}
}

// NewVerifierFromJWK imports the key pair from a base64-encoded JSON JWK and
// verifies against its public half. Handy when issuer and verifier share one
// configured key description.
func NewVerifierFromJWK(encodedJWK, issuer string) (*Verifier, error) {
	key, err := DecodePrivateKey(encodedJWK)
	if err != nil {
		return nil, err
	}
	return NewVerifier(&key.PublicKey, issuer), nil
}

// WithClock replaces the verifier's time source. Test hook.
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	v.now = now
	return v
}

// Verify parses and cryptographically verifies a compact token, then checks
// issuer and expiry. It never panics; every failure mode comes back as an
// error the caller can map to its own taxonomy. Error messages describe the
// failure, never the key material.
func (v *Verifier) Verify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}),
		// Expiry is validated below against a single clock read so the
		// reason can be reported distinctly from parse failures.
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaim
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateExpiry(v.now().UTC()); err != nil {
		return nil, err
	}

	return claims, nil
}
