package jwtx

import (
	"crypto/ecdsa"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer issues ES256-signed compact tokens. It holds the private key for
// the process lifetime; key material is immutable once loaded.
type Signer struct {
	key *ecdsa.PrivateKey
}

// NewSigner imports key material from a base64-encoded JSON JWK.
func NewSigner(encodedJWK string) (*Signer, error) {
	key, err := DecodePrivateKey(encodedJWK)
	if err != nil {
		return nil, err
	}
	return &Signer{key: key}, nil
}

// Alg reports the fixed signing algorithm.
func (s *Signer) Alg() string { return jwt.SigningMethodES256.Alg() }

// Sign turns claims into a signed compact JWT string.
func (s *Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	return t.SignedString(s.key)
}

// PublicKey exposes the verification half of the key pair.
func (s *Signer) PublicKey() *ecdsa.PublicKey { return &s.key.PublicKey }

// Validate does a quick sanity check that we actually hold a usable key.
func (s *Signer) Validate() error {
	if s.key == nil {
		return errors.New("jwtx: nil ECDSA key")
	}
	if s.key.Curve.Params().Name != "P-256" {
		return ErrUnsupportedKey
	}
	return nil
}
