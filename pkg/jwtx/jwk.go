package jwtx

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
)

// JWK is the JSON Web Key description we exchange for ES256 key material.
// Key material travels as base64(JSON JWK) so it can sit in an environment
// variable without escaping issues.
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	Alg string `json:"alg,omitempty"`
	Use string `json:"use,omitempty"`
	X   string `json:"x"`
	Y   string `json:"y"`
	D   string `json:"d,omitempty"`
}

var (
	ErrInvalidKeyEncoding = errors.New("jwtx: key is not base64-encoded JSON")
	ErrUnsupportedKey     = errors.New("jwtx: unsupported key type, need EC P-256")
)

// DecodePrivateKey parses a base64-encoded JSON JWK into an ECDSA P-256
// private key. Only ES256-class keys are accepted; anything else is a
// configuration error, not something to work around at runtime.
func DecodePrivateKey(encoded string) (*ecdsa.PrivateKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}

	var jwk JWK
	if err := json.Unmarshal(raw, &jwk); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}

	if jwk.Kty != "EC" || jwk.Crv != "P-256" {
		return nil, ErrUnsupportedKey
	}
	if jwk.Alg != "" && jwk.Alg != "ES256" {
		return nil, ErrUnsupportedKey
	}

	x, err := decodeCoordinate(jwk.X)
	if err != nil {
		return nil, fmt.Errorf("jwtx: decode x: %w", err)
	}
	y, err := decodeCoordinate(jwk.Y)
	if err != nil {
		return nil, fmt.Errorf("jwtx: decode y: %w", err)
	}
	d, err := decodeCoordinate(jwk.D)
	if err != nil {
		return nil, fmt.Errorf("jwtx: decode d: %w", err)
	}

	key := &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y},
		D:         d,
	}
	if !key.Curve.IsOnCurve(key.X, key.Y) {
		return nil, errors.New("jwtx: public point not on P-256 curve")
	}
	return key, nil
}

// GenerateKey mints fresh ES256 key material and returns it in the same
// base64(JSON JWK) form DecodePrivateKey accepts. Offline utility, not on
// the request path.
func GenerateKey() (string, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return "", err
	}

	byteLen := (key.Curve.Params().BitSize + 7) / 8
	jwk := JWK{
		Kty: "EC",
		Crv: "P-256",
		Alg: "ES256",
		Use: "sig",
		X:   base64.RawURLEncoding.EncodeToString(key.X.FillBytes(make([]byte, byteLen))),
		Y:   base64.RawURLEncoding.EncodeToString(key.Y.FillBytes(make([]byte, byteLen))),
		D:   base64.RawURLEncoding.EncodeToString(key.D.FillBytes(make([]byte, byteLen))),
	}

	raw, err := json.Marshal(jwk)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func decodeCoordinate(s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.New("missing coordinate")
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}
