package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/classmeet/classmeet/pkg/jwtx"
)

const testIssuer = "learning-platform-backend"

func newKeyPair(t *testing.T) (*jwtx.Signer, *jwtx.Verifier) {
	t.Helper()

	encoded, err := jwtx.GenerateKey()
	require.NoError(t, err)

	signer, err := jwtx.NewSigner(encoded)
	require.NoError(t, err)
	require.NoError(t, signer.Validate())
	require.Equal(t, "ES256", signer.Alg())

	return signer, jwtx.NewVerifier(signer.PublicKey(), testIssuer)
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	signer, verifier := newKeyPair(t)

	now := time.Now().UTC()
	claims := jwtx.NewAccessClaims(
		"0b1f7a75-23a5-4c39-9fca-6c4d51f45b42",
		"t@x.com",
		"Teacher",
		testIssuer,
		now,
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3)

	parsed, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, parsed.Subject)
	require.Equal(t, claims.Email, parsed.Email)
	require.Equal(t, claims.Role, parsed.Role)
	require.Equal(t, testIssuer, parsed.Issuer)
	require.Equal(t, claims.IssuedAt.Unix(), parsed.IssuedAt.Unix())
	require.Equal(t, claims.ExpiresAt.Unix(), parsed.ExpiresAt.Unix())
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	signer, verifier := newKeyPair(t)

	claims := jwtx.NewAccessClaims("user-1", "t@x.com", "Teacher", testIssuer, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	// Flip every single character of the signature segment in turn; each
	// mutation must fail verification.
	lastDot := strings.LastIndex(token, ".")
	for i := lastDot + 1; i < len(token); i++ {
		mutated := []byte(token)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if string(mutated) == token {
			continue
		}
		_, err := verifier.Verify(string(mutated))
		require.Error(t, err, "flipped signature byte at %d must not verify", i)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	signer, verifier := newKeyPair(t)

	// Issued 1000s in the past with a 5 minute artifact lifetime: expired.
	issued := time.Now().UTC().Add(-1000 * time.Second)
	claims := jwtx.NewAccessClaims("user-1", "t@x.com", "Teacher", testIssuer, issued)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	signer, verifier := newKeyPair(t)

	claims := jwtx.NewAccessClaims("user-1", "t@x.com", "Teacher", "someone-else", time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestVerifyRejectsForeignAlgorithm(t *testing.T) {
	_, verifier := newKeyPair(t)

	// Well-formed token, wrong algorithm. Must be rejected before any
	// signature comparison happens.
	claims := jwtx.NewAccessClaims("user-1", "t@x.com", "Teacher", testIssuer, time.Now().UTC())
	hsToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := hsToken.SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, verifier := newKeyPair(t)

	for _, tok := range []string{"", "abc", "a.b", "a.b.c.d", "🙂.🙂.🙂"} {
		_, err := verifier.Verify(tok)
		require.Error(t, err, "token %q must not verify", tok)
	}
}

func TestGenerateKeyRoundTrip(t *testing.T) {
	encoded, err := jwtx.GenerateKey()
	require.NoError(t, err)

	key, err := jwtx.DecodePrivateKey(encoded)
	require.NoError(t, err)
	require.Equal(t, "P-256", key.Curve.Params().Name)

	// Two generations must not produce the same key material.
	other, err := jwtx.GenerateKey()
	require.NoError(t, err)
	require.NotEqual(t, encoded, other)
}

func TestDecodePrivateKeyRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"not base64", "%%%"},
		{"not json", "bm90LWpzb24="},
		{"wrong kty", "eyJrdHkiOiJSU0EiLCJjcnYiOiJQLTI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jwtx.DecodePrivateKey(tt.encoded)
			require.Error(t, err)
		})
	}
}
