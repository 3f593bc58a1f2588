package sdkjwt_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/classmeet/classmeet/pkg/sdkjwt"
)

const (
	testAppKey = "sdk-app-key"
	testSecret = "sdk-shared-secret"
)

func frozen(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func decodeSegment(t *testing.T, seg string) map[string]any {
	t.Helper()
	raw, err := base64.RawURLEncoding.DecodeString(seg)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestSignVideoPayloadShape(t *testing.T) {
	at := time.Unix(1700000000, 0)
	g := sdkjwt.New(testAppKey, testSecret).WithClock(frozen(at))

	token, err := g.SignVideo("Algebra", sdkjwt.RoleHost, 0)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	header := decodeSegment(t, parts[0])
	require.Equal(t, "HS256", header["alg"])
	require.Equal(t, "JWT", header["typ"])

	payload := decodeSegment(t, parts[1])
	require.Equal(t, testAppKey, payload["app_key"])
	require.Equal(t, float64(1), payload["role_type"])
	require.Equal(t, "Algebra", payload["tpc"])
	require.Equal(t, float64(1), payload["version"])
	require.Equal(t, float64(1700000000), payload["iat"])
	require.Equal(t, float64(1700000000+7200), payload["exp"])
	require.Len(t, payload, 6, "no extra fields in the video payload")
}

func TestSignMeetingPayloadShape(t *testing.T) {
	at := time.Unix(1700000000, 0)
	g := sdkjwt.New(testAppKey, testSecret).WithClock(frozen(at))

	token, err := g.SignMeeting(9876543210, sdkjwt.RoleParticipant, 3600)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload := decodeSegment(t, parts[1])
	require.Equal(t, testAppKey, payload["appKey"])
	require.Equal(t, testAppKey, payload["sdkKey"])
	require.Equal(t, float64(9876543210), payload["mn"])
	require.Equal(t, float64(0), payload["role"])
	require.Equal(t, float64(1700000000), payload["iat"])
	require.Equal(t, float64(1700000000+3600), payload["exp"])
	require.Equal(t, payload["exp"], payload["tokenExp"])
}

func TestSignVideoIsDeterministicUnderFrozenClock(t *testing.T) {
	at := time.Unix(1700000000, 0)
	g := sdkjwt.New(testAppKey, testSecret).WithClock(frozen(at))

	a, err := g.SignVideo("Algebra", sdkjwt.RoleHost, 3600)
	require.NoError(t, err)
	b, err := g.SignVideo("Algebra", sdkjwt.RoleHost, 3600)
	require.NoError(t, err)

	// HS256 is deterministic, so the whole token matches byte for byte.
	require.Equal(t, a, b)
}

func TestSignVerifiesWithSharedSecret(t *testing.T) {
	g := sdkjwt.New(testAppKey, testSecret)

	token, err := g.SignVideo("Algebra", sdkjwt.RoleHost, 0)
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)
}

func TestExpirationOverrideBounds(t *testing.T) {
	g := sdkjwt.New(testAppKey, testSecret)

	tests := []struct {
		name    string
		seconds int64
		wantErr bool
	}{
		{"default", 0, false},
		{"minimum", 1800, false},
		{"maximum", 172800, false},
		{"below minimum", 1799, true},
		{"above maximum", 172801, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.SignVideo("Algebra", sdkjwt.RoleHost, tt.seconds)
			if tt.wantErr {
				require.ErrorIs(t, err, sdkjwt.ErrExpirationOutOfRange)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
