// Package sdkjwt produces the short-lived HMAC-signed tokens the meeting SDK
// consumes to authorize a client session. Its secret is independent key
// material from the platform's identity tokens; the two must never be mixed.
package sdkjwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiration bounds in seconds. A request without an override gets
// DefaultExpirationSeconds; an explicit override must sit inside
// [MinExpirationSeconds, MaxExpirationSeconds].
const (
	DefaultExpirationSeconds int64 = 7200
	MinExpirationSeconds     int64 = 1800
	MaxExpirationSeconds     int64 = 172800
)

// ErrExpirationOutOfRange reports an override outside the allowed window.
var ErrExpirationOutOfRange = errors.New("sdkjwt: expiration override out of range")

// Role values as the SDK expects them.
const (
	RoleParticipant = 0
	RoleHost        = 1
)

// Generator signs fixed-shape SDK payloads with a shared HMAC secret.
// Pure function of its inputs plus wall-clock time; no I/O.
type Generator struct {
	appKey string
	secret []byte

	now func() time.Time
}

// New builds a generator for the given SDK app key and shared secret.
func New(appKey, secret string) *Generator {
	return &Generator{
		appKey: appKey,
		secret: []byte(secret),
		now:    time.Now,
	}
}

// WithClock replaces the generator's time source. Test hook.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// SignVideo signs the video-session payload shape:
//
//	{app_key, role_type, tpc, version, iat, exp}
//
// expirationSeconds of 0 means "use the default".
func (g *Generator) SignVideo(topic string, role int, expirationSeconds int64) (string, error) {
	iat, exp, err := g.window(expirationSeconds)
	if err != nil {
		return "", err
	}

	return g.sign(jwt.MapClaims{
		"app_key":   g.appKey,
		"role_type": role,
		"tpc":       topic,
		"version":   1,
		"iat":       iat,
		"exp":       exp,
	})
}

// SignMeeting signs the meeting-join payload shape:
//
//	{appKey, sdkKey, mn, role, iat, exp, tokenExp}
//
// expirationSeconds of 0 means "use the default".
func (g *Generator) SignMeeting(meetingNumber int64, role int, expirationSeconds int64) (string, error) {
	iat, exp, err := g.window(expirationSeconds)
	if err != nil {
		return "", err
	}

	return g.sign(jwt.MapClaims{
		"appKey":   g.appKey,
		"sdkKey":   g.appKey,
		"mn":       meetingNumber,
		"role":     role,
		"iat":      iat,
		"exp":      exp,
		"tokenExp": exp,
	})
}

// window reads the clock exactly once and derives both timestamps from it.
func (g *Generator) window(expirationSeconds int64) (iat, exp int64, err error) {
	if expirationSeconds != 0 &&
		(expirationSeconds < MinExpirationSeconds || expirationSeconds > MaxExpirationSeconds) {
		return 0, 0, ErrExpirationOutOfRange
	}
	if expirationSeconds == 0 {
		expirationSeconds = DefaultExpirationSeconds
	}

	iat = g.now().UTC().Unix()
	return iat, iat + expirationSeconds, nil
}

func (g *Generator) sign(claims jwt.MapClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(g.secret)
}
