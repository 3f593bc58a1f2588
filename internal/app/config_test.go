package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/classmeet/classmeet/pkg/jwtx"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	key, err := jwtx.GenerateKey()
	require.NoError(t, err)

	t.Setenv("AUTH_PRIVATE_KEY", key)
	t.Setenv("AUTH_TOKEN_ISSUER", "learning-platform-backend")
	t.Setenv("TOKEN_EXPIRES_IN", "3600")
	t.Setenv("SDK_KEY", "app-key")
	t.Setenv("SDK_SECRET", "app-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "learning-platform-backend", cfg.Issuer)
	require.Equal(t, time.Hour, cfg.SessionTTL)
	require.Equal(t, "memory", cfg.StoreDriver)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
}

func TestLoadConfigMissingSecrets(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SDK_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "SDK_SECRET")
}

func TestLoadConfigBadExpiresIn(t *testing.T) {
	setRequiredEnv(t)

	for _, bad := range []string{"", "abc", "-5", "0"} {
		t.Setenv("TOKEN_EXPIRES_IN", bad)
		_, err := LoadConfig()
		require.Error(t, err, "TOKEN_EXPIRES_IN=%q", bad)
	}
}

func TestLoadConfigBadStoreDriver(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9999")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DATABASE_FILE", "/tmp/test.db")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 9999, cfg.Port)
	require.Equal(t, "sqlite", cfg.StoreDriver)
	require.Equal(t, "/tmp/test.db", cfg.DatabaseFile)
	require.Equal(t, 30*time.Second, cfg.ShutdownGracePeriod)
}

// New wires the whole application from a valid config without touching the
// network.
func TestNewApplication(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	application, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, application.db.Close())
}
