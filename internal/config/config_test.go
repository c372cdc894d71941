package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "crm", cfg.Database.User)
	assert.Equal(t, "password", cfg.Database.Password)
	assert.Equal(t, "crm", cfg.Database.Name)
	assert.Equal(t, "/api/users", cfg.Server.Endpoint)
	assert.False(t, cfg.Users.ReportMissing)
	assert.True(t, cfg.IsLocal())
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("CRM_DATABASE_HOST", "db.internal")
	t.Setenv("CRM_DATABASE_PORT", "3307")
	t.Setenv("CRM_SERVER_REQUEST_TIMEOUT", "3s")
	t.Setenv("CRM_USERS_REPORT_MISSING", "true")
	t.Setenv("CRM_PRIMARY_ENV", "production")

	cfg, err := Load(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3307, cfg.Database.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	assert.True(t, cfg.Users.ReportMissing)
	assert.True(t, cfg.IsProduction())

	// untouched keys keep their defaults
	assert.Equal(t, "crm", cfg.Database.Name)
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"CRM_DATABASE_NAME=crm_local\nCRM_DATABASE_USER=local\n",
	), 0o600))

	// the process environment wins over the file
	t.Setenv("CRM_DATABASE_USER", "from_env")

	// godotenv sets what it loads; register the keys so they are restored
	t.Setenv("CRM_DATABASE_NAME", "")
	require.NoError(t, os.Unsetenv("CRM_DATABASE_NAME"))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "crm_local", cfg.Database.Name)
	assert.Equal(t, "from_env", cfg.Database.User)
}

func TestLoadOverrideFileFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.env")
	require.NoError(t, os.WriteFile(path, []byte("CRM_SERVER_PORT=9090\n"), 0o600))

	t.Setenv(OverrideFileEnv, path)
	t.Setenv("CRM_SERVER_PORT", "")
	require.NoError(t, os.Unsetenv("CRM_SERVER_PORT"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Run("logging level", func(t *testing.T) {
		t.Setenv("CRM_LOGGING_LEVEL", "verbose")
		_, err := Load(missingFile(t))
		assert.Error(t, err)
	})

	t.Run("endpoint", func(t *testing.T) {
		t.Setenv("CRM_SERVER_ENDPOINT", "api/users")
		_, err := Load(missingFile(t))
		assert.Error(t, err)
	})

	t.Run("health timeout", func(t *testing.T) {
		t.Setenv("CRM_HEALTH_TIMEOUT", "10ms")
		_, err := Load(missingFile(t))
		assert.Error(t, err)
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "database.host", envKey("CRM_DATABASE_HOST"))
	assert.Equal(t, "server.read_timeout", envKey("CRM_SERVER_READ_TIMEOUT"))
	assert.Equal(t, "newrelic.license_key", envKey("CRM_NEWRELIC_LICENSE_KEY"))
	assert.Equal(t, "", envKey("CRM_CONFIG_FILE"))
}
