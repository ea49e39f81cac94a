package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	for _, envVar := range RequiredEnvVars[1:] {
		t.Setenv(envVar, "test_value")
	}
	for _, envVar := range DriverEnvVars[DriverPostgres] {
		t.Setenv(envVar, "test_value")
	}
	t.Setenv("STORE_DRIVER", "")
}

func TestValidateEnv_MissingVersion(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("DISCORD_TOKEN", "")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_TOKEN")
}

func TestValidateEnv_DriverSpecific(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGODB_URI", "")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")

	t.Setenv("STORE_DRIVER", "memory")
	assert.NoError(t, ValidateEnv())
}

func TestValidateEnvWithWarnings_InsecureDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_PASSWORD", "change_this_secure_password")
	t.Setenv("API_KEY", "generate_with_openssl_rand_hex_32")
	t.Setenv("ADMIN_USER_IDS", "1")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err, "Should not error even with warnings")
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "DB_PASSWORD")
	assert.Contains(t, warnings[1], "API_KEY")
}

func TestValidateEnvWithWarnings_NoAdmins(t *testing.T) {
	setRequired(t)
	t.Setenv("ADMIN_USER_IDS", "")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "ADMIN_USER_IDS")
}
