package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearValidatorEnv(t *testing.T) {
	t.Helper()
	keys := append([]string{"STORAGE_BACKEND", "STREAMERBOT_URL", "STREAMERBOT_PASSWORD", "DISCORD_TOKEN"}, RequiredEnvVars...)
	for _, key := range append(keys, PostgresEnvVars...) {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestValidateEnv_MissingVersion(t *testing.T) {
	clearValidatorEnv(t)

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION mismatch")
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required environment variables")
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestValidateEnv_MemoryBackendSkipsDatabase(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("API_KEY", "key")
	t.Setenv("STORAGE_BACKEND", StorageMemory)

	assert.NoError(t, ValidateEnv())
}

func TestValidateEnv_PostgresBackendRequiresDatabase(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("API_KEY", "key")
	t.Setenv("STORAGE_BACKEND", StoragePostgres)
	t.Setenv("DB_USER", "user")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.NotContains(t, err.Error(), "DB_USER")
}

func TestValidateEnvWithWarnings_InsecureDefaults(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("API_KEY", "generate_with_openssl_rand_hex_32")
	t.Setenv("DB_PASSWORD", "change_this_secure_password")
	t.Setenv("DISCORD_TOKEN", "token")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err, "Should not error even with warnings")
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "DB_PASSWORD")
	assert.Contains(t, warnings[1], "API_KEY")
}

func TestValidateEnvWithWarnings_ChatSources(t *testing.T) {
	t.Run("no chat source", func(t *testing.T) {
		clearValidatorEnv(t)
		t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
		t.Setenv("API_KEY", "key")

		warnings, err := ValidateEnvWithWarnings()
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "STREAMERBOT_URL")
	})

	t.Run("streamerbot without password", func(t *testing.T) {
		clearValidatorEnv(t)
		t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
		t.Setenv("API_KEY", "key")
		t.Setenv("STREAMERBOT_URL", "ws://127.0.0.1:8080/")

		warnings, err := ValidateEnvWithWarnings()
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "STREAMERBOT_PASSWORD")
	})

	t.Run("fully configured", func(t *testing.T) {
		clearValidatorEnv(t)
		t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
		t.Setenv("API_KEY", "key")
		t.Setenv("STREAMERBOT_URL", "ws://127.0.0.1:8080/")
		t.Setenv("STREAMERBOT_PASSWORD", "secret")

		warnings, err := ValidateEnvWithWarnings()
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})
}
