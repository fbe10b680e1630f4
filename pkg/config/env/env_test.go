package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("RANKWATCH_TEST_VAR=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("RANKWATCH_TEST_VAR") })

	require.NoError(t, LoadDotEnv("", path))
	assert.Equal(t, "from-dotenv", os.Getenv("RANKWATCH_TEST_VAR"))
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.env")

	assert.NoError(t, LoadDotEnv("", missing))
	assert.Error(t, LoadDotEnv("local", missing))
}
