package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"replanka/internal/config"
)

// clearEnv unsets every variable the config package reads so tests do not
// inherit a developer's real environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		"PLANKA_BASE_URL", "PLANKA_USERNAME", "PLANKA_PASSWORD",
		"BOARD_ID", "TODO_LIST_NAME", "DONE_LIST_NAME", "POLL_SECONDS", "LOG_LEVEL",
	} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLANKA_BASE_URL", "https://planka.example.com")
	t.Setenv("PLANKA_USERNAME", "admin")
	t.Setenv("PLANKA_PASSWORD", "secret")
	t.Setenv("BOARD_ID", "42")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "no-such.env"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "To Do", cfg.TodoListName)
	assert.Equal(t, "Done", cfg.DoneListName)
	assert.Equal(t, 10, cfg.PollSeconds)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLANKA_BASE_URL", "https://planka.example.com")
	t.Setenv("PLANKA_USERNAME", "admin")
	t.Setenv("PLANKA_PASSWORD", "secret")
	t.Setenv("BOARD_ID", "42")
	t.Setenv("TODO_LIST_NAME", "Backlog")
	t.Setenv("DONE_LIST_NAME", "Finished")
	t.Setenv("POLL_SECONDS", "30")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "no-such.env"))
	require.NoError(t, err)

	assert.Equal(t, "Backlog", cfg.TodoListName)
	assert.Equal(t, "Finished", cfg.DoneListName)
	assert.Equal(t, 30, cfg.PollSeconds)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "PLANKA_BASE_URL=https://kanban.internal\n" +
		"PLANKA_USERNAME=bot\n" +
		"PLANKA_PASSWORD=hunter2\n" +
		"BOARD_ID=7\n" +
		"POLL_SECONDS=5\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0600))

	cfg, err := config.Load(envFile)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://kanban.internal", cfg.BaseURL)
	assert.Equal(t, "bot", cfg.Username)
	assert.Equal(t, "7", cfg.BoardID)
	assert.Equal(t, 5, cfg.PollSeconds)
}

func TestLoad_RealEnvWinsOverFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOARD_ID", "from-env")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BOARD_ID=from-file\n"), 0600))

	cfg, err := config.Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.BoardID)
}

func TestLoad_BadPollSeconds(t *testing.T) {
	clearEnv(t)
	t.Setenv("POLL_SECONDS", "0")

	_, err := config.Load(filepath.Join(t.TempDir(), "no-such.env"))
	assert.Error(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLANKA_BASE_URL", "https://planka.example.com")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "no-such.env"))
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PLANKA_USERNAME")
	assert.Contains(t, err.Error(), "PLANKA_PASSWORD")
	assert.Contains(t, err.Error(), "BOARD_ID")
	assert.NotContains(t, err.Error(), "PLANKA_BASE_URL")
}
