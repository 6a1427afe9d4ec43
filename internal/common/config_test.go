package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, 8085, config.Server.Port)
	assert.Equal(t, "gemini", config.LLM.DefaultProvider)
	assert.Equal(t, 3000, config.Assistant.MaxPromptChars)
	assert.Equal(t, "sentence", config.Assistant.SnippetStrategy)
	assert.Equal(t, 2*time.Hour, config.Sessions.IdleTTL)
	require.NoError(t, config.Validate())
}

func TestLoadFromFilesOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scholarly.toml")
	content := `
[server]
port = 9000

[assistant]
snippet_strategy = "window"
snippet_window = 100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, config.Server.Port)
	assert.Equal(t, "window", config.Assistant.SnippetStrategy)
	assert.Equal(t, 100, config.Assistant.SnippetWindow)
	// Untouched sections keep defaults
	assert.Equal(t, "gemini", config.LLM.DefaultProvider)
}

func TestLoadFromFilesLaterFileWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.toml")
	second := filepath.Join(dir, "second.toml")
	require.NoError(t, os.WriteFile(first, []byte("[server]\nport = 9000\n"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("[server]\nport = 9100\n"), 0644))

	config, err := LoadFromFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, 9100, config.Server.Port)
}

func TestLoadFromFilesMissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/scholarly.toml")
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SCHOLARLY_SERVER_PORT", "9200")
	t.Setenv("GEMINI_API_KEY", "test-gemini-key")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 9200, config.Server.Port)
	assert.Equal(t, "test-gemini-key", config.Gemini.APIKey)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, 9300, "0.0.0.0")
	assert.Equal(t, 9300, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)

	// Zero values leave config untouched
	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 9300, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
}

func TestValidateRejectsBadValues(t *testing.T) {
	config := NewDefaultConfig()
	config.Assistant.SnippetStrategy = "paragraph"
	assert.Error(t, config.Validate())

	config = NewDefaultConfig()
	config.Assistant.MaxPromptChars = 0
	assert.Error(t, config.Validate())

	config = NewDefaultConfig()
	config.Sessions.IdleTTL = 0
	assert.Error(t, config.Validate())
}
