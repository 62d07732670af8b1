package toolconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

func TestParse(t *testing.T) {
	settings, err := Parse([]byte(`
masterBranch: main
frontMatter:
  allowedTags: [no_native_review, stub]
links:
  ignored: []
outdated:
  autocommitMessage: mark translations as outdated
`))
	require.NoError(t, err)

	assert.Equal(t, "main", settings.MasterBranch)
	assert.Equal(t, append(append([]string(nil), model.DefaultAllowedTags...), "no_native_review"), settings.AllowedTags)
	assert.Empty(t, settings.IgnoredLinks)
	assert.Equal(t, "mark translations as outdated", settings.AutocommitMessage)
}

func TestParseEmpty(t *testing.T) {
	settings, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("masterBranch: [unclosed"))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "wikitools.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("masterBranch: trunk\n"), 0o600))

	t.Setenv(EnvConfigPath, configPath)
	settings, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "trunk", settings.MasterBranch)

	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "missing.yaml"))
	settings, err = LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}
