package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKeyConfig_MissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key_config.yaml")
	cfg, err := LoadKeyConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultKeyConfig(), cfg)
}

func TestLoadKeyConfig_ParsesValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bindings:\n  quit:\n    - q\n"), 0o644))

	cfg, err := LoadKeyConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"q"}, cfg.Bindings["quit"])
}

func TestLoadKeyConfig_MalformedFileRenamedAside(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid: yaml"), 0o644))

	cfg, err := LoadKeyConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultKeyConfig(), cfg)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(path + ".old")
	assert.NoError(t, statErr)
}

func TestLoadTheme_MissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	theme, err := LoadTheme(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme(), theme)
}

func TestLoadCommitHelpers_ParsesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commit_helpers.yaml")
	yamlBody := "helpers:\n  - name: conventional\n    command: \"echo feat: {staged_files}\"\n    hotkey: \"c\"\n    timeout_secs: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o644))

	file, err := LoadCommitHelpers(path)
	require.NoError(t, err)
	require.Len(t, file.Helpers, 1)
	assert.Equal(t, "conventional", file.Helpers[0].Name)

	helpers := file.ToHelpers()
	require.Len(t, helpers, 1)
	assert.Equal(t, 'c', helpers[0].Hotkey)
	assert.Equal(t, uint(5), helpers[0].TimeoutSecs)
}

func TestToHelpers_EmptyHotkeyStaysZeroRune(t *testing.T) {
	file := CommitHelpersFile{Helpers: []CommitHelperEntry{{Name: "n", Command: "c"}}}
	helpers := file.ToHelpers()
	require.Len(t, helpers, 1)
	assert.Equal(t, rune(0), helpers[0].Hotkey)
}
