package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config file lookup at an empty file so ambient
// user configuration cannot leak into assertions
func isolate(t *testing.T) {
	t.Helper()
	empty := filepath.Join(t.TempDir(), "sectorlink.toml")
	require.NoError(t, os.WriteFile(empty, []byte(""), 0644))
	t.Setenv(config.EnvConfigFile, empty)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{".isc", ".clr"}, cfg.Link.FileExtensions)
	assert.Equal(t, []string{"COnew", "COnew_2"}, cfg.Link.JunctionNames)
	assert.Equal(t, "Include/COnew", cfg.Link.ConewPath)
	assert.True(t, cfg.Link.CreateParents)

	assert.Equal(t, []string{"SectorFiles", "Sectorfile", "SectorFile", "SectorFile-MAIN"},
		cfg.Discovery.SectorfileNames)
	assert.Equal(t, "SectorFile-MAIN", cfg.Discovery.RepoMainDir)
	assert.True(t, cfg.Discovery.AcceptNamedEmpty)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sectorlink.toml")
	content := `
[link]
junction_names = ["COnew"]
create_parents = false

[discovery]
repo_main_dir = "Main"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv(config.EnvConfigFile, path)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"COnew"}, cfg.Link.JunctionNames)
	assert.False(t, cfg.Link.CreateParents)
	assert.Equal(t, "Main", cfg.Discovery.RepoMainDir)

	// Untouched keys keep their defaults
	assert.Equal(t, []string{".isc", ".clr"}, cfg.Link.FileExtensions)
}

func TestLoadBadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sectorlink.toml")
	require.NoError(t, os.WriteFile(path, []byte("link = {{{"), 0644))
	t.Setenv(config.EnvConfigFile, path)

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("SECTORLINK_LINK_CONEW_PATH", "Include/Custom")
	t.Setenv("SECTORLINK_DISCOVERY_ACCEPT_NAMED_EMPTY", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Include/Custom", cfg.Link.ConewPath)
	assert.False(t, cfg.Discovery.AcceptNamedEmpty)
}

func TestLoadWithOverrides(t *testing.T) {
	isolate(t)

	cfg, err := config.LoadWith(map[string]interface{}{
		"link.junction_names":          []string{"COnew", "COnew_2", "COnew_3"},
		"discovery.accept_named_empty": false,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"COnew", "COnew_2", "COnew_3"}, cfg.Link.JunctionNames)
	assert.False(t, cfg.Discovery.AcceptNamedEmpty)
}
