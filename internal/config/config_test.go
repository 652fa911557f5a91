package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for jsdeps configuration:
// - Default() fills ignore_file, output and depth
// - LoadJSDeps reads values from a YAML file and applies defaults
// - LoadJSDeps rejects a missing config file
// - Environment variables override file values
// - Validate rejects missing repo, empty files, missing start files
// - MaxDepth maps integers through and "all"/junk to unlimited

func writeConfig(t *testing.T, repo string, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "repo: " + repo + "\nfiles:\n  - src/App.jsx\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func makeRepo(t *testing.T) string {
	t.Helper()
	repo := t.TempDir()
	appPath := filepath.Join(repo, "src", "App.jsx")
	require.NoError(t, os.MkdirAll(filepath.Dir(appPath), 0755))
	require.NoError(t, os.WriteFile(appPath, []byte("export default null;\n"), 0644))
	return repo
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ".repoignore", cfg.IgnoreFile)
	assert.Equal(t, "js_flat_output.txt", cfg.Output)
	assert.Equal(t, DepthAll, cfg.Depth)
}

func TestLoadJSDeps_AppliesDefaults(t *testing.T) {
	repo := makeRepo(t)
	path := writeConfig(t, repo, "")

	cfg, err := LoadJSDeps(path)
	require.NoError(t, err)
	assert.Equal(t, repo, cfg.Repo)
	assert.Equal(t, []string{"src/App.jsx"}, cfg.Files)
	assert.Equal(t, ".repoignore", cfg.IgnoreFile)
	assert.Equal(t, "js_flat_output.txt", cfg.Output)
	assert.Equal(t, -1, cfg.MaxDepth())
	assert.False(t, cfg.TokenCount)
}

func TestLoadJSDeps_ReadsValues(t *testing.T) {
	repo := makeRepo(t)
	path := writeConfig(t, repo, "depth: 3\ntoken_count: true\ninclude_images: true\noutput: out.txt\n")

	cfg, err := LoadJSDeps(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxDepth())
	assert.True(t, cfg.TokenCount)
	assert.True(t, cfg.IncludeImages)
	assert.Equal(t, "out.txt", cfg.Output)
}

func TestLoadJSDeps_MissingFileFails(t *testing.T) {
	_, err := LoadJSDeps(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadJSDeps_EnvOverridesFile(t *testing.T) {
	repo := makeRepo(t)
	path := writeConfig(t, repo, "output: from_file.txt\n")

	t.Setenv("FLATSRC_OUTPUT", "from_env.txt")

	cfg, err := LoadJSDeps(path)
	require.NoError(t, err)
	assert.Equal(t, "from_env.txt", cfg.Output)
}

func TestValidate_Errors(t *testing.T) {
	err := Validate(&JSDeps{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "repo is required")
	assert.ErrorContains(t, err, "files list is empty")

	repo := makeRepo(t)
	err = Validate(&JSDeps{Repo: repo, Files: []string{"src/App.jsx", "src/Gone.jsx"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingStartFile)
	assert.ErrorContains(t, err, "src/Gone.jsx")

	assert.NoError(t, Validate(&JSDeps{Repo: repo, Files: []string{"src/App.jsx"}}))
}

func TestMaxDepth(t *testing.T) {
	assert.Equal(t, 2, (&JSDeps{Depth: 2}).MaxDepth())
	assert.Equal(t, 4, (&JSDeps{Depth: float64(4)}).MaxDepth())
	assert.Equal(t, 5, (&JSDeps{Depth: "5"}).MaxDepth())
	assert.Equal(t, -1, (&JSDeps{Depth: "all"}).MaxDepth())
	assert.Equal(t, -1, (&JSDeps{Depth: "weird"}).MaxDepth())
	assert.Equal(t, -1, (&JSDeps{}).MaxDepth())
}
