// Package commands_test provides tests for CLI command creation.
package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maki-build/maki/internal/cli/config"
)

func TestNewListCommand(t *testing.T) {
	cmd := NewListCommand()

	assert.Equal(t, "list", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("watch"), "flag watch should exist")
}

func TestNewPickCommand(t *testing.T) {
	cmd := NewPickCommand()

	assert.Equal(t, "pick", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewRunCommand(t *testing.T) {
	cmd := NewRunCommand()

	assert.Equal(t, "run TARGET", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewHistoryCommand(t *testing.T) {
	cmd := NewHistoryCommand()

	assert.Equal(t, "history", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("limit"), "flag limit should exist")
}

func TestNewCacheCommand(t *testing.T) {
	cmd := NewCacheCommand()

	assert.Equal(t, "cache", cmd.Use)

	subs := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subs[sub.Name()] = true
	}
	for _, name := range []string{"clear", "prune", "stats"} {
		assert.True(t, subs[name], "subcommand %q should exist", name)
	}
}

func TestNewInitCommand(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("force"), "flag force should exist")
}

func TestInitWritesConfig(t *testing.T) {
	dir := t.TempDir()

	cmd := NewInitCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{dir})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "maki.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "output: auto")

	// Second run without --force refuses to overwrite.
	cmd = NewInitCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{dir})
	assert.Error(t, cmd.Execute())
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")

	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "maki v1.2.3")
}

func TestResolveMakefilesExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.mk")
	require.NoError(t, os.WriteFile(path, []byte("all:\n\ttrue\n"), 0o644))

	cfg := &config.Config{File: path, ProjectRoot: dir}
	files, err := resolveMakefiles(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestResolveMakefilesMissingExplicitFile(t *testing.T) {
	cfg := &config.Config{File: "/nonexistent/Makefile", ProjectRoot: t.TempDir()}
	_, err := resolveMakefiles(cfg)
	assert.Error(t, err)
}

func TestResolveMakefilesDiscovers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Makefile"), []byte("all:\n\ttrue\n"), 0o644))

	cfg := &config.Config{ProjectRoot: dir}
	files, err := resolveMakefiles(cfg)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "Makefile"), files[0])
}

func TestResolveMakefilesNoneFound(t *testing.T) {
	cfg := &config.Config{ProjectRoot: t.TempDir()}
	_, err := resolveMakefiles(cfg)
	assert.Error(t, err)
}
