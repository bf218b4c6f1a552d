package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "techverse dev")
}

func TestSeedCommands(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LOG_MODE", "test")
	dbURL := "sqlite:" + filepath.Join(t.TempDir(), "items.db")

	assert.Contains(t, execute(t, "migrate", "--database-url", dbURL), "Database migrations completed")
	assert.Contains(t, execute(t, "seed", "--database-url", dbURL), "Seeded 3 items")
	assert.Contains(t, execute(t, "seed", "--database-url", dbURL), "Seeded 0 items")
	assert.Contains(t, execute(t, "force-seed", "--database-url", dbURL), "Seeded 3 items")
}

// chdir is a Go 1.21 stand-in for testing.T.Chdir (added in Go 1.24): it
// changes the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
