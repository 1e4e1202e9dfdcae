package cli_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModsCommand_All(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "mods", "--all", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, out, "PLATFORM")
	assert.Contains(t, out, "mainActivity")
	assert.Contains(t, out, "google-services")
	assert.Contains(t, out, "infoPlist")

	// android rows come before ios rows.
	assert.Less(t, strings.Index(out, "android"), strings.Index(out, "ios"))
}

func TestModsCommand_FiltersByConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "plugmod.yml")
	writeFile(t, path, "name: MyApp\nplatforms: [ios]\nplugins: [pods]\n")

	out, err := execute(t, "mods", "--config", path, "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, out, "podfile")
	assert.Contains(t, out, "yes")
	assert.NotContains(t, out, "android")
	assert.NotContains(t, out, "expo-modules")
}
