package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/plugmod/pkg/config"
)

func TestConfigCommand(t *testing.T) {
	t.Parallel()

	root := newProject(t)

	out, err := execute(t, "config", root)
	require.NoError(t, err)

	assert.Contains(t, out, "# project root: "+root)
	assert.Contains(t, out, "# loaded from: "+filepath.Join(root, "plugmod.yml"))

	cfg, err := config.FromYAML([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "MyApp", cfg.Name)
	assert.Equal(t, []string{"ios"}, cfg.Platforms)
	assert.Equal(t, "Scan codes", cfg.IOS.InfoPlist["NSCameraUsageDescription"])
}
