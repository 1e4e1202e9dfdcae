package mods_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/plugmod/pkg/config"
	"github.com/yaklabco/plugmod/pkg/mods"
)

const (
	modNotes mods.ModName = "notes"
	modExtra mods.ModName = "extra"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// fileProvider serves <platform root>/<name>.txt and counts reads.
func fileProvider(name mods.ModName, reads *atomic.Int32) mods.Provider {
	provider := mods.NewTextProvider(mods.StaticPath(func(root string) string {
		return filepath.Join(root, string(name)+".txt")
	}))
	read := provider.Read
	provider.Read = func(path string, content []byte, missing bool) (any, error) {
		if reads != nil {
			reads.Add(1)
		}
		return read(path, content, missing)
	}
	return provider
}

func appendMod(line string) mods.Mod {
	return func(_ context.Context, cfg mods.ModConfig) (mods.ModConfig, error) {
		cfg.ModResults = cfg.ModResults.(string) + line + "\n"
		return cfg, nil
	}
}

func failMod(err error) mods.Mod {
	return func(_ context.Context, cfg mods.ModConfig) (mods.ModConfig, error) {
		return cfg, err
	}
}

// newTextProject creates android/notes.txt, android/extra.txt and ios/notes.txt.
func newTextProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "android", "notes.txt"), "base\n")
	writeFile(t, filepath.Join(root, "android", "extra.txt"), "extra\n")
	writeFile(t, filepath.Join(root, "ios", "notes.txt"), "ios\n")
	return root
}

func newTextRegistry() *mods.Registry {
	reg := mods.NewRegistry()
	reg.RegisterProvider(mods.Android, modNotes, fileProvider(modNotes, nil))
	reg.RegisterProvider(mods.Android, modExtra, fileProvider(modExtra, nil))
	reg.RegisterProvider(mods.IOS, modNotes, fileProvider(modNotes, nil))
	return reg
}

func options(root string, platforms ...mods.Platform) mods.CompileOptions {
	return mods.CompileOptions{
		ProjectRoot: root,
		Platforms:   platforms,
		Commit:      config.CommitPerFile,
	}
}
