package mods_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/plugmod/pkg/mods"
)

func TestRegistry_RejectsUnknownMod(t *testing.T) {
	t.Parallel()

	reg := mods.NewRegistry()
	mods.RegisterBaseProviders(reg, mods.ProviderOptions{})

	err := reg.Register(mods.Entry{
		Name:     "gradle-properties",
		Platform: mods.Android,
		ModName:  "gradleProperties",
		Mod:      appendMod("x"),
	})
	require.ErrorIs(t, err, mods.ErrUnknownMod)
	assert.Contains(t, err.Error(), "android.gradleProperties")

	err = reg.Register(mods.Entry{Name: "podfile", Platform: mods.Android, ModName: mods.ModPodfile, Mod: appendMod("x")})
	require.ErrorIs(t, err, mods.ErrUnknownMod)

	require.NoError(t, reg.Register(mods.Entry{Name: "podfile", Platform: mods.IOS, ModName: mods.ModPodfile, Mod: appendMod("x")}))
}

func TestRegistry_DangerousNeedsNoProvider(t *testing.T) {
	t.Parallel()

	reg := mods.NewRegistry()
	noop := func(_ context.Context, cfg mods.ModConfig) (mods.ModConfig, error) { return cfg, nil }

	require.NoError(t, reg.Register(mods.Entry{Name: "copy", Platform: mods.IOS, ModName: mods.ModDangerous, Mod: noop}))
	assert.Len(t, reg.Dangerous(mods.IOS), 1)
	assert.Empty(t, reg.Dangerous(mods.Android))
}

func TestRegistry_NilMod(t *testing.T) {
	t.Parallel()

	reg := newTextRegistry()
	err := reg.Register(mods.Entry{Name: "empty", Platform: mods.Android, ModName: modNotes})
	require.Error(t, err)
	assert.NotErrorIs(t, err, mods.ErrUnknownMod)
}

func TestRegistry_Order(t *testing.T) {
	t.Parallel()

	reg := newTextRegistry()
	require.NoError(t, reg.Register(mods.Entry{Name: "b", Platform: mods.Android, ModName: modExtra, Mod: appendMod("b")}))
	require.NoError(t, reg.Register(mods.Entry{Name: "a", Platform: mods.Android, ModName: modNotes, Mod: appendMod("a")}))
	require.NoError(t, reg.Register(mods.Entry{Name: "c", Platform: mods.Android, ModName: modNotes, Mod: appendMod("c")}))
	require.NoError(t, reg.Register(mods.Entry{Name: "i", Platform: mods.IOS, ModName: modNotes, Mod: appendMod("i")}))
	require.NoError(t, reg.Register(mods.Entry{Name: "d", Platform: mods.Android, ModName: mods.ModDangerous, Mod: appendMod("d")}))

	assert.Equal(t, []mods.ModName{modNotes, modExtra}, reg.ModNames(mods.Android))
	assert.Equal(t, []mods.ModName{modNotes}, reg.ModNames(mods.IOS))

	var names []string
	for _, entry := range reg.Entries() {
		names = append(names, entry.Name)
	}
	assert.Equal(t, []string{"d", "a", "c", "b", "i"}, names)

	chain := reg.Mods(mods.Android, modNotes)
	require.Len(t, chain, 2)
	assert.Equal(t, "a", chain[0].Name)
	assert.Equal(t, "c", chain[1].Name)
}
