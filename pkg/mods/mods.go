// Package mods runs registered config-plugin mods over the native projects.
//
// Each (platform, mod name) pair is backed by a Provider that loads one
// native file. The pipeline reads the file once, passes a fresh copy of the
// decoded value through every mod registered for it, and commits the result
// in a single write.
package mods

import (
	"context"

	"github.com/yaklabco/plugmod/pkg/codemod"
	"github.com/yaklabco/plugmod/pkg/config"
)

// Platform names a native project directory under the project root.
type Platform string

// Supported platforms.
const (
	Android Platform = config.PlatformAndroid
	IOS     Platform = config.PlatformIOS
)

// ModName identifies the native file a mod edits.
type ModName string

// Built-in mod names.
const (
	ModDangerous          ModName = "dangerous"
	ModManifest           ModName = "manifest"
	ModStrings            ModName = "strings"
	ModMainActivity       ModName = "mainActivity"
	ModMainApplication    ModName = "mainApplication"
	ModProjectBuildGradle ModName = "projectBuildGradle"
	ModAppBuildGradle     ModName = "appBuildGradle"
	ModPodfile            ModName = "podfile"
	ModInfoPlist          ModName = "infoPlist"
)

// ModRequest names the file a mod is currently invoked for.
type ModRequest struct {
	Platform Platform
	ModName  ModName
	FilePath string
}

// ModConfig is the value threaded through a mod chain.
type ModConfig struct {
	// ProjectRoot is the app directory holding android/ and ios/.
	ProjectRoot string

	// PlatformProjectRoot is ProjectRoot joined with the platform name.
	PlatformProjectRoot string

	// Language of the source file for MainActivity and MainApplication mods.
	Language codemod.Language

	// ModResults is the decoded file: a string for text files,
	// *etree.Document for XML and ios.InfoPlist for Info.plist.
	// Dangerous mods receive nil.
	ModResults any

	ModRequest ModRequest

	// Project is the app configuration. Mods must treat it as read-only.
	Project *config.Config

	// DryRun is set when nothing may be written; dangerous mods check it.
	DryRun bool
}

// Mod mutates cfg.ModResults and returns the updated config.
type Mod func(ctx context.Context, cfg ModConfig) (ModConfig, error)

// Entry is a registered mod.
type Entry struct {
	// Name identifies the mod in results and errors, e.g. "expo-modules".
	Name string

	Platform Platform
	ModName  ModName

	Mod Mod

	// Optional mods that cannot find their anchor are skipped with a warning.
	Optional bool
}

// Dangerous reports whether e runs in the dangerous phase.
func (e Entry) Dangerous() bool {
	return e.ModName == ModDangerous
}
