package configloader

import (
	"maps"

	"github.com/yaklabco/plugmod/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Name != "" {
		result.Name = override.Name
	}
	if override.Commit != "" {
		result.Commit = override.Commit
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.ProjectRoot != "" {
		result.ProjectRoot = override.ProjectRoot
	}

	// false is the zero value, so a layer can only switch these on.
	if override.Concurrent {
		result.Concurrent = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled != nil {
		result.Backups.Enabled = override.Backups.Enabled
	}

	if override.XML.LiteralPolicy != "" {
		result.XML.LiteralPolicy = override.XML.LiteralPolicy
	}
	if override.XML.Indent != 0 {
		result.XML.Indent = override.XML.Indent
	}

	if override.Platforms != nil {
		result.Platforms = override.Platforms
	}
	if override.Plugins != nil {
		result.Plugins = override.Plugins
	}
	if override.DisabledPlugins != nil {
		result.DisabledPlugins = override.DisabledPlugins
	}

	result.Android = mergeAndroid(base.Android, override.Android)
	result.IOS = mergeIOS(base.IOS, override.IOS)

	return &result
}

func mergeAndroid(base, override config.AndroidConfig) config.AndroidConfig {
	result := base

	if override.Package != "" {
		result.Package = override.Package
	}
	if override.GoogleServicesFile != "" {
		result.GoogleServicesFile = override.GoogleServicesFile
	}
	if override.Permissions != nil {
		result.Permissions = override.Permissions
	}
	if override.BlockedPermissions != nil {
		result.BlockedPermissions = override.BlockedPermissions
	}
	if override.MavenRepositories != nil {
		result.MavenRepositories = override.MavenRepositories
	}
	result.MetaData = mergeMaps(base.MetaData, override.MetaData)

	return result
}

func mergeIOS(base, override config.IOSConfig) config.IOSConfig {
	result := base

	if override.BundleIdentifier != "" {
		result.BundleIdentifier = override.BundleIdentifier
	}
	if override.ProjectName != "" {
		result.ProjectName = override.ProjectName
	}
	if override.GoogleServicesFile != "" {
		result.GoogleServicesFile = override.GoogleServicesFile
	}
	if override.Pods != nil {
		result.Pods = override.Pods
	}
	result.InfoPlist = mergeMaps(base.InfoPlist, override.InfoPlist)

	return result
}

// mergeMaps returns a new map holding base's entries overlaid by override's.
func mergeMaps[V any](base, override map[string]V) map[string]V {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]V, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
