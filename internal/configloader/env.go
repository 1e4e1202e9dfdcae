package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/plugmod/pkg/config"
)

// envVarPrefix is the prefix for all plugmod environment variables.
const envVarPrefix = "PLUGMOD_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"NAME":                  {field: "name", typ: envTypeString, description: "App display name"},
	"PLATFORMS":             {field: "platforms", typ: envTypeSlice, description: "Comma-separated platforms: android, ios"},
	"PLUGINS":               {field: "plugins", typ: envTypeSlice, description: "Comma-separated built-in plugins to run"},
	"DISABLED_PLUGINS":      {field: "disabled_plugins", typ: envTypeSlice, description: "Comma-separated built-in plugins to skip"},
	"COMMIT":                {field: "commit", typ: envTypeString, description: "Commit mode: file or platform"},
	"CONCURRENT":            {field: "concurrent", typ: envTypeBool, description: "Run platforms in parallel: true or false"},
	"DRY_RUN":               {field: "dry_run", typ: envTypeBool, description: "Report diffs without writing: true or false"},
	"FORMAT":                {field: "format", typ: envTypeString, description: "Output format: text or diff"},
	"BACKUPS_ENABLED":       {field: "backups.enabled", typ: envTypeBool, description: "Write sidecar backups: true or false"},
	"BACKUPS_MODE":          {field: "backups.mode", typ: envTypeString, description: "Backup mode: sidecar or none"},
	"NO_BACKUPS":            {field: "no_backups", typ: envTypeBool, description: "Disable backups: true or false"},
	"XML_LITERAL_POLICY":    {field: "xml.literal_policy", typ: envTypeString, description: "Literal XML attributes: overwrite or if_absent"},
	"ANDROID_PACKAGE":       {field: "android.package", typ: envTypeString, description: "Android application id"},
	"IOS_BUNDLE_IDENTIFIER": {field: "ios.bundle_identifier", typ: envTypeString, description: "iOS bundle identifier"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with PLUGMOD_ (e.g., PLUGMOD_PLATFORMS).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "name":
		cfg.Name = value
	case "commit":
		cfg.Commit = config.CommitMode(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	case "xml.literal_policy":
		cfg.XML.LiteralPolicy = config.LiteralPolicy(value)
	case "android.package":
		cfg.Android.Package = value
	case "ios.bundle_identifier":
		cfg.IOS.BundleIdentifier = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "concurrent":
		cfg.Concurrent = value
	case "dry_run":
		cfg.DryRun = value
	case "backups.enabled":
		cfg.Backups.Enabled = &value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "platforms":
		cfg.Platforms = value
	case "plugins":
		cfg.Plugins = value
	case "disabled_plugins":
		cfg.DisabledPlugins = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
