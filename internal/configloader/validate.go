package configloader

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/plugmod/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "android.package").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown plugins).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownPlatforms lists valid platform names.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownPlatforms = []string{config.PlatformAndroid, config.PlatformIOS}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

//nolint:gochecknoglobals // Compiled once.
var (
	androidPackage   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*(\.[a-zA-Z][a-zA-Z0-9_]*)+$`)
	bundleIdentifier = regexp.MustCompile(`^[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)*$`)
)

// maxXMLIndent bounds xml.indent.
const maxXMLIndent = 16

// Validate checks a configuration for errors and warnings. Plugin names are
// checked against knownPlugins when it is non-empty.
func Validate(cfg *config.Config, knownPlugins []string) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	validateRunOptions(cfg, result)
	validateAndroid(cfg, result)
	validateIOS(cfg, result)
	validatePlugins(cfg, knownPlugins, result)

	return result
}

func validateRunOptions(cfg *config.Config, result *ValidationResult) {
	if len(cfg.Platforms) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "platforms",
			Message: "at least one platform is required",
		})
	}
	for i, platform := range cfg.Platforms {
		if !slices.Contains(knownPlatforms, platform) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("platforms[%d]", i),
				Value:   platform,
				Message: fmt.Sprintf("invalid platform %q; must be one of: android, ios", platform),
			})
		}
	}

	if cfg.Commit != "" && !cfg.Commit.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "commit",
			Value:   cfg.Commit,
			Message: fmt.Sprintf("invalid commit mode %q; must be one of: file, platform", cfg.Commit),
		})
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, diff", cfg.Format),
		})
	}

	if cfg.XML.LiteralPolicy != "" && !cfg.XML.LiteralPolicy.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "xml.literal_policy",
			Value:   cfg.XML.LiteralPolicy,
			Message: fmt.Sprintf("invalid literal policy %q; must be one of: overwrite, if_absent", cfg.XML.LiteralPolicy),
		})
	}

	if cfg.XML.Indent < 0 || cfg.XML.Indent > maxXMLIndent {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "xml.indent",
			Value:   cfg.XML.Indent,
			Message: fmt.Sprintf("indent must be between 0 and %d", maxXMLIndent),
		})
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}
}

func validateAndroid(cfg *config.Config, result *ValidationResult) {
	if pkg := cfg.Android.Package; pkg != "" && !androidPackage.MatchString(pkg) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "android.package",
			Value:   pkg,
			Message: fmt.Sprintf("invalid package %q; expected a dotted identifier like com.example.app", pkg),
		})
	}

	for name := range cfg.Android.MetaData {
		if strings.TrimSpace(name) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "android.meta_data",
				Message: "meta-data names must not be empty",
			})
		}
	}

	for i, perm := range cfg.Android.Permissions {
		if strings.TrimSpace(perm) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("android.permissions[%d]", i),
				Message: "permission names must not be empty",
			})
			continue
		}
		if slices.Contains(cfg.Android.BlockedPermissions, perm) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("android.permissions[%d]", i),
				Value:   perm,
				Message: fmt.Sprintf("permission %q is also blocked; it will be removed", perm),
			})
		}
	}
}

func validateIOS(cfg *config.Config, result *ValidationResult) {
	if id := cfg.IOS.BundleIdentifier; id != "" && !bundleIdentifier.MatchString(id) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "ios.bundle_identifier",
			Value:   id,
			Message: fmt.Sprintf("invalid bundle identifier %q", id),
		})
	}

	if slices.Contains(cfg.Platforms, config.PlatformIOS) && cfg.ResolvedProjectName() == "" {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "ios.project_name",
			Message: "no name or ios.project_name; Podfile and Info.plist mods will be skipped",
		})
	}
}

func validatePlugins(cfg *config.Config, knownPlugins []string, result *ValidationResult) {
	if len(knownPlugins) == 0 {
		return
	}

	check := func(field string, names []string) {
		for i, name := range names {
			if !slices.Contains(knownPlugins, name) {
				result.Errors = append(result.Errors, ValidationError{
					Field:   fmt.Sprintf("%s[%d]", field, i),
					Value:   name,
					Message: fmt.Sprintf("unknown plugin %q; must be one of: %s", name, strings.Join(knownPlugins, ", ")),
				})
			}
		}
	}
	check("plugins", cfg.Plugins)
	check("disabled_plugins", cfg.DisabledPlugins)
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, knownPlugins []string, filePath string) *ValidationResult {
	result := Validate(cfg, knownPlugins)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
