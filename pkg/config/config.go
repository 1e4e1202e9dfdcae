// Package config defines the plugmod.yml model: the app settings the built-in
// plugins read and the run options of the mod pipeline.
// These types are pure data structures with no dependency on the loader.
package config

// BackupsConfig controls sidecar backups of rewritten native files.
type BackupsConfig struct {
	// Enabled is a pointer so a config file can turn backups off.
	Enabled *bool  `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// IsEnabled reports whether backups should be written.
func (b BackupsConfig) IsEnabled() bool {
	return b.Enabled == nil || *b.Enabled
}

// XMLConfig tunes the structured document merger.
type XMLConfig struct {
	// LiteralPolicy is "overwrite" or "if_absent".
	LiteralPolicy LiteralPolicy `mapstructure:"literal_policy" yaml:"literal_policy"`

	// Indent is the number of spaces per nesting level in written XML.
	Indent int `mapstructure:"indent" yaml:"indent"`
}

// AndroidConfig holds the Android settings read by the built-in plugins.
type AndroidConfig struct {
	// Package is the application id, e.g. com.example.app.
	Package string `mapstructure:"package" yaml:"package,omitempty"`

	// GoogleServicesFile is a project-relative path to google-services.json.
	GoogleServicesFile string `mapstructure:"google_services_file" yaml:"google_services_file,omitempty"`

	// MetaData is added to the <application> element.
	MetaData map[string]string `mapstructure:"meta_data" yaml:"meta_data,omitempty"`

	// Permissions are declared with <uses-permission>.
	Permissions []string `mapstructure:"permissions" yaml:"permissions,omitempty"`

	// BlockedPermissions are removed from the manifest.
	BlockedPermissions []string `mapstructure:"blocked_permissions" yaml:"blocked_permissions,omitempty"`

	// MavenRepositories are added to allprojects.repositories in the
	// top-level build.gradle, e.g. "maven { url 'https://jitpack.io' }".
	MavenRepositories []string `mapstructure:"maven_repositories" yaml:"maven_repositories,omitempty"`
}

// IOSConfig holds the iOS settings read by the built-in plugins.
type IOSConfig struct {
	BundleIdentifier string `mapstructure:"bundle_identifier" yaml:"bundle_identifier,omitempty"`

	// ProjectName is the Xcode project and Podfile target name. Defaults to
	// Name without spaces.
	ProjectName string `mapstructure:"project_name" yaml:"project_name,omitempty"`

	// GoogleServicesFile is a project-relative path to GoogleService-Info.plist.
	GoogleServicesFile string `mapstructure:"google_services_file" yaml:"google_services_file,omitempty"`

	// InfoPlist values are set in the app's Info.plist.
	InfoPlist map[string]any `mapstructure:"info_plist" yaml:"info_plist,omitempty"`

	// Pods are extra Podfile lines added to the app target, e.g.
	// "pod 'Firebase/Analytics'".
	Pods []string `mapstructure:"pods" yaml:"pods,omitempty"`
}

// Config is the root configuration structure for plugmod.
type Config struct {
	// Name is the display name of the app.
	Name string `mapstructure:"name" yaml:"name"`

	// Android configures the android/ native project.
	Android AndroidConfig `mapstructure:"android" yaml:"android"`

	// IOS configures the ios/ native project.
	IOS IOSConfig `mapstructure:"ios" yaml:"ios"`

	// Platforms lists the native projects to modify.
	Platforms []string `mapstructure:"platforms" yaml:"platforms"`

	// Plugins lists the built-in plugins to run; empty runs all of them.
	Plugins []string `mapstructure:"plugins" yaml:"plugins,omitempty"`

	// DisabledPlugins are skipped even when listed in Plugins.
	DisabledPlugins []string `mapstructure:"disabled_plugins" yaml:"disabled_plugins,omitempty"`

	// Commit selects when staged files are written.
	Commit CommitMode `mapstructure:"commit" yaml:"commit"`

	// Concurrent runs platforms in parallel.
	Concurrent bool `mapstructure:"concurrent" yaml:"concurrent"`

	// XML tunes manifest and resource merging.
	XML XMLConfig `mapstructure:"xml" yaml:"xml"`

	// Backups configures backup behavior when writing native files.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// ProjectRoot is the app directory holding android/ and ios/.
	ProjectRoot string `mapstructure:"-" yaml:"-"`

	// DryRun reports diffs without writing.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// Default platform names.
const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
)

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	enabled := true
	return &Config{
		Platforms: []string{PlatformAndroid, PlatformIOS},
		Commit:    CommitPerFile,
		XML: XMLConfig{
			LiteralPolicy: LiteralOverwrite,
			Indent:        4,
		},
		Backups: BackupsConfig{
			Enabled: &enabled,
			Mode:    "sidecar",
		},
		Format: FormatText,
	}
}

// ResolvedProjectName returns IOS.ProjectName, or Name without spaces.
func (c *Config) ResolvedProjectName() string {
	if c.IOS.ProjectName != "" {
		return c.IOS.ProjectName
	}
	out := make([]rune, 0, len(c.Name))
	for _, r := range c.Name {
		if r != ' ' {
			out = append(out, r)
		}
	}
	return string(out)
}
