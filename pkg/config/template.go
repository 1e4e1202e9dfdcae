package config

import (
	"bytes"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Name is written as the app name.
	Name string

	// Full documents every section and lists the built-in plugins.
	// If false, generates a minimal template.
	Full bool

	// Plugins are listed in the full template.
	Plugins []PluginInfo
}

// PluginInfo describes a built-in plugin for template generation.
type PluginInfo struct {
	Name        string
	Description string
	Platforms   []string
}

// GenerateTemplate creates a plugmod.yml template.
func GenerateTemplate(opts TemplateOptions) []byte {
	name := opts.Name
	if name == "" {
		name = "MyApp"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `# plugmod configuration

# Display name of the app; also the default iOS project name.
name: %q

# Native projects to modify.
platforms:
  - android
  - ios

android:
  # package: com.example.app
  # google_services_file: ./google-services.json
  # meta_data:
  #   com.example.key: value
  # permissions:
  #   - android.permission.CAMERA
  # blocked_permissions:
  #   - android.permission.RECORD_AUDIO
  # maven_repositories:
  #   - maven { url 'https://jitpack.io' }

ios:
  # bundle_identifier: com.example.app
  # info_plist:
  #   NSCameraUsageDescription: Allow $(PRODUCT_NAME) to use the camera
  # pods:
  #   - pod 'Firebase/Analytics'
`, name)

	if !opts.Full {
		return buf.Bytes()
	}

	buf.WriteString(`
# Write each file when its mods finish ("file") or after the whole platform ("platform").
commit: file

# Run platforms in parallel.
concurrent: false

xml:
  # Literal attribute values: "overwrite" or "if_absent".
  literal_policy: overwrite
  indent: 4

backups:
  enabled: true
  mode: sidecar
`)

	if len(opts.Plugins) == 0 {
		return buf.Bytes()
	}

	buf.WriteString("\n# Built-in plugins to run (all when empty).\n# plugins:\n")
	for _, p := range opts.Plugins {
		fmt.Fprintf(&buf, "#   - %s  # %s [%s]\n", p.Name, p.Description, strings.Join(p.Platforms, ", "))
	}
	buf.WriteString("# disabled_plugins: []\n")

	return buf.Bytes()
}
