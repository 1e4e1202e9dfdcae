package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration after a comment header.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	// YAML round-trip deep-copies nested Info.plist values.
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return c.deepCopy()
	}

	clone, err := FromYAML(yamlBytes)
	if err != nil {
		return c.deepCopy()
	}

	c.copyCLIFields(clone)
	return clone
}

// copyCLIFields copies CLI-only fields (yaml:"-") to the target config.
func (c *Config) copyCLIFields(target *Config) {
	target.ProjectRoot = c.ProjectRoot
	target.DryRun = c.DryRun
	target.Format = c.Format
	target.NoBackups = c.NoBackups
}

// deepCopy is the fallback when the YAML round-trip fails. Nested values in
// IOS.InfoPlist are shared with c.
func (c *Config) deepCopy() *Config {
	clone := *c
	clone.Platforms = slices.Clone(c.Platforms)
	clone.Plugins = slices.Clone(c.Plugins)
	clone.DisabledPlugins = slices.Clone(c.DisabledPlugins)
	clone.Android.MetaData = maps.Clone(c.Android.MetaData)
	clone.Android.Permissions = slices.Clone(c.Android.Permissions)
	clone.Android.BlockedPermissions = slices.Clone(c.Android.BlockedPermissions)
	clone.Android.MavenRepositories = slices.Clone(c.Android.MavenRepositories)
	clone.IOS.InfoPlist = maps.Clone(c.IOS.InfoPlist)
	clone.IOS.Pods = slices.Clone(c.IOS.Pods)
	if c.Backups.Enabled != nil {
		enabled := *c.Backups.Enabled
		clone.Backups.Enabled = &enabled
	}
	return &clone
}
