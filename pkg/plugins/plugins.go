// Package plugins holds the built-in config plugins and registers their mods.
package plugins

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/plugmod/pkg/config"
	"github.com/yaklabco/plugmod/pkg/mods"
)

// ErrUnknownPlugin is returned for plugin names that are not built in.
var ErrUnknownPlugin = errors.New("unknown plugin")

// Plugin is a named group of mods.
type Plugin struct {
	Name        string
	Description string
	Mods        []mods.Entry
}

// Platforms lists the platforms the plugin touches, in first-use order.
func (p Plugin) Platforms() []string {
	var out []string
	for _, entry := range p.Mods {
		if !slices.Contains(out, string(entry.Platform)) {
			out = append(out, string(entry.Platform))
		}
	}
	return out
}

// Info describes the plugin for templates and listings.
func (p Plugin) Info() config.PluginInfo {
	return config.PluginInfo{Name: p.Name, Description: p.Description, Platforms: p.Platforms()}
}

// All returns the built-in plugins in registration order.
func All() []Plugin {
	return []Plugin{
		expoModules(),
		googleServices(),
		appName(),
		metaData(),
		permissions(),
		infoPlist(),
		mavenRepositories(),
		pods(),
	}
}

// Names returns the names of the built-in plugins.
func Names() []string {
	all := All()
	names := make([]string, 0, len(all))
	for _, p := range all {
		names = append(names, p.Name)
	}
	return names
}

// Infos returns the Info of every built-in plugin.
func Infos() []config.PluginInfo {
	all := All()
	infos := make([]config.PluginInfo, 0, len(all))
	for _, p := range all {
		infos = append(infos, p.Info())
	}
	return infos
}

// Enabled returns the plugins selected by project: the ones listed in
// Plugins (all when empty) minus DisabledPlugins.
func Enabled(project *config.Config) ([]Plugin, error) {
	all := All()
	if project == nil {
		return all, nil
	}

	known := Names()
	for _, name := range slices.Concat(project.Plugins, project.DisabledPlugins) {
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
		}
	}

	var enabled []Plugin
	for _, p := range all {
		if len(project.Plugins) > 0 && !slices.Contains(project.Plugins, p.Name) {
			continue
		}
		if slices.Contains(project.DisabledPlugins, p.Name) {
			continue
		}
		enabled = append(enabled, p)
	}
	return enabled, nil
}

// Register registers the mods of every plugin enabled by project.
func Register(reg *mods.Registry, project *config.Config) error {
	enabled, err := Enabled(project)
	if err != nil {
		return err
	}
	for _, p := range enabled {
		for _, entry := range p.Mods {
			if err := reg.Register(entry); err != nil {
				return fmt.Errorf("plugin %s: %w", p.Name, err)
			}
		}
	}
	return nil
}

// NewRegistry returns a registry with the base providers and the plugins
// enabled by project.
func NewRegistry(project *config.Config) (*mods.Registry, error) {
	reg := mods.NewRegistry()
	opts := mods.ProviderOptions{}
	if project != nil {
		opts.XMLIndent = project.XML.Indent
	}
	mods.RegisterBaseProviders(reg, opts)
	if err := Register(reg, project); err != nil {
		return nil, err
	}
	return reg, nil
}
