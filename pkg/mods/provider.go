package mods

import (
	"context"
	"fmt"

	"github.com/beevik/etree"

	"github.com/yaklabco/plugmod/pkg/android"
	"github.com/yaklabco/plugmod/pkg/codemod"
	"github.com/yaklabco/plugmod/pkg/fsutil"
	"github.com/yaklabco/plugmod/pkg/ios"
	"github.com/yaklabco/plugmod/pkg/xmlmerge"
)

// PathFunc resolves the file of a provider and, for source files, its language.
type PathFunc func(ctx context.Context, cfg ModConfig) (string, codemod.Language, error)

// Provider loads and stores the file behind one (platform, mod name) pair.
type Provider struct {
	Path PathFunc

	// Read decodes content. missing is set when the file does not exist.
	Read func(path string, content []byte, missing bool) (any, error)

	// Write encodes results. remove asks the pipeline to delete the file.
	Write func(results any) (content []byte, remove bool, err error)

	// Clone returns a copy of results that the next mod may mutate freely.
	Clone func(results any) any
}

// ProviderOptions tunes the built-in providers.
type ProviderOptions struct {
	// XMLIndent is the indentation of written XML files.
	XMLIndent int
}

// RegisterBaseProviders registers the providers for every built-in mod name.
func RegisterBaseProviders(reg *Registry, opts ProviderOptions) {
	xmlOpts := xmlmerge.WriteOptions{FormatOptions: xmlmerge.FormatOptions{Indent: opts.XMLIndent}}
	resources := xmlmerge.ResourcesFallback()

	reg.RegisterProvider(Android, ModManifest, xmlProvider(StaticPath(android.ManifestPath), nil, xmlOpts))
	reg.RegisterProvider(Android, ModStrings, xmlProvider(StaticPath(android.StringsPath), &resources, xmlOpts))
	reg.RegisterProvider(Android, ModMainActivity, NewTextProvider(sourcePath("MainActivity")))
	reg.RegisterProvider(Android, ModMainApplication, NewTextProvider(sourcePath("MainApplication")))
	reg.RegisterProvider(Android, ModProjectBuildGradle, NewTextProvider(StaticPath(android.ProjectBuildGradlePath)))
	reg.RegisterProvider(Android, ModAppBuildGradle, NewTextProvider(StaticPath(android.AppBuildGradlePath)))

	reg.RegisterProvider(IOS, ModPodfile, NewTextProvider(StaticPath(ios.PodfilePath)))
	reg.RegisterProvider(IOS, ModInfoPlist, plistProvider())
}

// StaticPath resolves a file relative to the platform project root.
func StaticPath(fn func(platformRoot string) string) PathFunc {
	return func(_ context.Context, cfg ModConfig) (string, codemod.Language, error) {
		return fn(cfg.PlatformProjectRoot), "", nil
	}
}

func sourcePath(className string) PathFunc {
	return func(ctx context.Context, cfg ModConfig) (string, codemod.Language, error) {
		src, err := android.FindSourceFile(ctx, cfg.PlatformProjectRoot, className)
		if err != nil {
			return "", "", err
		}
		return src.Path, src.Language, nil
	}
}

func requireExisting(path string, missing bool) error {
	if missing {
		return fmt.Errorf("%w: %s", fsutil.ErrNotFound, path)
	}
	return nil
}

// NewTextProvider loads an existing file as a string.
func NewTextProvider(path PathFunc) Provider {
	return Provider{
		Path: path,
		Read: func(path string, content []byte, missing bool) (any, error) {
			if err := requireExisting(path, missing); err != nil {
				return nil, err
			}
			return string(content), nil
		},
		Write: func(results any) ([]byte, bool, error) {
			text, ok := results.(string)
			if !ok {
				return nil, false, fmt.Errorf("%w: want string, got %T", ErrInvalidModResults, results)
			}
			return []byte(text), false, nil
		},
		Clone: func(results any) any { return results },
	}
}

// xmlProvider seeds missing files from fallback when it is set. Files with a
// fallback are deleted once they hold no resources.
func xmlProvider(
	path PathFunc,
	fallback *xmlmerge.Fallback,
	opts xmlmerge.WriteOptions,
) Provider {
	return Provider{
		Path: path,
		Read: func(path string, content []byte, missing bool) (any, error) {
			if !missing {
				return xmlmerge.ParseFile(path, content)
			}
			if fallback == nil {
				return nil, requireExisting(path, missing)
			}
			return xmlmerge.FromFallback(path, *fallback)
		},
		Write: func(results any) ([]byte, bool, error) {
			doc, ok := results.(*etree.Document)
			if !ok || doc == nil {
				return nil, false, fmt.Errorf("%w: want *etree.Document, got %T", ErrInvalidModResults, results)
			}
			if fallback == nil {
				text, err := xmlmerge.Format(doc, opts.FormatOptions)
				return []byte(text), false, err
			}
			text, remove, err := xmlmerge.RenderOrRemove(doc, opts)
			return []byte(text), remove, err
		},
		Clone: func(results any) any {
			if doc, ok := results.(*etree.Document); ok && doc != nil {
				return doc.Copy()
			}
			return results
		},
	}
}

// plistProvider always writes the XML plist format.
func plistProvider() Provider {
	return Provider{
		Path: func(_ context.Context, cfg ModConfig) (string, codemod.Language, error) {
			return ios.InfoPlistPath(cfg.PlatformProjectRoot, cfg.Project.ResolvedProjectName()), "", nil
		},
		Read: func(path string, content []byte, missing bool) (any, error) {
			if err := requireExisting(path, missing); err != nil {
				return nil, err
			}
			values, _, err := ios.ParseInfoPlist(content)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			return values, nil
		},
		Write: func(results any) ([]byte, bool, error) {
			values, ok := results.(ios.InfoPlist)
			if !ok {
				return nil, false, fmt.Errorf("%w: want ios.InfoPlist, got %T", ErrInvalidModResults, results)
			}
			data, err := ios.FormatInfoPlist(values, 0)
			return data, false, err
		},
		Clone: func(results any) any {
			if values, ok := results.(ios.InfoPlist); ok {
				return values.Clone()
			}
			return results
		},
	}
}
