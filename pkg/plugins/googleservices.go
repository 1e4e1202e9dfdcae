package plugins

import (
	"context"
	"path/filepath"

	"github.com/yaklabco/plugmod/internal/logging"
	"github.com/yaklabco/plugmod/pkg/android"
	"github.com/yaklabco/plugmod/pkg/fsutil"
	"github.com/yaklabco/plugmod/pkg/ios"
	"github.com/yaklabco/plugmod/pkg/mods"
)

const googleServicesName = "google-services"

func googleServices() Plugin {
	return Plugin{
		Name:        googleServicesName,
		Description: "Copy Google services files and apply the Gradle plugin",
		Mods: []mods.Entry{
			{
				Name:     googleServicesName,
				Platform: mods.Android,
				ModName:  mods.ModDangerous,
				Mod: copyGoogleServicesFile(func(cfg mods.ModConfig) (string, string) {
					return cfg.Project.Android.GoogleServicesFile, android.GoogleServicesFilePath(cfg.PlatformProjectRoot)
				}),
			},
			{
				Name:     googleServicesName,
				Platform: mods.Android,
				ModName:  mods.ModProjectBuildGradle,
				Mod: textMod(func(src string, cfg mods.ModConfig) (string, error) {
					if cfg.Project.Android.GoogleServicesFile == "" {
						return src, nil
					}
					return android.SetClassPath(src)
				}),
			},
			{
				Name:     googleServicesName,
				Platform: mods.Android,
				ModName:  mods.ModAppBuildGradle,
				Mod: textMod(func(src string, cfg mods.ModConfig) (string, error) {
					if cfg.Project.Android.GoogleServicesFile == "" {
						return src, nil
					}
					return android.ApplyPlugin(src), nil
				}),
			},
			{
				Name:     googleServicesName,
				Platform: mods.IOS,
				ModName:  mods.ModDangerous,
				Mod: copyGoogleServicesFile(func(cfg mods.ModConfig) (string, string) {
					return cfg.Project.IOS.GoogleServicesFile,
						ios.GoogleServicesFilePath(cfg.PlatformProjectRoot, cfg.Project.ResolvedProjectName())
				}),
			},
		},
	}
}

// copyGoogleServicesFile copies the configured project-relative file into the
// native project. It does nothing when no file is configured.
func copyGoogleServicesFile(paths func(cfg mods.ModConfig) (src, dst string)) mods.Mod {
	return func(ctx context.Context, cfg mods.ModConfig) (mods.ModConfig, error) {
		src, dst := paths(cfg)
		if src == "" {
			return cfg, nil
		}
		if !filepath.IsAbs(src) {
			src = filepath.Join(cfg.ProjectRoot, src)
		}

		if cfg.DryRun {
			logging.FromContext(ctx).Info("would copy google services file", logging.FieldPath, dst)
			return cfg, nil
		}
		return cfg, fsutil.CopyFile(ctx, src, dst)
	}
}
