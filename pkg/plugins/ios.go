package plugins

import (
	"context"
	"maps"

	"github.com/yaklabco/plugmod/pkg/ios"
	"github.com/yaklabco/plugmod/pkg/mods"
)

// DisplayNameKey is the Info.plist key set from the app name.
const DisplayNameKey = "CFBundleDisplayName"

func infoPlist() Plugin {
	return Plugin{
		Name:        "info-plist",
		Description: "Set CFBundleDisplayName and ios.info_plist values in Info.plist",
		Mods: []mods.Entry{{
			Name:     "info-plist",
			Platform: mods.IOS,
			ModName:  mods.ModInfoPlist,
			Mod: func(_ context.Context, cfg mods.ModConfig) (mods.ModConfig, error) {
				current, err := plistResults(cfg)
				if err != nil {
					return cfg, err
				}

				values := ios.InfoPlist{}
				if cfg.Project.Name != "" {
					values[DisplayNameKey] = cfg.Project.Name
				}
				maps.Copy(values, cfg.Project.IOS.InfoPlist)
				if len(values) == 0 {
					return cfg, nil
				}

				cfg.ModResults = ios.SetInfoPlistValues(current, values)
				return cfg, nil
			},
		}},
	}
}

func pods() Plugin {
	return Plugin{
		Name:        "pods",
		Description: "Add ios.pods to the app target of the Podfile",
		Mods: []mods.Entry{{
			Name:     "pods",
			Platform: mods.IOS,
			ModName:  mods.ModPodfile,
			Optional: true,
			Mod: textMod(func(src string, cfg mods.ModConfig) (string, error) {
				res, err := ios.AddPods(src, cfg.Project.ResolvedProjectName(), cfg.Project.IOS.Pods)
				return res.Contents, err
			}),
		}},
	}
}
