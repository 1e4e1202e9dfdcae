package plugins

import (
	"github.com/yaklabco/plugmod/pkg/android"
	"github.com/yaklabco/plugmod/pkg/ios"
	"github.com/yaklabco/plugmod/pkg/mods"
)

const expoModulesName = "expo-modules"

func expoModules() Plugin {
	return Plugin{
		Name:        expoModulesName,
		Description: "Wire Expo modules into MainActivity, MainApplication and the Podfile",
		Mods: []mods.Entry{
			{
				Name:     expoModulesName,
				Platform: mods.Android,
				ModName:  mods.ModMainActivity,
				Mod: textMod(func(src string, cfg mods.ModConfig) (string, error) {
					return android.SetModulesMainActivity(src, cfg.Language)
				}),
			},
			{
				Name:     expoModulesName,
				Platform: mods.Android,
				ModName:  mods.ModMainApplication,
				Mod: textMod(func(src string, cfg mods.ModConfig) (string, error) {
					return android.SetModulesMainApplication(src, cfg.Language)
				}),
			},
			{
				Name:     expoModulesName,
				Platform: mods.IOS,
				ModName:  mods.ModPodfile,
				Mod: textMod(func(src string, cfg mods.ModConfig) (string, error) {
					return ios.UpdatePodfile(src, cfg.Project.ResolvedProjectName())
				}),
			},
		},
	}
}
