package plugins

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/yaklabco/plugmod/pkg/android"
	"github.com/yaklabco/plugmod/pkg/gencode"
	"github.com/yaklabco/plugmod/pkg/mods"
	"github.com/yaklabco/plugmod/pkg/xmlmerge"
)

// AppNameString is the strings.xml resource holding the app name.
const AppNameString = "app_name"

// permissionPrefix is added to permission names without a package.
const permissionPrefix = "android.permission."

// MavenRepositoriesTag tags the generated repositories block in build.gradle.
const MavenRepositoriesTag = "plugmod-maven-repositories"

func appName() Plugin {
	return Plugin{
		Name:        "app-name",
		Description: "Set app_name in strings.xml from the app name",
		Mods: []mods.Entry{{
			Name:     "app-name",
			Platform: mods.Android,
			ModName:  mods.ModStrings,
			Mod: documentMod(func(doc *etree.Document, cfg mods.ModConfig) error {
				var err error
				if cfg.Project.Name == "" {
					_, err = android.RemoveStringItem(doc, AppNameString)
				} else {
					_, err = android.SetStringItem(doc, AppNameString, cfg.Project.Name)
				}
				return err
			}),
		}},
	}
}

func metaData() Plugin {
	return Plugin{
		Name:        "meta-data",
		Description: "Add android.meta_data items to the main application",
		Mods: []mods.Entry{{
			Name:     "meta-data",
			Platform: mods.Android,
			ModName:  mods.ModManifest,
			Mod: documentMod(func(doc *etree.Document, cfg mods.ModConfig) error {
				if len(cfg.Project.Android.MetaData) == 0 {
					return nil
				}
				if _, err := android.MainApplication(doc); err != nil {
					return err
				}
				_, err := xmlmerge.MergeDocument(doc, android.MetaDataShape(cfg.Project.Android.MetaData), mergeOptions(cfg.Project))
				return err
			}),
		}},
	}
}

func permissions() Plugin {
	return Plugin{
		Name:        "permissions",
		Description: "Declare android.permissions and remove android.blocked_permissions",
		Mods: []mods.Entry{{
			Name:     "permissions",
			Platform: mods.Android,
			ModName:  mods.ModManifest,
			Mod: documentMod(func(doc *etree.Document, cfg mods.ModConfig) error {
				add := normalizePermissions(cfg.Project.Android.Permissions)
				remove := normalizePermissions(cfg.Project.Android.BlockedPermissions)
				if len(add) == 0 && len(remove) == 0 {
					return nil
				}
				_, err := xmlmerge.MergeDocument(doc, android.PermissionsShape(add, remove), mergeOptions(cfg.Project))
				return err
			}),
		}},
	}
}

// normalizePermissions qualifies bare names such as CAMERA.
func normalizePermissions(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !strings.Contains(name, ".") {
			name = permissionPrefix + name
		}
		out = append(out, name)
	}
	return out
}

func mavenRepositories() Plugin {
	anchor := gencode.Anchor{
		Pattern:   regexp.MustCompile(`allprojects\s*\{\s*\n\s*repositories\s*\{`),
		Multiline: true,
	}

	return Plugin{
		Name:        "maven-repositories",
		Description: "Add android.maven_repositories to allprojects in build.gradle",
		Mods: []mods.Entry{{
			Name:     "maven-repositories",
			Platform: mods.Android,
			ModName:  mods.ModProjectBuildGradle,
			Optional: true,
			Mod: textMod(func(src string, cfg mods.ModConfig) (string, error) {
				repos := cfg.Project.Android.MavenRepositories
				if len(repos) == 0 {
					return gencode.RemoveContents(gencode.RemoveOptions{Src: src, Tag: MavenRepositoriesTag}).Contents, nil
				}

				lines := make([]string, 0, len(repos))
				for _, repo := range repos {
					lines = append(lines, "        "+strings.TrimSpace(repo))
				}
				res, err := gencode.MergeContents(gencode.MergeOptions{
					Src:     src,
					NewSrc:  strings.Join(lines, "\n"),
					Tag:     MavenRepositoriesTag,
					Anchor:  anchor,
					Offset:  2,
					Comment: gencode.CommentSlash,
				})
				return res.Contents, err
			}),
		}},
	}
}
