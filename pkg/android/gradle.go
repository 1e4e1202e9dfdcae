package android

import (
	"regexp"
	"strings"

	"github.com/yaklabco/plugmod/pkg/gencode"
)

const (
	// GoogleServicesClassPath is the Gradle plugin artifact for Firebase config.
	GoogleServicesClassPath = "com.google.gms:google-services"

	// GoogleServicesVersion is the plugin version added to the classpath.
	GoogleServicesVersion = "4.3.3"

	// GoogleServicesPlugin is the plugin id applied in the app module.
	GoogleServicesPlugin = "com.google.gms.google-services"
)

//nolint:gochecknoglobals // Compiled once.
var (
	classPathLine    = regexp.MustCompile(`^(\s*)classpath[\s(]`)
	dependenciesOpen = regexp.MustCompile(`dependencies\s?\{`)
)

// SetClassPath adds the google-services classpath to the project
// build.gradle. It goes before the last existing classpath entry, with its
// indentation, or first in the dependencies block. Files with neither yield
// an AnchorNotFoundError.
func SetClassPath(buildGradle string) (string, error) {
	if strings.Contains(buildGradle, GoogleServicesClassPath) {
		return buildGradle, nil
	}
	entry := "classpath '" + GoogleServicesClassPath + ":" + GoogleServicesVersion + "'"

	lines := strings.Split(buildGradle, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if m := classPathLine.FindStringSubmatch(lines[i]); m != nil {
			out := make([]string, 0, len(lines)+1)
			out = append(out, lines[:i]...)
			out = append(out, m[1]+entry)
			out = append(out, lines[i:]...)
			return strings.Join(out, "\n"), nil
		}
	}

	loc := dependenciesOpen.FindStringIndex(buildGradle)
	if loc == nil {
		return "", &gencode.AnchorNotFoundError{Anchor: dependenciesOpen.String(), Tag: GoogleServicesClassPath}
	}
	return buildGradle[:loc[0]] + "dependencies {\n        " + entry + buildGradle[loc[1]:], nil
}

// ApplyPlugin appends the google-services plugin to the app build.gradle.
func ApplyPlugin(appBuildGradle string) string {
	if strings.Contains(appBuildGradle, "'"+GoogleServicesPlugin+"'") ||
		strings.Contains(appBuildGradle, `"`+GoogleServicesPlugin+`"`) {
		return appBuildGradle
	}
	if appBuildGradle != "" && !strings.HasSuffix(appBuildGradle, "\n") {
		appBuildGradle += "\n"
	}
	return appBuildGradle + "apply plugin: '" + GoogleServicesPlugin + "'\n"
}
