// Package ios holds the iOS native-project helpers: Podfile edits, Info.plist
// values and project paths.
package ios

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/plugmod/pkg/gencode"
)

// AutolinkingRequire loads the Expo autolinking helpers in the Podfile.
const AutolinkingRequire = "require_relative '../node_modules/expo/scripts/autolinking'"

// PodsTag tags the generated block of extra pods.
const PodsTag = "plugmod-pods"

//nolint:gochecknoglobals // Compiled once.
var (
	autolinkingRequired = regexp.MustCompile(`(?m)^require_relative\s+['"].*/node_modules/expo/scripts/autolinking['"]`)
	useExpoModules      = regexp.MustCompile(`(?m)^\s+use_expo_modules!\s*$`)
)

// targetPattern matches the `target '<name>' do` line of the app target.
func targetPattern(projectName string) *regexp.Regexp {
	return regexp.MustCompile(`^(\s*)target\s+['"]` + regexp.QuoteMeta(projectName) + `['"]\s+do\b`)
}

// UpdatePodfile adds the Expo autolinking require at the top and
// use_expo_modules! as the first line of the app target. Both edits are
// skipped when already present.
func UpdatePodfile(contents, projectName string) (string, error) {
	if !useExpoModules.MatchString(contents) {
		lines := strings.Split(contents, "\n")
		target := targetPattern(projectName)

		at := -1
		indent := ""
		for i, line := range lines {
			if m := target.FindStringSubmatch(line); m != nil {
				at, indent = i, m[1]
				break
			}
		}
		if at < 0 {
			return "", &gencode.AnchorNotFoundError{
				Anchor: fmt.Sprintf("target '%s' do", projectName),
				Tag:    "use_expo_modules!",
			}
		}

		contents = strings.Join(slices.Insert(lines, at+1, indent+"  use_expo_modules!"), "\n")
	}

	if !autolinkingRequired.MatchString(contents) {
		contents = AutolinkingRequire + "\n" + contents
	}

	return contents, nil
}

// AddPods merges a generated block of pod declarations right inside the app
// target. An empty list removes the block.
func AddPods(contents, projectName string, pods []string) (gencode.MergeResult, error) {
	if len(pods) == 0 {
		return gencode.RemoveContents(gencode.RemoveOptions{Src: contents, Tag: PodsTag}), nil
	}

	lines := make([]string, 0, len(pods))
	for _, pod := range pods {
		lines = append(lines, "  "+strings.TrimSpace(pod))
	}

	return gencode.MergeContents(gencode.MergeOptions{
		Src:     contents,
		NewSrc:  strings.Join(lines, "\n"),
		Tag:     PodsTag,
		Anchor:  gencode.Anchor{Pattern: targetPattern(projectName)},
		Offset:  1,
		Comment: gencode.CommentFor("podfile"),
	})
}
