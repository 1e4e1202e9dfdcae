package codemod

import (
	"regexp"
	"slices"
	"strings"
)

//nolint:gochecknoglobals // Compiled once.
var (
	importLine  = regexp.MustCompile(`^\s*import\s+\S`)
	packageLine = regexp.MustCompile(`^\s*package\s+\S`)
)

// AddImports adds the missing imports after the last import line, or after
// the package line when there is none, or at the top. Existing imports keep
// their order and are never duplicated.
func AddImports(contents string, imports []string, isJava bool) string {
	var missing []string
	for _, imp := range imports {
		exists := regexp.MustCompile(`(?m)^\s*import\s+` + regexp.QuoteMeta(imp) + `\s*;?\s*$`)
		if exists.MatchString(contents) || slices.Contains(missing, imp) {
			continue
		}
		missing = append(missing, imp)
	}
	if len(missing) == 0 {
		return contents
	}

	lines := strings.Split(contents, "\n")
	at := 0
	lastImport := -1
	for i, line := range lines {
		switch {
		case importLine.MatchString(line):
			lastImport = i
		case lastImport < 0 && packageLine.MatchString(line) && at == 0:
			at = i + 1
		}
	}
	if lastImport >= 0 {
		at = lastImport + 1
	}

	terminator := ""
	if isJava {
		terminator = ";"
	}
	statements := make([]string, 0, len(missing))
	for _, imp := range missing {
		statements = append(statements, "import "+imp+terminator)
	}

	return strings.Join(slices.Insert(lines, at, statements...), "\n")
}
