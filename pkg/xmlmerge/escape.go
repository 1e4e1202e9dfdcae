package xmlmerge

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // Compiled once.
var (
	androidEscapable = regexp.MustCompile(`[\n\r\t'"@]`)
	androidEscaped   = regexp.MustCompile(`\\(.)`)
	edgeWhitespace   = regexp.MustCompile(`(^\s|\s$)`)
)

// EscapeAndroidString escapes a value for a strings.xml <string> element.
// Values with leading or trailing whitespace are quoted so aapt keeps it.
func EscapeAndroidString(value string) string {
	value = androidEscapable.ReplaceAllStringFunc(value, func(m string) string {
		switch m {
		case "\n":
			return `\n`
		case "\r":
			return `\r`
		case "\t":
			return `\t`
		default:
			return `\` + m
		}
	})
	if edgeWhitespace.MatchString(value) {
		value = `"` + value + `"`
	}
	return value
}

// UnescapeAndroidString reverses EscapeAndroidString. \n, \r and \t become
// control characters; any other escaped character stands for itself.
func UnescapeAndroidString(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = value[1 : len(value)-1]
	}
	return androidEscaped.ReplaceAllStringFunc(value, func(m string) string {
		switch m[1] {
		case 'n':
			return "\n"
		case 'r':
			return "\r"
		case 't':
			return "\t"
		default:
			return m[1:]
		}
	})
}
