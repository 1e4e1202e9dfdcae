package codemod

import (
	"fmt"
	"regexp"
	"strings"
)

// FindNewInstanceCodeBlock locates the first instantiation of className, such
// as `new Foo(...)` in Java or `Foo(...)` and `object : Foo(...)` in Kotlin.
// An anonymous class body directly after the argument list is part of the block.
func FindNewInstanceCodeBlock(contents, className string, lang Language) (*CodeBlock, error) {
	name := regexp.QuoteMeta(className)
	pattern := `\bnew\s+` + name + `\s*\(`
	if lang == LanguageKotlin {
		pattern = `\b(?:object\s*:\s*)?` + name + `\s*\(`
	}
	re := regexp.MustCompile(pattern)
	locator := fmt.Sprintf("new instance of %s", className)

	for _, loc := range re.FindAllStringIndex(contents, -1) {
		if !isCode(contents, loc[0]) {
			continue
		}

		start := loc[0]
		end := FindMatchingBracketPosition(contents, '(', loc[1]-1)
		if end < 0 {
			return nil, &AmbiguousLocatorError{Locator: locator, Reason: "unbalanced parentheses"}
		}

		rest := contents[end+1:]
		if trimmed := strings.TrimLeft(rest, " \t\r\n"); strings.HasPrefix(trimmed, "{") {
			brace := end + 1 + len(rest) - len(trimmed)
			closing := FindMatchingBracketPosition(contents, '{', brace)
			if closing < 0 {
				return nil, &AmbiguousLocatorError{Locator: locator, Reason: "unbalanced class body"}
			}
			end = closing
		}

		return &CodeBlock{Start: start, End: end, Code: contents[start : end+1]}, nil
	}

	return nil, &AmbiguousLocatorError{Locator: locator, Reason: "no match"}
}

// AppendContentsInsideDeclarationBlock inserts insertion right before the
// closing brace of the block opened by declaration. declaration is a regular
// expression matched against a single line, e.g. `public void onCreate\(`.
func AppendContentsInsideDeclarationBlock(contents, declaration, insertion string) (string, error) {
	end, err := FindDeclarationBlockEnd(contents, declaration)
	if err != nil {
		return "", err
	}
	return InsertContentsAtOffset(contents, insertion, end)
}

// FindDeclarationBlockEnd returns the offset of the closing brace of the
// block opened by the first declaration match outside comments and strings.
func FindDeclarationBlockEnd(contents, declaration string) (int, error) {
	re, err := regexp.Compile(`\s*` + declaration + `.*?[\(\{]`)
	if err != nil {
		return -1, fmt.Errorf("compile declaration %q: %w", declaration, err)
	}

	locator := fmt.Sprintf("declaration %s", declaration)
	for _, loc := range re.FindAllStringIndex(contents, -1) {
		if !isCode(contents, loc[1]-1) {
			continue
		}
		end := FindMatchingBracketPosition(contents, '{', loc[0])
		if end < 0 {
			return -1, &AmbiguousLocatorError{Locator: locator, Reason: "unbalanced braces"}
		}
		return end, nil
	}

	return -1, &AmbiguousLocatorError{Locator: locator, Reason: "no match"}
}
