// Package langdetect identifies the language of a native source file so code
// mods can pick Java or Kotlin (Objective-C or Swift) syntax.
package langdetect

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/plugmod/pkg/codemod"
)

// candidates limits the classifier to the languages a native project holds.
//
//nolint:gochecknoglobals // Read-only.
var candidates = []string{"Java", "Kotlin", "Objective-C", "Swift"}

//nolint:gochecknoglobals // Compiled once.
var (
	kotlinDecl = regexp.MustCompile(`(?m)^\s*(?:override\s+)?(?:fun|val|var)\s+\w+`)
	javaDecl   = regexp.MustCompile(`(?m)^\s*(?:public|protected|private)\s+(?:static\s+)?(?:final\s+)?[\w<>\[\]]+\s+\w+\s*\(.*\)\s*\{`)
	objcDecl   = regexp.MustCompile(`(?m)^\s*(?:#import|@implementation|@interface)\b`)
	swiftDecl  = regexp.MustCompile(`(?m)^\s*(?:import\s+\w+\s*$|(?:@objc\s+)?(?:public\s+)?func\s+\w+)`)
)

// Detect returns the language of the file at path with the given content.
func Detect(path string, content []byte) (codemod.Language, error) {
	// Strategy 1: extension, unambiguous for native sources.
	if lang, safe := enry.GetLanguageByExtension(path); safe {
		if parsed, err := codemod.ParseLanguage(lang); err == nil {
			return parsed, nil
		}
	}

	// Strategy 2: declaration patterns.
	if lang := detectByPattern(content); lang != "" {
		return lang, nil
	}

	// Strategy 3: classifier restricted to native languages.
	if len(bytes.TrimSpace(content)) > 0 {
		if lang, _ := enry.GetLanguageByClassifier(content, candidates); lang != "" {
			return codemod.ParseLanguage(lang)
		}
	}

	return "", fmt.Errorf("cannot detect language of %s", path)
}

func detectByPattern(content []byte) codemod.Language {
	switch {
	case objcDecl.Match(content):
		return codemod.LanguageObjC
	case javaDecl.Match(content):
		return codemod.LanguageJava
	case kotlinDecl.Match(content):
		return codemod.LanguageKotlin
	case swiftDecl.Match(content):
		return codemod.LanguageSwift
	}
	return ""
}
