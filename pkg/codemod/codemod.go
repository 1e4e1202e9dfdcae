// Package codemod provides locators and edits for Java, Kotlin, Groovy and
// Swift sources that are too loose for a real parser: bracket matching,
// import insertion and instance-expression lookup.
package codemod

import (
	"errors"
	"fmt"

	"github.com/yaklabco/plugmod/pkg/fix"
)

// ErrAmbiguousLocator is matched by every AmbiguousLocatorError.
var ErrAmbiguousLocator = errors.New("code locator did not resolve")

// AmbiguousLocatorError reports a locator that found no match or a match whose
// brackets do not balance.
type AmbiguousLocatorError struct {
	Locator string
	Reason  string
}

func (e *AmbiguousLocatorError) Error() string {
	return fmt.Sprintf("unable to locate %s: %s", e.Locator, e.Reason)
}

// Is lets errors.Is match ErrAmbiguousLocator.
func (e *AmbiguousLocatorError) Is(target error) bool { return target == ErrAmbiguousLocator }

// Language is a native source language.
type Language string

const (
	LanguageJava   Language = "java"
	LanguageKotlin Language = "kt"
	LanguageObjC   Language = "objc"
	LanguageSwift  Language = "swift"
)

// ParseLanguage maps a language name or file extension to a Language.
func ParseLanguage(s string) (Language, error) {
	switch s {
	case "java", ".java", "Java":
		return LanguageJava, nil
	case "kt", ".kt", "kotlin", "Kotlin":
		return LanguageKotlin, nil
	case "objc", ".m", ".mm", "Objective-C", "Objective-C++":
		return LanguageObjC, nil
	case "swift", ".swift", "Swift":
		return LanguageSwift, nil
	default:
		return "", fmt.Errorf("unsupported language %q", s)
	}
}

// IsJava reports whether statements need a trailing semicolon.
func (l Language) IsJava() bool { return l == LanguageJava }

// CodeBlock is a located span of source. End is inclusive, so Code equals
// contents[Start:End+1].
type CodeBlock struct {
	Start int
	End   int
	Code  string
}

// ReplaceContentsWithOffset replaces the inclusive range [start, end].
func ReplaceContentsWithOffset(contents, replacement string, start, end int) (string, error) {
	return fix.ReplaceRange(contents, replacement, start, end)
}

// InsertContentsAtOffset inserts insertion before the byte at offset.
func InsertContentsAtOffset(contents, insertion string, offset int) (string, error) {
	return fix.InsertAt(contents, insertion, offset)
}
