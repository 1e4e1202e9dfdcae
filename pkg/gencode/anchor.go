package gencode

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrAnchorNotFound is matched by every AnchorNotFoundError.
var ErrAnchorNotFound = errors.New("anchor not found")

// AnchorNotFoundError reports that the insertion point of a generated block is
// missing from the target contents, usually because the file was edited by hand.
type AnchorNotFoundError struct {
	Anchor string
	Tag    string
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("failed to match %q for generated block %q", e.Anchor, e.Tag)
}

// Is lets errors.Is match ErrAnchorNotFound.
func (e *AnchorNotFoundError) Is(target error) bool {
	return target == ErrAnchorNotFound
}

// Anchor locates the line a generated block is inserted relative to.
// Exactly one of Pattern or Literal should be set.
type Anchor struct {
	// Pattern is evaluated against each line unless Multiline is set.
	Pattern *regexp.Regexp

	// Literal matches the first line containing the string.
	Literal string

	// Multiline evaluates Pattern against the whole text; the anchor line is
	// the line holding the start of the match.
	Multiline bool
}

// Regexp returns an Anchor for a line-by-line pattern.
func Regexp(pattern string) Anchor {
	return Anchor{Pattern: regexp.MustCompile(pattern)}
}

// Literal returns an Anchor that matches the first line containing s.
func Literal(s string) Anchor {
	return Anchor{Literal: s}
}

func (a Anchor) String() string {
	if a.Pattern != nil {
		return a.Pattern.String()
	}
	return a.Literal
}

// FindLine returns the index of the first line matched by the anchor, or -1.
func (a Anchor) FindLine(lines []string) int {
	if a.Pattern != nil && a.Multiline {
		text := strings.Join(lines, "\n")
		loc := a.Pattern.FindStringIndex(text)
		if loc == nil {
			return -1
		}
		return strings.Count(text[:loc[0]], "\n")
	}

	for i, line := range lines {
		if a.matchLine(line) {
			return i
		}
	}
	return -1
}

func (a Anchor) matchLine(line string) bool {
	if a.Pattern != nil {
		return a.Pattern.MatchString(line)
	}
	return a.Literal != "" && strings.Contains(line, a.Literal)
}
