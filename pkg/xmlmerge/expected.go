// Package xmlmerge deep-merges expected element shapes into parsed XML
// documents such as AndroidManifest.xml and resource files, without touching
// content the expected shape does not mention.
package xmlmerge

import (
	"fmt"
	"slices"
)

// Kind discriminates the variants of Expected.
type Kind int

const (
	// KindElement is a named element with attributes and children.
	KindElement Kind = iota

	// KindFragment is a list of children merged into the enclosing element.
	KindFragment

	// KindComment is a comment node.
	KindComment

	// KindText is the text content of the enclosing element.
	KindText
)

// AttrValue is an attribute value in an expected shape.
type AttrValue struct {
	Value string

	// Force marks a value that always overwrites, regardless of LiteralPolicy.
	// Forced attributes are never used to match existing elements.
	Force bool
}

// Lit returns a literal attribute value.
func Lit(v any) AttrValue {
	return AttrValue{Value: fmt.Sprint(v)}
}

// NewValue returns an attribute value that always overwrites.
func NewValue(v any) AttrValue {
	return AttrValue{Value: fmt.Sprint(v), Force: true}
}

// Attrs is the attribute map of an expected element.
type Attrs map[string]AttrValue

// Expected describes what part of a document should look like.
type Expected struct {
	Kind       Kind
	Name       string
	Attributes Attrs
	Elements   []Expected
	Comment    string
	Text       string

	// Idx is the insertion position among element children when no existing
	// element matches.
	Idx *int

	// DeletionFlag removes every matching element instead of merging.
	DeletionFlag bool

	// MatchOn names the attributes that identify an existing element. When
	// empty, every literal attribute must match.
	MatchOn []string
}

// Element builds an expected element.
func Element(name string, attrs Attrs, children ...Expected) Expected {
	return Expected{Kind: KindElement, Name: name, Attributes: attrs, Elements: children}
}

// Fragment builds a list of children without an enclosing element.
func Fragment(children ...Expected) Expected {
	return Expected{Kind: KindFragment, Elements: children}
}

// Comment builds an expected comment.
func Comment(text string) Expected {
	return Expected{Kind: KindComment, Comment: text}
}

// Text builds expected text content.
func Text(text string) Expected {
	return Expected{Kind: KindText, Text: text}
}

// At returns a copy of e inserted at position idx when it is new.
func (e Expected) At(idx int) Expected {
	e.Idx = &idx
	return e
}

// Delete returns a copy of e that removes matching elements.
func (e Expected) Delete() Expected {
	e.DeletionFlag = true
	return e
}

// Match returns a copy of e identified by the given attributes only.
func (e Expected) Match(keys ...string) Expected {
	e.MatchOn = keys
	return e
}

// sortedKeys returns attribute names in a stable order so new elements
// serialize identically on every run.
func (a Attrs) sortedKeys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// matchKeys returns the attributes used to find an existing element.
func (e Expected) matchKeys() []string {
	if len(e.MatchOn) > 0 {
		return e.MatchOn
	}
	keys := make([]string, 0, len(e.Attributes))
	for _, k := range e.Attributes.sortedKeys() {
		if !e.Attributes[k].Force {
			keys = append(keys, k)
		}
	}
	return keys
}
