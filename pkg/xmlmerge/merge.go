package xmlmerge

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// ErrShape is matched by errors caused by an expected shape that cannot apply
// to the document, e.g. a root name mismatch.
var ErrShape = errors.New("expected shape does not fit document")

// LiteralPolicy decides how literal attribute values treat matched elements.
type LiteralPolicy int

const (
	// LiteralOverwrite sets literal values on matched elements.
	LiteralOverwrite LiteralPolicy = iota

	// LiteralIfAbsent sets literal values only when the attribute is missing.
	LiteralIfAbsent
)

// MergeOptions tunes MergeElements.
type MergeOptions struct {
	Literal LiteralPolicy
}

// MergeElements returns a deep copy of current with expected merged in.
// current is not modified. A nil current is built from expected.
func MergeElements(current *etree.Element, expected Expected, opts MergeOptions) (*etree.Element, error) {
	if current == nil {
		if expected.Kind != KindElement {
			return nil, fmt.Errorf("%w: cannot build a root from a non-element shape", ErrShape)
		}
		return build(expected), nil
	}

	switch expected.Kind {
	case KindElement:
		if expected.Name != current.FullTag() {
			return nil, fmt.Errorf("%w: expected <%s>, found <%s>", ErrShape, expected.Name, current.FullTag())
		}
	case KindFragment:
	default:
		return nil, fmt.Errorf("%w: comments and text cannot be merged at the root", ErrShape)
	}

	result := current.Copy()
	mergeInto(result, expected, opts)
	return result, nil
}

// MergeDocument merges expected into the root of doc in place and reports
// whether the document changed.
func MergeDocument(doc *etree.Document, expected Expected, opts MergeOptions) (bool, error) {
	root := doc.Root()
	merged, err := MergeElements(root, expected, opts)
	if err != nil {
		return false, err
	}
	if root != nil && ElementsEqual(root, merged, EqualOptions{}) {
		return false, nil
	}
	doc.SetRoot(merged)
	return true, nil
}

func mergeInto(el *etree.Element, expected Expected, opts MergeOptions) {
	if expected.Kind == KindElement {
		applyAttributes(el, expected.Attributes, opts.Literal)
	}

	for _, child := range expected.Elements {
		switch child.Kind {
		case KindFragment:
			mergeInto(el, child, opts)
		case KindComment:
			if !hasComment(el, child.Comment) {
				insertChild(el, etree.NewComment(child.Comment), child.Idx)
			}
		case KindText:
			el.SetText(child.Text)
		case KindElement:
			mergeChild(el, child, opts)
		}
	}
}

func mergeChild(parent *etree.Element, expected Expected, opts MergeOptions) {
	if expected.DeletionFlag {
		for _, match := range findMatches(parent, expected) {
			parent.RemoveChild(match)
		}
		return
	}

	if matches := findMatches(parent, expected); len(matches) > 0 {
		mergeInto(matches[0], expected, opts)
		return
	}
	insertChild(parent, build(expected), expected.Idx)
}

func applyAttributes(el *etree.Element, attrs Attrs, policy LiteralPolicy) {
	for _, key := range attrs.sortedKeys() {
		value := attrs[key]
		current := el.SelectAttr(key)
		switch {
		case value.Force:
		case current != nil && current.Value == value.Value:
			continue
		case current != nil && policy == LiteralIfAbsent:
			continue
		}
		el.CreateAttr(key, value.Value)
	}
}

func build(expected Expected) *etree.Element {
	el := etree.NewElement(expected.Name)
	for _, key := range expected.Attributes.sortedKeys() {
		el.CreateAttr(key, expected.Attributes[key].Value)
	}
	buildChildren(el, expected.Elements)
	return el
}

func buildChildren(el *etree.Element, children []Expected) {
	for _, child := range children {
		switch child.Kind {
		case KindElement:
			if !child.DeletionFlag {
				el.AddChild(build(child))
			}
		case KindFragment:
			buildChildren(el, child.Elements)
		case KindComment:
			el.AddChild(etree.NewComment(child.Comment))
		case KindText:
			el.SetText(child.Text)
		}
	}
}

// findMatches returns the element children of parent identified by expected.
func findMatches(parent *etree.Element, expected Expected) []*etree.Element {
	keys := expected.matchKeys()

	var matches []*etree.Element
	for _, child := range parent.ChildElements() {
		if child.FullTag() != expected.Name {
			continue
		}
		if attributesMatch(child, expected.Attributes, keys) {
			matches = append(matches, child)
		}
	}
	return matches
}

func attributesMatch(el *etree.Element, attrs Attrs, keys []string) bool {
	for _, key := range keys {
		want, ok := attrs[key]
		if !ok {
			continue
		}
		got := el.SelectAttr(key)
		if got == nil || got.Value != want.Value {
			return false
		}
	}
	return true
}

func hasComment(el *etree.Element, text string) bool {
	for _, tok := range el.Child {
		if c, ok := tok.(*etree.Comment); ok && c.Data == text {
			return true
		}
	}
	return false
}

// insertChild places tok before the idx-th element child of parent, or
// appends it when idx is nil or past the end.
func insertChild(parent *etree.Element, tok etree.Token, idx *int) {
	if idx == nil {
		parent.AddChild(tok)
		return
	}

	seen := 0
	for i, existing := range parent.Child {
		if _, ok := existing.(*etree.Element); !ok {
			continue
		}
		if seen == *idx {
			parent.InsertChildAt(i, tok)
			return
		}
		seen++
	}
	parent.AddChild(tok)
}
