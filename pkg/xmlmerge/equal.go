package xmlmerge

import (
	"strings"

	"github.com/beevik/etree"
)

// EqualOptions tunes ElementsEqual.
type EqualOptions struct {
	DisregardComments bool
}

// ElementsEqual reports whether a and b have the same tag, the same attribute
// set and the same ordered children. Whitespace-only text never counts.
func ElementsEqual(a, b *etree.Element, opts EqualOptions) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.FullTag() != b.FullTag() || !attributesEqual(a, b) {
		return false
	}

	left := significantChildren(a, opts)
	right := significantChildren(b, opts)
	if len(left) != len(right) {
		return false
	}

	for i := range left {
		if !tokensEqual(left[i], right[i], opts) {
			return false
		}
	}
	return true
}

func attributesEqual(a, b *etree.Element) bool {
	if len(a.Attr) != len(b.Attr) {
		return false
	}
	for _, attr := range a.Attr {
		other := b.SelectAttr(attr.FullKey())
		if other == nil || other.Value != attr.Value {
			return false
		}
	}
	return true
}

func tokensEqual(a, b etree.Token, opts EqualOptions) bool {
	switch left := a.(type) {
	case *etree.Element:
		right, ok := b.(*etree.Element)
		return ok && ElementsEqual(left, right, opts)
	case *etree.Comment:
		right, ok := b.(*etree.Comment)
		return ok && left.Data == right.Data
	case *etree.CharData:
		right, ok := b.(*etree.CharData)
		return ok && strings.TrimSpace(left.Data) == strings.TrimSpace(right.Data)
	default:
		return false
	}
}

// significantChildren drops whitespace, processing instructions, directives
// and, optionally, comments.
func significantChildren(el *etree.Element, opts EqualOptions) []etree.Token {
	var out []etree.Token
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Element:
			out = append(out, t)
		case *etree.Comment:
			if !opts.DisregardComments {
				out = append(out, t)
			}
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

// IsEmpty reports whether el has no significant children.
func IsEmpty(el *etree.Element, opts EqualOptions) bool {
	return el == nil || len(significantChildren(el, opts)) == 0
}
