package xmlmerge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/yaklabco/plugmod/pkg/fsutil"
)

// ErrParse is matched by every ParseError.
var ErrParse = errors.New("malformed xml")

// ParseError reports XML that could not be parsed. Nothing is merged into a
// document that failed to parse.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse xml: %v", e.Err)
	}
	return fmt.Sprintf("parse xml %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// DefaultIndent is the indentation Android tooling uses for resource files.
const DefaultIndent = 4

// resourcesTag is the root of Android value resource files.
const resourcesTag = "resources"

// Fallback seeds a document when the file does not exist yet.
// Element takes precedence over XML.
type Fallback struct {
	XML     string
	Element *etree.Element
}

// ResourcesFallback seeds an empty Android resources file.
func ResourcesFallback() Fallback {
	return Fallback{XML: `<?xml version="1.0" encoding="utf-8"?><resources></resources>`}
}

// Parse parses contents into a document with a root element.
func Parse(contents string) (*etree.Document, error) {
	return parse("", contents)
}

// ParseFile parses content already read from path; errors carry path.
func ParseFile(path string, content []byte) (*etree.Document, error) {
	return parse(path, string(content))
}

func parse(path, contents string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(contents); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if doc.Root() == nil {
		return nil, &ParseError{Path: path, Err: errors.New("no root element")}
	}
	return doc, nil
}

// ReadFile parses path, or builds the document from fallback when the file is
// missing. Malformed XML fails immediately.
func ReadFile(ctx context.Context, path string, fallback Fallback) (*etree.Document, error) {
	content, snap, err := fsutil.ReadFileOrMissing(ctx, path)
	if err != nil {
		return nil, err
	}
	if !snap.Missing {
		return parse(path, string(content))
	}
	return FromFallback(path, fallback)
}

// FromFallback builds the seed document for a missing file.
func FromFallback(path string, fallback Fallback) (*etree.Document, error) {
	if fallback.Element != nil {
		doc := etree.NewDocument()
		doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
		doc.SetRoot(fallback.Element.Copy())
		return doc, nil
	}
	if fallback.XML == "" {
		return nil, fmt.Errorf("%w: %s", fsutil.ErrNotFound, path)
	}
	return parse(path, fallback.XML)
}

// FormatOptions tunes Format.
type FormatOptions struct {
	// Indent is the number of spaces per level; zero means DefaultIndent.
	Indent int
}

// Format serializes doc with consistent indentation and a trailing newline.
// doc itself is not re-indented.
func Format(doc *etree.Document, opts FormatOptions) (string, error) {
	indent := opts.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}

	out := doc.Copy()
	out.Indent(indent)

	text, err := out.WriteToString()
	if err != nil {
		return "", fmt.Errorf("serialize xml: %w", err)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text, nil
}

// WriteOptions tunes WriteFileOrRemoveUponNoResources.
type WriteOptions struct {
	FormatOptions
	DisregardComments bool
}

// IsEmptyResources reports whether doc is a <resources> document without
// meaningful children.
func IsEmptyResources(doc *etree.Document, opts WriteOptions) bool {
	root := doc.Root()
	return root != nil && root.Tag == resourcesTag &&
		IsEmpty(root, EqualOptions{DisregardComments: opts.DisregardComments})
}

// RenderOrRemove returns the serialized document, or remove=true when the
// file should be deleted because it holds no resources.
func RenderOrRemove(doc *etree.Document, opts WriteOptions) (string, bool, error) {
	if IsEmptyResources(doc, opts) {
		return "", true, nil
	}
	text, err := Format(doc, opts.FormatOptions)
	return text, false, err
}

// WriteOutcome describes what WriteFileOrRemoveUponNoResources did.
type WriteOutcome int

const (
	OutcomeUnchanged WriteOutcome = iota
	OutcomeWritten
	OutcomeRemoved
)

// WriteFileOrRemoveUponNoResources writes doc to path, or deletes path when
// doc is an empty <resources> document so no empty generated file is left in
// the native project.
func WriteFileOrRemoveUponNoResources(ctx context.Context, path string, doc *etree.Document, opts WriteOptions) (WriteOutcome, error) {
	text, remove, err := RenderOrRemove(doc, opts)
	if err != nil {
		return OutcomeUnchanged, err
	}

	if remove {
		removed, err := fsutil.Remove(ctx, path)
		if err != nil || !removed {
			return OutcomeUnchanged, err
		}
		return OutcomeRemoved, nil
	}

	wrote, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte(text), 0)
	if err != nil || !wrote {
		return OutcomeUnchanged, err
	}
	return OutcomeWritten, nil
}
