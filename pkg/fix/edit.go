// Package fix provides the offset-level text editing primitives used by every
// code mod: single insertions and inclusive range replacements over immutable
// strings, plus batched edits and unified diffs for dry runs.
package fix

// TextEdit is a single replacement of the byte range [StartOffset, EndOffset).
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// EditBuilder accumulates edits computed against one version of a buffer.
// All offsets must refer to that version; apply them together with Apply.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{Edits: make([]TextEdit, 0)}
}

// ReplaceRange records a replacement of bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Insert records an insertion at offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Len returns the number of recorded edits.
func (b *EditBuilder) Len() int {
	return len(b.Edits)
}

// Apply validates the recorded edits against src and applies them in one pass.
func (b *EditBuilder) Apply(src string) (string, error) {
	prepared, err := prepareEdits(b.Edits, len(src))
	if err != nil {
		return "", err
	}
	return applyEdits(src, prepared), nil
}
