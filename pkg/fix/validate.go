package fix

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidRange is matched by every InvalidRangeError.
var ErrInvalidRange = errors.New("invalid range")

// InvalidRangeError reports offsets that fall outside the buffer they were
// applied to. It always indicates broken offset arithmetic in the caller.
type InvalidRangeError struct {
	Start  int
	End    int
	Length int
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range [%d:%d] for length %d: %s", e.Start, e.End, e.Length, e.Reason)
}

// Is lets errors.Is match ErrInvalidRange.
func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// ConflictError describes overlapping edits.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.Edit1.StartOffset, e.Edit1.EndOffset,
		e.Edit2.StartOffset, e.Edit2.EndOffset)
}

// validateEdits checks every edit range against contentLen.
func validateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		invalid := func(reason string) error {
			return &InvalidRangeError{Start: edit.StartOffset, End: edit.EndOffset, Length: contentLen, Reason: reason}
		}
		switch {
		case edit.StartOffset < 0:
			return invalid("start offset is negative")
		case edit.EndOffset < edit.StartOffset:
			return invalid("end offset is before start offset")
		case edit.EndOffset > contentLen:
			return invalid("end offset exceeds content length")
		}
	}
	return nil
}

// sortEdits orders edits by start offset, then end offset.
func sortEdits(edits []TextEdit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].StartOffset != edits[j].StartOffset {
			return edits[i].StartOffset < edits[j].StartOffset
		}
		return edits[i].EndOffset < edits[j].EndOffset
	})
}

// detectConflicts returns the first overlap in a sorted slice.
// Two insertions at the same offset also conflict since their order is ambiguous.
func detectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		prev, curr := edits[i-1], edits[i]
		if curr.StartOffset < prev.EndOffset ||
			(curr.StartOffset == prev.StartOffset && prev.StartOffset == prev.EndOffset && curr.StartOffset == curr.EndOffset) {
			return &ConflictError{Edit1: prev, Edit2: curr}
		}
	}
	return nil
}

// prepareEdits validates, sorts and conflict-checks a copy of edits.
func prepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}

	if err := validateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	result := make([]TextEdit, len(edits))
	copy(result, edits)
	sortEdits(result)

	if err := detectConflicts(result); err != nil {
		return nil, err
	}
	return result, nil
}
