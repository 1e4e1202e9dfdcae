package fix

// InsertAt returns buffer with insertion placed at offset.
// Valid offsets are 0 through len(buffer).
func InsertAt(buffer, insertion string, offset int) (string, error) {
	if offset < 0 || offset > len(buffer) {
		return "", &InvalidRangeError{Start: offset, End: offset, Length: len(buffer), Reason: "insertion offset out of bounds"}
	}
	return buffer[:offset] + insertion + buffer[offset:], nil
}

// ReplaceRange returns buffer with the inclusive range [start, end] replaced
// by replacement. Both offsets must index an existing byte.
func ReplaceRange(buffer, replacement string, start, end int) (string, error) {
	n := len(buffer)
	if start < 0 || end < 0 || start >= n || end >= n || start > end {
		return "", &InvalidRangeError{Start: start, End: end, Length: n, Reason: "replacement range out of bounds"}
	}
	return buffer[:start] + replacement + buffer[end+1:], nil
}
