package codemod

import "strings"

//nolint:gochecknoglobals // Lookup table.
var closers = map[byte]byte{
	'(': ')',
	'{': '}',
	'[': ']',
	'<': '>',
}

// scanner walks source bytes that are code, stepping over string literals,
// char literals and comments.
type scanner struct {
	src string
	pos int
}

// next returns the index of the next code byte.
func (s *scanner) next() (int, bool) {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '/' && s.peek(1) == '/':
			s.skipPast("\n", 2)
		case c == '/' && s.peek(1) == '*':
			s.skipPast("*/", 2)
		case strings.HasPrefix(s.src[s.pos:], `"""`):
			s.skipPast(`"""`, 3)
		case c == '"' || c == '\'':
			s.skipQuoted(c)
		default:
			s.pos++
			return s.pos - 1, true
		}
	}
	return 0, false
}

func (s *scanner) peek(n int) byte {
	if s.pos+n < len(s.src) {
		return s.src[s.pos+n]
	}
	return 0
}

func (s *scanner) skipPast(end string, skip int) {
	i := strings.Index(s.src[s.pos+skip:], end)
	if i < 0 {
		s.pos = len(s.src)
		return
	}
	s.pos += skip + i + len(end)
}

// skipQuoted steps over a quoted literal. An unterminated literal ends at the
// end of its line.
func (s *scanner) skipQuoted(quote byte) {
	for i := s.pos + 1; i < len(s.src); i++ {
		switch s.src[i] {
		case '\\':
			i++
		case quote, '\n':
			s.pos = i + 1
			return
		}
	}
	s.pos = len(s.src)
}

// FindMatchingBracketPosition finds the first open bracket at or after from
// that is code, and returns the index of its matching closing bracket. It
// returns -1 when there is no such bracket or it never closes. Brackets inside
// strings, char literals and comments are ignored.
func FindMatchingBracketPosition(contents string, open byte, from int) int {
	closer, ok := closers[open]
	if !ok || from < 0 || from >= len(contents) {
		return -1
	}

	s := scanner{src: contents, pos: from}
	depth := 0
	for {
		i, ok := s.next()
		if !ok {
			return -1
		}
		switch contents[i] {
		case open:
			depth++
		case closer:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return i
			}
		}
	}
}

// isCode reports whether the byte at idx is outside literals and comments.
func isCode(contents string, idx int) bool {
	s := scanner{src: contents}
	for {
		i, ok := s.next()
		if !ok || i > idx {
			return false
		}
		if i == idx {
			return true
		}
	}
}
