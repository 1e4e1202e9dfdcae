package pretty

import "strings"

// FormatDiff colors a unified diff line by line.
func (s *Styles) FormatDiff(diff string) string {
	if diff == "" {
		return ""
	}

	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	var b strings.Builder
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			b.WriteString(s.DiffHeader.Render(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(s.DiffHunk.Render(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(s.DiffAdd.Render(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(s.DiffRemove.Render(line))
		default:
			b.WriteString(s.DiffContext.Render(line))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
