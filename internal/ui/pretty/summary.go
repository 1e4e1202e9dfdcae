package pretty

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/plugmod/pkg/mods"
)

// stateWidth pads the state column of file lines.
const stateWidth = 9

// FormatFile renders one file outcome as a single line, with the path
// relative to root when possible.
func (s *Styles) FormatFile(file mods.FileOutcome, root string) string {
	label, style := s.fileState(file)
	line := fmt.Sprintf("  %s %s", style.Render(fmt.Sprintf("%-*s", stateWidth, label)), s.Path.Render(relPath(root, file.Path)))
	if len(file.Mods) > 0 {
		line += " " + s.Mod.Render("("+strings.Join(file.Mods, ", ")+")")
	}
	if file.BackupCreated {
		line += " " + s.Dim.Render("[backup]")
	}
	return line + "\n"
}

func (s *Styles) fileState(file mods.FileOutcome) (string, lipgloss.Style) {
	switch {
	case file.State == mods.StateReverted:
		return "reverted", s.Reverted
	case !file.Changed:
		return "unchanged", s.Unchanged
	case !file.Written():
		if file.Removed {
			return "remove", s.Pending
		}
		return "modify", s.Pending
	case file.Removed:
		return "removed", s.Removed
	default:
		return "written", s.Written
	}
}

// FormatWarnings renders pipeline warnings, one per line.
func (s *Styles) FormatWarnings(warnings []mods.Warning) string {
	var b strings.Builder
	for _, w := range warnings {
		b.WriteString(s.Warning.Render("warning") + " " + w.String() + "\n")
	}
	return b.String()
}

// FormatSummaryOneLine renders run statistics, e.g.
// "3 files written, 1 removed (+12 -2)".
func (s *Styles) FormatSummaryOneLine(stats mods.Stats, dryRun bool) string {
	if stats.FilesChanged == 0 && stats.FilesReverted == 0 {
		return s.Success.Render("Native projects up to date") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesLoaded, plural(stats.FilesLoaded, "file", "files"))) + "\n"
	}

	var parts []string
	if dryRun {
		parts = append(parts, s.Pending.Render(fmt.Sprintf("%d %s would change", stats.FilesChanged, plural(stats.FilesChanged, "file", "files"))))
	} else {
		if stats.FilesWritten > 0 {
			parts = append(parts, s.Written.Render(fmt.Sprintf("%d %s written", stats.FilesWritten, plural(stats.FilesWritten, "file", "files"))))
		}
		if stats.FilesRemoved > 0 {
			parts = append(parts, s.Removed.Render(fmt.Sprintf("%d removed", stats.FilesRemoved)))
		}
	}
	if stats.FilesReverted > 0 {
		parts = append(parts, s.Reverted.Render(fmt.Sprintf("%d reverted", stats.FilesReverted)))
	}

	return strings.Join(parts, ", ") +
		s.Dim.Render(fmt.Sprintf(" (+%d -%d)", stats.Additions, stats.Deletions)) + "\n"
}

// FormatResult renders every file line, the warnings and the summary.
func (s *Styles) FormatResult(result *mods.Result, root string, dryRun bool) string {
	var b strings.Builder
	for _, file := range result.Files {
		b.WriteString(s.FormatFile(file, root))
	}
	b.WriteString(s.FormatWarnings(result.Warnings))
	b.WriteString(s.FormatSummaryOneLine(result.Stats(), dryRun))
	return b.String()
}

// FormatDiffs renders the diff of every changed file.
func (s *Styles) FormatDiffs(result *mods.Result) string {
	var b strings.Builder
	for _, file := range result.Files {
		b.WriteString(s.FormatDiff(file.Diff))
	}
	return b.String()
}

func relPath(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
