// Package pretty renders pipeline results for the terminal with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles holds the renderers used by the formatters.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style

	Path     lipgloss.Style
	Platform lipgloss.Style
	Mod      lipgloss.Style

	// File states.
	Written   lipgloss.Style
	Removed   lipgloss.Style
	Pending   lipgloss.Style
	Unchanged lipgloss.Style
	Reverted  lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			Error: plain, Warning: plain,
			Path: plain, Platform: plain, Mod: plain,
			Written: plain, Removed: plain, Pending: plain, Unchanged: plain, Reverted: plain,
			DiffHeader: plain, DiffHunk: plain, DiffAdd: plain, DiffRemove: plain, DiffContext: plain,
			SummaryTitle: plain, Success: plain, Failure: plain,
			Dim: plain, Bold: plain,
		}
	}

	color := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return &Styles{
		Error:   color("9").Bold(true),
		Warning: color("11").Bold(true),

		Path:     lipgloss.NewStyle().Bold(true),
		Platform: color("12"),
		Mod:      color("8"),

		Written:   color("10"),
		Removed:   color("13"),
		Pending:   color("11"),
		Unchanged: color("8"),
		Reverted:  color("9"),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    color("14"),
		DiffAdd:     color("10"),
		DiffRemove:  color("9"),
		DiffContext: color("8"),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		Success:      color("10").Bold(true),
		Failure:      color("9").Bold(true),

		Dim:  color("8"),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// IsColorEnabled resolves a color mode for writer. In auto mode color needs
// a terminal and an unset NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
