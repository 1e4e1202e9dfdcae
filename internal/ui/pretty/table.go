package pretty

import (
	"bytes"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/yaklabco/plugmod/pkg/mods"
)

// ModRow is one line of the mods table.
type ModRow struct {
	Plugin   string
	Platform string
	ModName  string
	Optional bool
}

// ModRows converts registry entries into table rows.
func ModRows(entries []mods.Entry) []ModRow {
	rows := make([]ModRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ModRow{
			Plugin:   e.Name,
			Platform: string(e.Platform),
			ModName:  string(e.ModName),
			Optional: e.Optional,
		})
	}
	return rows
}

// FormatModsTable renders rows as a borderless table.
func (s *Styles) FormatModsTable(rows []ModRow) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Platform", "Mod", "Plugin", "Optional"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetHeaderLine(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, row := range rows {
		optional := ""
		if row.Optional {
			optional = "yes"
		}
		table.Append([]string{row.Platform, row.ModName, row.Plugin, optional})
	}
	table.Render()

	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	return b.String()
}
