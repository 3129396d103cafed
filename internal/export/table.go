package export

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/nickromney/certfacts/internal/inventory"
)

// DefaultWarnDays is the threshold under which days_remaining is highlighted.
const DefaultWarnDays = 30

// TableOptions controls RenderTable.
type TableOptions struct {
	Color    bool
	WarnDays int
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	okStyle     = cellStyle.Foreground(lipgloss.Color("#9ece6a"))
	warnStyle   = cellStyle.Foreground(lipgloss.Color("#e0af68"))
	badStyle    = cellStyle.Foreground(lipgloss.Color("#f7768e"))
	dimStyle    = cellStyle.Foreground(lipgloss.Color("#565f89"))
)

// Column order for table output.
const (
	colName = iota
	colValid
	colExpiration
	colDays
)

// RenderTable renders the report as a bordered table sorted by name.
func RenderTable(report inventory.Report, opt TableOptions) string {
	warn := opt.WarnDays
	if warn <= 0 {
		warn = DefaultWarnDays
	}

	records := report.Records()
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Name,
			rec.Valid.String(),
			rec.Expiration.String(),
			rec.DaysRemaining.String(),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "VALID", "EXPIRATION", "DAYS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if !opt.Color || row < 0 || row >= len(records) {
				return cellStyle
			}
			return cellColor(records[row], col, warn)
		})
	return t.String()
}

// cellColor picks the style for one data cell.
func cellColor(rec inventory.Record, col, warnDays int) lipgloss.Style {
	switch col {
	case colValid:
		v, ok := rec.Valid.Get()
		switch {
		case !ok:
			return dimStyle
		case v:
			return okStyle
		default:
			return badStyle
		}
	case colExpiration, colDays:
		n, ok := rec.DaysRemaining.Get()
		switch {
		case rec.DaysRemaining.IsUnknown():
			return warnStyle
		case !ok:
			return dimStyle
		case n < 0:
			return badStyle
		case n <= warnDays:
			return warnStyle
		default:
			return okStyle
		}
	}
	return cellStyle
}
