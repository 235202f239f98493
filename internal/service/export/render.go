package export

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"stripboard/internal/model/schedule"
	scheduleService "stripboard/internal/service/schedule"
)

// Unit is one renderable table: a titled page of the export document.
// The master schedule is a single unit; a batch breakdown export is one
// unit per location.
type Unit struct {
	Title   string
	Headers []string
	Rows    [][]string
}

var (
	masterHeaders    = []string{"Scene #", "Location", "Time", "Cast", "Description", "Vehicles", "Pages"}
	breakdownHeaders = []string{"Scene #", "Time", "Cast", "Description", "Vehicles", "Pages"}
)

// MasterUnit builds the master schedule unit across all locations.
func MasterUnit(scenes []schedule.Scene) Unit {
	rows := make([][]string, 0, len(scenes))
	for _, s := range scenes {
		rows = append(rows, []string{
			strconv.Itoa(s.SceneNo),
			s.Location,
			orDash(s.DayNight),
			orDash(strings.Join(s.Cast, ", ")),
			orDash(s.Description),
			orDash(s.Vehicles),
			formatPages(s.PageCount),
		})
	}
	return Unit{
		Title:   "Master Schedule",
		Headers: masterHeaders,
		Rows:    rows,
	}
}

// BreakdownUnit builds one per-location breakdown unit. The location
// column is omitted; the location is the page title.
func BreakdownUnit(b scheduleService.Breakdown) Unit {
	rows := make([][]string, 0, len(b.Scenes))
	for _, s := range b.Scenes {
		rows = append(rows, []string{
			strconv.Itoa(s.SceneNo),
			orDash(s.DayNight),
			orDash(strings.Join(s.Cast, ", ")),
			orDash(s.Description),
			orDash(s.Vehicles),
			formatPages(s.PageCount),
		})
	}
	return Unit{
		Title:   b.Location,
		Headers: breakdownHeaders,
		Rows:    rows,
	}
}

// RenderUnit renders a unit as a titled text table.
func RenderUnit(u Unit) string {
	var sb strings.Builder
	sb.WriteString(u.Title)
	sb.WriteString("\n\n")
	sb.WriteString(renderTable(u.Headers, u.Rows))
	sb.WriteString("\n")
	return sb.String()
}

func renderTable(headers []string, rows [][]string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		// numeric columns: scene number and page count
		if i == 0 || i == columns-1 {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatPages(pages float64) string {
	if pages == 0 {
		return "-"
	}
	return strconv.FormatFloat(pages, 'f', -1, 64)
}
