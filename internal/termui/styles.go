package termui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/sonartools/sonarpdf/internal/report"
	"github.com/sonartools/sonarpdf/models"
)

var (
	green  = lipgloss.Color("#22C55E")
	red    = lipgloss.Color("#EF4444")
	orange = lipgloss.Color("#F97316")

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			BorderStyle(lipgloss.RoundedBorder())

	passStyle    = bannerStyle.Foreground(green).BorderForeground(green)
	failStyle    = bannerStyle.Foreground(red).BorderForeground(red)
	neutralStyle = bannerStyle.Foreground(orange).BorderForeground(orange)
)

// GateBanner renders the quality gate verdict as a styled terminal banner,
// mirroring the treatment the PDF gives it.
func GateBanner(status string) string {
	label, _ := report.GateVerdict(status)
	style := neutralStyle
	switch status {
	case "OK":
		style = passStyle
	case "ERROR":
		style = failStyle
	}
	return style.Render("Quality Gate: " + label)
}

// MetricsTable writes the six summary metrics as a plain two-column table,
// with the same value fallbacks as the PDF summary grid.
func MetricsTable(w io.Writer, metrics map[string]string) {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenColumns: tw.Off},
			},
		}),
	)

	table.Header([]string{"Metric", "Value"})
	for _, m := range models.SummaryMetrics {
		table.Append([]string{m.Label, report.MetricDisplay(metrics, m)})
	}
	table.Render()
}
