package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/sonartools/sonarpdf/internal/sonarqube"
	"github.com/sonartools/sonarpdf/models"
)

const (
	pageMargin = 12.7 // half an inch, in mm
	badgeWidth = 28.0
	histColW   = 28.0
)

// Data is everything the report needs, assembled fully in memory before a
// single serialization pass.
type Data struct {
	ProjectKey string
	Metrics    map[string]string
	Gate       *sonarqube.GateStatus
	Issues     []sonarqube.Issue
}

// Filename returns the deterministic output file name for a project.
func Filename(projectKey string) string {
	return fmt.Sprintf("sonarqube_report_%s.pdf", projectKey)
}

// Build assembles the report document and serializes it to w.
func Build(data Data, w io.Writer) error {
	return build(data, w, time.Now)
}

// WriteFile builds the report and writes it to path.
func WriteFile(data Data, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Build(data, f); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func build(data Data, w io.Writer, now func() time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("SonarQube Analysis Report", true)
	pdf.SetCreationDate(now())
	pdf.SetModificationDate(now())
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	b := &builder{
		pdf:    pdf,
		now:    now,
		left:   pageMargin,
		usable: pageW - 2*pageMargin,
		bottom: pageH - pageMargin,
	}

	b.header(data.ProjectKey, data.Gate)
	b.qualityGate(data.Gate)
	b.summaryMetrics(data.Metrics)
	b.detailedIssues(data.Issues)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("serializing report: %w", err)
	}
	return nil
}

type builder struct {
	pdf    *fpdf.Fpdf
	now    func() time.Time
	left   float64
	usable float64
	bottom float64
}

func (b *builder) header(projectKey string, gate *sonarqube.GateStatus) {
	b.pdf.SetFont("Helvetica", "B", 24)
	b.pdf.CellFormat(0, 12, "SonarQube Analysis Report", "", 1, "C", false, 0, "")
	b.pdf.Ln(4)

	dateStr := "N/A"
	if t, ok := AnalysisTime(gate); ok {
		dateStr = t.Format("January 2, 2006 at 3:04 PM MST")
	}

	b.pdf.SetFont("Helvetica", "", 11)
	b.pdf.CellFormat(0, 6, "Project: "+projectKey, "", 1, "C", false, 0, "")
	b.pdf.CellFormat(0, 6, "Analysis Date: "+dateStr, "", 1, "C", false, 0, "")
	b.pdf.CellFormat(0, 6, "Report Generated: "+b.now().Format("January 2, 2006"), "", 1, "C", false, 0, "")
	b.pdf.Ln(8)
}

func (b *builder) sectionTitle(title string) {
	b.pdf.SetTextColor(0, 0, 0)
	b.pdf.SetFont("Helvetica", "B", 16)
	b.pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	b.pdf.Ln(2)
}

// GateVerdict maps a quality gate status to its banner label and color:
// "OK" and "ERROR" become PASSED (green) and FAILED (red); any other status
// renders literally with the neutral orange treatment.
func GateVerdict(status string) (string, models.RGB) {
	switch status {
	case "OK":
		return "PASSED", models.RGB{R: 0x00, G: 0x80, B: 0x00}
	case "ERROR":
		return "FAILED", models.RGB{R: 0xFF, G: 0x00, B: 0x00}
	default:
		return status, models.RGB{R: 0xFF, G: 0xA5, B: 0x00}
	}
}

func (b *builder) qualityGate(gate *sonarqube.GateStatus) {
	b.sectionTitle("Quality Gate Status")

	status := "UNKNOWN"
	if gate != nil && gate.Status != "" {
		status = gate.Status
	}
	label, color := GateVerdict(status)

	b.pdf.SetFont("Helvetica", "B", 28)
	b.pdf.SetTextColor(color.R, color.G, color.B)
	b.pdf.CellFormat(0, 14, label, "", 1, "C", false, 0, "")
	b.pdf.SetTextColor(0, 0, 0)
	b.pdf.Ln(10)
}

// MetricDisplay returns the summary-cell text for one metric: the raw value
// plus suffix, "N/A" preserved as-is, and "0" when the key is absent.
func MetricDisplay(metrics map[string]string, m models.Metric) string {
	value, ok := metrics[m.Key]
	if !ok {
		return "0"
	}
	if value == "N/A" {
		return "N/A"
	}
	return value + m.Suffix
}

func (b *builder) summaryMetrics(metrics map[string]string) {
	b.sectionTitle("Project Summary")

	const rowH = 30.0
	colW := b.usable / 3
	top := b.pdf.GetY()

	b.pdf.SetDrawColor(128, 128, 128)
	b.pdf.SetLineWidth(0.3)
	for i, m := range models.SummaryMetrics {
		col, row := i%3, i/3
		x := b.left + float64(col)*colW
		y := top + float64(row)*rowH
		b.pdf.Rect(x, y, colW, rowH, "D")

		b.pdf.SetFont("Helvetica", "B", 22)
		b.pdf.SetXY(x, y+7)
		b.pdf.CellFormat(colW, 10, MetricDisplay(metrics, m), "", 0, "C", false, 0, "")

		b.pdf.SetFont("Helvetica", "", 9)
		b.pdf.SetXY(x, y+19)
		b.pdf.CellFormat(colW, 5, m.Label, "", 0, "C", false, 0, "")
	}

	b.pdf.SetDrawColor(0, 0, 0)
	b.pdf.SetLineWidth(0.6)
	b.pdf.Rect(b.left, top, b.usable, 2*rowH, "D")
	b.pdf.SetLineWidth(0.2)
	b.pdf.SetXY(b.left, top+2*rowH)
	b.pdf.Ln(6)
}

func (b *builder) detailedIssues(issues []sonarqube.Issue) {
	b.pdf.AddPage()
	b.sectionTitle("Detailed Issues Report (Including Full History)")

	if len(issues) == 0 {
		b.pdf.SetFont("Helvetica", "", 11)
		b.pdf.CellFormat(0, 8, "No issues found.", "", 1, "L", false, 0, "")
		return
	}

	for _, iss := range issues {
		b.pdf.Ln(4)
		if b.pdf.GetY() > b.bottom-40 {
			b.pdf.AddPage()
		}
		b.issueSummary(iss)
		b.historyTable(MergeHistory(iss))
	}
}

func (b *builder) issueSummary(iss sonarqube.Issue) {
	comp := iss.Component
	if i := strings.LastIndex(comp, ":"); i >= 0 {
		comp = comp[i+1:]
	}
	line := "-"
	if iss.Line > 0 {
		line = strconv.Itoa(iss.Line)
	}
	compText := fmt.Sprintf("%s: %s", comp, line)
	compW := b.usable - 2*badgeWidth

	statusText := iss.Status.String()
	if iss.Resolution != "" {
		statusText = fmt.Sprintf("%s (%s)", iss.Status, iss.Resolution)
	}

	b.pdf.SetFont("Helvetica", "", 9)
	compLines := len(b.pdf.SplitText(compText, compW-2))
	rowH := math.Max(8, float64(compLines)*4.5+2)

	y := b.pdf.GetY()
	b.pdf.SetDrawColor(0, 0, 0)

	sev := iss.Severity.Color()
	b.pdf.SetFillColor(sev.R, sev.G, sev.B)
	b.pdf.SetTextColor(255, 255, 255)
	b.pdf.SetFont("Helvetica", "B", 9)
	b.pdf.SetXY(b.left, y)
	b.pdf.CellFormat(badgeWidth, rowH, iss.Severity.String(), "1", 0, "C", true, 0, "")

	st := iss.Status.Color()
	b.pdf.SetFillColor(st.R, st.G, st.B)
	b.pdf.CellFormat(badgeWidth, rowH, statusText, "1", 0, "C", true, 0, "")

	b.pdf.SetTextColor(0, 0, 0)
	b.pdf.SetFont("Helvetica", "", 9)
	b.pdf.Rect(b.left+2*badgeWidth, y, compW, rowH, "D")
	b.pdf.SetXY(b.left+2*badgeWidth, y)
	b.pdf.MultiCell(compW, 4.5, compText, "", "L", false)

	// Full-width message row below the three cells.
	b.pdf.SetXY(b.left, y+rowH)
	b.pdf.MultiCell(b.usable, 4.5, iss.Message, "1", "L", false)
}

func (b *builder) historyTable(entries []HistoryEntry) {
	if len(entries) == 0 {
		return
	}

	changeW := b.usable - 2*histColW
	const lineH = 3.5

	b.pdf.SetFont("Helvetica", "B", 8)
	b.pdf.SetFillColor(211, 211, 211)
	b.pdf.SetDrawColor(128, 128, 128)
	b.pdf.SetXY(b.left, b.pdf.GetY())
	b.pdf.CellFormat(histColW, 5, "Date", "1", 0, "L", true, 0, "")
	b.pdf.CellFormat(histColW, 5, "User", "1", 0, "L", true, 0, "")
	b.pdf.CellFormat(changeW, 5, "Change / Comment", "1", 1, "L", true, 0, "")

	for _, e := range entries {
		details := strings.Join(e.DetailLines(), "<br>")

		b.pdf.SetFont("Helvetica", "", 8)
		estLines := len(b.pdf.SplitText(details, changeW-2))
		if b.pdf.GetY()+float64(estLines)*lineH > b.bottom-5 {
			b.pdf.AddPage()
		}
		y := b.pdf.GetY()

		// Render the change column first to learn the row height.
		x := b.left + 2*histColW
		b.pdf.SetLeftMargin(x + 1)
		b.pdf.SetXY(x+1, y+1)
		html := b.pdf.HTMLBasicNew()
		html.Write(lineH, details)
		rowH := math.Max(5, b.pdf.GetY()+lineH-y+1)
		b.pdf.SetLeftMargin(b.left)

		b.pdf.SetTextColor(128, 128, 128)
		b.pdf.SetXY(b.left, y)
		b.pdf.CellFormat(histColW, rowH, e.DateLabel(), "1", 0, "L", false, 0, "")
		b.pdf.SetTextColor(0, 0, 0)
		b.pdf.CellFormat(histColW, rowH, e.User, "1", 0, "L", false, 0, "")
		b.pdf.Rect(x, y, changeW, rowH, "D")

		b.pdf.SetXY(b.left, y+rowH)
	}
	b.pdf.SetDrawColor(0, 0, 0)
}
