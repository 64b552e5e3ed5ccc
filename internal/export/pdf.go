package export

import (
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gomember/internal/member"
	"github.com/alexiusacademia/gomember/internal/version"
)

// Report is the content of a PDF summary
type Report struct {
	Title  string
	Name   string
	Source string // Definition file
	Notes  string
	Result *member.Result
}

// WriteReport saves a one-page summary of an evaluated member
func WriteReport(path string, r Report) error {
	if r.Result == nil || r.Result.Nodes == nil || r.Result.Hydro == nil {
		return fmt.Errorf("no member result to report")
	}
	if r.Title == "" {
		r.Title = "Member Report"
	}
	res := r.Result
	mp := res.Mass

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetCreator(buildStamp(), false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, buildStamp(), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(r.Title))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if r.Name != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Member: %s", r.Name)))
		pdf.Ln(6)
	}
	if r.Source != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Definition: %s", r.Source)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
	}
	pair := func(label, value string) {
		pdf.CellFormat(70, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
	}

	section("Geometry")
	pair("Length", Format(res.Grid.Height, Meter))
	pair("Refined stations", fmt.Sprintf("%d", len(res.Grid.S)))
	pair("Nodes", fmt.Sprintf("%d", len(res.Nodes.SAll)))
	pair("Stiffeners", fmt.Sprintf("%d", len(mp.Stiffener.Stations)))
	pdf.Ln(4)

	section("Mass breakdown")
	widths := []float64{45, 40, 30, 40}
	pdf.SetFillColor(230, 230, 230)
	for i, h := range []string{"Part", "Mass", "z CG", "Cost"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	rows := []struct {
		name string
		t    member.Totals
	}{
		{"Shell", mp.Shell},
		{"Bulkheads", mp.Bulkhead},
		{"Ring stiffeners", mp.Stiffener.Totals},
		{"Ballast", mp.Ballast.Totals},
		{"Total", member.Totals{Mass: mp.TotalMass, ZCG: mp.ZCG, Cost: mp.TotalCost}},
	}
	for _, row := range rows {
		pdf.CellFormat(widths[0], 6, row.name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(Format(row.t.Mass, Kilogram)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, tr(Format(row.t.ZCG, Meter)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, tr(Format(row.t.Cost, Dollars)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	section("Inertia about the base")
	pair("Ixx", Format(mp.I[0], Inertia))
	pair("Iyy", Format(mp.I[1], Inertia))
	pair("Izz", Format(mp.I[2], Inertia))
	pair("Variable ballast capacity", Format(mp.Ballast.VariableCapacity, Cubic))
	pdf.Ln(4)

	h := res.Hydro
	section("Hydrostatics")
	pair("Displaced volume", Format(h.DisplacedVolume, Cubic))
	pair("Buoyancy force", Format(h.BuoyancyForce, Newton))
	pair("Center of buoyancy", fmt.Sprintf("(%.3f, %.3f, %.3f) m", h.CenterOfBuoyancy.X, h.CenterOfBuoyancy.Y, h.CenterOfBuoyancy.Z))
	pair("Center of mass", fmt.Sprintf("(%.3f, %.3f, %.3f) m", res.Nodes.CenterOfMass.X, res.Nodes.CenterOfMass.Y, res.Nodes.CenterOfMass.Z))
	if h.Waterline {
		pair("Waterplane area", Format(h.Awater, Square))
		pair("Waterplane moment", Format(h.Iwater, Quartic))
	} else {
		pair("Waterplane", "member does not pierce the surface")
	}

	if r.Notes != "" {
		pdf.Ln(6)
		pdf.MultiCell(0, 6, tr(r.Notes), "", "L", false)
	}

	return pdf.OutputFileAndClose(path)
}

// buildStamp names the binary that wrote a report
func buildStamp() string {
	return fmt.Sprintf("gomember %s, commit %s, built %s", version.Version, version.GitCommit, version.BuildTime)
}
