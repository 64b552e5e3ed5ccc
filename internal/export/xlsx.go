package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gomember/internal/member"
)

// Sheet names of the node table workbook
const (
	NodeSheet    = "Nodes"
	SectionSheet = "Sections"
	MassSheet    = "Mass"
)

// WriteNodeTable saves the nodes, the section of every interval and the
// mass breakdown of an evaluated member as an XLSX workbook
func WriteNodeTable(path string, res *member.Result) error {
	if res == nil || res.Nodes == nil {
		return fmt.Errorf("no member result to export")
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", NodeSheet); err != nil {
		return err
	}
	for _, name := range []string{SectionSheet, MassSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	ns := res.Nodes
	nodes := make([][]interface{}, len(ns.SAll))
	for i, s := range ns.SAll {
		p := ns.Nodes[i]
		nodes[i] = []interface{}{i + 1, s, p.X, p.Y, p.Z}
	}
	if err := writeRows(f, NodeSheet, []interface{}{"Node", "s", "x (m)", "y (m)", "z (m)"}, nodes); err != nil {
		return err
	}

	sections := make([][]interface{}, len(ns.D))
	for i := range ns.D {
		sections[i] = []interface{}{
			i + 1, ns.SAll[i], ns.SAll[i+1], ns.Kind[i].String(),
			ns.D[i], ns.T[i], ns.A[i], ns.Ixx[i], ns.Iyy[i], ns.Izz[i],
			ns.Rho[i], ns.E[i], ns.G[i], ns.AddedMass[i],
		}
	}
	header := []interface{}{
		"Interval", "s start", "s end", "Kind",
		"D (m)", "t (m)", "A (m²)", "Ixx (m⁴)", "Iyy (m⁴)", "Izz (m⁴)",
		"rho (kg/m³)", "E (Pa)", "G (Pa)", "Added mass (kg/m)",
	}
	if err := writeRows(f, SectionSheet, header, sections); err != nil {
		return err
	}

	mp := res.Mass
	row := func(name string, t member.Totals) []interface{} {
		return []interface{}{name, t.Mass, t.ZCG, t.Cost, t.I[0], t.I[1], t.I[2]}
	}
	mass := [][]interface{}{
		row("Shell", mp.Shell),
		row("Bulkheads", mp.Bulkhead),
		row("Ring stiffeners", mp.Stiffener.Totals),
		row("Ballast", mp.Ballast.Totals),
		{"Total", mp.TotalMass, mp.ZCG, mp.TotalCost, mp.I[0], mp.I[1], mp.I[2]},
	}
	header = []interface{}{"Part", "Mass (kg)", "z CG (m)", "Cost (USD)", "Ixx (kg·m²)", "Iyy (kg·m²)", "Izz (kg·m²)"}
	if err := writeRows(f, MassSheet, header, mass); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, r); err != nil {
			return err
		}
	}
	return sw.Flush()
}
