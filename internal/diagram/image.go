package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gomember/internal/section"
)

var (
	shellColor     = color.Black
	bulkheadColor  = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	stiffenerColor = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	ballastColor   = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	waterColor     = color.RGBA{R: 0, G: 128, B: 255, A: 255}
)

// outline returns the half profile of the member at +r(x) or -r(x)
func (p ProfileData) outline(sign float64) plotter.XYs {
	pts := make(plotter.XYs, 0, 2*len(p.D))
	for i, d := range p.D {
		pts = append(pts,
			plotter.XY{X: p.X[i], Y: sign * d / 2},
			plotter.XY{X: p.X[i+1], Y: sign * d / 2},
		)
	}
	return pts
}

// ExportProfile exports a side view of the member to an image file
func ExportProfile(data ProfileData, filename string) error {
	if len(data.D) == 0 {
		return fmt.Errorf("member %q has no sections to draw", data.Name)
	}

	p := plot.New()
	p.Title.Text = "Member Profile"
	if data.Name != "" {
		p.Title.Text += ": " + data.Name
	}
	p.X.Label.Text = "Distance from base (m)"
	p.Y.Label.Text = "Radius (m)"

	var rMax float64
	for _, d := range data.D {
		rMax = max(rMax, d/2)
	}

	// Ballast compartments below the outline
	for i, k := range data.Kind {
		if k != section.KindBallast && k != section.KindCombined {
			continue
		}
		if k == section.KindCombined && data.X[i+1]-data.X[i] < 0.01*data.Height {
			continue
		}
		r := data.D[i] / 2
		fill, err := plotter.NewPolygon(plotter.XYs{
			{X: data.X[i], Y: -r},
			{X: data.X[i+1], Y: -r},
			{X: data.X[i+1], Y: r},
			{X: data.X[i], Y: r},
		})
		if err != nil {
			return err
		}
		fill.Color = ballastColor
		fill.LineStyle.Width = 0
		p.Add(fill)
	}

	for _, sign := range []float64{1, -1} {
		line, err := plotter.NewLine(data.outline(sign))
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = shellColor
		p.Add(line)
	}

	// Bulkheads as plates across the section, stiffeners as marks on the wall
	var stiffeners plotter.XYs
	for i, k := range data.Kind {
		mid := 0.5 * (data.X[i] + data.X[i+1])
		r := data.D[i] / 2
		switch k {
		case section.KindBulkhead, section.KindCombined:
			plate, err := plotter.NewLine(plotter.XYs{{X: mid, Y: -r}, {X: mid, Y: r}})
			if err != nil {
				return err
			}
			plate.LineStyle.Width = vg.Points(2)
			plate.LineStyle.Color = bulkheadColor
			p.Add(plate)
		case section.KindStiffener:
			stiffeners = append(stiffeners, plotter.XY{X: mid, Y: r}, plotter.XY{X: mid, Y: -r})
		}
	}
	if len(stiffeners) > 0 {
		marks, err := plotter.NewScatter(stiffeners)
		if err != nil {
			return err
		}
		marks.GlyphStyle.Color = stiffenerColor
		marks.GlyphStyle.Radius = vg.Points(2)
		marks.GlyphStyle.Shape = draw.BoxGlyph{}
		p.Add(marks)
	}

	if data.HasWaterline {
		wl, err := plotter.NewLine(plotter.XYs{
			{X: data.Waterline, Y: -1.3 * rMax},
			{X: data.Waterline, Y: 1.3 * rMax},
		})
		if err != nil {
			return err
		}
		wl.LineStyle.Width = vg.Points(1.5)
		wl.LineStyle.Color = waterColor
		wl.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(wl)
		p.Legend.Add("Waterline", wl)
	}

	cg, err := plotter.NewScatter(plotter.XYs{{X: data.ZCG, Y: 0}})
	if err != nil {
		return err
	}
	cg.GlyphStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	cg.GlyphStyle.Radius = vg.Points(5)
	cg.GlyphStyle.Shape = draw.CrossGlyph{}
	p.Add(cg)
	p.Legend.Add("Center of gravity", cg)

	label, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: data.ZCG, Y: 1.1 * rMax}},
		Labels: []string{fmt.Sprintf("CG=%.2fm", data.ZCG)},
	})
	if err != nil {
		return err
	}
	p.Add(label)

	p.Y.Min = -1.5 * rMax
	p.Y.Max = 1.5 * rMax

	return save(p, 10*vg.Inch, 4*vg.Inch, filename)
}

// ExportMassDistribution plots the linear mass along the member
func ExportMassDistribution(data ProfileData, filename string) error {
	if len(data.LinearMass) == 0 {
		return fmt.Errorf("member %q has no sections to draw", data.Name)
	}
	p := plot.New()
	p.Title.Text = "Linear Mass"
	p.X.Label.Text = "Distance from base (m)"
	p.Y.Label.Text = "Mass (kg/m)"

	pts := make(plotter.XYs, 0, 2*len(data.LinearMass))
	for i, m := range data.LinearMass {
		pts = append(pts, plotter.XY{X: data.X[i], Y: m}, plotter.XY{X: data.X[i+1], Y: m})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	p.Add(line)

	return save(p, 8*vg.Inch, 4*vg.Inch, filename)
}

// save writes the plot in the format given by the file extension,
// defaulting to PNG
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
