package member

import (
	"math"

	"github.com/alexiusacademia/gomember/internal/fabrication"
	"github.com/alexiusacademia/gomember/internal/frustum"
	"github.com/alexiusacademia/gomember/internal/grid"
	"github.com/alexiusacademia/gomember/internal/inertia"
	"github.com/alexiusacademia/gomember/internal/section"
)

// Difficulty factors of the shell welds
const (
	thetaLongitudinal    = 2.0
	thetaCircumferential = 2.0
)

// BuildShell creates the section map with one shell record per refined
// sub-segment and returns the shell totals
func BuildShell(g *grid.Refined, rates fabrication.Rates) (*section.Map, Totals, error) {
	m := section.NewMap()
	var tot Totals

	for i := 0; i < g.NSegments(); i++ {
		d0, d1 := g.D[i], g.D[i+1]
		t := g.T[i]
		c := g.Outfitting[i]
		h := g.Z[i+1] - g.Z[i]

		if t > 0.5*math.Min(d0, d1) {
			return nil, Totals{}, &ValidationError{msg: "wall thickness exceeds the shell radius"}
		}

		sec := section.NewTube(0.5*(d0+d1), t, c, g.Rho[i], g.E[i], g.G[i])
		if err := m.AddSection(g.S[i], g.S[i+1], sec); err != nil {
			return nil, Totals{}, err
		}

		rb, rt := 0.5*d0, 0.5*d1
		mass := c * g.Rho[i] * frustum.ShellVolume(rb, rt, t, h)
		z := g.Z[i] + frustum.ShellCentroid(rb, rt, t, h)

		ro := 0.5 * (rb + rt)
		ri := ro - t
		I := inertia.Cylinder(ri, ro, h, mass).AxialShift(mass, z)

		tot.add(mass, z, I, shellCost(rb, rt, t, h, c, mass, g.UnitCost[i], rates))
	}
	tot.finish()
	return m, tot, nil
}

// shellCost prices one rolled and welded can
func shellCost(rb, rt, t, h, c, mass, unitCost float64, rates fabrication.Rates) float64 {
	r := 0.5 * (rb + rt)
	circ := 2 * math.Pi * r
	taper := 1.0
	if rb > 0 && rt > 0 {
		taper = math.Min(rb, rt) / math.Max(rb, rt)
	}

	minutes := fabrication.CuttingTime(2*(circ+h), t)
	minutes += fabrication.RollingTime(fabrication.RollingDifficulty(taper), r, t)
	minutes += fabrication.ButtWeldTime(thetaLongitudinal, 1, mass, h, t)
	minutes += fabrication.ButtWeldTime(thetaCircumferential, 2, mass, circ, t)

	area := frustum.OuterArea(rb, rt, h) + frustum.OuterArea(rb-t, rt-t, h)

	return unitCost*mass +
		fabrication.OutfittingCost(unitCost, c, mass) +
		rates.LaborCost(minutes) +
		rates.PaintCost(area)
}
