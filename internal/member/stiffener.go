package member

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gomember/internal/fabrication"
	"github.com/alexiusacademia/gomember/internal/grid"
	"github.com/alexiusacademia/gomember/internal/inertia"
	"github.com/alexiusacademia/gomember/internal/section"
)

const thetaStiffenerWeld = 3.0

// Count returns the number of stiffeners on a member of the given height
func (rs RingStiffeners) Count(height float64) int {
	if rs.Spacing <= 0 {
		return 0
	}
	return int(math.Floor(height / rs.Spacing))
}

func (rs RingStiffeners) validate(height float64) error {
	if rs.Spacing < 0 {
		return &ValidationError{"ring stiffener spacing must not be negative"}
	}
	if rs.Count(height) == 0 {
		return nil
	}
	if rs.WebHeight <= 0 || rs.WebThickness <= 0 {
		return &ValidationError{"ring stiffener web must have positive height and thickness"}
	}
	if rs.FlangeWidth <= 0 || rs.FlangeThickness < 0 {
		return &ValidationError{"ring stiffener flange must have positive width"}
	}
	if rs.FlangeWidth > height {
		return &ValidationError{"ring stiffener flange is wider than the member is long"}
	}
	return nil
}

// stations places the stiffeners at mid-spacing and moves any stiffener
// whose center falls on a bulkhead just below it, or just above it when
// there is no room below. A moved stiffener is checked again against
// every bulkhead.
func (rs RingStiffeners) stations(height float64, bulkheads [][2]float64) []float64 {
	n := rs.Count(height)
	hw := 0.5 * rs.FlangeWidth / height
	out := make([]float64, n)
	for k := range out {
		s := (float64(k) + 0.5) * rs.Spacing / height
		if bandAt(s, bulkheads) < 0 {
			out[k] = s
			continue
		}
		if below, ok := stepOff(s, bulkheads, -3*hw, func(b [2]float64) float64 { return b[0] }); ok && below-hw >= 0 {
			out[k] = below
			continue
		}
		above, _ := stepOff(s, bulkheads, 3*hw, func(b [2]float64) float64 { return b[1] })
		out[k] = math.Min(above, 1-hw)
	}
	return out
}

// bandAt returns the index of the band holding s, or -1
func bandAt(s float64, bands [][2]float64) int {
	for i, b := range bands {
		if s >= b[0] && s <= b[1] {
			return i
		}
	}
	return -1
}

// stepOff moves s past the bands it falls on, always in the same
// direction, until it lies on none of them
func stepOff(s float64, bands [][2]float64, step float64, edge func([2]float64) float64) (float64, bool) {
	for n := 0; n < len(bands)+1; n++ {
		i := bandAt(s, bands)
		if i < 0 {
			return s, true
		}
		s = edge(bands[i]) + step
	}
	return s, bandAt(s, bands) < 0
}

// AddStiffeners overlays the ring stiffeners on the map. Stiffeners are
// moved off the given bulkheads. The input map is left unchanged.
func AddStiffeners(m *section.Map, g *grid.Refined, rs RingStiffeners, b Bulkheads, rates fabrication.Rates) (*section.Map, StiffenerTotals, error) {
	if err := rs.validate(g.Height); err != nil {
		return nil, StiffenerTotals{}, err
	}
	out := m.Clone()
	var tot StiffenerTotals
	if rs.Count(g.Height) == 0 {
		return out, tot, nil
	}

	tot.Stations = rs.stations(g.Height, bulkheadBands(g, b))
	tot.FlangeSpacingRatio = rs.FlangeWidth / (0.5 * rs.Spacing)
	f := rs.WebThickness / rs.FlangeWidth

	for k, s := range tot.Stations {
		i := g.Segment(s)
		ro := 0.5 * g.DiameterAt(s)
		rwo := ro - g.T[i]
		rwi := rwo - rs.WebHeight
		rfi := rwi - rs.FlangeThickness
		if rfi < 0 {
			return nil, StiffenerTotals{}, &ValidationError{msg: fmt.Sprintf("ring stiffener %d does not fit inside the shell: flange inner radius %g m", k+1, rfi)}
		}
		tot.RadiusRatio = math.Max(tot.RadiusRatio, 1-rfi/ro)

		aWeb := math.Pi * (rwo*rwo - rwi*rwi)
		aFlange := math.Pi * (rwi*rwi - rfi*rfi)
		mWeb := aWeb * rs.WebThickness * g.Rho[i]
		mFlange := aFlange * rs.FlangeWidth * g.Rho[i]
		mass := mWeb + mFlange
		z := s * g.Height

		I := inertia.Cylinder(rwi, rwo, rs.WebThickness, mWeb).
			Add(inertia.Cylinder(rfi, rwi, rs.FlangeWidth, mFlange)).
			AxialShift(mass, z)

		inc := section.Ring(rwi, rwo, f).Add(section.Ring(rfi, rwi, 1))
		start, end := band(s, rs.FlangeWidth/g.Height)
		err := out.Overlay(start, end, func(p section.Section) section.Section {
			return p.Superpose(section.Stiffener, inc)
		})
		if err != nil {
			return nil, StiffenerTotals{}, fmt.Errorf("ring stiffener %d: %w", k+1, err)
		}

		tot.add(mass, z, I, stiffenerCost(rs, rwo, rwi, mWeb, mFlange, g.T[i], g.UnitCost[i], rates))
	}
	tot.finish()
	return out, tot, nil
}

// stiffenerCost prices one T ring: a cut web welded to the shell and a
// rolled flange welded to the web
func stiffenerCost(rs RingStiffeners, rwo, rwi, mWeb, mFlange, tShell, unitCost float64, rates fabrication.Rates) float64 {
	mass := mWeb + mFlange
	cWeb := 2 * math.Pi * rwo
	cFlange := 2 * math.Pi * rwi

	minutes := fabrication.CuttingTime(cWeb+cFlange, rs.WebThickness)
	minutes += fabrication.CuttingTime(2*cFlange, rs.FlangeThickness)
	minutes += fabrication.RollingTime(1, rwi, rs.FlangeThickness)
	minutes += fabrication.FilletWeldTime(thetaStiffenerWeld, 2, mass, 2*cWeb, math.Min(tShell, rs.WebThickness))
	minutes += fabrication.FilletWeldTime(thetaStiffenerWeld, 2, mass, 2*cFlange, math.Min(rs.WebThickness, rs.FlangeThickness))

	area := 2*math.Pi*(rwo*rwo-rwi*rwi) + 2*cFlange*rs.FlangeWidth

	return unitCost*mass + rates.LaborCost(minutes) + rates.PaintCost(area)
}
