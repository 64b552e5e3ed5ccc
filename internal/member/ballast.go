package member

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gomember/internal/frustum"
	"github.com/alexiusacademia/gomember/internal/grid"
	"github.com/alexiusacademia/gomember/internal/inertia"
	"github.com/alexiusacademia/gomember/internal/section"
)

// cavity is one frustum of the member interior
type cavity struct {
	z0, h  float64 // base elevation above the member base and height (m)
	rb, rt float64 // inner radii at the base and top (m)
}

// interior splits the inside of the member between two stations into
// frustums, one per refined sub-segment crossed
func interior(g *grid.Refined, start, end float64) []cavity {
	pts := []float64{start}
	for _, s := range g.S {
		if s > start && s < end {
			pts = append(pts, s)
		}
	}
	pts = append(pts, end)

	out := make([]cavity, 0, len(pts)-1)
	for j := 0; j+1 < len(pts); j++ {
		a, b := pts[j], pts[j+1]
		t := g.T[g.Segment(0.5*(a+b))]
		out = append(out, cavity{
			z0: g.ZAt(a),
			h:  g.ZAt(b) - g.ZAt(a),
			rb: math.Max(0.5*g.DiameterAt(a)-t, 0),
			rt: math.Max(0.5*g.DiameterAt(b)-t, 0),
		})
	}
	return out
}

func (bb BallastBand) validate(k int) error {
	if bb.Start < 0 || bb.End > 1 {
		return fmt.Errorf("ballast %d [%g, %g]: %w", k+1, bb.Start, bb.End, section.ErrOutOfRange)
	}
	if !(bb.End > bb.Start) {
		return &ValidationError{msg: fmt.Sprintf("ballast %d must end above its start", k+1)}
	}
	if bb.Volume < 0 || bb.Density < 0 || bb.UnitCost < 0 {
		return &ValidationError{msg: fmt.Sprintf("ballast %d volume, density and unit cost must not be negative", k+1)}
	}
	return nil
}

// AddBallast fills the permanent ballast bands from their bottom up and
// reports the interior volume of the variable ballast bands. The filled
// part of each permanent band carries the ballast as added mass. The
// input map is left unchanged.
func AddBallast(m *section.Map, g *grid.Refined, bands []BallastBand) (*section.Map, BallastTotals, error) {
	out := m.Clone()
	var tot BallastTotals

	for k, bb := range bands {
		if err := bb.validate(k); err != nil {
			return nil, BallastTotals{}, err
		}
		cavities := interior(g, bb.Start, bb.End)

		if bb.Volume == 0 {
			for _, c := range cavities {
				tot.VariableCapacity += frustum.Volume(c.rb, c.rt, c.h)
			}
			continue
		}

		var vol, moment, top float64
		remaining := bb.Volume
		for _, c := range cavities {
			if remaining <= 0 {
				break
			}
			full := frustum.Volume(c.rb, c.rt, c.h)
			if remaining >= full {
				vol += full
				moment += full * (c.z0 + frustum.Centroid(c.rb, c.rt, c.h))
				top = c.z0 + c.h
				remaining -= full
				continue
			}
			x, err := frustum.FillHeight(c.rb, c.rt, c.h, remaining)
			if err != nil {
				return nil, BallastTotals{}, fmt.Errorf("ballast %d: %w", k+1, err)
			}
			rx := frustum.RadiusAt(c.rb, c.rt, c.h, x)
			vol += remaining
			moment += remaining * (c.z0 + frustum.Centroid(c.rb, rx, x))
			top = c.z0 + x
			remaining = 0
		}
		if remaining > 1e-9*bb.Volume {
			return nil, BallastTotals{}, &ValidationError{msg: fmt.Sprintf("ballast %d volume %g m³ exceeds the %g m³ available in its band", k+1, bb.Volume, vol)}
		}

		mass := bb.Density * bb.Volume
		z := moment / vol
		base := g.ZAt(bb.Start)
		h := top - base
		req := math.Sqrt(vol / (math.Pi * h))
		I := inertia.Cylinder(0, req, h, mass).AxialShift(mass, z)
		tot.add(mass, z, I, bb.UnitCost*mass)

		end := math.Min(bb.Start+h/g.Height, bb.End)
		err := out.Overlay(bb.Start, end, func(p section.Section) section.Section {
			return p.Superpose(section.Ballast, section.Increment{AddedMass: mass / h})
		})
		if err != nil {
			return nil, BallastTotals{}, fmt.Errorf("ballast %d: %w", k+1, err)
		}
	}
	tot.finish()
	return out, tot, nil
}
