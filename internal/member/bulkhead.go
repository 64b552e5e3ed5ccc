package member

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gomember/internal/fabrication"
	"github.com/alexiusacademia/gomember/internal/grid"
	"github.com/alexiusacademia/gomember/internal/inertia"
	"github.com/alexiusacademia/gomember/internal/section"
)

const thetaBulkheadWeld = 3.0

// band returns the interval of width w centred on s, shifted to stay
// inside [0, 1] without changing its width
func band(s, w float64) (float64, float64) {
	start, end := s-0.5*w, s+0.5*w
	if start < 0 {
		start, end = 0, w
	}
	if end > 1 {
		start, end = 1-w, 1
	}
	return start, end
}

// bulkheadBands returns the axial bands occupied by the bulkheads
func bulkheadBands(g *grid.Refined, b Bulkheads) [][2]float64 {
	var out [][2]float64
	for k, s := range b.Stations {
		if k >= len(b.Thickness) || b.Thickness[k] <= 0 {
			continue
		}
		start, end := band(s, b.Thickness[k]/g.Height)
		out = append(out, [2]float64{start, end})
	}
	return out
}

func (b Bulkheads) validate(height float64) error {
	if len(b.Thickness) != len(b.Stations) {
		return &ValidationError{msg: fmt.Sprintf("bulkheads need one thickness per station: %d stations, %d thicknesses", len(b.Stations), len(b.Thickness))}
	}
	for k, s := range b.Stations {
		if s < 0 || s > 1 {
			return fmt.Errorf("bulkhead %d at %g: %w", k+1, s, section.ErrOutOfRange)
		}
		if b.Thickness[k] < 0 {
			return &ValidationError{msg: fmt.Sprintf("bulkhead %d thickness must not be negative", k+1)}
		}
		if b.Thickness[k] > height {
			return &ValidationError{msg: fmt.Sprintf("bulkhead %d is thicker than the member is long", k+1)}
		}
	}
	return nil
}

// AddBulkheads overlays a solid plate on the shell at every bulkhead
// station. The input map is left unchanged.
func AddBulkheads(m *section.Map, g *grid.Refined, b Bulkheads, rates fabrication.Rates) (*section.Map, Totals, error) {
	if err := b.validate(g.Height); err != nil {
		return nil, Totals{}, err
	}
	out := m.Clone()
	var tot Totals

	for k, s := range b.Stations {
		tb := b.Thickness[k]
		if tb == 0 {
			// No plate, but the station still becomes a node
			if err := out.AddNode(s); err != nil {
				return nil, Totals{}, fmt.Errorf("bulkhead %d: %w", k+1, err)
			}
			continue
		}
		i := g.Segment(s)
		ri := g.InnerRadiusAt(s)
		c := g.Outfitting[i]
		z := s * g.Height

		mass := c * g.Rho[i] * math.Pi * ri * ri * tb
		I := inertia.Tensor{0.25 * mass * ri * ri, 0.25 * mass * ri * ri, 0.5 * mass * ri * ri}.AxialShift(mass, z)

		start, end := band(s, tb/g.Height)
		err := out.Overlay(start, end, func(p section.Section) section.Section {
			return p.Superpose(section.Bulkhead, section.Disk(p.InnerDiameter(), c))
		})
		if err != nil {
			return nil, Totals{}, fmt.Errorf("bulkhead %d: %w", k+1, err)
		}

		circ := 2 * math.Pi * ri
		minutes := fabrication.CuttingTime(circ, tb) +
			fabrication.FilletWeldTime(thetaBulkheadWeld, 2, mass, circ, g.T[i])
		cost := g.UnitCost[i]*mass + rates.LaborCost(minutes) + rates.PaintCost(2*math.Pi*ri*ri)

		tot.add(mass, z, I, cost)
	}
	tot.finish()
	return out, tot, nil
}
