// Package grid refines the coarse axial station grid of a member.
package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/alexiusacademia/gomember/internal/material"
)

// Coarse is the user-level description of a member along its axis.
//
// OuterDiameter is given at the n+1 stations. WallThickness is given either
// at the stations (n+1 values) or per segment (n values). The material
// properties are per segment.
type Coarse struct {
	S      []float64 // Non-dimensional stations, 0 at the base and 1 at the tip
	Height float64   // Member length (m)

	OuterDiameter []float64 // m
	WallThickness []float64 // m

	E          []float64 // Pa
	G          []float64 // Pa
	SigmaY     []float64 // Pa
	Rho        []float64 // kg/m³
	UnitCost   []float64 // USD/kg
	Outfitting []float64 // Mass multiplier for secondary steel (≥ 1)
}

// Refined is the dense grid all later stages work on.
// Nodal arrays have NFull entries and segment arrays NFull-1.
type Refined struct {
	S      []float64
	Z      []float64
	D      []float64
	Height float64

	T          []float64
	E          []float64
	G          []float64
	Nu         []float64
	SigmaY     []float64
	Rho        []float64
	UnitCost   []float64
	Outfitting []float64
}

// NFull returns the number of refined stations for nCoarse stations
// refined with nRefine interior points per segment
func NFull(nCoarse, nRefine int) int {
	return nCoarse + nRefine*(nCoarse-1)
}

// Validate checks the coarse grid for consistency
func (c *Coarse) Validate() error {
	n := len(c.S)
	if n < 2 {
		return fmt.Errorf("grid must have at least 2 stations, got %d", n)
	}
	if c.S[0] != 0 || c.S[n-1] != 1 {
		return fmt.Errorf("grid must span [0, 1], got [%g, %g]", c.S[0], c.S[n-1])
	}
	for i := 1; i < n; i++ {
		if !(c.S[i] > c.S[i-1]) {
			return fmt.Errorf("grid stations must be strictly increasing: s[%d]=%g, s[%d]=%g", i-1, c.S[i-1], i, c.S[i])
		}
	}
	if !(c.Height > 0) {
		return fmt.Errorf("height must be positive, got %g", c.Height)
	}
	if len(c.OuterDiameter) != n {
		return fmt.Errorf("outer diameter needs %d values, got %d", n, len(c.OuterDiameter))
	}
	if len(c.WallThickness) != n && len(c.WallThickness) != n-1 {
		return fmt.Errorf("wall thickness needs %d or %d values, got %d", n, n-1, len(c.WallThickness))
	}
	seg := []struct {
		name string
		v    []float64
	}{
		{"E", c.E},
		{"G", c.G},
		{"sigma_y", c.SigmaY},
		{"rho", c.Rho},
		{"unit cost", c.UnitCost},
		{"outfitting", c.Outfitting},
	}
	for _, p := range seg {
		if len(p.v) != n-1 {
			return fmt.Errorf("%s needs %d segment values, got %d", p.name, n-1, len(p.v))
		}
	}
	for i, d := range c.OuterDiameter {
		if d < 0 {
			return fmt.Errorf("outer diameter at station %d is negative", i)
		}
	}
	for i, t := range c.WallThickness {
		if t < 0 {
			return fmt.Errorf("wall thickness %d is negative", i)
		}
	}
	return nil
}

// Refine inserts nRefine equally spaced stations inside every coarse
// segment. Coarse stations are copied exactly into the refined grid.
func Refine(c *Coarse, nRefine int) (*Refined, error) {
	if nRefine < 0 {
		return nil, fmt.Errorf("refinement count must be non-negative, got %d", nRefine)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	nCoarse := len(c.S)
	nFull := NFull(nCoarse, nRefine)
	nodalThickness := len(c.WallThickness) == nCoarse

	r := &Refined{
		S:          make([]float64, 0, nFull),
		D:          make([]float64, 0, nFull),
		Height:     c.Height,
		T:          make([]float64, 0, nFull-1),
		E:          make([]float64, 0, nFull-1),
		G:          make([]float64, 0, nFull-1),
		Nu:         make([]float64, 0, nFull-1),
		SigmaY:     make([]float64, 0, nFull-1),
		Rho:        make([]float64, 0, nFull-1),
		UnitCost:   make([]float64, 0, nFull-1),
		Outfitting: make([]float64, 0, nFull-1),
	}

	m := nRefine + 1
	span := make([]float64, m+1)
	tNodes := make([]float64, m+1)
	for k := 0; k < nCoarse-1; k++ {
		s0, s1 := c.S[k], c.S[k+1]
		floats.Span(span, s0, s1)
		span[0], span[m] = s0, s1

		d0, d1 := c.OuterDiameter[k], c.OuterDiameter[k+1]
		for j := 0; j < m; j++ {
			f := float64(j) / float64(m)
			r.S = append(r.S, span[j])
			r.D = append(r.D, d0+(d1-d0)*f)
		}

		if nodalThickness {
			t0, t1 := c.WallThickness[k], c.WallThickness[k+1]
			for j := 0; j <= m; j++ {
				tNodes[j] = t0 + (t1-t0)*float64(j)/float64(m)
			}
		}
		nu := material.PoissonRatio(c.E[k], c.G[k])
		for j := 0; j < m; j++ {
			if nodalThickness {
				r.T = append(r.T, 0.5*(tNodes[j]+tNodes[j+1]))
			} else {
				r.T = append(r.T, c.WallThickness[k])
			}
			r.E = append(r.E, c.E[k])
			r.G = append(r.G, c.G[k])
			r.Nu = append(r.Nu, nu)
			r.SigmaY = append(r.SigmaY, c.SigmaY[k])
			r.Rho = append(r.Rho, c.Rho[k])
			r.UnitCost = append(r.UnitCost, c.UnitCost[k])
			r.Outfitting = append(r.Outfitting, c.Outfitting[k])
		}
	}
	r.S = append(r.S, c.S[nCoarse-1])
	r.D = append(r.D, c.OuterDiameter[nCoarse-1])

	r.Z = make([]float64, len(r.S))
	for i, s := range r.S {
		r.Z[i] = s * c.Height
	}
	return r, nil
}

// NSegments returns the number of refined sub-segments
func (r *Refined) NSegments() int {
	return len(r.S) - 1
}

// Segment returns the index of the sub-segment holding station s.
// The tip station belongs to the last sub-segment.
func (r *Refined) Segment(s float64) int {
	n := r.NSegments()
	if s <= r.S[0] {
		return 0
	}
	if s >= r.S[n] {
		return n - 1
	}
	lo, hi := 0, n
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if r.S[mid] <= s {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// DiameterAt interpolates the outer diameter at station s
func (r *Refined) DiameterAt(s float64) float64 {
	return Interp(s, r.S, r.D)
}

// ZAt returns the axial coordinate of station s
func (r *Refined) ZAt(s float64) float64 {
	return s * r.Height
}

// Interp evaluates the piecewise-linear function through (xs, ys) at x,
// holding the end values outside the range. xs must be strictly increasing;
// NaN is returned otherwise.
func Interp(x float64, xs, ys []float64) float64 {
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return math.NaN()
	}
	return pl.Predict(x)
}

// InnerRadiusAt returns the shell inner radius at station s
func (r *Refined) InnerRadiusAt(s float64) float64 {
	return 0.5*r.DiameterAt(s) - r.T[r.Segment(s)]
}
