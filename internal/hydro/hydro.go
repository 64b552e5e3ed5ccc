// Package hydro computes hydrostatic and added mass properties of a
// member in still water. The free surface is the plane z = 0.
package hydro

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/gomember/internal/frustum"
)

// Input describes the member geometry and the water
type Input struct {
	S []float64 // Refined stations
	Z []float64 // Axial coordinate at S (m)
	D []float64 // Outer diameter at S (m)

	SAll  []float64 // Stations of the nodes
	Nodes []r3.Vec  // Node positions at SAll (m)

	RhoWater float64 // kg/m³
	Gravity  float64 // m/s²
}

// Result holds the hydrostatic properties. AddedMass is ordered like an
// inertia tensor: surge, sway, heave, roll, pitch, yaw.
type Result struct {
	DisplacedVolume  float64 // m³
	BuoyancyForce    float64 // N
	CenterOfBuoyancy r3.Vec
	IdxCB            int // Index into SAll of the node closest to the center of buoyancy

	Waterline bool    // The member pierces the free surface
	Awater    float64 // Waterplane area (m²)
	Iwater    float64 // Waterplane second moment of area (m⁴)

	AddedMass [6]float64
}

func (in *Input) validate() error {
	n := len(in.S)
	if n < 2 {
		return errors.New("hydro: need at least 2 stations")
	}
	if len(in.Z) != n || len(in.D) != n {
		return fmt.Errorf("hydro: %d stations but %d axial coordinates and %d diameters", n, len(in.Z), len(in.D))
	}
	if len(in.SAll) < 2 || len(in.Nodes) != len(in.SAll) {
		return fmt.Errorf("hydro: %d node stations but %d nodes", len(in.SAll), len(in.Nodes))
	}
	if !increasing(in.S) || !increasing(in.SAll) {
		return errors.New("hydro: stations must be strictly increasing")
	}
	return nil
}

func increasing(s []float64) bool {
	for i := 1; i < len(s); i++ {
		if !(s[i] > s[i-1]) {
			return false
		}
	}
	return true
}

// Evaluate computes the hydrostatics of the submerged part of the member.
// A member entirely above the water gives a zero Result.
func Evaluate(in *Input) (*Result, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	res := &Result{}

	// Node elevation is linear in s between the first and last node
	n0, n1 := in.Nodes[0], in.Nodes[len(in.Nodes)-1]
	s0, s1 := in.SAll[0], in.SAll[len(in.SAll)-1]
	point := func(s float64) r3.Vec {
		return r3.Add(n0, r3.Scale((s-s0)/(s1-s0), r3.Sub(n1, n0)))
	}

	lo, hi, sw, pierces, ok := submerged(point(s0).Z, point(s1).Z, s0, s1)
	if !ok {
		return res, nil
	}
	res.Waterline = pierces

	var zOf, rOf interp.PiecewiseLinear
	if err := zOf.Fit(in.S, in.Z); err != nil {
		return nil, fmt.Errorf("hydro: %w", err)
	}
	radius := make([]float64, len(in.D))
	floats.ScaleTo(radius, 0.5, in.D)
	if err := rOf.Fit(in.S, radius); err != nil {
		return nil, fmt.Errorf("hydro: %w", err)
	}

	// Submerged profile
	prof := []float64{lo}
	for _, s := range in.S {
		if s > lo && s < hi {
			prof = append(prof, s)
		}
	}
	prof = append(prof, hi)

	a := make([]float64, len(prof))
	r := make([]float64, len(prof))
	for i, s := range prof {
		a[i] = zOf.Predict(s)
		r[i] = rOf.Predict(s)
	}

	var vol, moment float64
	for i := 0; i+1 < len(prof); i++ {
		h := a[i+1] - a[i]
		v := frustum.Volume(r[i], r[i+1], h)
		vol += v
		moment += v * (a[i] + frustum.Centroid(r[i], r[i+1], h))
	}
	if vol == 0 {
		return res, nil
	}
	aCB := moment / vol

	// Back from the axial coordinate to a station
	var sOf interp.PiecewiseLinear
	if err := sOf.Fit(in.Z, in.S); err != nil {
		return nil, fmt.Errorf("hydro: %w", err)
	}
	sCB := sOf.Predict(aCB)

	res.DisplacedVolume = vol
	res.BuoyancyForce = vol * in.RhoWater * in.Gravity
	res.CenterOfBuoyancy = point(sCB)
	res.IdxCB = nearest(in.SAll, sCB)

	if res.Waterline {
		rw := rOf.Predict(sw)
		res.Awater = math.Pi * rw * rw
		res.Iwater = 0.25 * math.Pi * math.Pow(rw, 4)
	}

	rho := in.RhoWater
	rMax := floats.Max(r)
	res.AddedMass[0] = rho * vol
	res.AddedMass[1] = rho * vol
	res.AddedMass[2] = 0.5 * (8.0 / 3.0) * rho * math.Pow(rMax, 3)

	// (a - aCB)² r(a)² is a quartic on each frustum, which the 3 point
	// Gauss-Legendre rule integrates exactly
	var rot float64
	for i := 0; i+1 < len(prof); i++ {
		a0, a1, r0, r1 := a[i], a[i+1], r[i], r[i+1]
		if a1 == a0 {
			continue
		}
		f := func(x float64) float64 {
			rx := r0 + (r1-r0)*(x-a0)/(a1-a0)
			return (x - aCB) * (x - aCB) * rx * rx
		}
		rot += quad.Fixed(f, a0, a1, 3, quad.Legendre{}, 0)
	}
	res.AddedMass[3] = rho * math.Pi * rot
	res.AddedMass[4] = res.AddedMass[3]
	return res, nil
}

// submerged returns the station interval below the free surface given
// the end elevations of the member, and the station sw where the member
// meets the surface. An end lying on the surface counts as piercing it.
func submerged(e0, e1, s0, s1 float64) (lo, hi, sw float64, pierces, ok bool) {
	switch {
	case e0 >= 0 && e1 >= 0:
		return 0, 0, 0, false, false
	case e1 == 0:
		return s0, s1, s1, true, true
	case e0 == 0:
		return s0, s1, s0, true, true
	case e0 < 0 && e1 < 0:
		return s0, s1, 0, false, true
	}
	sw = s0 + (s1-s0)*e0/(e0-e1)
	if e0 < 0 {
		return s0, sw, sw, true, true
	}
	return sw, s1, sw, true, true
}

// nearest returns the index of the value of xs closest to x
func nearest(xs []float64, x float64) int {
	best := 0
	for i, v := range xs {
		if math.Abs(v-x) < math.Abs(xs[best]-x) {
			best = i
		}
	}
	return best
}
