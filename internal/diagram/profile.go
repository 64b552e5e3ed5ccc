// Package diagram draws member profiles for the terminal and for image files.
package diagram

import (
	"sort"

	"github.com/alexiusacademia/gomember/internal/member"
	"github.com/alexiusacademia/gomember/internal/section"
)

// ProfileData holds what is needed to draw a member along its axis
type ProfileData struct {
	Name   string
	Height float64 // m

	// Axial positions of the interval bounds, from the base (m)
	X []float64

	// Per interval
	D          []float64 // Outer diameter (m)
	LinearMass []float64 // kg/m
	Kind       []section.Kind

	ZCG float64 // Axial center of gravity (m)

	// Axial position where the member crosses the still water line
	HasWaterline bool
	Waterline    float64
}

// NewProfileData collects the profile of an evaluated member
func NewProfileData(name string, res *member.Result) ProfileData {
	ns := res.Nodes
	h := res.Grid.Height
	data := ProfileData{
		Name:       name,
		Height:     h,
		X:          make([]float64, len(ns.SAll)),
		D:          append([]float64(nil), ns.D...),
		LinearMass: make([]float64, len(ns.D)),
		Kind:       append([]section.Kind(nil), ns.Kind...),
		ZCG:        res.Mass.ZCG,
	}
	for i, s := range ns.SAll {
		data.X[i] = s * h
	}
	for i := range data.LinearMass {
		data.LinearMass[i] = ns.Rho[i]*ns.A[i] + ns.AddedMass[i]
	}

	if n := len(ns.Nodes); n > 1 {
		z0, z1 := ns.Nodes[0].Z, ns.Nodes[n-1].Z
		if (z0 < 0) != (z1 < 0) && z0 != z1 {
			data.HasWaterline = true
			data.Waterline = h * z0 / (z0 - z1)
		}
	}
	return data
}

// interval returns the index of the interval holding axial position x
func (p ProfileData) interval(x float64) int {
	i := sort.SearchFloat64s(p.X, x)
	if i < len(p.X) && p.X[i] == x {
		i++
	}
	i--
	if i < 0 {
		i = 0
	}
	if i > len(p.D)-1 {
		i = len(p.D) - 1
	}
	return i
}

// sample evaluates a per-interval value at n evenly spaced axial positions
func (p ProfileData) sample(n int, v []float64) []float64 {
	out := make([]float64, n)
	for j := range out {
		x := (float64(j) + 0.5) / float64(n) * p.Height
		out[j] = v[p.interval(x)]
	}
	return out
}
