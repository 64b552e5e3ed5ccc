package member

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/gomember/internal/section"
)

// pointAt maps a station onto the segment between the two joints
func pointAt(j0, j1 r3.Vec, s float64) r3.Vec {
	return r3.Add(j0, r3.Scale(s, r3.Sub(j1, j0)))
}

// Finish adds the axial joints to the map and resamples the member at
// every key. The input map is left unchanged; the map holding the joints
// is returned with the node set.
func Finish(m *section.Map, joints []float64, j0, j1 r3.Vec, zCG, height float64) (*section.Map, *NodeSet, error) {
	if !(height > 0) {
		return nil, nil, &ValidationError{msg: "height must be positive"}
	}
	if lo, hi := m.Span(); lo != 0 || hi != 1 {
		return nil, nil, fmt.Errorf("section map covers [%g, %g] instead of the whole member: %w", lo, hi, section.ErrOutOfRange)
	}
	out := m.Clone()
	for k, s := range joints {
		if s < 0 || s > 1 {
			return nil, nil, fmt.Errorf("axial joint %d at %g: %w", k+1, s, section.ErrOutOfRange)
		}
		if err := out.AddNode(s); err != nil {
			return nil, nil, fmt.Errorf("axial joint %d: %w", k+1, err)
		}
	}
	if err := out.Validate(); err != nil {
		return nil, nil, err
	}

	keys := out.Keys()
	vals := out.Values()
	n := len(keys) - 1
	ns := &NodeSet{
		SAll:      keys,
		Nodes:     make([]r3.Vec, len(keys)),
		Kind:      make([]section.Kind, n),
		D:         make([]float64, n),
		T:         make([]float64, n),
		A:         make([]float64, n),
		Ixx:       make([]float64, n),
		Iyy:       make([]float64, n),
		Izz:       make([]float64, n),
		Rho:       make([]float64, n),
		E:         make([]float64, n),
		G:         make([]float64, n),
		AddedMass: make([]float64, n),

		CenterOfMass: pointAt(j0, j1, zCG/height),
	}
	for i, s := range keys {
		ns.Nodes[i] = pointAt(j0, j1, s)
	}
	for i := 0; i < n; i++ {
		sec := vals[i]
		ns.Kind[i] = sec.Kind()
		ns.D[i] = sec.D
		ns.T[i] = sec.T
		ns.A[i] = sec.A
		ns.Ixx[i] = sec.Ixx
		ns.Iyy[i] = sec.Iyy
		ns.Izz[i] = sec.Izz
		ns.Rho[i] = sec.Rho
		ns.E[i] = sec.E
		ns.G[i] = sec.G
		ns.AddedMass[i] = sec.AddedMass
	}
	return out, ns, nil
}

// Length is the distance between the member ends
func (ns *NodeSet) Length() float64 {
	if len(ns.Nodes) < 2 {
		return 0
	}
	return r3.Norm(r3.Sub(ns.Nodes[len(ns.Nodes)-1], ns.Nodes[0]))
}
