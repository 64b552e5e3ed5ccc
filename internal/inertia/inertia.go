// Package inertia handles mass moments of inertia of member parts.
package inertia

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Tensor holds the six independent components of a mass moment of inertia
// tensor in the order Ixx, Iyy, Izz, Ixy, Ixz, Iyz (kg·m²). The member
// axis is z.
type Tensor [6]float64

// Cylinder returns the inertia of a hollow cylinder of mass m about its
// own centroid
func Cylinder(ri, ro, h, m float64) Tensor {
	r2 := ri*ri + ro*ro
	ixx := m / 12 * (3*r2 + h*h)
	return Tensor{ixx, ixx, 0.5 * m * r2, 0, 0, 0}
}

// Add sums two tensors
func (t Tensor) Add(o Tensor) Tensor {
	for i := range t {
		t[i] += o[i]
	}
	return t
}

// Scale multiplies every component by f
func (t Tensor) Scale(f float64) Tensor {
	for i := range t {
		t[i] *= f
	}
	return t
}

// AxialShift moves a tensor of mass m from its centroid to a point at
// distance z along the member axis
func (t Tensor) AxialShift(m, z float64) Tensor {
	return t.ParallelAxis(m, r3.Vec{Z: z})
}

// ParallelAxis transports a tensor of mass m by the offset r between its
// centroid and the new reference point
func (t Tensor) ParallelAxis(m float64, r r3.Vec) Tensor {
	t[0] += m * (r.Y*r.Y + r.Z*r.Z)
	t[1] += m * (r.X*r.X + r.Z*r.Z)
	t[2] += m * (r.X*r.X + r.Y*r.Y)
	t[3] -= m * r.X * r.Y
	t[4] -= m * r.X * r.Z
	t[5] -= m * r.Y * r.Z
	return t
}

// Sym returns the full symmetric 3x3 matrix
func (t Tensor) Sym() *mat.SymDense {
	return mat.NewSymDense(3, []float64{
		t[0], t[3], t[4],
		t[3], t[1], t[5],
		t[4], t[5], t[2],
	})
}

// Principal returns the principal moments of inertia in ascending order
func (t Tensor) Principal() ([]float64, error) {
	var es mat.EigenSym
	if ok := es.Factorize(t.Sym(), false); !ok {
		return nil, errors.New("inertia tensor eigen decomposition failed")
	}
	return es.Values(nil), nil
}

func (t Tensor) String() string {
	return fmt.Sprintf("[Ixx=%.6g Iyy=%.6g Izz=%.6g Ixy=%.6g Ixz=%.6g Iyz=%.6g]", t[0], t[1], t[2], t[3], t[4], t[5])
}
