package section

import (
	"fmt"
	"strings"
)

// Feature identifies what a section record is made of. A record can carry
// several features when bands overlap.
type Feature uint8

const (
	Shell Feature = 1 << iota
	Bulkhead
	Stiffener
	Ballast
)

// Kind is the variant of a section record
type Kind int

const (
	KindShell Kind = iota
	KindBulkhead
	KindStiffener
	KindBallast
	KindCombined
)

func (k Kind) String() string {
	switch k {
	case KindShell:
		return "shell"
	case KindBulkhead:
		return "bulkhead"
	case KindStiffener:
		return "stiffener"
	case KindBallast:
		return "ballast"
	case KindCombined:
		return "combined"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (f Feature) String() string {
	var parts []string
	names := []struct {
		f    Feature
		name string
	}{{Shell, "shell"}, {Bulkhead, "bulkhead"}, {Stiffener, "stiffener"}, {Ballast, "ballast"}}
	for _, n := range names {
		if f&n.f != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Section holds the cross-sectional properties of one homogeneous axial
// interval. Values are never modified once stored in a Map; use the
// methods returning a new Section instead.
type Section struct {
	Features Feature

	// Host shell geometry
	D float64 // Outer diameter (m)
	T float64 // Wall thickness (m)

	A   float64 // Area (m²)
	Ixx float64 // Bending second moment of area (m⁴)
	Iyy float64 // Bending second moment of area (m⁴)
	Izz float64 // Polar moment of area (m⁴)

	Rho float64 // Density (kg/m³)
	E   float64 // Young's modulus (Pa)
	G   float64 // Shear modulus (Pa)

	// Non-structural mass carried by the interval (kg/m)
	AddedMass float64
}

// Increment is the contribution a feature adds on top of a host section
type Increment struct {
	A         float64
	Ixx       float64
	Iyy       float64
	Izz       float64
	AddedMass float64
}

// Kind reports the variant of the record
func (s Section) Kind() Kind {
	extra := s.Features &^ Shell
	switch extra {
	case 0:
		return KindShell
	case Bulkhead:
		return KindBulkhead
	case Stiffener:
		return KindStiffener
	case Ballast:
		return KindBallast
	}
	return KindCombined
}

// Superpose returns the section with a feature contribution added to it
func (s Section) Superpose(f Feature, inc Increment) Section {
	s.Features |= f
	s.A += inc.A
	s.Ixx += inc.Ixx
	s.Iyy += inc.Iyy
	s.Izz += inc.Izz
	s.AddedMass += inc.AddedMass
	return s
}

// LinearMass is the mass per unit length of the interval (kg/m)
func (s Section) LinearMass() float64 {
	return s.Rho*s.A + s.AddedMass
}

func (s Section) String() string {
	return fmt.Sprintf("%s{A=%.6g Ixx=%.6g Iyy=%.6g Izz=%.6g rho=%.6g}", s.Kind(), s.A, s.Ixx, s.Iyy, s.Izz, s.Rho)
}
