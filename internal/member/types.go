// Package member assembles the section map of a tubular member and
// computes its mass, inertia, cost, nodal and hydrostatic properties.
package member

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/gomember/internal/fabrication"
	"github.com/alexiusacademia/gomember/internal/grid"
	"github.com/alexiusacademia/gomember/internal/hydro"
	"github.com/alexiusacademia/gomember/internal/inertia"
	"github.com/alexiusacademia/gomember/internal/section"
)

// Bulkheads are solid plates closing the member at the given stations
type Bulkheads struct {
	Stations  []float64 // Non-dimensional stations in [0, 1]
	Thickness []float64 // Plate thickness per station (m)
}

// RingStiffeners describes the T-shaped ring stiffeners spread along the
// member at a constant spacing. A zero spacing means no stiffeners.
type RingStiffeners struct {
	WebHeight       float64 `json:"web_height" toml:"web_height"`
	WebThickness    float64 `json:"web_thickness" toml:"web_thickness"`
	FlangeWidth     float64 `json:"flange_width" toml:"flange_width"`
	FlangeThickness float64 `json:"flange_thickness" toml:"flange_thickness"`
	Spacing         float64 `json:"spacing" toml:"spacing"`
}

// BallastBand is a ballast compartment between two stations. A zero
// volume marks variable (water) ballast that only reserves capacity.
type BallastBand struct {
	Start    float64
	End      float64
	Density  float64 // kg/m³
	Volume   float64 // m³
	UnitCost float64 // USD/kg
}

// Input is the numeric description of one member evaluation
type Input struct {
	Grid    *grid.Coarse
	NRefine int

	Bulkheads   Bulkheads
	Stiffeners  RingStiffeners
	Ballast     []BallastBand
	AxialJoints []float64

	Joint0 r3.Vec // Base end (s = 0)
	Joint1 r3.Vec // Tip end (s = 1)

	RhoWater float64
	Gravity  float64
	Rates    fabrication.Rates

	// Log receives stage summaries at debug level. nil uses the standard logger.
	Log logrus.FieldLogger
}

// Totals are the mass properties of one category of parts. Inertia is
// about the member base.
type Totals struct {
	Mass float64        // kg
	ZCG  float64        // Axial center of gravity above the base (m)
	I    inertia.Tensor // kg·m²
	Cost float64        // USD
}

// add accumulates a part of mass m with centroid z into the totals.
// ZCG holds the first moment until finish is called.
func (t *Totals) add(m, z float64, i inertia.Tensor, cost float64) {
	t.Mass += m
	t.ZCG += m * z
	t.I = t.I.Add(i)
	t.Cost += cost
}

func (t *Totals) finish() {
	if t.Mass > 0 {
		t.ZCG /= t.Mass
	} else {
		t.ZCG = 0
	}
}

// StiffenerTotals adds the geometric ratios of the ring stiffeners
type StiffenerTotals struct {
	Totals
	Stations           []float64 // Stiffener centers after moving them off bulkheads
	FlangeSpacingRatio float64   // Flange width over half the spacing
	RadiusRatio        float64   // 1 - flange inner radius / shell outer radius, largest value
}

// BallastTotals adds the capacity left for variable ballast
type BallastTotals struct {
	Totals
	VariableCapacity float64 // m³
}

// MassProperties combines the category totals
type MassProperties struct {
	Shell     Totals
	Bulkhead  Totals
	Stiffener StiffenerTotals
	Ballast   BallastTotals

	StructuralMass float64
	TotalMass      float64
	ZCG            float64
	I              inertia.Tensor
	StructuralCost float64
	TotalCost      float64
}

// NodeSet is the member resampled at every key of its section map
type NodeSet struct {
	SAll  []float64
	Nodes []r3.Vec

	// Per interval [SAll[i], SAll[i+1])
	Kind      []section.Kind
	D         []float64
	T         []float64
	A         []float64
	Ixx       []float64
	Iyy       []float64
	Izz       []float64
	Rho       []float64
	E         []float64
	G         []float64
	AddedMass []float64

	CenterOfMass r3.Vec
}

// Result gathers everything an evaluation produces
type Result struct {
	Grid     *grid.Refined
	Sections *section.Map
	Mass     MassProperties
	Nodes    *NodeSet
	Hydro    *hydro.Result
}

// ValidationError represents a member validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
