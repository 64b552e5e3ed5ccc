package member

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/gomember/internal/fabrication"
	"github.com/alexiusacademia/gomember/internal/grid"
	"github.com/alexiusacademia/gomember/internal/material"
)

// Definition is a member as written in a JSON or TOML file. Materials are
// referred to by name.
type Definition struct {
	Name string `json:"name" toml:"name"`

	// Extra materials, added to the default library
	Materials []material.Material `json:"materials" toml:"materials"`

	S             []float64        `json:"s" toml:"s"`
	Height        float64          `json:"height" toml:"height"`
	OuterDiameter []float64        `json:"outer_diameter" toml:"outer_diameter"`
	Layers        []material.Layer `json:"layers" toml:"layers"`
	Outfitting    float64          `json:"outfitting_factor" toml:"outfitting_factor"`

	Bulkheads     BulkheadDefinition  `json:"bulkheads" toml:"bulkheads"`
	RingStiffener RingStiffeners      `json:"ring_stiffener" toml:"ring_stiffener"`
	Ballast       []BallastDefinition `json:"ballast" toml:"ballast"`

	AxialJoints []float64  `json:"axial_joints" toml:"axial_joints"`
	Joint0      [3]float64 `json:"joint0" toml:"joint0"`
	Joint1      [3]float64 `json:"joint1" toml:"joint1"`

	NRefine  int                `json:"n_refine" toml:"n_refine"`
	RhoWater float64            `json:"rho_water" toml:"rho_water"`
	Cost     *fabrication.Rates `json:"cost" toml:"cost"`
}

// BulkheadDefinition places bulkheads. A single thickness applies to all.
type BulkheadDefinition struct {
	Grid      []float64 `json:"grid" toml:"grid"`
	Thickness []float64 `json:"thickness" toml:"thickness"`
}

// BallastDefinition is one ballast compartment. A zero volume, or a water
// material, reserves the band for variable ballast.
type BallastDefinition struct {
	Grid     [2]float64 `json:"grid" toml:"grid"`
	Material string     `json:"material" toml:"material"`
	Volume   float64    `json:"volume" toml:"volume"`
}

// LoadFromFile loads a member definition from a JSON or TOML file
func LoadFromFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var def Definition
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks what can be checked without resolving materials
func (d *Definition) Validate() error {
	if len(d.S) < 2 {
		return &ValidationError{"member must have at least 2 stations"}
	}
	if d.Height <= 0 {
		return &ValidationError{"height must be positive"}
	}
	if len(d.OuterDiameter) != len(d.S) {
		return &ValidationError{msg: fmt.Sprintf("outer diameter needs %d values, got %d", len(d.S), len(d.OuterDiameter))}
	}
	if len(d.Layers) == 0 {
		return &ValidationError{"member must have at least one wall layer"}
	}
	if d.Outfitting != 0 && d.Outfitting < 1 {
		return &ValidationError{"outfitting factor must be at least 1"}
	}
	if nb, nt := len(d.Bulkheads.Grid), len(d.Bulkheads.Thickness); nt != nb && nt != 1 {
		return &ValidationError{msg: fmt.Sprintf("bulkheads need 1 or %d thickness values, got %d", nb, nt)}
	}
	if d.NRefine < 0 {
		return &ValidationError{"n_refine must not be negative"}
	}
	for i, b := range d.Ballast {
		if b.Material == "" {
			return &ValidationError{msg: fmt.Sprintf("ballast %d has no material", i+1)}
		}
	}
	return nil
}

// Library returns the default materials extended by the definition's own
func (d *Definition) Library() material.Library {
	lib := material.DefaultLibrary()
	for k, m := range material.NewLibrary(d.Materials...) {
		lib[k] = m
	}
	return lib
}

// Input resolves materials and layers into a numeric Input. rhoWater
// overrides the definition's water density when positive.
func (d *Definition) Input(lib material.Library, rhoWater float64) (*Input, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if rhoWater <= 0 {
		rhoWater = d.RhoWater
	}
	if rhoWater <= 0 {
		rhoWater = material.RhoSeawater
	}

	wall, err := lib.Homogenize(d.Layers, len(d.S))
	if err != nil {
		return nil, err
	}
	nSec := len(d.S) - 1
	outfitting := d.Outfitting
	if outfitting == 0 {
		outfitting = 1
	}
	of := make([]float64, nSec)
	for i := range of {
		of[i] = outfitting
	}

	in := &Input{
		Grid: &grid.Coarse{
			S:             d.S,
			Height:        d.Height,
			OuterDiameter: d.OuterDiameter,
			WallThickness: wall.Thickness,
			E:             wall.E,
			G:             wall.G,
			SigmaY:        wall.SigmaY,
			Rho:           wall.Rho,
			UnitCost:      wall.UnitCost,
			Outfitting:    of,
		},
		NRefine:     d.NRefine,
		Stiffeners:  d.RingStiffener,
		AxialJoints: d.AxialJoints,
		Joint0:      r3.Vec{X: d.Joint0[0], Y: d.Joint0[1], Z: d.Joint0[2]},
		Joint1:      r3.Vec{X: d.Joint1[0], Y: d.Joint1[1], Z: d.Joint1[2]},
		RhoWater:    rhoWater,
		Gravity:     material.Gravity,
		Rates:       fabrication.DefaultRates(),
	}
	if d.Cost != nil {
		in.Rates = *d.Cost
	}
	// Without joints the member stands vertically on the origin
	if in.Joint0 == in.Joint1 {
		in.Joint1 = r3.Add(in.Joint0, r3.Vec{Z: d.Height})
	}

	in.Bulkheads.Stations = d.Bulkheads.Grid
	in.Bulkheads.Thickness = d.Bulkheads.Thickness
	if len(d.Bulkheads.Thickness) == 1 && len(d.Bulkheads.Grid) != 1 {
		in.Bulkheads.Thickness = make([]float64, len(d.Bulkheads.Grid))
		for i := range in.Bulkheads.Thickness {
			in.Bulkheads.Thickness[i] = d.Bulkheads.Thickness[0]
		}
	}

	names := make([]string, len(d.Ballast))
	for i, b := range d.Ballast {
		names[i] = b.Material
	}
	density, unitCost, err := lib.Ballast(names, rhoWater)
	if err != nil {
		return nil, err
	}
	for i, b := range d.Ballast {
		vol := b.Volume
		if material.IsWater(b.Material) {
			vol = 0
		}
		in.Ballast = append(in.Ballast, BallastBand{
			Start:    b.Grid[0],
			End:      b.Grid[1],
			Density:  density[i],
			Volume:   vol,
			UnitCost: unitCost[i],
		})
	}
	return in, nil
}
