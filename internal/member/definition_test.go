package member

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gomember/internal/material"
)

const spar = `{
  "name": "spar",
  "materials": [{"name": "steel", "E": 200e9, "G": 79.3e9, "sigma_y": 345e6, "rho": 7850, "unit_cost": 2}],
  "s": [0, 0.25, 0.5, 0.75, 1],
  "height": 100,
  "outer_diameter": [10, 10, 10, 10, 10],
  "layers": [{"material": "steel", "thickness": [0.05, 0.05, 0.05, 0.05, 0.05]}],
  "outfitting_factor": 1.1,
  "bulkheads": {"grid": [0, 0.5, 1], "thickness": [0.05]},
  "ring_stiffener": {"web_height": 0.5, "web_thickness": 0.02, "flange_width": 0.2, "flange_thickness": 0.03, "spacing": 5},
  "ballast": [
    {"grid": [0, 0.1], "material": "slurry", "volume": 50},
    {"grid": [0.1, 0.3], "material": "seawater", "volume": 100}
  ],
  "axial_joints": [0.3],
  "joint0": [0, 0, -90],
  "joint1": [0, 0, 10],
  "n_refine": 1
}`

const sparTOML = `
name = "spar"
s = [0, 0.5, 1]
height = 50
outer_diameter = [8, 8, 6]

[[layers]]
material = "steel"
thickness = [0.04, 0.04, 0.03]

[bulkheads]
grid = [0, 1]
thickness = [0.04, 0.04]

[[ballast]]
grid = [0, 0.2]
material = "concrete"
volume = 20

[cost]
labor = 90
painting = 12
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	def, err := LoadFromFile(writeFile(t, "spar.json", spar))
	if err != nil {
		t.Fatal(err)
	}
	in, err := def.Input(def.Library(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if in.RhoWater != material.RhoSeawater {
		t.Errorf("rho water %g", in.RhoWater)
	}
	if !floats.Equal(in.Bulkheads.Thickness, []float64{0.05, 0.05, 0.05}) {
		t.Errorf("bulkhead thickness %v", in.Bulkheads.Thickness)
	}
	if !floats.Equal(in.Grid.WallThickness, []float64{0.05, 0.05, 0.05, 0.05}) {
		t.Errorf("wall thickness %v", in.Grid.WallThickness)
	}
	if in.Grid.UnitCost[0] != 2 {
		t.Errorf("file materials should replace the defaults: unit cost %g", in.Grid.UnitCost[0])
	}
	if len(in.Ballast) != 2 {
		t.Fatalf("%d ballast bands", len(in.Ballast))
	}
	if b := in.Ballast[0]; b.Density != 5000 || b.Volume != 50 {
		t.Errorf("slurry ballast %+v", b)
	}
	if b := in.Ballast[1]; b.Density != material.RhoSeawater || b.Volume != 0 || b.UnitCost != 0 {
		t.Errorf("water ballast %+v", b)
	}

	res, err := Evaluate(in)
	if err != nil {
		t.Fatal(err)
	}
	if res.Mass.Ballast.Mass != 5000*50 {
		t.Errorf("ballast mass %g", res.Mass.Ballast.Mass)
	}
	if !(res.Mass.Ballast.VariableCapacity > 0) {
		t.Error("water band should reserve variable ballast capacity")
	}
	if !(res.Hydro.DisplacedVolume > 0) || !res.Hydro.Waterline {
		t.Errorf("hydro %+v", res.Hydro)
	}
}

func TestLoadTOML(t *testing.T) {
	def, err := LoadFromFile(writeFile(t, "spar.toml", sparTOML))
	if err != nil {
		t.Fatal(err)
	}
	if def.Cost == nil || def.Cost.Labor != 90 || def.Cost.Painting != 12 {
		t.Fatalf("cost %+v", def.Cost)
	}
	in, err := def.Input(def.Library(), 1000)
	if err != nil {
		t.Fatal(err)
	}
	if in.RhoWater != 1000 {
		t.Errorf("rho water %g", in.RhoWater)
	}
	// No joints: vertical member standing on the origin
	if in.Joint1.Z != 50 {
		t.Errorf("joint1 %v", in.Joint1)
	}
	if !floats.EqualApprox(in.Grid.WallThickness, []float64{0.04, 0.035}, 1e-12) {
		t.Errorf("wall thickness %v", in.Grid.WallThickness)
	}
	if in.Grid.Outfitting[0] != 1 {
		t.Errorf("default outfitting %g", in.Grid.Outfitting[0])
	}
	res, err := Evaluate(in)
	if err != nil {
		t.Fatal(err)
	}
	// Standing above the water
	if res.Hydro.DisplacedVolume != 0 {
		t.Errorf("dry member displaces %g", res.Hydro.DisplacedVolume)
	}
}

func TestUnknownMaterial(t *testing.T) {
	def, err := LoadFromFile(writeFile(t, "spar.json", spar))
	if err != nil {
		t.Fatal(err)
	}
	def.Layers[0].Material = "unobtainium"
	if _, err := def.Input(def.Library(), 0); !errors.Is(err, material.ErrUnknownMaterial) {
		t.Errorf("got %v, want ErrUnknownMaterial", err)
	}
	def.Layers[0].Material = "steel"
	def.Ballast[0].Material = "lead"
	if _, err := def.Input(def.Library(), 0); !errors.Is(err, material.ErrUnknownMaterial) {
		t.Errorf("got %v, want ErrUnknownMaterial", err)
	}
}

func TestDefinitionValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(d *Definition)
	}{
		{"stations", func(d *Definition) { d.S = d.S[:1] }},
		{"height", func(d *Definition) { d.Height = 0 }},
		{"diameter", func(d *Definition) { d.OuterDiameter = d.OuterDiameter[:2] }},
		{"layers", func(d *Definition) { d.Layers = nil }},
		{"outfitting", func(d *Definition) { d.Outfitting = 0.5 }},
		{"bulkheads", func(d *Definition) { d.Bulkheads.Thickness = []float64{1, 1} }},
		{"refine", func(d *Definition) { d.NRefine = -1 }},
		{"ballast", func(d *Definition) { d.Ballast[0].Material = "" }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			def, err := LoadFromFile(writeFile(t, "spar.json", spar))
			if err != nil {
				t.Fatal(err)
			}
			test.modify(def)
			err = def.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("got %v, want a validation error", err)
			}
		})
	}
	if _, err := LoadFromFile(writeFile(t, "bad.json", "{")); err == nil {
		t.Error("expected a parse error")
	}
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
