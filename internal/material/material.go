package material

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Physical constants shared by the member and hydrostatic models

const (
	// Gravity is the standard gravitational acceleration (m/s²)
	Gravity = 9.80633

	// RhoSeawater is the default seawater density (kg/m³)
	RhoSeawater = 1025.0

	// Steel defaults used when a definition does not provide a material table
	SteelE        = 200e9  // Pa
	SteelG        = 79.3e9 // Pa
	SteelSigmaY   = 345e6  // Pa
	SteelRho      = 7850.0 // kg/m³
	SteelUnitCost = 0.9    // USD/kg
)

// ErrUnknownMaterial is returned when a label is not found in a Library
var ErrUnknownMaterial = errors.New("unknown material")

// Material holds isotropic properties of a structural or ballast material
type Material struct {
	Name     string  `json:"name" toml:"name"`
	E        float64 `json:"E" toml:"E"`                 // Young's modulus (Pa)
	G        float64 `json:"G" toml:"G"`                 // Shear modulus (Pa)
	SigmaY   float64 `json:"sigma_y" toml:"sigma_y"`     // Yield stress (Pa)
	Rho      float64 `json:"rho" toml:"rho"`             // Density (kg/m³)
	UnitCost float64 `json:"unit_cost" toml:"unit_cost"` // USD/kg
}

// Nu returns the Poisson ratio implied by the isotropic relation G = E/(2(1+ν)).
// A zero shear modulus gives zero.
func (m Material) Nu() float64 {
	return PoissonRatio(m.E, m.G)
}

// PoissonRatio computes ν = E/(2G) - 1
func PoissonRatio(e, g float64) float64 {
	if g == 0 {
		return 0
	}
	return 0.5*e/g - 1
}

// Library is a set of materials keyed by lower-case name
type Library map[string]Material

// NewLibrary indexes the given materials by name
func NewLibrary(mats ...Material) Library {
	lib := make(Library, len(mats))
	for _, m := range mats {
		lib[strings.ToLower(strings.TrimSpace(m.Name))] = m
	}
	return lib
}

// DefaultLibrary returns the materials available when a definition carries none
func DefaultLibrary() Library {
	return NewLibrary(
		Material{Name: "steel", E: SteelE, G: SteelG, SigmaY: SteelSigmaY, Rho: SteelRho, UnitCost: SteelUnitCost},
		Material{Name: "slurry", E: 1e9, G: 1e8, SigmaY: 1e7, Rho: 5000, UnitCost: 0.1},
		Material{Name: "concrete", E: 30e9, G: 12.5e9, SigmaY: 30e6, Rho: 2400, UnitCost: 0.15},
	)
}

// Lookup finds a material by name, case-insensitively
func (lib Library) Lookup(name string) (Material, error) {
	m, ok := lib[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Material{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownMaterial, name, strings.Join(lib.Names(), ", "))
	}
	return m, nil
}

// Names lists the library entries in alphabetical order
func (lib Library) Names() []string {
	names := make([]string, 0, len(lib))
	for k := range lib {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// IsWater reports whether a ballast label means the surrounding water
func IsWater(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "seawater", "water", "freshwater":
		return true
	}
	return false
}

// Ballast resolves the density and unit cost of each ballast band.
// Water ballast takes rhoWater and costs nothing.
func (lib Library) Ballast(names []string, rhoWater float64) (density, unitCost []float64, err error) {
	density = make([]float64, len(names))
	unitCost = make([]float64, len(names))
	for i, name := range names {
		if IsWater(name) {
			density[i] = rhoWater
			continue
		}
		m, err := lib.Lookup(name)
		if err != nil {
			return nil, nil, fmt.Errorf("ballast %d: %w", i+1, err)
		}
		density[i] = m.Rho
		unitCost[i] = m.UnitCost
	}
	return density, unitCost, nil
}
