package material

import "fmt"

// Layer is one material layer of a shell wall, with its thickness given
// at each coarse station (m)
type Layer struct {
	Material  string    `json:"material" toml:"material"`
	Thickness []float64 `json:"thickness" toml:"thickness"`
}

// Wall holds the homogenized wall properties per coarse segment
type Wall struct {
	Thickness []float64
	E         []float64
	G         []float64
	SigmaY    []float64
	Rho       []float64
	UnitCost  []float64
}

// Homogenize mixes the layers of a wall into one equivalent material per
// coarse segment.
//
// Segment thickness of a layer is the mean of its two nodal values. With
// volume fractions v:
//   - density is mass weighted:           Σ ρ v
//   - E, G and σy use Voigt-Reuss-Hill:   ½Σ x v + ½/Σ(v/x)
//   - unit cost is mass-cost weighted:    Σ ρ c v / Σ ρ v
func (lib Library) Homogenize(layers []Layer, nStations int) (*Wall, error) {
	if nStations < 2 {
		return nil, fmt.Errorf("need at least 2 stations, got %d", nStations)
	}
	if len(layers) == 0 {
		return nil, fmt.Errorf("wall must have at least one layer")
	}

	mats := make([]Material, len(layers))
	for i, l := range layers {
		if len(l.Thickness) != nStations {
			return nil, fmt.Errorf("layer %d (%s): %d thickness values for %d stations", i+1, l.Material, len(l.Thickness), nStations)
		}
		m, err := lib.Lookup(l.Material)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i+1, err)
		}
		mats[i] = m
	}

	nSec := nStations - 1
	w := &Wall{
		Thickness: make([]float64, nSec),
		E:         make([]float64, nSec),
		G:         make([]float64, nSec),
		SigmaY:    make([]float64, nSec),
		Rho:       make([]float64, nSec),
		UnitCost:  make([]float64, nSec),
	}

	v := make([]float64, len(layers))
	for k := 0; k < nSec; k++ {
		var total float64
		for i, l := range layers {
			v[i] = 0.5 * (l.Thickness[k] + l.Thickness[k+1])
			if v[i] < 0 {
				return nil, fmt.Errorf("layer %d has negative thickness at segment %d", i+1, k+1)
			}
			total += v[i]
		}
		w.Thickness[k] = total
		if total == 0 {
			continue
		}

		var rho, rhoCost float64
		for i := range v {
			f := v[i] / total
			rho += mats[i].Rho * f
			rhoCost += mats[i].Rho * mats[i].UnitCost * f
		}
		w.Rho[k] = rho
		if rho > 0 {
			w.UnitCost[k] = rhoCost / rho
		}
		w.E[k] = hill(v, total, mats, func(m Material) float64 { return m.E })
		w.G[k] = hill(v, total, mats, func(m Material) float64 { return m.G })
		w.SigmaY[k] = hill(v, total, mats, func(m Material) float64 { return m.SigmaY })
	}
	return w, nil
}

// hill is the Voigt-Reuss-Hill average of one property
func hill(v []float64, total float64, mats []Material, prop func(Material) float64) float64 {
	var voigt, reuss float64
	for i := range v {
		if v[i] == 0 {
			continue
		}
		f := v[i] / total
		x := prop(mats[i])
		voigt += f * x
		if x == 0 {
			// A zero-stiffness layer makes the Reuss bound zero
			reuss = -1
			continue
		}
		if reuss >= 0 {
			reuss += f / x
		}
	}
	if reuss <= 0 {
		return 0.5 * voigt
	}
	return 0.5*voigt + 0.5/reuss
}
