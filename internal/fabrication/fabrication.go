// Package fabrication estimates steel fabrication times and costs for
// rolled shells, plates and stiffeners.
//
// Times are in minutes. Lengths and radii are in meters and thicknesses
// are converted to millimeters inside the empirical fits.
package fabrication

import "math"

// Rates convert fabrication work into cost
type Rates struct {
	Labor    float64 `json:"labor" toml:"labor"`       // USD/h
	Painting float64 `json:"painting" toml:"painting"` // USD/m²
}

// DefaultRates are typical shop rates
func DefaultRates() Rates {
	return Rates{Labor: 60, Painting: 14.4}
}

// LaborCost converts minutes of work into USD
func (r Rates) LaborCost(minutes float64) float64 {
	return minutes * r.Labor / 60
}

// PaintCost is the cost of painting a surface area
func (r Rates) PaintCost(area float64) float64 {
	return area * r.Painting
}

// Lowest plasma cutting speed used by the fit (m/min)
const minCuttingSpeed = 0.05

// CuttingTime is the plasma cutting time of a cut of the given length
// through a plate of thickness t
func CuttingTime(length, t float64) float64 {
	if length <= 0 || t <= 0 {
		return 0
	}
	speed := -0.180150943 + 41.03815215/(1e3*t)
	speed = math.Max(speed, minCuttingSpeed)
	return length / speed
}

// RollingTime is the time to roll a plate of thickness t to radius r.
// theta is the difficulty factor.
func RollingTime(theta, r, t float64) float64 {
	if r <= 0 || t <= 0 {
		return 0
	}
	return theta * math.Exp(6.8582513-4.527217/math.Sqrt(1e3*t)+0.009541996*math.Sqrt(2e3*r))
}

// RollingDifficulty returns the difficulty factor for rolling a conical
// segment. taper is the ratio of the smaller to the larger diameter and
// is 1 for a cylinder.
func RollingDifficulty(taper float64) float64 {
	return 4 - 3/(1+math.Exp(-5*(taper-0.75)))
}

// ButtWeldTime is the time of a full penetration weld of the given length
// through thickness t joining npieces with a total mass. theta is the
// preparation difficulty factor.
func ButtWeldTime(theta float64, npieces int, mass, length, t float64) float64 {
	return weldTime(theta, npieces, mass, length, t, 1.3e-3)
}

// FilletWeldTime is the time of a fillet weld of the given length and
// throat thickness t
func FilletWeldTime(theta float64, npieces int, mass, length, t float64) float64 {
	return weldTime(theta, npieces, mass, length, t, 0.3394)
}

func weldTime(theta float64, npieces int, mass, length, t, coef float64) float64 {
	if npieces <= 0 || mass <= 0 {
		return 0
	}
	prep := theta * math.Sqrt(float64(npieces)*mass)
	if length <= 0 || t <= 0 {
		return prep
	}
	return prep + coef*length*math.Pow(1e3*t, 1.9358)
}

// OutfittingCost is the cost of the secondary steel implied by an
// outfitting factor c applied to a primary mass
func OutfittingCost(unitCost, c, mass float64) float64 {
	if c <= 1 {
		return 0
	}
	return 1.5 * unitCost * (c - 1) * mass
}
