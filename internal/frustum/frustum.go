// Package frustum provides closed-form properties of conical frustums and
// frustum shells. Radii are at the base (rb) and at the top (rt); h is the
// height and centroids are measured from the base.
package frustum

import (
	"fmt"
	"math"
)

// Volume of a solid frustum
func Volume(rb, rt, h float64) float64 {
	return math.Pi * h / 3 * (rb*rb + rb*rt + rt*rt)
}

// Centroid of a solid frustum above its base
func Centroid(rb, rt, h float64) float64 {
	den := rb*rb + rb*rt + rt*rt
	if den == 0 {
		return 0.5 * h
	}
	return h / 4 * (rb*rb + 2*rb*rt + 3*rt*rt) / den
}

// ShellVolume is the material volume of a frustum shell of wall thickness t,
// where rb and rt are the outer radii
func ShellVolume(rb, rt, t, h float64) float64 {
	return Volume(rb, rt, h) - Volume(rb-t, rt-t, h)
}

// ShellCentroid of the shell material above its base
func ShellCentroid(rb, rt, t, h float64) float64 {
	vo := Volume(rb, rt, h)
	vi := Volume(rb-t, rt-t, h)
	if vo == vi {
		return 0.5 * h
	}
	return (vo*Centroid(rb, rt, h) - vi*Centroid(rb-t, rt-t, h)) / (vo - vi)
}

// OuterArea is the lateral surface area of a frustum
func OuterArea(rb, rt, h float64) float64 {
	return math.Pi * (rb + rt) * math.Hypot(h, rb-rt)
}

// RadiusAt returns the radius at height x above the base
func RadiusAt(rb, rt, h, x float64) float64 {
	if h == 0 {
		return rb
	}
	return rb + (rt-rb)*x/h
}

// PartialVolume is the volume of the lower part of the frustum up to height x
func PartialVolume(rb, rt, h, x float64) float64 {
	return Volume(rb, RadiusAt(rb, rt, h, x), x)
}

// FillHeight returns the height x at which the lower part of the frustum
// holds volume v. The volume is increasing in x so the root is bracketed
// by [0, h] and found by bisection.
func FillHeight(rb, rt, h, v float64) (float64, error) {
	full := Volume(rb, rt, h)
	switch {
	case v < 0:
		return 0, fmt.Errorf("fill volume %g is negative", v)
	case v == 0:
		return 0, nil
	case v > full*(1+1e-12):
		return 0, fmt.Errorf("fill volume %g exceeds the frustum volume %g", v, full)
	case v >= full:
		return h, nil
	}
	lo, hi := 0.0, h
	for i := 0; i < 200 && hi-lo > 1e-14*h; i++ {
		mid := 0.5 * (lo + hi)
		if PartialVolume(rb, rt, h, mid) < v {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi), nil
}
