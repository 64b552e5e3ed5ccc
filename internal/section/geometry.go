package section

import "math"

// NewTube builds the shell record of a circular tube of outer diameter d
// and wall thickness t. Properties are scaled by the outfitting factor.
func NewTube(d, t, outfitting, rho, e, g float64) Section {
	di := d - 2*t
	ixx := outfitting * math.Pi / 64 * (math.Pow(d, 4) - math.Pow(di, 4))
	return Section{
		Features: Shell,
		D:        d,
		T:        t,
		A:        outfitting * math.Pi / 4 * (d*d - di*di),
		Ixx:      ixx,
		Iyy:      ixx,
		Izz:      2 * ixx,
		Rho:      rho,
		E:        e,
		G:        g,
	}
}

// InnerDiameter of the host shell
func (s Section) InnerDiameter() float64 {
	return s.D - 2*s.T
}

// Disk is the contribution of a solid plate filling a circle of diameter d
func Disk(d, outfitting float64) Increment {
	ixx := outfitting * math.Pi / 64 * math.Pow(d, 4)
	return Increment{
		A:   outfitting * math.Pi / 4 * d * d,
		Ixx: ixx,
		Iyy: ixx,
		Izz: 2 * ixx,
	}
}

// Ring is the contribution of an annulus between radii ri and ro, smeared
// over its band by the fraction f (a web of thickness tw inside a band of
// width wf has f = tw/wf)
func Ring(ri, ro, f float64) Increment {
	ixx := f * math.Pi / 4 * (math.Pow(ro, 4) - math.Pow(ri, 4))
	return Increment{
		A:   f * math.Pi * (ro*ro - ri*ri),
		Ixx: ixx,
		Iyy: ixx,
		Izz: 2 * ixx,
	}
}

// Add combines two increments
func (inc Increment) Add(o Increment) Increment {
	return Increment{
		A:         inc.A + o.A,
		Ixx:       inc.Ixx + o.Ixx,
		Iyy:       inc.Iyy + o.Iyy,
		Izz:       inc.Izz + o.Izz,
		AddedMass: inc.AddedMass + o.AddedMass,
	}
}
