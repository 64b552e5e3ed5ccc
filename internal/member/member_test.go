package member

import (
	"errors"
	"math"
	"sort"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/gomember/internal/fabrication"
	"github.com/alexiusacademia/gomember/internal/grid"
	"github.com/alexiusacademia/gomember/internal/inertia"
	"github.com/alexiusacademia/gomember/internal/section"
)

const npts = 16

var (
	testRates = fabrication.Rates{Labor: 120, Painting: 10}

	shellA   = 1.1 * math.Pi * 0.25 * (100 - 9.9*9.9)
	shellIxx = 1.1 * math.Pi * (1e4 - math.Pow(9.9, 4)) / 64

	testBulkheads = Bulkheads{
		Stations:  []float64{0.0, 0.08, 0.16, 0.48, 0.88, 1.0},
		Thickness: []float64{1, 1, 1, 1, 1, 1},
	}
	testStiffeners = RingStiffeners{
		WebThickness:    0.2,
		FlangeThickness: 0.3,
		WebHeight:       0.5,
		FlangeWidth:     1.0,
		Spacing:         20,
	}
	testBallast = []BallastBand{
		{Start: 0, End: 0.08, Density: 2e3, Volume: 10 * math.Pi, UnitCost: 2},
		{Start: 0.08, End: 0.16, Density: 4e3, Volume: 10 * math.Pi, UnitCost: 4},
		{Start: 0.16, End: 0.48, Density: 1e2, Volume: 0, UnitCost: 0},
	}
)

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// testGrid is a 100 m cylinder of diameter 10 m and wall thickness 5 cm
func testGrid() *grid.Refined {
	s := make([]float64, npts)
	floats.Span(s, 0, 1)
	z := make([]float64, npts)
	floats.ScaleTo(z, 100, s)
	return &grid.Refined{
		S:          s,
		Z:          z,
		D:          fill(npts, 10),
		Height:     100,
		T:          fill(npts-1, 0.05),
		E:          fill(npts-1, 1e6),
		G:          fill(npts-1, 1e5),
		Nu:         fill(npts-1, 4),
		SigmaY:     fill(npts-1, 3e8),
		Rho:        fill(npts-1, 1e3),
		UnitCost:   fill(npts-1, 1),
		Outfitting: fill(npts-1, 1.1),
	}
}

func shellMap(t *testing.T, g *grid.Refined) (*section.Map, Totals) {
	t.Helper()
	m, tot, err := BuildShell(g, testRates)
	if err != nil {
		t.Fatal(err)
	}
	return m, tot
}

// expectedKeys is the sorted union of the grid and the band edges
func expectedKeys(s []float64, bands [][2]float64) []float64 {
	keys := append([]float64(nil), s...)
	for _, b := range bands {
		keys = append(keys, b[0], b[1])
	}
	sort.Float64s(keys)
	out := keys[:1]
	for _, k := range keys[1:] {
		if k != out[len(out)-1] {
			out = append(out, k)
		}
	}
	return out
}

func inBands(s float64, bands [][2]float64) bool {
	for _, b := range bands {
		if s >= b[0] && s < b[1] {
			return true
		}
	}
	return false
}

func checkTensor(t *testing.T, name string, got, want inertia.Tensor) {
	t.Helper()
	if !floats.EqualApprox(got[:], want[:], 1e-9*math.Abs(want[0])) {
		t.Errorf("%s inertia %v, want %v", name, got, want)
	}
}

func TestShell(t *testing.T) {
	g := testGrid()
	m, tot := shellMap(t, g)

	mass := math.Pi * 0.25 * (100 - 9.9*9.9) * 1e3 * 1.1 * 100
	iax := 0.5 * mass * 0.25 * (100 + 9.9*9.9)
	ix := mass/12*(3*0.25*(100+9.9*9.9)+100*100) + mass*50*50

	if !scalar.EqualWithinRel(tot.Mass, mass, 1e-12) {
		t.Errorf("shell mass %g, want %g", tot.Mass, mass)
	}
	if !scalar.EqualWithinAbs(tot.ZCG, 50, 1e-9) {
		t.Errorf("shell z_cg %g", tot.ZCG)
	}
	checkTensor(t, "shell", tot.I, inertia.Tensor{ix, ix, iax})
	if tot.Cost <= 1e3 {
		t.Errorf("shell cost %g", tot.Cost)
	}

	if !floats.Equal(m.Keys(), g.S) {
		t.Fatalf("keys %v", m.Keys())
	}
	vals := m.Values()
	if vals[len(vals)-1] != nil {
		t.Fatal("closing key carries a section")
	}
	for i, v := range vals[:len(vals)-1] {
		if v.Kind() != section.KindShell {
			t.Errorf("record %d is %v", i, v.Kind())
		}
		if !scalar.EqualWithinRel(v.A, shellA, 1e-12) || !scalar.EqualWithinRel(v.Ixx, shellIxx, 1e-12) ||
			!scalar.EqualWithinRel(v.Iyy, shellIxx, 1e-12) || !scalar.EqualWithinRel(v.Izz, 2*shellIxx, 1e-12) {
			t.Errorf("record %d: %v", i, v)
		}
		if v.Rho != 1e3 || v.E != 1e6 || v.G != 1e5 {
			t.Errorf("record %d material: %v", i, v)
		}
	}
}

func TestShellTooThick(t *testing.T) {
	g := testGrid()
	g.T[3] = 6
	if _, _, err := BuildShell(g, testRates); err == nil {
		t.Fatal("expected an error for a wall thicker than the radius")
	}
}

func TestBulkheads(t *testing.T) {
	g := testGrid()
	m, _ := shellMap(t, g)
	out, tot, err := AddBulkheads(m, g, testBulkheads, testRates)
	if err != nil {
		t.Fatal(err)
	}

	bands := [][2]float64{{0, 0.01}, {0.99, 1}}
	for _, s := range testBulkheads.Stations[1:5] {
		bands = append(bands, [2]float64{s - 0.005, s + 0.005})
	}
	want := expectedKeys(g.S, bands)
	keys := out.Keys()
	if len(keys) != len(want) || !floats.EqualApprox(keys, want, 1e-12) {
		t.Fatalf("keys %v, want %v", keys, want)
	}

	diskA := 1.1 * math.Pi * 0.25 * 100
	diskI := 1.1 * math.Pi * 1e4 / 64
	vals := out.Values()
	for i, k := range keys[:len(keys)-1] {
		v := vals[i]
		wantA, wantI, kind := shellA, shellIxx, section.KindShell
		if inBands(k, bands) {
			wantA, wantI, kind = diskA, diskI, section.KindBulkhead
		}
		if v.Kind() != kind || !scalar.EqualWithinRel(v.A, wantA, 1e-12) || !scalar.EqualWithinRel(v.Ixx, wantI, 1e-12) ||
			!scalar.EqualWithinRel(v.Izz, 2*wantI, 1e-12) {
			t.Errorf("at %g: %v, want %v A=%g", k, v, kind, wantA)
		}
		if v.Rho != 1e3 || v.E != 1e6 || v.G != 1e5 {
			t.Errorf("at %g material: %v", k, v)
		}
	}

	// The shell map is untouched
	if m.Len() != npts {
		t.Errorf("input map changed to %d keys", m.Len())
	}

	nbulk := float64(len(testBulkheads.Stations))
	ri := 4.95
	mb := 1.1 * 1e3 * math.Pi * ri * ri
	if !scalar.EqualWithinRel(tot.Mass, nbulk*mb, 1e-12) {
		t.Errorf("bulkhead mass %g, want %g", tot.Mass, nbulk*mb)
	}
	if !scalar.EqualWithinRel(tot.ZCG, 100*floats.Sum(testBulkheads.Stations)/nbulk, 1e-12) {
		t.Errorf("bulkhead z_cg %g", tot.ZCG)
	}
	var I inertia.Tensor
	for _, s := range testBulkheads.Stations {
		I[0] += 0.25*mb*ri*ri + mb*(100*s)*(100*s)
	}
	I[1] = I[0]
	I[2] = nbulk * 0.5 * mb * ri * ri
	checkTensor(t, "bulkhead", tot.I, I)
	if tot.Cost <= 2e3 {
		t.Errorf("bulkhead cost %g", tot.Cost)
	}
}

func TestZeroThicknessBulkhead(t *testing.T) {
	g := testGrid()
	m, _ := shellMap(t, g)
	b := Bulkheads{Stations: []float64{0.37, 1}, Thickness: []float64{0, 0}}
	out, tot, err := AddBulkheads(m, g, b, testRates)
	if err != nil {
		t.Fatal(err)
	}
	keys := out.Keys()
	if len(keys) != npts+1 {
		t.Errorf("%d keys, want %d", len(keys), npts+1)
	}
	i := sort.SearchFloat64s(keys, 0.37)
	if i == len(keys) || keys[i] != 0.37 {
		t.Fatalf("station 0.37 is not a key: %v", keys)
	}
	for _, v := range out.Values()[:len(keys)-1] {
		if v.Kind() != section.KindShell {
			t.Errorf("zero thickness bulkhead changed a section: %v", v)
		}
	}
	if tot != (Totals{}) {
		t.Errorf("zero thickness bulkhead totals %+v", tot)
	}
}

func TestBulkheadErrors(t *testing.T) {
	g := testGrid()
	m, _ := shellMap(t, g)
	tests := []struct {
		name string
		b    Bulkheads
	}{
		{"outside", Bulkheads{Stations: []float64{1.2}, Thickness: []float64{1}}},
		{"lengths", Bulkheads{Stations: []float64{0.5, 0.6}, Thickness: []float64{1}}},
		{"negative", Bulkheads{Stations: []float64{0.5}, Thickness: []float64{-1}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, _, err := AddBulkheads(m, g, test.b, testRates); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

// stiffenerRadii returns the web outer, web inner and flange inner radii
func stiffenerRadii() (float64, float64, float64) {
	rwo := 0.5 * (10 - 2*0.05)
	rwi := rwo - 0.5
	return rwo, rwi, rwi - 0.3
}

func TestStiffeners(t *testing.T) {
	g := testGrid()
	m, _ := shellMap(t, g)
	out, tot, err := AddStiffeners(m, g, testStiffeners, Bulkheads{}, testRates)
	if err != nil {
		t.Fatal(err)
	}

	sStiff := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
	if !floats.EqualApprox(tot.Stations, sStiff, 1e-12) {
		t.Fatalf("stations %v", tot.Stations)
	}
	if tot.FlangeSpacingRatio != 0.1 {
		t.Errorf("flange spacing ratio %g", tot.FlangeSpacingRatio)
	}
	rwo, rwi, rfi := stiffenerRadii()
	if !scalar.EqualWithinAbs(tot.RadiusRatio, 1-rfi/5, 1e-12) {
		t.Errorf("radius ratio %g", tot.RadiusRatio)
	}

	a1 := math.Pi * (rwo*rwo - rwi*rwi)
	a2 := math.Pi * (rwi*rwi - rfi*rfi)
	m1 := a1 * 0.2 * 1e3
	m2 := a2 * 1.0 * 1e3
	ms := m1 + m2
	if !scalar.EqualWithinRel(tot.Mass, 5*ms, 1e-12) {
		t.Errorf("stiffener mass %g, want %g", tot.Mass, 5*ms)
	}
	if !scalar.EqualWithinAbs(tot.ZCG, 50, 1e-9) {
		t.Errorf("stiffener z_cg %g", tot.ZCG)
	}
	if tot.Cost <= 1e3 {
		t.Errorf("stiffener cost %g", tot.Cost)
	}

	isec := inertia.Cylinder(rwi, rwo, 0.2, m1).Add(inertia.Cylinder(rfi, rwi, 1.0, m2))
	var I inertia.Tensor
	for _, s := range sStiff {
		I[0] += isec[0] + ms*(100*s)*(100*s)
	}
	I[1] = I[0]
	I[2] = 5 * isec[2]
	checkTensor(t, "stiffener", tot.I, I)

	var bands [][2]float64
	for _, s := range sStiff {
		bands = append(bands, [2]float64{s - 0.005, s + 0.005})
	}
	want := expectedKeys(g.S, bands)
	keys := out.Keys()
	if len(keys) != len(want) || !floats.EqualApprox(keys, want, 1e-12) {
		t.Fatalf("keys %v, want %v", keys, want)
	}
	vals := out.Values()
	for i, k := range keys[:len(keys)-1] {
		v := vals[i]
		if inBands(k, bands) {
			if v.Kind() != section.KindStiffener || !scalar.EqualWithinRel(v.A, 0.2*a1+a2+shellA, 1e-12) {
				t.Errorf("at %g: %v", k, v)
			}
			if !(v.Ixx > shellIxx) || !(v.Iyy > shellIxx) || !(v.Izz > 2*shellIxx) {
				t.Errorf("at %g: stiffener adds no bending stiffness: %v", k, v)
			}
			continue
		}
		if v.Kind() != section.KindShell || !scalar.EqualWithinRel(v.A, shellA, 1e-12) {
			t.Errorf("at %g: %v", k, v)
		}
	}
}

func TestStiffenerDeconflict(t *testing.T) {
	g := testGrid()
	m, _ := shellMap(t, g)
	b := Bulkheads{Stations: []float64{0, 0.1, 1}, Thickness: []float64{1, 1, 1}}
	out, tot, err := AddStiffeners(m, g, testStiffeners, b, testRates)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualApprox(tot.Stations, []float64{0.08, 0.3, 0.5, 0.7, 0.9}, 1e-12) {
		t.Fatalf("stations %v", tot.Stations)
	}
	bands := [][2]float64{{0.075, 0.085}, {0.295, 0.305}, {0.495, 0.505}, {0.695, 0.705}, {0.895, 0.905}}
	want := expectedKeys(g.S, bands)
	if keys := out.Keys(); len(keys) != len(want) || !floats.EqualApprox(keys, want, 1e-12) {
		t.Fatalf("keys %v, want %v", keys, want)
	}
}

func TestStiffenerBetweenBulkheads(t *testing.T) {
	g := testGrid()
	m, _ := shellMap(t, g)
	// The first move below 0.3 lands on the bulkhead at 0.28
	b := Bulkheads{Stations: []float64{0.28, 0.3}, Thickness: []float64{1, 1}}
	_, tot, err := AddStiffeners(m, g, testStiffeners, b, testRates)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualApprox(tot.Stations, []float64{0.1, 0.26, 0.5, 0.7, 0.9}, 1e-12) {
		t.Fatalf("stations %v", tot.Stations)
	}
	for _, s := range tot.Stations {
		for _, bb := range bulkheadBands(g, b) {
			if s >= bb[0] && s <= bb[1] {
				t.Errorf("stiffener at %g lies on bulkhead %v", s, bb)
			}
		}
	}

	// No room below the base bulkhead, and the first step up lands on the next one
	rs := testStiffeners
	rs.Spacing = 2
	b = Bulkheads{Stations: []float64{0.005, 0.025}, Thickness: []float64{1, 1}}
	stations := rs.stations(g.Height, bulkheadBands(g, b))
	if !scalar.EqualWithinAbs(stations[0], 0.045, 1e-12) {
		t.Errorf("first stiffener at %g, want 0.045", stations[0])
	}
}

func TestStiffenerTooDeep(t *testing.T) {
	g := testGrid()
	m, _ := shellMap(t, g)
	rs := testStiffeners
	rs.WebHeight = 4.8
	if _, _, err := AddStiffeners(m, g, rs, Bulkheads{}, testRates); err == nil {
		t.Fatal("expected an error for a flange past the member axis")
	}
	rs = testStiffeners
	rs.Spacing = 0
	out, tot, err := AddStiffeners(m, g, rs, Bulkheads{}, testRates)
	if err != nil {
		t.Fatal(err)
	}
	if tot.Mass != 0 || out.Len() != m.Len() {
		t.Errorf("zero spacing placed stiffeners: %+v", tot)
	}
}

func TestBallast(t *testing.T) {
	g := testGrid()
	m, _ := shellMap(t, g)
	out, tot, err := AddBallast(m, g, testBallast)
	if err != nil {
		t.Fatal(err)
	}

	area := 0.25 * math.Pi * 9.9 * 9.9
	h := 10 * math.Pi / area
	cg := (2*0.5*h + 4*(8+0.5*h)) / 6
	mp := math.Pi * 6e4

	var I inertia.Tensor
	I[2] = 0.5 * mp * 0.25 * 9.9 * 9.9
	I[0] = mp*(3*0.25*9.9*9.9+h*h)/12 + mp/3*(0.5*h)*(0.5*h) + 2*mp/3*(8+0.5*h)*(8+0.5*h)
	I[1] = I[0]

	if !scalar.EqualWithinRel(tot.Mass, mp, 1e-12) {
		t.Errorf("ballast mass %g, want %g", tot.Mass, mp)
	}
	if !scalar.EqualWithinRel(tot.Cost, math.Pi*20e4, 1e-12) {
		t.Errorf("ballast cost %g", tot.Cost)
	}
	if !scalar.EqualWithinRel(tot.ZCG, cg, 1e-9) {
		t.Errorf("ballast z_cg %g, want %g", tot.ZCG, cg)
	}
	checkTensor(t, "ballast", tot.I, I)
	if !scalar.EqualWithinRel(tot.VariableCapacity, area*32, 1e-12) {
		t.Errorf("variable capacity %g, want %g", tot.VariableCapacity, area*32)
	}

	// The filled bands carry the ballast as distributed mass
	sec, ok := out.At(0.001)
	if !ok || sec.Kind() != section.KindBallast {
		t.Fatalf("no ballast record at the base: %v", sec)
	}
	if !scalar.EqualWithinRel(sec.AddedMass, 2e3*10*math.Pi/h, 1e-9) {
		t.Errorf("added mass %g", sec.AddedMass)
	}
	if sec, _ := out.At(0.2); sec.Kind() != section.KindShell || sec.AddedMass != 0 {
		t.Errorf("variable ballast band should stay empty: %v", sec)
	}
	var carried float64
	keys, vals := out.Keys(), out.Values()
	for i := 0; i+1 < len(keys); i++ {
		carried += vals[i].AddedMass * (keys[i+1] - keys[i]) * g.Height
	}
	if !scalar.EqualWithinRel(carried, mp, 1e-9) {
		t.Errorf("distributed ballast %g, want %g", carried, mp)
	}
}

func TestBallastOverfull(t *testing.T) {
	g := testGrid()
	m, _ := shellMap(t, g)
	bands := []BallastBand{{Start: 0, End: 0.01, Density: 1e3, Volume: 1e3}}
	if _, _, err := AddBallast(m, g, bands); err == nil {
		t.Fatal("expected an error for a volume larger than the band")
	}
	bands = []BallastBand{{Start: 0.5, End: 0.4, Density: 1e3, Volume: 1}}
	if _, _, err := AddBallast(m, g, bands); err == nil {
		t.Fatal("expected an error for an inverted band")
	}
}

func TestMassProperties(t *testing.T) {
	g := testGrid()
	m, shell := shellMap(t, g)
	m, bulk, err := AddBulkheads(m, g, testBulkheads, testRates)
	if err != nil {
		t.Fatal(err)
	}
	m, stiff, err := AddStiffeners(m, g, testStiffeners, testBulkheads, testRates)
	if err != nil {
		t.Fatal(err)
	}
	_, ballast, err := AddBallast(m, g, testBallast)
	if err != nil {
		t.Fatal(err)
	}
	mp := Aggregate(shell, bulk, stiff, ballast)

	mShell := math.Pi * 0.25 * (100 - 9.9*9.9) * 1e3 * 1.1 * 100
	ri := 4.95
	nbulk := float64(len(testBulkheads.Stations))
	mBulk := 1.1 * 1e3 * math.Pi * ri * ri
	cgBulk := 100 * floats.Sum(testBulkheads.Stations) / nbulk
	rwo, rwi, rfi := stiffenerRadii()
	mStiff := math.Pi*(rwo*rwo-rwi*rwi)*0.2*1e3 + math.Pi*(rwi*rwi-rfi*rfi)*1e3
	area := 0.25 * math.Pi * 9.9 * 9.9
	h := 10 * math.Pi / area
	cgPerm := (2*0.5*h + 4*(8+0.5*h)) / 6
	mPerm := math.Pi * 6e4

	mTot := mShell + nbulk*mBulk + 5*mStiff + mPerm
	if !scalar.EqualWithinRel(mp.TotalMass, mTot, 1e-12) {
		t.Errorf("total mass %g, want %g", mp.TotalMass, mTot)
	}
	if !scalar.EqualWithinRel(mp.StructuralMass, mTot-mPerm, 1e-12) {
		t.Errorf("structural mass %g", mp.StructuralMass)
	}
	zcg := (50*(mShell+5*mStiff) + nbulk*mBulk*cgBulk + mPerm*cgPerm) / mTot
	if !scalar.EqualWithinRel(mp.ZCG, zcg, 1e-9) {
		t.Errorf("z_cg %g, want %g", mp.ZCG, zcg)
	}
	if !scalar.EqualWithinRel(mp.TotalCost, shell.Cost+bulk.Cost+stiff.Cost+ballast.Cost, 1e-12) {
		t.Errorf("total cost %g", mp.TotalCost)
	}
	if !scalar.EqualWithinRel(mp.StructuralCost, shell.Cost+bulk.Cost+stiff.Cost, 1e-12) {
		t.Errorf("structural cost %g", mp.StructuralCost)
	}
	sum := shell.I.Add(bulk.I).Add(stiff.I).Add(ballast.I)
	checkTensor(t, "total", mp.I, sum)
}

func TestOverlappingFeatures(t *testing.T) {
	g := testGrid()
	base, _ := shellMap(t, g)
	// Bulkhead band [0.487, 0.497] and stiffener band [0.495, 0.505]
	b := Bulkheads{Stations: []float64{0.492}, Thickness: []float64{1}}
	rs := testStiffeners
	rs.Spacing = 100

	m1, bulk, err := AddBulkheads(base, g, b, testRates)
	if err != nil {
		t.Fatal(err)
	}
	m1, stiff, err := AddStiffeners(m1, g, rs, b, testRates)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualApprox(stiff.Stations, []float64{0.5}, 1e-12) {
		t.Fatalf("stiffener moved to %v", stiff.Stations)
	}

	// Other way round
	m2, _, err := AddStiffeners(base, g, rs, b, testRates)
	if err != nil {
		t.Fatal(err)
	}
	m2, _, err = AddBulkheads(m2, g, b, testRates)
	if err != nil {
		t.Fatal(err)
	}

	rwo, rwi, rfi := stiffenerRadii()
	ring := math.Pi*(rwo*rwo-rwi*rwi)*0.2 + math.Pi*(rwi*rwi-rfi*rfi)
	disk := 1.1 * math.Pi * 0.25 * 9.9 * 9.9
	for _, m := range []*section.Map{m1, m2} {
		sec, ok := m.At(0.496)
		if !ok {
			t.Fatal("no record in the overlap")
		}
		if sec.Kind() != section.KindCombined {
			t.Errorf("overlap is %v", sec.Kind())
		}
		if !scalar.EqualWithinRel(sec.A, shellA+disk+ring, 1e-12) {
			t.Errorf("overlap A %g, want %g", sec.A, shellA+disk+ring)
		}
		if err := m.Validate(); err != nil {
			t.Fatal(err)
		}
	}
	if !floats.Equal(m1.Keys(), m2.Keys()) {
		t.Errorf("keys depend on the insertion order: %v != %v", m1.Keys(), m2.Keys())
	}

	mp := Aggregate(Totals{}, bulk, stiff, BallastTotals{})
	if !scalar.EqualWithinRel(mp.StructuralMass, bulk.Mass+stiff.Mass, 1e-12) {
		t.Errorf("overlap lost mass: %g != %g + %g", mp.StructuralMass, bulk.Mass, stiff.Mass)
	}
}

func TestNodalFinish(t *testing.T) {
	g := testGrid()
	m, _ := shellMap(t, g)
	joints := []float64{0.44, 0.55, 0.66}
	j0 := r3.Vec{X: 20, Y: 10, Z: -30}
	j1 := r3.Vec{X: 25, Y: 10, Z: 15}
	out, ns, err := Finish(m, joints, j0, j1, 40, 100)
	if err != nil {
		t.Fatal(err)
	}

	want := expectedKeys(g.S, [][2]float64{{0.44, 0.55}, {0.66, 0.66}})
	if !floats.EqualApprox(ns.SAll, want, 1e-12) || len(ns.SAll) != npts+3 {
		t.Fatalf("s_all %v, want %v", ns.SAll, want)
	}
	if !floats.Equal(out.Keys(), ns.SAll) {
		t.Error("map keys and s_all differ")
	}
	com := ns.CenterOfMass
	if !floats.EqualApprox([]float64{com.X, com.Y, com.Z}, []float64{22, 10, -12}, 1e-12) {
		t.Errorf("center of mass %v", com)
	}
	for i, s := range ns.SAll {
		p := ns.Nodes[i]
		if !scalar.EqualWithinAbs(p.X, 20+5*s, 1e-12) || !scalar.EqualWithinAbs(p.Y, 10, 1e-12) || !scalar.EqualWithinAbs(p.Z, -30+45*s, 1e-12) {
			t.Errorf("node %d at %v", i, p)
		}
	}
	n := len(ns.SAll) - 1
	checks := []struct {
		name string
		got  []float64
		want float64
	}{
		{"A", ns.A, shellA},
		{"Ixx", ns.Ixx, shellIxx},
		{"Iyy", ns.Iyy, shellIxx},
		{"Izz", ns.Izz, 2 * shellIxx},
		{"rho", ns.Rho, 1e3},
		{"E", ns.E, 1e6},
		{"G", ns.G, 1e5},
	}
	for _, c := range checks {
		if len(c.got) != n || !floats.EqualApprox(c.got, fill(n, c.want), 1e-9*c.want) {
			t.Errorf("section %s = %v", c.name, c.got)
		}
	}
	if !scalar.EqualWithinRel(ns.Length(), math.Hypot(5, 45), 1e-12) {
		t.Errorf("length %g", ns.Length())
	}

	if _, _, err := Finish(m, []float64{1.5}, j0, j1, 40, 100); err == nil {
		t.Error("expected an error for a joint outside the member")
	}

	partial := section.NewMap()
	if err := partial.AddSection(0, 0.5, section.NewTube(10, 0.05, 1, 1e3, 1e6, 1e5)); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Finish(partial, nil, j0, j1, 40, 100); !errors.Is(err, section.ErrOutOfRange) {
		t.Errorf("got %v, want ErrOutOfRange for a map covering half the member", err)
	}
	if _, _, err := Finish(section.NewMap(), nil, j0, j1, 40, 100); !errors.Is(err, section.ErrOutOfRange) {
		t.Errorf("got %v, want ErrOutOfRange for an empty map", err)
	}
}

func testInput() *Input {
	return &Input{
		Grid: &grid.Coarse{
			S:             []float64{0, 0.2, 0.4, 0.6, 0.8, 1},
			Height:        100,
			OuterDiameter: fill(6, 10),
			WallThickness: fill(5, 0.05),
			E:             fill(5, 1e6),
			G:             fill(5, 1e5),
			SigmaY:        fill(5, 3e8),
			Rho:           fill(5, 1e3),
			UnitCost:      fill(5, 1),
			Outfitting:    fill(5, 1.1),
		},
		NRefine:     2,
		Bulkheads:   testBulkheads,
		Stiffeners:  testStiffeners,
		Ballast:     testBallast,
		AxialJoints: []float64{0.44, 0.55, 0.66},
		Joint0:      r3.Vec{X: 20, Y: 10, Z: -30},
		Joint1:      r3.Vec{X: 25, Y: 10, Z: 15},
		RhoWater:    1025,
		Rates:       testRates,
	}
}

func TestEvaluate(t *testing.T) {
	res, err := Evaluate(testInput())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Grid.S) != npts {
		t.Fatalf("refined grid has %d stations", len(res.Grid.S))
	}
	// Each bulkhead adds two keys except the end ones, each stiffener two,
	// the fill tops of the two permanent ballast bands one each and the
	// start of the second band one more
	nbulk := len(testBulkheads.Stations)
	want := npts + 3 + 2*nbulk - 2 + 2*5 + 3
	if got := len(res.Nodes.SAll); got != want {
		t.Errorf("s_all has %d stations, want %d", got, want)
	}
	if err := res.Sections.Validate(); err != nil {
		t.Fatal(err)
	}

	mp := res.Mass
	parts := mp.Shell.Mass + mp.Bulkhead.Mass + mp.Stiffener.Mass
	if !scalar.EqualWithinRel(mp.StructuralMass, parts, 1e-12) {
		t.Errorf("structural mass %g != %g", mp.StructuralMass, parts)
	}
	if !scalar.EqualWithinRel(mp.TotalMass, parts+mp.Ballast.Mass, 1e-12) {
		t.Errorf("total mass %g", mp.TotalMass)
	}

	// The member runs from z=-30 to z=15 so it pierces the surface
	hr := res.Hydro
	if !hr.Waterline || !(hr.DisplacedVolume > 0) {
		t.Fatalf("hydro %+v", hr)
	}
	// Axial lengths follow the grid height, the joints only orient the member
	wetLength := 100.0 * 30 / 45
	if !scalar.EqualWithinRel(hr.DisplacedVolume, math.Pi*25*wetLength, 1e-9) {
		t.Errorf("displaced volume %g, want %g", hr.DisplacedVolume, math.Pi*25*wetLength)
	}
	if !scalar.EqualWithinAbs(hr.CenterOfBuoyancy.Z, -15, 1e-9) {
		t.Errorf("center of buoyancy %v", hr.CenterOfBuoyancy)
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	in := testInput()
	in.Grid.S[2] = 0.1
	if _, err := Evaluate(in); err == nil {
		t.Error("expected an error for a non-increasing grid")
	}
	in = testInput()
	in.AxialJoints = []float64{-0.1}
	if _, err := Evaluate(in); err == nil {
		t.Error("expected an error for a joint below the base")
	}
	if _, err := Evaluate(&Input{}); err == nil {
		t.Error("expected an error for a missing grid")
	}
}
