package member

// Aggregate combines the category totals. The structural figures exclude
// the ballast.
func Aggregate(shell, bulkhead Totals, stiffener StiffenerTotals, ballast BallastTotals) MassProperties {
	mp := MassProperties{
		Shell:     shell,
		Bulkhead:  bulkhead,
		Stiffener: stiffener,
		Ballast:   ballast,
	}

	var moment float64
	for _, t := range []Totals{shell, bulkhead, stiffener.Totals} {
		mp.StructuralMass += t.Mass
		mp.StructuralCost += t.Cost
		moment += t.Mass * t.ZCG
		mp.I = mp.I.Add(t.I)
	}
	mp.TotalMass = mp.StructuralMass + ballast.Mass
	mp.TotalCost = mp.StructuralCost + ballast.Cost
	moment += ballast.Mass * ballast.ZCG
	mp.I = mp.I.Add(ballast.I)

	if mp.TotalMass > 0 {
		mp.ZCG = moment / mp.TotalMass
	}
	return mp
}
