package member

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/alexiusacademia/gomember/internal/grid"
	"github.com/alexiusacademia/gomember/internal/hydro"
	"github.com/alexiusacademia/gomember/internal/material"
)

// Evaluate runs the full member pipeline: refine the grid, build the
// shell, add bulkheads, ring stiffeners and ballast, aggregate the mass
// properties, place the nodes and compute the hydrostatics.
func Evaluate(in *Input) (*Result, error) {
	if in.Grid == nil {
		return nil, &ValidationError{"member has no grid"}
	}
	log := in.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	rhoWater := in.RhoWater
	if rhoWater == 0 {
		rhoWater = material.RhoSeawater
	}
	gravity := in.Gravity
	if gravity == 0 {
		gravity = material.Gravity
	}

	g, err := grid.Refine(in.Grid, in.NRefine)
	if err != nil {
		return nil, fmt.Errorf("refining grid: %w", err)
	}
	log.WithFields(logrus.Fields{
		"stations": len(in.Grid.S),
		"refined":  len(g.S),
		"height":   g.Height,
	}).Debug("grid refined")

	m, shell, err := BuildShell(g, in.Rates)
	if err != nil {
		return nil, fmt.Errorf("building shell: %w", err)
	}
	log.WithFields(logrus.Fields{"mass": shell.Mass, "z_cg": shell.ZCG, "cost": shell.Cost}).Debug("shell")

	m, bulk, err := AddBulkheads(m, g, in.Bulkheads, in.Rates)
	if err != nil {
		return nil, fmt.Errorf("adding bulkheads: %w", err)
	}
	log.WithFields(logrus.Fields{"count": len(in.Bulkheads.Stations), "mass": bulk.Mass, "z_cg": bulk.ZCG}).Debug("bulkheads")

	m, stiff, err := AddStiffeners(m, g, in.Stiffeners, in.Bulkheads, in.Rates)
	if err != nil {
		return nil, fmt.Errorf("adding ring stiffeners: %w", err)
	}
	log.WithFields(logrus.Fields{"count": len(stiff.Stations), "mass": stiff.Mass, "z_cg": stiff.ZCG}).Debug("ring stiffeners")

	m, ballast, err := AddBallast(m, g, in.Ballast)
	if err != nil {
		return nil, fmt.Errorf("adding ballast: %w", err)
	}
	log.WithFields(logrus.Fields{
		"mass":              ballast.Mass,
		"z_cg":              ballast.ZCG,
		"variable_capacity": ballast.VariableCapacity,
	}).Debug("ballast")

	mp := Aggregate(shell, bulk, stiff, ballast)

	m, nodes, err := Finish(m, in.AxialJoints, in.Joint0, in.Joint1, mp.ZCG, g.Height)
	if err != nil {
		return nil, fmt.Errorf("placing nodes: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("section map: %w", err)
	}
	log.WithFields(logrus.Fields{"nodes": len(nodes.SAll), "total_mass": mp.TotalMass, "z_cg": mp.ZCG}).Debug("nodes placed")

	hr, err := hydro.Evaluate(&hydro.Input{
		S:        g.S,
		Z:        g.Z,
		D:        g.D,
		SAll:     nodes.SAll,
		Nodes:    nodes.Nodes,
		RhoWater: rhoWater,
		Gravity:  gravity,
	})
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"volume": hr.DisplacedVolume, "waterline": hr.Waterline}).Debug("hydrostatics")

	return &Result{
		Grid:     g,
		Sections: m,
		Mass:     mp,
		Nodes:    nodes,
		Hydro:    hr,
	}, nil
}
