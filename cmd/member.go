package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gomember/internal/member"
)

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Tubular member properties",
	Long: `Compute the properties of a tubular member defined in a
JSON or TOML file.

The member is described along its axis by non-dimensional
stations s from 0 at the base to 1 at the tip.

Subcommands:
  analyze  - Mass, cost, ballast and hydrostatic summary
  nodes    - Node positions and the section of every interval

Example TOML file structure:
  name = "spar"
  s = [0, 0.5, 1]
  height = 100
  outer_diameter = [10, 10, 8]
  outfitting_factor = 1.1
  axial_joints = [0.3]
  joint0 = [0, 0, -90]
  joint1 = [0, 0, 10]

  [[layers]]
  material = "steel"
  thickness = [0.05, 0.05, 0.04]

  [bulkheads]
  grid = [0, 1]
  thickness = [0.05]

  [ring_stiffener]
  web_height = 0.5
  web_thickness = 0.02
  flange_width = 0.2
  flange_thickness = 0.03
  spacing = 5

  [[ballast]]
  grid = [0, 0.1]
  material = "concrete"
  volume = 50`,
}

func init() {
	rootCmd.AddCommand(memberCmd)
}

// loadMember reads a member file and applies the configuration overrides
func loadMember(path string) (*member.Definition, *member.Input, error) {
	def, err := member.LoadFromFile(path)
	if err != nil {
		return nil, nil, err
	}
	if rho := Cfg.GetFloat64("water.density"); rho > 0 {
		def.RhoWater = rho
	}
	if n := Cfg.GetInt("refine"); n >= 0 {
		def.NRefine = n
	}

	in, err := def.Input(def.Library(), 0)
	if err != nil {
		return nil, nil, err
	}
	if g := Cfg.GetFloat64("water.gravity"); g > 0 {
		in.Gravity = g
	}
	if r := Cfg.GetFloat64("cost.labor"); r > 0 {
		in.Rates.Labor = r
	}
	if r := Cfg.GetFloat64("cost.painting"); r > 0 {
		in.Rates.Painting = r
	}
	in.Log = Log.WithField("member", def.Name)
	return def, in, nil
}
