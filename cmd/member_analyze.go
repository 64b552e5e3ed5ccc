package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gomember/internal/diagram"
	"github.com/alexiusacademia/gomember/internal/export"
	"github.com/alexiusacademia/gomember/internal/member"
)

var (
	memberAnalyzeFile        string
	memberAnalyzeShowDiagram bool
	memberAnalyzeExportFile  string
	memberAnalyzeMassPlot    string
	memberAnalyzeXLSXFile    string
	memberAnalyzePDFFile     string
)

var memberAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a tubular member",
	Long: `Compute the mass, inertia, cost, ballast and hydrostatic
properties of a member defined in a JSON or TOML file.

The shell is built first, then the bulkheads, ring stiffeners and
ballast are added on top of it. Ring stiffeners falling on a
bulkhead are moved next to it.

Examples:
  gomember member analyze --file spar.toml
  gomember member analyze -f spar.json --diagram -o spar.png
  gomember member analyze -f spar.json --mass-plot spar-mass.svg
  gomember member analyze -f spar.toml --xlsx spar.xlsx --pdf spar.pdf`,
	Run: runMemberAnalyze,
}

func init() {
	memberCmd.AddCommand(memberAnalyzeCmd)

	memberAnalyzeCmd.Flags().StringVarP(&memberAnalyzeFile, "file", "f", "", "Path to member JSON or TOML file [required]")
	memberAnalyzeCmd.MarkFlagRequired("file")

	// Output options
	memberAnalyzeCmd.Flags().BoolVar(&memberAnalyzeShowDiagram, "diagram", false, "Show ASCII member profile")
	memberAnalyzeCmd.Flags().StringVarP(&memberAnalyzeExportFile, "output", "o", "", "Export profile to file (png, svg, pdf)")
	memberAnalyzeCmd.Flags().StringVar(&memberAnalyzeMassPlot, "mass-plot", "", "Export the linear mass distribution to file (png, svg, pdf)")
	memberAnalyzeCmd.Flags().StringVar(&memberAnalyzeXLSXFile, "xlsx", "", "Export nodes and sections to an XLSX file")
	memberAnalyzeCmd.Flags().StringVar(&memberAnalyzePDFFile, "pdf", "", "Export a PDF summary report")
}

func runMemberAnalyze(cmd *cobra.Command, args []string) {
	def, in, err := loadMember(memberAnalyzeFile)
	if err != nil {
		fmt.Printf("Error loading member: %v\n", err)
		return
	}

	res, err := member.Evaluate(in)
	if err != nil {
		fmt.Printf("Error analyzing member: %v\n", err)
		return
	}
	mp := res.Mass

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     TUBULAR MEMBER ANALYSIS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	if def.Name != "" {
		fmt.Printf("  Member: %s\n", def.Name)
	}
	fmt.Printf("  File: %s\n", memberAnalyzeFile)
	fmt.Println()

	fmt.Println("GEOMETRY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Length:\t%s\n", export.Format(res.Grid.Height, export.Meter))
	fmt.Fprintf(w, "  Stations:\t%d coarse, %d refined\n", len(in.Grid.S), len(res.Grid.S))
	fmt.Fprintf(w, "  Bulkheads:\t%d\n", len(in.Bulkheads.Stations))
	fmt.Fprintf(w, "  Ring stiffeners:\t%d\n", len(mp.Stiffener.Stations))
	if len(mp.Stiffener.Stations) > 0 {
		fmt.Fprintf(w, "  Flange/spacing ratio:\t%.4f\n", mp.Stiffener.FlangeSpacingRatio)
		fmt.Fprintf(w, "  Stiffener radius ratio:\t%.4f\n", mp.Stiffener.RadiusRatio)
	}
	fmt.Fprintf(w, "  Nodes:\t%d\n", len(res.Nodes.SAll))
	w.Flush()
	fmt.Println()

	fmt.Println("MASS AND COST:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Part\tMass\tz CG\tCost\n")
	fmt.Fprintf(w, "  ────\t────\t────\t────\n")
	for _, row := range []struct {
		name string
		t    member.Totals
	}{
		{"Shell", mp.Shell},
		{"Bulkheads", mp.Bulkhead},
		{"Ring stiffeners", mp.Stiffener.Totals},
		{"Ballast", mp.Ballast.Totals},
	} {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", row.name,
			export.Format(row.t.Mass, export.Kilogram), export.Format(row.t.ZCG, export.Meter), export.Format(row.t.Cost, export.Dollars))
	}
	w.Flush()
	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Structural mass:\t%s\n", export.Format(mp.StructuralMass, export.Kilogram))
	fmt.Fprintf(w, "  Structural cost:\t%s\n", export.Format(mp.StructuralCost, export.Dollars))
	fmt.Fprintf(w, "  Variable ballast capacity:\t%s\n", export.Format(mp.Ballast.VariableCapacity, export.Cubic))
	w.Flush()
	fmt.Println()

	fmt.Println("INERTIA ABOUT THE BASE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, name := range []string{"Ixx", "Iyy", "Izz", "Ixy", "Ixz", "Iyz"} {
		fmt.Fprintf(w, "  %s:\t%s\n", name, export.Format(mp.I[i], export.Inertia))
	}
	if p, err := mp.I.Principal(); err == nil {
		fmt.Fprintf(w, "  Principal moments:\t%.5g, %.5g, %.5g\n", p[0], p[1], p[2])
	}
	w.Flush()
	fmt.Println()

	h := res.Hydro
	fmt.Println("HYDROSTATICS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Water density:\t%.1f kg/m³\n", in.RhoWater)
	fmt.Fprintf(w, "  Displaced volume:\t%s\n", export.Format(h.DisplacedVolume, export.Cubic))
	fmt.Fprintf(w, "  Buoyancy force:\t%s\n", export.Format(h.BuoyancyForce, export.Newton))
	fmt.Fprintf(w, "  Center of buoyancy:\t(%.3f, %.3f, %.3f) m\n", h.CenterOfBuoyancy.X, h.CenterOfBuoyancy.Y, h.CenterOfBuoyancy.Z)
	fmt.Fprintf(w, "  Center of mass:\t(%.3f, %.3f, %.3f) m\n", res.Nodes.CenterOfMass.X, res.Nodes.CenterOfMass.Y, res.Nodes.CenterOfMass.Z)
	if h.Waterline {
		fmt.Fprintf(w, "  Waterplane area:\t%s\n", export.Format(h.Awater, export.Square))
		fmt.Fprintf(w, "  Waterplane moment:\t%s\n", export.Format(h.Iwater, export.Quartic))
	} else {
		fmt.Fprintf(w, "  Waterplane:\tnone\n")
	}
	fmt.Fprintf(w, "  Added mass:\t%.5g, %.5g, %.5g, %.5g, %.5g, %.5g\n",
		h.AddedMass[0], h.AddedMass[1], h.AddedMass[2], h.AddedMass[3], h.AddedMass[4], h.AddedMass[5])
	w.Flush()
	fmt.Println()

	fmt.Print(diagram.DrawSummaryBox("TOTAL", []string{
		fmt.Sprintf("Mass = %s", export.Format(mp.TotalMass, export.Kilogram)),
		fmt.Sprintf("z CG = %s", export.Format(mp.ZCG, export.Meter)),
		fmt.Sprintf("Cost = %s", export.Format(mp.TotalCost, export.Dollars)),
	}))
	fmt.Println()

	data := diagram.NewProfileData(def.Name, res)
	if memberAnalyzeShowDiagram {
		fmt.Println(diagram.DrawFeatureStrip(data))
		fmt.Println(diagram.DrawASCIIProfile(data))
	}

	if memberAnalyzeExportFile != "" {
		if err := diagram.ExportProfile(data, memberAnalyzeExportFile); err != nil {
			fmt.Printf("Error exporting diagram: %v\n", err)
		} else {
			fmt.Printf("Diagram exported to: %s\n", memberAnalyzeExportFile)
		}
	}
	if memberAnalyzeMassPlot != "" {
		if err := diagram.ExportMassDistribution(data, memberAnalyzeMassPlot); err != nil {
			fmt.Printf("Error exporting mass plot: %v\n", err)
		} else {
			fmt.Printf("Mass plot exported to: %s\n", memberAnalyzeMassPlot)
		}
	}
	if memberAnalyzeXLSXFile != "" {
		if err := export.WriteNodeTable(memberAnalyzeXLSXFile, res); err != nil {
			fmt.Printf("Error exporting nodes: %v\n", err)
		} else {
			fmt.Printf("Nodes exported to: %s\n", memberAnalyzeXLSXFile)
		}
	}
	if memberAnalyzePDFFile != "" {
		err := export.WriteReport(memberAnalyzePDFFile, export.Report{
			Name:   def.Name,
			Source: memberAnalyzeFile,
			Result: res,
		})
		if err != nil {
			fmt.Printf("Error writing report: %v\n", err)
		} else {
			fmt.Printf("Report written to: %s\n", memberAnalyzePDFFile)
		}
	}
}
