package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gomember/internal/member"
)

var memberNodesFile string

var memberNodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Print the nodes and interval sections of a member",
	Long: `Print the node positions of a member and the section
properties of every interval between two nodes, as used to build
a frame model of the platform.

Nodes are placed at the coarse stations, at the edges of every
bulkhead, stiffener and ballast band and at the axial joints.

Examples:
  gomember member nodes --file spar.toml
  gomember member nodes -f spar.json`,
	Run: runMemberNodes,
}

func init() {
	memberCmd.AddCommand(memberNodesCmd)

	memberNodesCmd.Flags().StringVarP(&memberNodesFile, "file", "f", "", "Path to member JSON or TOML file [required]")
	memberNodesCmd.MarkFlagRequired("file")
}

func runMemberNodes(cmd *cobra.Command, args []string) {
	_, in, err := loadMember(memberNodesFile)
	if err != nil {
		fmt.Printf("Error loading member: %v\n", err)
		return
	}
	res, err := member.Evaluate(in)
	if err != nil {
		fmt.Printf("Error analyzing member: %v\n", err)
		return
	}
	ns := res.Nodes

	fmt.Println()
	fmt.Println("NODES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  Node\ts\tx (m)\ty (m)\tz (m)\t\n")
	for i, s := range ns.SAll {
		p := ns.Nodes[i]
		fmt.Fprintf(w, "  %d\t%.6f\t%.3f\t%.3f\t%.3f\t\n", i+1, s, p.X, p.Y, p.Z)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("SECTIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  Nodes\tKind\tD (m)\tt (m)\tA (m²)\tIxx (m⁴)\tIzz (m⁴)\trho (kg/m³)\tAdded (kg/m)\t\n")
	for i := range ns.D {
		fmt.Fprintf(w, "  %d-%d\t%s\t%.3f\t%.4f\t%.5g\t%.5g\t%.5g\t%.1f\t%.5g\t\n",
			i+1, i+2, ns.Kind[i], ns.D[i], ns.T[i], ns.A[i], ns.Ixx[i], ns.Izz[i], ns.Rho[i], ns.AddedMass[i])
	}
	w.Flush()
	fmt.Println()

	fmt.Printf("  Member length: %.3f m between (%.3f, %.3f, %.3f) and (%.3f, %.3f, %.3f)\n",
		ns.Length(),
		ns.Nodes[0].X, ns.Nodes[0].Y, ns.Nodes[0].Z,
		ns.Nodes[len(ns.Nodes)-1].X, ns.Nodes[len(ns.Nodes)-1].Y, ns.Nodes[len(ns.Nodes)-1].Z)
	fmt.Printf("  Buoyancy node: %d\n", res.Hydro.IdxCB+1)
	fmt.Println()
}
