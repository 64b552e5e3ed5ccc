package diagram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gomember/internal/section"
)

// Columns used for the terminal drawings
const asciiWidth = 60

// DrawASCIIProfile graphs the outer diameter and linear mass along the member
func DrawASCIIProfile(data ProfileData) string {
	if len(data.D) == 0 {
		return ""
	}
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(asciigraph.Plot(data.sample(asciiWidth, data.D),
		asciigraph.Height(8),
		asciigraph.Precision(2),
		asciigraph.Caption(fmt.Sprintf("Outer diameter (m), base to tip over %.1f m", data.Height)),
	))
	sb.WriteString("\n\n")
	sb.WriteString(asciigraph.Plot(data.sample(asciiWidth, data.LinearMass),
		asciigraph.Height(8),
		asciigraph.Precision(0),
		asciigraph.Caption("Linear mass (kg/m)"),
	))
	sb.WriteString("\n")
	return sb.String()
}

// featureGlyph is the strip character for each section kind
func featureGlyph(k section.Kind) rune {
	switch k {
	case section.KindBulkhead:
		return '█'
	case section.KindStiffener:
		return '┼'
	case section.KindBallast:
		return '▒'
	case section.KindCombined:
		return '#'
	}
	return '─'
}

// DrawFeatureStrip draws a one-line map of the member from base to tip.
// Narrow features win over the shell they sit in.
func DrawFeatureStrip(data ProfileData) string {
	if len(data.D) == 0 || !(data.Height > 0) {
		return ""
	}
	cols := make([]rune, asciiWidth)
	for j := range cols {
		cols[j] = featureGlyph(section.KindShell)
	}
	col := func(x float64) int {
		j := int(x / data.Height * asciiWidth)
		if j >= asciiWidth {
			j = asciiWidth - 1
		}
		if j < 0 {
			j = 0
		}
		return j
	}
	// Ballast first so thin plates drawn after it stay visible
	for _, pass := range []func(section.Kind) bool{
		func(k section.Kind) bool { return k == section.KindBallast },
		func(k section.Kind) bool { return k != section.KindShell && k != section.KindBallast },
	} {
		for i, k := range data.Kind {
			if !pass(k) {
				continue
			}
			for j := col(data.X[i]); j <= col(data.X[i+1]); j++ {
				cols[j] = featureGlyph(k)
			}
		}
	}

	marks := []rune(strings.Repeat(" ", asciiWidth))
	marks[col(data.ZCG)] = 'G'
	if data.HasWaterline {
		marks[col(data.Waterline)] = 'W'
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  base ├%s┤ tip\n", string(cols)))
	sb.WriteString(fmt.Sprintf("        %s\n", string(marks)))
	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ─ = Shell   █ = Bulkhead   ┼ = Ring stiffener\n")
	sb.WriteString("  ▒ = Ballast   # = Overlapping features\n")
	sb.WriteString(fmt.Sprintf("  G = Center of gravity at %.2f m from the base\n", data.ZCG))
	if data.HasWaterline {
		sb.WriteString(fmt.Sprintf("  W = Waterline at %.2f m from the base\n", data.Waterline))
	}
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	width := utf8.RuneCountInString(title)
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > width {
			width = n
		}
	}
	pad := func(s string) string {
		return s + strings.Repeat(" ", width-utf8.RuneCountInString(s))
	}

	border := strings.Repeat("═", width+4)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
