package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/voidshard/citylayout"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// printSummary writes what was generated
func printSummary(w io.Writer, city *citylayout.Result, opts *generateOptions) {
	fmt.Fprintln(w, StyleTitle.Render("City generated"))
	fmt.Fprintf(w, "  %s %s\n", StyleDim.Render("run:"), StyleValue.Render(city.Run))
	fmt.Fprintf(w, "  %s %s\n", StyleDim.Render("seed:"), StyleNumber.Render(fmt.Sprint(city.Seed)))

	counts := map[string]int{}
	lots := 0
	for _, d := range city.Districts {
		counts[d.Type.Name]++
		lots += len(city.Lots[d.ID])
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "  %s %s\n", StyleDim.Render("districts:"), StyleNumber.Render(fmt.Sprint(len(city.Districts))))
	for _, name := range names {
		fmt.Fprintf(w, "    %-24s %s\n", name, StyleNumber.Render(fmt.Sprint(counts[name])))
	}
	fmt.Fprintf(w, "  %s %s  %s %s\n",
		StyleDim.Render("main roads:"), StyleNumber.Render(fmt.Sprint(len(city.MainRoads))),
		StyleDim.Render("streets:"), StyleNumber.Render(fmt.Sprint(len(city.Streets))),
	)
	fmt.Fprintf(w, "  %s %s  %s %s\n",
		StyleDim.Render("lots:"), StyleNumber.Render(fmt.Sprint(lots)),
		StyleDim.Render("unmerged:"), StyleNumber.Render(fmt.Sprint(len(city.Unmerged))),
	)

	for _, warn := range city.Warnings {
		fmt.Fprintf(w, "  %s %s\n", StyleWarning.Render("!"), warn)
	}

	fmt.Fprintf(w, "%s %s\n", StyleSuccess.Render("✓ wrote"), opts.out)
	if opts.bordersSVG != "" {
		fmt.Fprintf(w, "%s %s\n", StyleSuccess.Render("✓ wrote"), opts.bordersSVG)
	}
}

// printTypes lists each district type, centre-most first, & who it likes / dislikes
func printTypes(w io.Writer, cat *citylayout.Catalog) {
	fmt.Fprintln(w, StyleTitle.Render("District types"))
	for _, t := range cat.SortedByDistance() {
		fmt.Fprintf(w, "  %s %s\n", StyleValue.Render(t.Name), StyleDim.Render(fmt.Sprintf(
			"distance %.0f  count %d-%d  min lot %d", t.Distance, t.Min, t.Max, t.MinLotArea,
		)))

		likes, dislikes := []string{}, []string{}
		for _, o := range cat.Types() {
			rel := cat.Relation(t.ID, o.ID)
			if rel.Attraction > 0 {
				likes = append(likes, o.Name)
			}
			if rel.Repulsion > 0 {
				dislikes = append(dislikes, o.Name)
			}
		}
		if len(likes) > 0 {
			fmt.Fprintf(w, "    %s %s\n", StyleSuccess.Render("+"), strings.Join(likes, ", "))
		}
		if len(dislikes) > 0 {
			fmt.Fprintf(w, "    %s %s\n", StyleWarning.Render("-"), strings.Join(dislikes, ", "))
		}
	}
}
