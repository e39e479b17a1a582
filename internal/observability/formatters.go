// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/jonathan/mod-roster/internal/raw"
	"github.com/jonathan/mod-roster/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// Summary holds descriptive statistics over one roster column.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
}

// Summarize computes statistics over values. An empty input yields a zero
// Summary.
func Summarize(values []float64) Summary {
	data := stats.Float64Data(values)
	if data.Len() == 0 {
		return Summary{}
	}
	s := Summary{Count: data.Len()}
	s.Min, _ = data.Min()
	s.Max, _ = data.Max()
	s.Mean, _ = data.Mean()
	s.Median, _ = data.Median()
	s.StdDev, _ = data.StandardDeviation()
	return s
}

// RosterStats summarizes recruitment cost and upkeep over a roster.
func RosterStats(roster []types.Unit) (cost, upkeep Summary) {
	costs := make([]float64, 0, len(roster))
	upkeeps := make([]float64, 0, len(roster))
	for _, u := range roster {
		costs = append(costs, float64(u.Cost))
		upkeeps = append(upkeeps, float64(u.Upkeep))
	}
	return Summarize(costs), Summarize(upkeeps)
}

// PrintModule outputs a summary of a resolved module with one line of
// cost statistics per faction.
func (p *Printer) PrintModule(m *types.Module) {
	if m == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Module:   %s (%s)\n", m.Name, m.ID))
	sb.WriteString(fmt.Sprintf("Build:    %s\n", m.BuildID))
	if m.Eras != nil && m.Eras.Len() > 0 {
		sb.WriteString(fmt.Sprintf("Eras:     %s\n", strings.Join(m.Eras.Keys(), ", ")))
	}
	sb.WriteString(fmt.Sprintf("Regions:  %d   Pools: %d\n", len(m.Regions), len(m.Pools)))
	sb.WriteString("\n")

	if m.Factions != nil {
		sb.WriteString(fmt.Sprintf("Factions (%d):\n", m.Factions.Len()))
		for _, f := range m.Factions.Values() {
			cost, _ := RosterStats(f.Roster)
			sb.WriteString(fmt.Sprintf("  • %-14s %2d units  cost μ %.0f  med %.0f\n",
				f.ID, len(f.Roster), cost.Mean, cost.Median))
		}
	}

	p.printBox("RESOLVED MODULE", sb.String())
}

// PrintFaction outputs a faction's roster breakdown.
func (p *Printer) PrintFaction(f *types.Faction) {
	if f == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Faction:  %s (%s)\n", f.Name, f.ID))
	sb.WriteString(fmt.Sprintf("Culture:  %s\n", f.Culture))
	if f.IsHorde {
		sb.WriteString("Horde:    yes\n")
	}
	if len(f.Eras) > 0 {
		sb.WriteString(fmt.Sprintf("Eras:     %s\n", strings.Join(f.Eras, ", ")))
	}
	sb.WriteString("\n")

	classes := map[types.Class]int{}
	var order []types.Class
	for _, u := range f.Roster {
		if classes[u.Class] == 0 {
			order = append(order, u.Class)
		}
		classes[u.Class]++
	}
	if len(order) > 0 {
		sb.WriteString("Classes:\n")
		for _, c := range order {
			sb.WriteString(fmt.Sprintf("  • %-10s %d\n", c, classes[c]))
		}
		sb.WriteString("\n")
	}

	cost, upkeep := RosterStats(f.Roster)
	if cost.Count > 0 {
		sb.WriteString(fmt.Sprintf("Cost:     %.0f–%.0f  μ %.1f  σ %.1f\n", cost.Min, cost.Max, cost.Mean, cost.StdDev))
		sb.WriteString(fmt.Sprintf("Upkeep:   %.0f–%.0f  μ %.1f  σ %.1f\n", upkeep.Min, upkeep.Max, upkeep.Mean, upkeep.StdDev))
		sb.WriteString("\n")
	}

	count := min(len(f.Roster), maxItemsToShow)
	for i := 0; i < count; i++ {
		u := f.Roster[i]
		sb.WriteString(fmt.Sprintf("  • %s [%s, %s]\n", u.Name, u.Class, raw.Tier(u.TechTier)))
	}
	if len(f.Roster) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(f.Roster)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("FACTION %s", strings.ToUpper(f.ID)), sb.String())
}

// ContextResult is the outcome of evaluating a unit's requirement under one
// faction and era.
type ContextResult struct {
	Faction   string
	Era       string
	Available bool
	Tier      raw.Tier
}

// Explanation describes why a unit is or is not recruitable.
type Explanation struct {
	Unit        string
	Requirement string
	Tier        raw.Tier
	Paths       []string
	Results     []ContextResult
}

// PrintExplanation outputs a unit's aggregated requirement and the result
// under each evaluated context.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintExplanation(e *Explanation) {
	if e == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tech tier: %s\n", e.Tier))
	sb.WriteString(fmt.Sprintf("Paths:     %d\n", len(e.Paths)))
	for _, path := range e.Paths {
		sb.WriteString(fmt.Sprintf("  • %s\n", path))
	}
	if len(e.Results) > 0 {
		sb.WriteString("\n")
		for _, r := range e.Results {
			mark := "✗"
			tier := ""
			if r.Available {
				mark = "✓"
				tier = r.Tier.String()
			}
			label := r.Faction
			if r.Era != "" {
				label += "/" + r.Era
			}
			sb.WriteString(fmt.Sprintf("  %s %-24s %s\n", mark, label, tier))
		}
	}
	p.printBox(fmt.Sprintf("UNIT %s", e.Unit), sb.String())

	// Requirements can be long; print them unboxed.
	fmt.Fprintf(p.out, "requires: %s\n", e.Requirement)
}
