package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/mod-roster/internal/observability"
	"github.com/jonathan/mod-roster/internal/pipeline"
)

func newExplainCmd() *cobra.Command {
	var manifest, unit, faction, era string
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Show why a unit is or is not recruitable",
		Long: `Prints the unit's aggregated requirement, its recruitment paths and tech tier, and
whether it is available to each faction in each era.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := pipeline.Prepare(cmd.Context(), pipeline.RunOptions{ManifestPath: manifest})
			if err != nil {
				return err
			}

			verdicts, err := r.Explain(unit, faction, era)
			if err != nil {
				return err
			}

			agg := r.Aggregator()
			u, _ := agg.Unit(unit)
			e := &observability.Explanation{
				Unit:        u.ID,
				Requirement: agg.Requirement(u.ID).String(),
				Tier:        agg.TechTier(u.ID),
			}
			for _, p := range agg.Paths(u.ID) {
				e.Paths = append(e.Paths, fmt.Sprintf("%s/%s (%s)", p.Building, p.Level, p.Tier))
			}
			for _, v := range verdicts {
				e.Results = append(e.Results, observability.ContextResult{
					Faction:   v.Faction,
					Era:       v.Era,
					Available: v.Available,
					Tier:      v.Tier,
				})
			}

			observability.NewPrinter(cmd.OutOrStdout()).PrintExplanation(e)
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "Path to the mod manifest (YAML)")
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "Unit ID")
	cmd.Flags().StringVarP(&faction, "faction", "f", "", "Faction ID (all factions when empty)")
	cmd.Flags().StringVarP(&era, "era", "e", "", "Era ID (all eras when empty)")
	_ = cmd.MarkFlagRequired("manifest")
	_ = cmd.MarkFlagRequired("unit")
	return cmd
}
