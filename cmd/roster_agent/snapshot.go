package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/mod-roster/internal/config"
	"github.com/jonathan/mod-roster/internal/db"
)

func newSnapshotCmd() *cobra.Command {
	var dbURL, id, out, module string
	var limit int
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch or list stored roster snapshots",
		Long: `With --id, writes the stored model to --out (or stdout). Without it, lists the most
recent snapshots, optionally for one module.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			if dbURL == "" {
				dbURL = os.Getenv(config.EnvDatabaseURL)
			}
			if dbURL == "" {
				return fmt.Errorf("database URL is required (--db-url or %s)", config.EnvDatabaseURL)
			}

			var snapshotID uuid.UUID
			if id != "" {
				var err error
				snapshotID, err = uuid.Parse(id)
				if err != nil {
					return fmt.Errorf("invalid snapshot id %q: %w", id, err)
				}
			}

			database, err := db.Connect(ctx, dbURL)
			if err != nil {
				return err
			}
			defer database.Close()

			if snapshotID == uuid.Nil {
				list, err := database.ListSnapshots(ctx, db.SnapshotFilters{ModuleID: module, Limit: limit})
				if err != nil {
					return err
				}
				for _, s := range list {
					_, _ = fmt.Fprintf(w, "%s  %-16s %3d factions %4d units  %s\n",
						s.ID, s.ModuleID, s.Factions, s.Units, s.CreatedAt.Format("2006-01-02 15:04"))
				}
				return nil
			}

			s, err := database.GetSnapshot(ctx, snapshotID)
			if err != nil {
				return err
			}
			if s == nil {
				return fmt.Errorf("snapshot not found: %s", snapshotID)
			}
			if out == "" {
				_, err = w.Write(append(s.Content, '\n'))
				return err
			}
			if err := os.WriteFile(out, append(s.Content, '\n'), 0o644); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}
			_, _ = fmt.Fprintf(w, "Wrote %s (%s)\n", out, s.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	cmd.Flags().StringVar(&id, "id", "", "Snapshot UUID")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (stdout when empty)")
	cmd.Flags().StringVar(&module, "module", "", "List only snapshots of this module ID")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum snapshots to list")
	return cmd
}
