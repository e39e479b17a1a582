package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/mod-roster/internal/db"
	"github.com/jonathan/mod-roster/internal/observability"
	"github.com/jonathan/mod-roster/internal/pipeline"
	"github.com/jonathan/mod-roster/internal/schemas"
)

type resolveOptions struct {
	manifest string
	out      string
	buildID  string
	dbURL    string
	exclude  []string
	verbose  bool
}

func newResolveCmd() *cobra.Command {
	var o resolveOptions
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a mod into a roster model",
		Long: `Decodes every file named by the manifest, resolves faction rosters, eras, regions and
mercenary pools, validates the result against the module schema and writes it as JSON.

When a database URL is set (flag, manifest or DATABASE_URL) the model is also stored as a snapshot.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd, o)
		},
	}

	cmd.Flags().StringVarP(&o.manifest, "manifest", "m", "", "Path to the mod manifest (YAML)")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Output path for the resolved model JSON")
	cmd.Flags().StringVar(&o.buildID, "build-id", "", "Build UUID (generated when empty)")
	cmd.Flags().StringSliceVar(&o.exclude, "exclude", nil, "Faction IDs to leave out")
	cmd.Flags().StringVar(&o.dbURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "Print a summary of the resolved model")

	_ = cmd.MarkFlagRequired("manifest")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func runResolve(cmd *cobra.Command, o resolveOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	m, err := pipeline.LoadManifest(o.manifest)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}
	if o.dbURL != "" {
		m.DatabaseURL = o.dbURL
	}

	module, err := pipeline.Run(ctx, pipeline.RunOptions{
		Manifest:        m,
		BuildID:         o.buildID,
		ExcludeFactions: o.exclude,
		OnProgress: func(e pipeline.ProgressEvent) {
			if o.verbose {
				_, _ = fmt.Fprintf(out, "[VERBOSE] %s\n", e.Message)
			}
		},
	})
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(module, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal module: %w", err)
	}
	if err := schemas.ValidateModule(data); err != nil {
		return fmt.Errorf("resolved module failed schema validation: %w", err)
	}

	if dir := filepath.Dir(o.out); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(o.out, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write module: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Wrote %s (%d factions, build %s)\n", o.out, module.Factions.Len(), module.BuildID)

	if o.verbose {
		observability.NewPrinter(out).PrintModule(module)
	}

	if m.DatabaseURL == "" {
		return nil
	}
	database, err := db.Connect(ctx, m.DatabaseURL)
	if err != nil {
		slog.Warn("continuing without snapshot persistence", "error", err)
		return nil
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}
	id, err := database.SaveSnapshot(ctx, module)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Saved snapshot %s\n", id)
	return nil
}
