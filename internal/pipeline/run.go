// Package pipeline loads a mod from its manifest and resolves it.
package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/mod-roster/internal/config"
	"github.com/jonathan/mod-roster/internal/resolve"
	"github.com/jonathan/mod-roster/internal/types"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	ManifestPath string
	// Manifest is used instead of ManifestPath when set
	Manifest        *config.Manifest
	BuildID         string
	ExcludeFactions []string
	OnProgress      ProgressCallback
}

func emitProgress(opts *RunOptions, step, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message})
	}
}

// LoadManifest loads a manifest, fills stock file names and validates it.
func LoadManifest(path string) (*config.Manifest, error) {
	m, err := config.LoadManifest(path)
	if err != nil {
		return nil, err
	}
	merged := m.MergeWithDefaults(config.DefaultManifest())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Options maps manifest settings onto resolver options.
func Options(m *config.Manifest) resolve.Options {
	eras := make([]resolve.Era, 0, len(m.Eras))
	for _, e := range m.Eras {
		eras = append(eras, resolve.Era{
			ID:       e.ID,
			Name:     e.Name,
			Events:   e.Events,
			Counters: e.Counters,
		})
	}
	return resolve.Options{
		ID:              m.ID,
		Name:            m.Name,
		Banner:          m.Banner,
		Eras:            eras,
		SpeedOverrides:  m.SpeedOverrides,
		UnitImage:       m.UnitImage,
		FactionAliases:  m.FactionAliases,
		ExcludeFactions: m.ExcludeFactions,
	}
}

// Prepare loads the manifest's files and indexes them for resolution.
func Prepare(ctx context.Context, opts RunOptions) (*resolve.Resolver, error) {
	m := opts.Manifest
	if m == nil {
		var err error
		m, err = LoadManifest(opts.ManifestPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
	}

	emitProgress(&opts, "load", fmt.Sprintf("Decoding files for %s", m.ID))
	in, err := LoadInputs(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("failed to load inputs: %w", err)
	}

	ro := Options(m)
	ro.BuildID = opts.BuildID
	ro.ExcludeFactions = append(append([]string{}, ro.ExcludeFactions...), opts.ExcludeFactions...)
	r, err := resolve.New(in, ro)
	if err != nil {
		return nil, fmt.Errorf("failed to index inputs: %w", err)
	}
	return r, nil
}

// Run loads and resolves a mod. Resolution runs after every file has been
// decoded; any failure returns no model.
func Run(ctx context.Context, opts RunOptions) (*types.Module, error) {
	r, err := Prepare(ctx, opts)
	if err != nil {
		return nil, err
	}

	emitProgress(&opts, "resolve", "Resolving rosters")
	module, err := r.Resolve()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve module: %w", err)
	}
	emitProgress(&opts, "done", fmt.Sprintf("Resolved %d factions", module.Factions.Len()))
	return module, nil
}
