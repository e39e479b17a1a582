package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/mod-roster/internal/config"
	"github.com/jonathan/mod-roster/internal/raw"
	"github.com/jonathan/mod-roster/internal/resolve"
	"github.com/jonathan/mod-roster/internal/sprites"
	"github.com/jonathan/mod-roster/internal/text"
)

// LoadInputs reads and decodes every file the manifest names, one goroutine
// per file. Each goroutine fills only its own field of the result. Files
// left empty in the manifest leave their field nil.
func LoadInputs(ctx context.Context, m *config.Manifest) (*resolve.Inputs, error) {
	in := &resolve.Inputs{}
	g, gCtx := errgroup.WithContext(ctx)

	decode := func(file string, fn func(path string) error) {
		path := m.Path(file)
		if path == "" {
			return
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			start := time.Now()
			if err := fn(path); err != nil {
				return &FileError{Path: path, Cause: err}
			}
			slog.Debug("decoded file", "path", path, "elapsed", time.Since(start))
			return nil
		})
	}

	f := m.Files
	decode(f.Units, readText(func(s string) (err error) {
		in.Units, err = raw.ParseUnits(s)
		return err
	}))
	decode(f.Buildings, func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		in.Buildings, err = raw.ParseBuildings(string(data), filepath.Base(path))
		return err
	})
	decode(f.Factions, readText(func(s string) (err error) {
		in.Factions, err = raw.ParseFactions(s)
		return err
	}))
	decode(f.Mercenaries, readText(func(s string) (err error) {
		in.Pools, err = raw.ParsePools(s)
		return err
	}))
	decode(f.Regions, readText(func(s string) (err error) {
		in.Regions, err = raw.ParseRegions(s)
		return err
	}))
	decode(f.Mounts, readText(func(s string) (err error) {
		in.Mounts, err = raw.ParseMounts(s)
		return err
	}))
	decode(f.Models, readText(func(s string) (err error) {
		in.Models, err = raw.ParseModels(s)
		return err
	}))
	decode(f.UnitNames, func(path string) (err error) {
		in.UnitNames, err = text.Load(path)
		return err
	})
	decode(f.FactionNames, func(path string) (err error) {
		in.FactionNames, err = text.Load(path)
		return err
	})
	decode(f.Sprites, func(path string) (err error) {
		in.Sprites, err = sprites.Load(path)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("loaded mod inputs",
		"units", len(in.Units),
		"factions", len(in.Factions),
		"regions", len(in.Regions),
		"pools", len(in.Pools),
	)
	return in, nil
}

func readText(parse func(string) error) func(string) error {
	return func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return parse(string(data))
	}
}
