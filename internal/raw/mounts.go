package raw

import (
	"log/slog"

	"github.com/jonathan/mod-roster/internal/fields"
	"github.com/jonathan/mod-roster/internal/records"
)

// Mount is one descr_mount entry.
type Mount struct {
	ID    string
	Class fields.Token[MountClass]
	Line  int
}

// Model is one descr_model_battle entry.
type Model struct {
	ID        string
	Skeletons []string
	Line      int
}

// ParseMounts decodes descr_mount text.
func ParseMounts(text string) ([]Mount, error) {
	recs, err := records.SplitText(text, records.StartsWith("type"))
	if err != nil {
		return nil, err
	}

	var out []Mount
	for _, rec := range recs {
		if records.FirstToken(rec.Head().Text) != "type" {
			continue
		}
		f := fields.New(rec)
		class, err := f.String("class")
		if err != nil {
			return nil, err
		}
		out = append(out, Mount{
			ID:    f.OptionalString("type"),
			Class: ParseMountClass(class),
			Line:  rec.Head().Number,
		})
	}
	slog.Debug("decoded mounts", "count", len(out))
	return out, nil
}

// ParseModels decodes descr_model_battle text. Only the skeleton list is
// kept.
func ParseModels(text string) ([]Model, error) {
	recs, err := records.SplitText(text, records.StartsWith("type"))
	if err != nil {
		return nil, err
	}

	var out []Model
	for _, rec := range recs {
		if records.FirstToken(rec.Head().Text) != "type" {
			continue
		}
		f := fields.New(rec)
		out = append(out, Model{
			ID:        f.OptionalString("type"),
			Skeletons: f.List("skeleton", fields.CommaSpace),
			Line:      rec.Head().Number,
		})
	}
	slog.Debug("decoded battle models", "count", len(out))
	return out, nil
}
