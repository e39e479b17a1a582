package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/mod-roster/internal/types"
)

// SnapshotSummary is a lightweight view of a snapshot for listing
type SnapshotSummary struct {
	ID        uuid.UUID `json:"id"`
	ModuleID  string    `json:"module_id"`
	Name      string    `json:"name"`
	Factions  int       `json:"factions"`
	Units     int       `json:"units"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot is a stored resolved module.
type Snapshot struct {
	SnapshotSummary
	// Content is the module JSON as stored
	Content json.RawMessage `json:"content"`
	Module  *types.Module   `json:"-"`
}

// SnapshotFilters holds optional filters for listing snapshots
type SnapshotFilters struct {
	ModuleID string
	Name     string
	Limit    int
}
