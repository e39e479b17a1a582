// Package db provides PostgreSQL storage for resolved module snapshots.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/mod-roster/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

const createSnapshots = `CREATE TABLE IF NOT EXISTS roster_snapshots (
	id         UUID PRIMARY KEY,
	module_id  TEXT NOT NULL,
	name       TEXT NOT NULL,
	factions   INTEGER NOT NULL,
	units      INTEGER NOT NULL,
	content    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the snapshot table when missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, createSnapshots); err != nil {
		return fmt.Errorf("failed to create snapshot table: %w", err)
	}
	return nil
}

// SaveSnapshot stores a resolved module under its build ID, replacing any
// earlier snapshot with the same ID.
func (db *DB) SaveSnapshot(ctx context.Context, m *types.Module) (uuid.UUID, error) {
	id, err := uuid.Parse(m.BuildID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid build id %q: %w", m.BuildID, err)
	}

	content, err := json.Marshal(m)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal module: %w", err)
	}

	factions, units := counts(m)
	_, err = db.pool.Exec(ctx,
		`INSERT INTO roster_snapshots (id, module_id, name, factions, units, content)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET module_id = $2, name = $3, factions = $4, units = $5,
		   content = $6, created_at = NOW()`,
		id, m.ID, m.Name, factions, units, content,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	slog.Debug("saved snapshot", "id", id, "module", m.ID, "factions", factions, "units", units)
	return id, nil
}

// counts returns the number of factions and distinct units in a module.
func counts(m *types.Module) (factions, units int) {
	if m.Factions == nil {
		return 0, 0
	}
	seen := map[string]bool{}
	for _, f := range m.Factions.Values() {
		for _, u := range f.Roster {
			seen[u.ID] = true
		}
	}
	return m.Factions.Len(), len(seen)
}

// GetSnapshot retrieves a snapshot by ID. Returns nil when none exists.
func (db *DB) GetSnapshot(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	var s Snapshot
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, module_id, name, factions, units, content, created_at
		 FROM roster_snapshots WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.ModuleID, &s.Name, &s.Factions, &s.Units, &content, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	s.Content = content
	var module types.Module
	if err := json.Unmarshal(content, &module); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", id, err)
	}
	s.Module = &module
	return &s, nil
}

// buildListQuery assembles the snapshot listing query and its arguments.
func buildListQuery(filters SnapshotFilters) (string, []any) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, module_id, name, factions, units, created_at
		FROM roster_snapshots WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.ModuleID != "" {
		query += fmt.Sprintf(" AND module_id = $%d", argNum)
		args = append(args, filters.ModuleID)
		argNum++
	}
	if filters.Name != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argNum)
		args = append(args, "%"+filters.Name+"%")
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)
	return query, args
}

// ListSnapshots retrieves snapshot summaries, newest first.
func (db *DB) ListSnapshots(ctx context.Context, filters SnapshotFilters) ([]SnapshotSummary, error) {
	query, args := buildListQuery(filters)
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []SnapshotSummary
	for rows.Next() {
		var s SnapshotSummary
		if err := rows.Scan(&s.ID, &s.ModuleID, &s.Name, &s.Factions, &s.Units, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return out, nil
}

// DeleteSnapshot removes a snapshot.
func (db *DB) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM roster_snapshots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("snapshot not found: %s", id)
	}
	return nil
}
