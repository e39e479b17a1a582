//go:build integration
// +build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/mod-roster/internal/types"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test: DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, db.EnsureSchema(context.Background()))
	return db
}

func testModule() *types.Module {
	m := &types.Module{
		ID:       "itest",
		Name:     "Integration Mod",
		BuildID:  uuid.NewString(),
		Eras:     types.NewOrderedMap[types.Era](),
		Factions: types.NewOrderedMap[types.Faction](),
	}
	m.Factions.Set("england", types.Faction{
		ID:     "england",
		Name:   "England",
		Eras:   []string{},
		Roster: []types.Unit{{ID: "Peasants", Name: "Peasants", Key: "peasants", Class: types.ClassSword, Soldiers: 60}},
	})
	return m
}

func TestSnapshotRoundTrip_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	m := testModule()
	id, err := db.SaveSnapshot(ctx, m)
	require.NoError(t, err)
	defer func() { _ = db.DeleteSnapshot(ctx, id) }()
	assert.Equal(t, m.BuildID, id.String())

	got, err := db.GetSnapshot(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "itest", got.ModuleID)
	assert.Equal(t, 1, got.Factions)
	assert.Equal(t, 1, got.Units)
	assert.Equal(t, []string{"england"}, got.Module.Factions.Keys())

	list, err := db.ListSnapshots(ctx, SnapshotFilters{ModuleID: "itest"})
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, id, list[0].ID)
}

func TestGetSnapshot_Missing_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	got, err := db.GetSnapshot(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)

	err = db.DeleteSnapshot(context.Background(), uuid.New())
	assert.Error(t, err)
}
