package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCommand_RequiresDatabaseURL(t *testing.T) {
	_, err := execute(t, "snapshot", "--id", testBuildID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL is required")
}

func TestSnapshotCommand_InvalidID(t *testing.T) {
	_, err := execute(t, "snapshot", "--db-url", "postgres://localhost:1/none", "--id", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid snapshot id")
}
