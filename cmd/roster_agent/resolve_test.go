package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/mod-roster/internal/modtest"
	"github.com/jonathan/mod-roster/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBuildID = "6f1c8a4e-3b2d-4c5e-9f7a-1b2c3d4e5f60"

func TestResolveCommand(t *testing.T) {
	dir := t.TempDir()
	manifest := modtest.WriteMod(t, dir)
	outPath := filepath.Join(dir, "out", "model.json")

	output, err := execute(t, "resolve", "--manifest", manifest, "--out", outPath,
		"--build-id", testBuildID, "--exclude", "france")
	require.NoError(t, err, output)
	assert.Contains(t, output, "Wrote "+outPath+" (2 factions, build "+testBuildID+")")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var m types.Module
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "testmod", m.ID)
	assert.Equal(t, []string{"england", "mongols"}, m.Factions.Keys())
}

func TestResolveCommand_Verbose(t *testing.T) {
	dir := t.TempDir()
	manifest := modtest.WriteMod(t, dir)

	output, err := execute(t, "resolve", "-m", manifest, "-o", filepath.Join(dir, "model.json"), "-v")
	require.NoError(t, err, output)
	assert.Contains(t, output, "[VERBOSE] Decoding files for testmod")
	assert.Contains(t, output, "RESOLVED MODULE")
	assert.Contains(t, output, "Factions (3)")
}

func TestResolveCommand_MissingFlags(t *testing.T) {
	_, err := execute(t, "resolve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "manifest", "out" not set`)
}

func TestResolveCommand_MissingDataFile(t *testing.T) {
	dir := t.TempDir()
	manifest := modtest.WriteMod(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "data", "export_descr_unit.txt")))

	_, err := execute(t, "resolve", "-m", manifest, "-o", filepath.Join(dir, "model.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export_descr_unit.txt")
	assert.NoFileExists(t, filepath.Join(dir, "model.json"))
}
