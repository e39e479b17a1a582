package schemas

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/mod-roster/internal/config"
	"github.com/jonathan/mod-roster/internal/modtest"
	"github.com/jonathan/mod-roster/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["person"],
	"properties": {
		"person": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string"}
			}
		}
	}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func resolvedModule(t *testing.T) []byte {
	t.Helper()
	t.Setenv(config.EnvDataDir, "")
	module, err := pipeline.Run(context.Background(), pipeline.RunOptions{
		ManifestPath: modtest.WriteMod(t, t.TempDir()),
	})
	require.NoError(t, err)
	data, err := json.Marshal(module)
	require.NoError(t, err)
	return data
}

func TestValidateModule_Resolved(t *testing.T) {
	assert.NoError(t, ValidateModule(resolvedModule(t)))
}

func TestValidateModule_Errors(t *testing.T) {
	data := resolvedModule(t)

	tests := []struct {
		name   string
		mutate func(doc map[string]any)
		field  string
	}{
		{
			name:   "missing build id",
			mutate: func(doc map[string]any) { delete(doc, "build_id") },
			field:  "(root)",
		},
		{
			name:   "malformed build id",
			mutate: func(doc map[string]any) { doc["build_id"] = "not-a-uuid" },
			field:  "build_id",
		},
		{
			name: "unknown unit class",
			mutate: func(doc map[string]any) {
				england := doc["factions"].(map[string]any)["england"].(map[string]any)
				england["roster"].([]any)[0].(map[string]any)["class"] = "wizard"
			},
			field: "factions.england.roster.0.class",
		},
		{
			name: "zero soldiers",
			mutate: func(doc map[string]any) {
				england := doc["factions"].(map[string]any)["england"].(map[string]any)
				england["roster"].([]any)[0].(map[string]any)["soldiers"] = 0
			},
			field: "factions.england.roster.0.soldiers",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc map[string]any
			require.NoError(t, json.Unmarshal(data, &doc))
			tt.mutate(doc)
			mutated, err := json.Marshal(doc)
			require.NoError(t, err)

			err = ValidateModule(mutated)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateJSON_Files(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	valid := writeFile(t, dir, "valid.json", `{"person": {"name": "Edward"}}`)
	invalid := writeFile(t, dir, "invalid.json", `{"person": {}}`)

	assert.NoError(t, ValidateJSON(schemaPath, valid))

	err := ValidateJSON(schemaPath, invalid)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_NotFound(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{}`)

	err := ValidateJSON(filepath.Join(dir, "nonexistent_schema.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")

	err = ValidateJSON(schemaPath, filepath.Join(dir, "nonexistent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	malformed := writeFile(t, dir, "malformed.json", "{ invalid json }")

	err := ValidateJSON(schemaPath, malformed)
	require.Error(t, err)
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateJSONString(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"person": {"name": "test"}}`))

	err := ValidateJSONString(personSchema, `{"person": {}}`)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.NotEmpty(t, validationErr.Errors)
	assert.Equal(t, "person", validationErr.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "soldiers", Message: "must be greater than or equal to 1"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. name: is required")
	assert.Contains(t, errorMsg, "soldiers")
}

func TestResolveSchemaPath(t *testing.T) {
	path, err := ResolveSchemaPath(filepath.Join("schemas", "module.schema.json"))
	require.NoError(t, err, "found two levels up from the package directory")
	assert.True(t, filepath.IsAbs(path))

	again, err := ResolveSchemaPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, again, "absolute paths are kept")

	_, err = ResolveSchemaPath("schemas/nonexistent.schema.json")
	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ResolveSchemaPath("")
	assert.Error(t, err)
}
