// Package schemas holds the JSON Schema documents for files the tool writes.
package schemas

import _ "embed"

// ModuleSchema is the schema for a resolved module.
//
//go:embed module.schema.json
var ModuleSchema string
