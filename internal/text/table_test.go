package text

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/mod-roster/internal/modtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestParseStringsBin(t *testing.T) {
	data := modtest.StringsBin(t, []string{"ENGLAND", "FRANCE"}, modtest.FactionNames)

	table, err := ParseStringsBin(data)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"ENGLAND", "FRANCE"}, table.Keys())

	v, ok := table.Lookup("ENGLAND")
	assert.True(t, ok)
	assert.Equal(t, "Kingdom of England", v)

	v, ok = table.Lookup("france")
	assert.True(t, ok, "lookup falls back to case-insensitive")
	assert.Equal(t, "Kingdom of France", v)

	_, ok = table.Lookup("MONGOLS")
	assert.False(t, ok)
}

func TestParseStringsBin_BadMagic(t *testing.T) {
	data := modtest.StringsBin(t, nil, nil)
	data[2] = 0x01

	_, err := ParseStringsBin(data)
	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, int64(2), formatErr.Offset)
	assert.Contains(t, err.Error(), "bad magic")
}

func TestParseStringsBin_Truncated(t *testing.T) {
	data := modtest.StringsBin(t, []string{"ENGLAND"}, modtest.FactionNames)

	_, err := ParseStringsBin(data[:len(data)-3])
	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Contains(t, formatErr.Message, "entry 0 value")
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = ParseStringsBin(data[:4])
	assert.Error(t, err, "header needs eight bytes")
}

func encodeUTF16(t *testing.T, s string) []byte {
	t.Helper()
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

func TestParseTextTable(t *testing.T) {
	src := "¬ unit names\r\n" +
		"{Peasants}Peasants\r\n" +
		"{Archers}Longbowmen\r\n" +
		"{Archers_descr}\r\n" +
		"Skilled archers.\r\n" +
		"\r\n" +
		"Deadly at range.\r\n" +
		"\r\n" +
		"¬ trailing comment\r\n" +
		"{Empty}\r\n"

	table, err := ParseTextTable(encodeUTF16(t, src))
	require.NoError(t, err)
	assert.Equal(t, []string{"Peasants", "Archers", "Archers_descr", "Empty"}, table.Keys())
	assert.Equal(t, "Longbowmen", table.LookupOr("archers", "x"))
	assert.Equal(t, "Skilled archers.\n\nDeadly at range.", table.LookupOr("Archers_descr", ""))
	assert.Equal(t, "fallback", table.LookupOr("Empty", "fallback"), "empty values fall back")
}

func TestParseTextTable_Fixture(t *testing.T) {
	keys := []string{"Peasants", "Archers"}
	table, err := ParseTextTable(modtest.TextTable(t, keys, modtest.UnitNames))
	require.NoError(t, err)
	assert.Equal(t, keys, table.Keys())
	assert.Equal(t, "Longbowmen", table.LookupOr("Archers", ""))
}

func TestParseTextTable_UnterminatedKey(t *testing.T) {
	_, err := ParseTextTable(encodeUTF16(t, "{a}x\n{broken\n"))
	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, int64(2), formatErr.Offset)
}

func TestMerge(t *testing.T) {
	a := NewTable([]string{"x", "y"}, map[string]string{"x": "1", "y": "2"})
	b := NewTable([]string{"x", "Z"}, map[string]string{"x": "10", "Z": "30"})

	m := Merge(a, nil, b)
	assert.Equal(t, []string{"x", "y", "Z"}, m.Keys())
	assert.Equal(t, "10", m.LookupOr("x", ""), "later tables win")
	assert.Equal(t, "10", m.LookupOr("X", ""))
	assert.Equal(t, "30", m.LookupOr("z", ""))
	assert.Equal(t, "2", m.LookupOr("y", ""))

	var empty *Table
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, "d", empty.LookupOr("x", "d"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "expanded.txt.strings.bin")
	txt := filepath.Join(dir, "export_units.txt")
	require.NoError(t, os.WriteFile(bin, modtest.StringsBin(t, []string{"ENGLAND"}, modtest.FactionNames), 0o644))
	require.NoError(t, os.WriteFile(txt, modtest.TextTable(t, []string{"Archers"}, modtest.UnitNames), 0o644))

	table, err := Load(bin)
	require.NoError(t, err)
	assert.Equal(t, "Kingdom of England", table.LookupOr("ENGLAND", ""))

	table, err = Load(txt)
	require.NoError(t, err)
	assert.Equal(t, "Longbowmen", table.LookupOr("Archers", ""))

	_, err = Load(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
