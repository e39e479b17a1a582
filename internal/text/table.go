// Package text reads localized string tables.
package text

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// StringsBinMagic is the second header word of a strings.bin file.
const StringsBinMagic = 0x0800

// commentMarker starts a comment line in UTF-16 text tables.
const commentMarker = "¬"

// Table maps localization keys to display strings.
type Table struct {
	entries map[string]string
	folded  map[string]string
	keys    []string
}

// NewTable builds a table from pairs in the given key order.
func NewTable(keys []string, entries map[string]string) *Table {
	t := &Table{entries: map[string]string{}, folded: map[string]string{}}
	for _, k := range keys {
		t.add(k, entries[k])
	}
	return t
}

func (t *Table) add(key, value string) {
	if _, ok := t.entries[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.entries[key] = value
	if _, ok := t.folded[strings.ToLower(key)]; !ok {
		t.folded[strings.ToLower(key)] = value
	}
}

// Lookup finds key exactly, then case-insensitively.
func (t *Table) Lookup(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	if v, ok := t.entries[key]; ok {
		return v, true
	}
	v, ok := t.folded[strings.ToLower(key)]
	return v, ok
}

// LookupOr returns the value for key, or fallback.
func (t *Table) LookupOr(key, fallback string) string {
	if v, ok := t.Lookup(key); ok && v != "" {
		return v
	}
	return fallback
}

// Keys returns the keys in file order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	return t.keys
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Merge returns a table holding the entries of every table. Later tables win.
func Merge(tables ...*Table) *Table {
	out := &Table{entries: map[string]string{}, folded: map[string]string{}}
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, k := range t.keys {
			out.add(k, t.entries[k])
			out.folded[strings.ToLower(k)] = t.entries[k]
		}
	}
	return out
}

// ParseStringsBin decodes the binary string table:
//
//	u16 type, u16 magic (0x0800), u32 count,
//	count × (u16 len, len × u16 key, u16 len, len × u16 value), UTF-16LE.
func ParseStringsBin(data []byte) (*Table, error) {
	r := bytes.NewReader(data)
	var header struct {
		Type  uint16
		Magic uint16
		Count uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, &FormatError{Offset: 0, Message: "short header", Cause: err}
	}
	if header.Magic != StringsBinMagic {
		return nil, &FormatError{Offset: 2, Message: fmt.Sprintf("bad magic 0x%04x", header.Magic)}
	}

	t := &Table{entries: map[string]string{}, folded: map[string]string{}}
	for i := uint32(0); i < header.Count; i++ {
		key, err := readUTF16(r)
		if err != nil {
			return nil, &FormatError{Offset: offset(data, r), Message: fmt.Sprintf("entry %d key", i), Cause: err}
		}
		value, err := readUTF16(r)
		if err != nil {
			return nil, &FormatError{Offset: offset(data, r), Message: fmt.Sprintf("entry %d value", i), Cause: err}
		}
		t.add(key, value)
	}
	return t, nil
}

func offset(data []byte, r *bytes.Reader) int64 {
	return int64(len(data)) - int64(r.Len())
}

func readUTF16(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	units := make([]uint16, n)
	if err := binary.Read(r, binary.LittleEndian, units); err != nil {
		return "", err
	}
	return string(utf16.Decode(units)), nil
}

// ParseTextTable decodes a UTF-16LE text table. A BOM is optional. Each
// entry starts with `{key}` at the start of a line; text after the closing
// brace and any following lines up to the next entry form the value, joined
// with newlines. Lines starting with ¬ are comments.
func ParseTextTable(data []byte) (*Table, error) {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	utf8, _, err := transform.Bytes(dec, data)
	if err != nil {
		return nil, &FormatError{Message: "invalid UTF-16", Cause: err}
	}
	return parseTextLines(string(utf8))
}

func parseTextLines(s string) (*Table, error) {
	t := &Table{entries: map[string]string{}, folded: map[string]string{}}
	var (
		key   string
		value []string
		open  bool
	)
	flush := func() {
		if open {
			t.add(key, strings.TrimRight(strings.Join(value, "\n"), "\n"))
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(s))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(strings.TrimPrefix(text, "\ufeff"))
		switch {
		case strings.HasPrefix(trimmed, commentMarker):
			continue
		case strings.HasPrefix(trimmed, "{"):
			end := strings.IndexByte(trimmed, '}')
			if end < 0 {
				return nil, &FormatError{Offset: int64(line), Message: "unterminated key"}
			}
			flush()
			key = trimmed[1:end]
			value = nil
			open = true
			if rest := strings.TrimSpace(trimmed[end+1:]); rest != "" {
				value = append(value, rest)
			}
		case open:
			if trimmed != "" || len(value) > 0 {
				value = append(value, trimmed)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &FormatError{Offset: int64(line), Message: "read failed", Cause: err}
	}
	flush()
	return t, nil
}

// Load reads a table from disk, choosing the binary decoder for
// .strings.bin files.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read string table: %w", err)
	}

	var t *Table
	if strings.HasSuffix(strings.ToLower(filepath.Base(path)), ".strings.bin") {
		t, err = ParseStringsBin(data)
	} else {
		t, err = ParseTextTable(data)
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded string table", "path", path, "entries", t.Len())
	return t, nil
}
