// Package sprites reads .sd sprite catalogs, which map keys to rectangles
// on texture pages.
package sprites

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
)

// Magic is the first word of every catalog.
const Magic = 6

// Page is a texture sheet.
type Page struct {
	File   string
	Width  uint32
	Height uint32
	Mask   []byte
}

// Sprite is one catalog entry.
type Sprite struct {
	Key    string
	Page   *Page
	Left   uint16
	Top    uint16
	Right  uint16
	Bottom uint16
	Alpha  bool
	Cursor bool
	X, Y   uint16
}

func (s Sprite) Width() int { return int(s.Right) - int(s.Left) }
func (s Sprite) Height() int { return int(s.Bottom) - int(s.Top) }

// Catalog is a decoded sprite catalog.
type Catalog struct {
	Pages   []*Page
	Sprites []Sprite
	index   map[string]int
}

// Lookup finds a sprite by key, ignoring case.
func (c *Catalog) Lookup(key string) (Sprite, bool) {
	if c == nil {
		return Sprite{}, false
	}
	i, ok := c.index[strings.ToLower(key)]
	if !ok {
		return Sprite{}, false
	}
	return c.Sprites[i], true
}

type reader struct {
	r   io.Reader
	err error
}

func (r *reader) read(v any) {
	if r.err == nil {
		r.err = binary.Read(r.r, binary.LittleEndian, v)
	}
}

func (r *reader) u8() uint8 {
	var v uint8
	r.read(&v)
	return v
}

func (r *reader) u16() uint16 {
	var v uint16
	r.read(&v)
	return v
}

func (r *reader) u32() uint32 {
	var v uint32
	r.read(&v)
	return v
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	_, r.err = io.ReadFull(r.r, buf)
	return buf
}

// ParseCatalog decodes a catalog:
//
//	u32 magic, u32 pages, u32 entries
//	page:  u16 len, name, u32 width, u32 height, u32 len, mask
//	entry: u16 len, key, u16 page, u16 left/top/right/bottom, u8 alpha, u8 cursor, u16 x/y
func ParseCatalog(in io.Reader) (*Catalog, error) {
	r := &reader{r: in}
	magic, pages, entries := r.u32(), r.u32(), r.u32()
	if r.err != nil {
		return nil, &CatalogError{Section: "header", Message: "truncated", Cause: r.err}
	}
	if magic != Magic {
		return nil, &CatalogError{Section: "header", Message: fmt.Sprintf("bad magic %d", magic)}
	}

	c := &Catalog{index: map[string]int{}}
	for i := 0; i < int(pages); i++ {
		p := &Page{}
		p.File = string(r.bytes(int(r.u16())))
		p.Width = r.u32()
		p.Height = r.u32()
		p.Mask = r.bytes(int(r.u32()))
		if r.err != nil {
			return nil, &CatalogError{Section: "page", Index: i, Message: "truncated", Cause: r.err}
		}
		c.Pages = append(c.Pages, p)
	}

	for i := 0; i < int(entries); i++ {
		key := string(r.bytes(int(r.u16())))
		page := r.u16()
		s := Sprite{Key: key, Left: r.u16(), Top: r.u16(), Right: r.u16(), Bottom: r.u16()}
		s.Alpha = r.u8() != 0
		s.Cursor = r.u8() != 0
		s.X, s.Y = r.u16(), r.u16()
		if r.err != nil {
			return nil, &CatalogError{Section: "entry", Index: i, Message: "truncated", Cause: r.err}
		}
		if int(page) >= len(c.Pages) {
			return nil, &CatalogError{Section: "entry", Index: i, Message: fmt.Sprintf("page %d out of range", page)}
		}
		s.Page = c.Pages[page]
		if _, dup := c.index[strings.ToLower(key)]; !dup {
			c.index[strings.ToLower(key)] = len(c.Sprites)
		}
		c.Sprites = append(c.Sprites, s)
	}
	return c, nil
}

// Load reads a catalog from disk.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sprite catalog: %w", err)
	}
	defer f.Close()
	return ParseCatalog(f)
}
