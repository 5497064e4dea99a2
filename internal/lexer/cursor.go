package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"cppbind/internal/source"
)

// Cursor walks the raw bytes of one file. Offsets are uint32, matching
// source.Span.
type Cursor struct {
	src []byte
	Off uint32
	end uint32
}

// NewCursor positions a cursor at the start of file.
func NewCursor(file *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("file size overflow: %w", err))
	}
	return Cursor{src: file.Content, end: end}
}

// EOF reports whether the cursor has consumed the whole file.
func (c *Cursor) EOF() bool { return c.Off >= c.end }

// Peek returns the current byte without consuming it, 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.Off]
}

// PeekAt returns the byte n positions ahead, 0 past EOF.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.end {
		return 0
	}
	return c.src[c.Off+n]
}

// Bump consumes and returns the current byte, 0 at EOF.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.Off]
	c.Off++
	return b
}

// Slice returns the raw bytes of [start, c.Off) as a string.
func (c *Cursor) Slice(start uint32) string {
	return string(c.src[start:c.Off])
}
