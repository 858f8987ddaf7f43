package document

import (
	"fmt"
	"sync/atomic"

	"github.com/dshills/docproxy/internal/textinput"
)

// fieldID distinguishes the documents positions belong to.
type fieldID uint64

var fieldCounter uint64

func newFieldID() fieldID {
	return fieldID(atomic.AddUint64(&fieldCounter, 1))
}

// Position is a byte offset into one Field's content.
type Position struct {
	field  fieldID
	offset int
}

// Offset returns the byte offset of the position.
func (p Position) Offset() int {
	return p.offset
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("@%d", p.offset)
}

// Compare orders positions of the same field.
func (p Position) Compare(other textinput.Position) (int, bool) {
	o, ok := other.(Position)
	if !ok || o.field != p.field {
		return 0, false
	}
	switch {
	case p.offset < o.offset:
		return -1, true
	case p.offset > o.offset:
		return 1, true
	}
	return 0, true
}

// Range is a byte range of one Field's content.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	field      fieldID
	start, end int
}

// Start returns the inclusive start position.
func (r Range) Start() textinput.Position {
	return Position{field: r.field, offset: r.start}
}

// End returns the exclusive end position.
func (r Range) End() textinput.Position {
	return Position{field: r.field, offset: r.end}
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.start == r.end
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.end - r.start
}

// Offsets returns the byte bounds of the range.
func (r Range) Offsets() (start, end int) {
	return r.start, r.end
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.start, r.end)
}

// Selection is the selected range of a Field.
// Anchor is where the selection started; Head is where typing occurs.
// When Anchor == Head the selection is just a cursor.
type Selection struct {
	Anchor int
	Head   int
}

// NewCursorSelection creates a selection with no extent.
func NewCursorSelection(offset int) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Start returns the lower bound of the selection.
func (s Selection) Start() int {
	return min(s.Anchor, s.Head)
}

// End returns the upper bound of the selection.
func (s Selection) End() int {
	return max(s.Anchor, s.Head)
}

// Collapse returns a cursor at the head.
func (s Selection) Collapse() Selection {
	return Selection{Anchor: s.Head, Head: s.Head}
}
