package document

import (
	"sync"

	"github.com/dshills/docproxy/internal/textinput"
)

// Field is an editable single-document text control.
// It implements textinput.TextInput, textinput.TraitProvider and
// textinput.InputModeProvider. All methods are thread-safe.
type Field struct {
	mu sync.RWMutex

	id   fieldID
	text string

	sel    Selection
	hasSel bool

	markStart, markEnd int
	hasMarked          bool

	// Configuration
	traits    textinput.Traits
	mode      *textinput.InputMode
	readOnly  bool
	maxLength int

	// Initialization
	initCursor *int
}

// Compile-time checks.
var (
	_ textinput.TextInput         = (*Field)(nil)
	_ textinput.TraitProvider     = (*Field)(nil)
	_ textinput.InputModeProvider = (*Field)(nil)
)

// New creates a field with the given options.
func New(opts ...Option) *Field {
	f := &Field{id: newFieldID()}

	for _, opt := range opts {
		opt(f)
	}

	cursor := len(f.text)
	if f.initCursor != nil {
		cursor = snap(f.text, *f.initCursor)
		f.initCursor = nil
	}
	f.sel = NewCursorSelection(cursor)
	f.hasSel = true

	return f
}

// Read Operations

// Content returns the full text of the field.
func (f *Field) Content() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.text
}

// Len returns the content length in bytes.
func (f *Field) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.text)
}

// Selection returns the current selection, if the field has one.
func (f *Field) Selection() (Selection, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sel, f.hasSel
}

// MarkedText returns the uncommitted composition text, if any.
func (f *Field) MarkedText() (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.hasMarked {
		return "", false
	}
	return f.text[f.markStart:f.markEnd], true
}

// HasText reports whether the field contains any text.
func (f *Field) HasText() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.text) > 0
}

// Selection Operations

// SetSelection selects from anchor to head (byte offsets). Offsets are
// snapped back to character boundaries.
func (f *Field) SetSelection(anchor, head int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if anchor < 0 || head < 0 || anchor > len(f.text) || head > len(f.text) {
		return ErrOffsetOutOfRange
	}
	f.sel = Selection{Anchor: snap(f.text, anchor), Head: snap(f.text, head)}
	f.hasSel = true
	return nil
}

// ClearSelection removes the selection. Until a new selection is set the
// field reports none and ignores typing.
func (f *Field) ClearSelection() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hasSel = false
}

// SelectedTextRange returns the selection as a range, or nil.
func (f *Field) SelectedTextRange() textinput.TextRange {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.hasSel {
		return nil
	}
	return Range{field: f.id, start: f.sel.Start(), end: f.sel.End()}
}

// SetSelectedTextRange selects r. Ranges from other fields or beyond the
// content are ignored.
func (f *Field) SetSelectedTextRange(r textinput.TextRange) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rr, err := f.ownRangeLocked(r)
	if err != nil {
		return
	}
	f.sel = Selection{Anchor: snap(f.text, rr.start), Head: snap(f.text, rr.end)}
	f.hasSel = true
}

// Position Operations

// BeginningOfDocument returns the first position.
func (f *Field) BeginningOfDocument() textinput.Position {
	return Position{field: f.id, offset: 0}
}

// EndOfDocument returns the position after the last character.
func (f *Field) EndOfDocument() textinput.Position {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return Position{field: f.id, offset: len(f.text)}
}

// TextRangeFrom returns the range between from and to, in either order.
// It returns nil for positions of another field or beyond the content.
func (f *Field) TextRangeFrom(from, to textinput.Position) textinput.TextRange {
	f.mu.RLock()
	defer f.mu.RUnlock()

	a, ok := f.ownPositionLocked(from)
	if !ok {
		return nil
	}
	b, ok := f.ownPositionLocked(to)
	if !ok {
		return nil
	}
	if a > b {
		a, b = b, a
	}
	return Range{field: f.id, start: a, end: b}
}

// Text returns the text covered by r.
func (f *Field) Text(r textinput.TextRange) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	rr, err := f.ownRangeLocked(r)
	if err != nil {
		return "", false
	}
	return f.text[rr.start:rr.end], true
}

// PositionFrom returns the position offset characters from p, or nil if
// that would leave the document.
func (f *Field) PositionFrom(p textinput.Position, offset int) textinput.Position {
	f.mu.RLock()
	defer f.mu.RUnlock()

	off, ok := f.ownPositionLocked(p)
	if !ok {
		return nil
	}
	bounds := boundaries(f.text)
	i := clusterIndex(bounds, off) + offset
	if i < 0 || i >= len(bounds) {
		return nil
	}
	return Position{field: f.id, offset: bounds[i]}
}

func (f *Field) ownPositionLocked(p textinput.Position) (int, bool) {
	pos, ok := p.(Position)
	if !ok || pos.field != f.id {
		return 0, false
	}
	if pos.offset < 0 || pos.offset > len(f.text) {
		return 0, false
	}
	return pos.offset, true
}

func (f *Field) ownRangeLocked(r textinput.TextRange) (Range, error) {
	rr, ok := r.(Range)
	if !ok || rr.field != f.id {
		return Range{}, ErrForeignRange
	}
	if rr.start < 0 || rr.start > rr.end || rr.end > len(f.text) {
		return Range{}, ErrOffsetOutOfRange
	}
	return rr, nil
}

// Edit Operations

// InsertText replaces the marked text, or the selection, with text and
// leaves the cursor after it. Ignored when the field has no selection.
func (f *Field) InsertText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.readOnly {
		return
	}

	var start, end int
	switch {
	case f.hasMarked:
		start, end = f.markStart, f.markEnd
	case f.hasSel:
		start, end = f.sel.Start(), f.sel.End()
	default:
		return
	}

	newEnd := f.replaceLocked(start, end, text)
	f.hasMarked = false
	f.sel = NewCursorSelection(newEnd)
	f.hasSel = true
}

// DeleteBackward removes the selection, or the character before the cursor.
func (f *Field) DeleteBackward() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.readOnly || !f.hasSel {
		return
	}

	start, end := f.sel.Start(), f.sel.End()
	if start == end {
		if start == 0 {
			return
		}
		bounds := boundaries(f.text)
		start = bounds[clusterIndex(bounds, end-1)]
	}

	f.replaceLocked(start, end, "")
	f.sel = NewCursorSelection(start)
}

// MarkedTextRange returns the range of the marked text, or nil.
func (f *Field) MarkedTextRange() textinput.TextRange {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.hasMarked {
		return nil
	}
	return Range{field: f.id, start: f.markStart, end: f.markEnd}
}

// SetMarkedText replaces the marked text, or the selection, with text and
// marks it. selected is a character span inside text and becomes the
// selection, clamped to the marked text. Empty text removes the marking.
func (f *Field) SetMarkedText(text string, selected textinput.Span) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.readOnly {
		return
	}

	var start, end int
	switch {
	case f.hasMarked:
		start, end = f.markStart, f.markEnd
	case f.hasSel:
		start, end = f.sel.Start(), f.sel.End()
	default:
		return
	}

	newEnd := f.replaceLocked(start, end, text)
	if newEnd == start {
		f.hasMarked = false
		f.sel = NewCursorSelection(start)
		f.hasSel = true
		return
	}

	f.markStart, f.markEnd, f.hasMarked = start, newEnd, true

	marked := f.text[start:newEnd]
	loc := max(0, selected.Location)
	length := max(0, selected.Length)
	f.sel = Selection{
		Anchor: start + clusterOffset(marked, loc),
		Head:   start + clusterOffset(marked, loc+length),
	}
	f.hasSel = true
}

// UnmarkText commits the marked text in place.
func (f *Field) UnmarkText() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hasMarked = false
}

// replaceLocked replaces [start, end) with s, honoring the length limit,
// and keeps the marked range consistent. It returns the end of the
// inserted text.
func (f *Field) replaceLocked(start, end int, s string) int {
	if f.maxLength > 0 {
		room := f.maxLength - (clusterCount(f.text) - clusterCount(f.text[start:end]))
		if clusterCount(s) > room {
			s = s[:clusterOffset(s, max(0, room))]
		}
	}

	f.text = f.text[:start] + s + f.text[end:]

	if f.hasMarked {
		delta := len(s) - (end - start)
		switch {
		case end <= f.markStart:
			f.markStart += delta
			f.markEnd += delta
		case start >= f.markEnd:
			// Edit after the marked text.
		case start >= f.markStart && end <= f.markEnd:
			f.markEnd += delta
		default:
			f.hasMarked = false
		}
		if f.markStart == f.markEnd {
			f.hasMarked = false
		}
	}

	return start + len(s)
}

// Trait Operations

// InputTraits returns the traits the field reports.
func (f *Field) InputTraits() textinput.Traits {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.traits
}

// SetInputTraits changes the traits the field reports.
// Proxies already bound keep the traits they captured.
func (f *Field) SetInputTraits(t textinput.Traits) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.traits = t
}

// TextInputMode returns the field's input mode, if one was configured.
func (f *Field) TextInputMode() (textinput.InputMode, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.mode == nil {
		return textinput.InputMode{}, false
	}
	return *f.mode, true
}

// IsReadOnly reports whether the field ignores edits.
func (f *Field) IsReadOnly() bool {
	return f.readOnly
}
