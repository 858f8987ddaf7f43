package textinput

import "fmt"

// Position is an opaque location inside a target's document.
// Positions are only meaningful to the target that produced them.
type Position interface {
	// Compare returns -1, 0 or 1 as the position sorts before, equal to or
	// after other. ok is false when other belongs to a different document.
	Compare(other Position) (cmp int, ok bool)
}

// TextRange is an opaque range between two positions of one document.
type TextRange interface {
	Start() Position
	End() Position
	IsEmpty() bool
}

// Span is a length-and-origin range, measured in characters.
// It is used for the selection inside marked text.
type Span struct {
	Location int
	Length   int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("{%d, %d}", s.Location, s.Length)
}

// End returns the exclusive end of the span.
func (s Span) End() int {
	return s.Location + s.Length
}

// KeyInput is the minimal editing capability: the operations a key press
// can perform without knowing anything about positions.
type KeyInput interface {
	// HasText reports whether the document contains any text.
	HasText() bool

	// InsertText inserts text at the cursor, replacing the selection or
	// the marked text.
	InsertText(text string)

	// DeleteBackward deletes the selection, or the character before the
	// cursor when the selection is empty.
	DeleteBackward()
}

// TextInput is the full capability a focusable text control provides.
// Methods returning a Position or TextRange return nil when the value
// cannot be produced.
type TextInput interface {
	KeyInput

	// SelectedTextRange returns the current selection, or nil if the
	// control has none.
	SelectedTextRange() TextRange

	// SetSelectedTextRange replaces the selection.
	SetSelectedTextRange(r TextRange)

	// TextRangeFrom builds the range between two positions.
	TextRangeFrom(from, to Position) TextRange

	// Text returns the text covered by r.
	Text(r TextRange) (string, bool)

	// PositionFrom returns the position offset characters away from p.
	PositionFrom(p Position, offset int) Position

	// BeginningOfDocument and EndOfDocument bound the document.
	BeginningOfDocument() Position
	EndOfDocument() Position

	// MarkedTextRange returns the range of uncommitted composition text,
	// or nil if nothing is marked.
	MarkedTextRange() TextRange

	// SetMarkedText replaces the marked text (or the selection) with text,
	// marks it, and selects the given span within it.
	SetMarkedText(text string, selected Span)

	// UnmarkText commits the marked text.
	UnmarkText()
}

// TraitProvider is implemented by controls that carry input trait
// preferences.
type TraitProvider interface {
	InputTraits() Traits
}

// InputMode identifies the input mode (keyboard language) of a control.
type InputMode struct {
	// PrimaryLanguage is a BCP 47 tag such as "en-US", or "" when the mode
	// is not tied to a language.
	PrimaryLanguage string
}

// InputModeProvider is implemented by controls that report their input mode.
type InputModeProvider interface {
	// TextInputMode returns the control's current input mode, if any.
	TextInputMode() (InputMode, bool)
}
