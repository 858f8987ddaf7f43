package document

import "github.com/dshills/docproxy/internal/textinput"

// Option configures a Field during creation.
type Option func(*Field)

// WithText sets the initial content. The cursor is placed at its end
// unless WithCursor is also given.
func WithText(text string) Option {
	return func(f *Field) {
		f.text = text
	}
}

// WithCursor places the cursor at a byte offset, snapped back to a
// character boundary and clamped to the content.
func WithCursor(offset int) Option {
	return func(f *Field) {
		f.initCursor = &offset
	}
}

// WithTraits sets the input traits the field reports.
func WithTraits(t textinput.Traits) Option {
	return func(f *Field) {
		f.traits = t
	}
}

// WithInputMode sets the input mode language the field reports.
func WithInputMode(primaryLanguage string) Option {
	return func(f *Field) {
		f.mode = &textinput.InputMode{PrimaryLanguage: primaryLanguage}
	}
}

// WithReadOnly creates a field that ignores edits.
// Selection and marked text are still tracked.
func WithReadOnly() Option {
	return func(f *Field) {
		f.readOnly = true
	}
}

// WithMaxLength limits the content to n grapheme clusters.
// Inserts that would exceed the limit are truncated.
func WithMaxLength(n int) Option {
	return func(f *Field) {
		if n > 0 {
			f.maxLength = n
		}
	}
}
