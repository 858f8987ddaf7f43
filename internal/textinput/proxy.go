package textinput

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DocumentProxy is the text target contract consumers program against.
// Queries report absence with a false second result rather than an error.
type DocumentProxy interface {
	KeyInput

	DocumentContextBeforeInput() (string, bool)
	DocumentContextAfterInput() (string, bool)
	SelectedText() (string, bool)
	AdjustTextPosition(offset int)
	SetMarkedText(text string, selected Span)
	UnmarkText()
	DocumentInputMode() (InputMode, bool)
	DocumentIdentifier() uuid.UUID
}

// Reasons reported when a call degrades.
const (
	reasonNoTarget    = "target absent"
	reasonNoSelection = "no selection"
	reasonNoRange     = "range unavailable"
	reasonNoPosition  = "position unreachable"
	reasonNoText      = "text unavailable"
	reasonNoMode      = "input mode unavailable"
)

// Proxy forwards DocumentProxy calls to a weakly referenced TextInput.
//
// Traits are captured from the target once, in New, and are plain state
// afterwards: changing them does not touch the target, and later changes
// to the target's own traits are not seen here.
type Proxy struct {
	// Traits are read by keyboards to decide presentation and may be
	// changed by the host for the current editing session.
	Traits Traits

	ref Ref
	id  uuid.UUID
	log zerolog.Logger
}

// Compile-time check.
var _ DocumentProxy = (*Proxy)(nil)

// New creates a proxy forwarding to target without keeping it alive.
// A nil target produces an inert proxy.
func New[T any, P interface {
	*T
	TextInput
}](target P, opts ...Option) *Proxy {
	return NewWithRef(WeakRef[T, P](target), opts...)
}

// NewWithRef creates a proxy forwarding to whatever ref resolves to.
// Traits are captured from the target ref resolves to at this moment.
func NewWithRef(ref Ref, opts ...Option) *Proxy {
	if ref == nil {
		ref = emptyRef{}
	}

	p := &Proxy{
		ref: ref,
		id:  uuid.New(),
		log: zerolog.Nop(),
	}

	if tp, ok := ref.Resolve().(TraitProvider); ok {
		p.Traits = tp.InputTraits()
	} else {
		p.Traits = DefaultTraits()
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Detached creates a proxy with no target. Every call degrades.
func Detached(opts ...Option) *Proxy {
	return NewWithRef(emptyRef{}, opts...)
}

// DocumentIdentifier returns the identifier assigned at creation.
func (p *Proxy) DocumentIdentifier() uuid.UUID {
	return p.id
}

// HasTarget reports whether the target is still reachable.
func (p *Proxy) HasTarget() bool {
	return p.ref.Resolve() != nil
}

// target resolves the target, logging when it is gone.
func (p *Proxy) target(op string) TextInput {
	t := p.ref.Resolve()
	if t == nil {
		p.degraded(op, reasonNoTarget)
	}
	return t
}

func (p *Proxy) degraded(op, reason string) {
	p.log.Debug().
		Str("document", p.id.String()).
		Str("op", op).
		Str("reason", reason).
		Msg("document proxy call degraded")
}

// HasText reports whether the target has any text.
func (p *Proxy) HasText() bool {
	t := p.target("has_text")
	if t == nil {
		return false
	}
	return t.HasText()
}

// InsertText inserts text into the target at its cursor.
func (p *Proxy) InsertText(text string) {
	if t := p.target("insert_text"); t != nil {
		t.InsertText(text)
	}
}

// DeleteBackward deletes backward in the target.
func (p *Proxy) DeleteBackward() {
	if t := p.target("delete_backward"); t != nil {
		t.DeleteBackward()
	}
}

// DocumentContextAfterInput returns the text from the end of the selection
// to the end of the document.
func (p *Proxy) DocumentContextAfterInput() (string, bool) {
	const op = "context_after"

	t := p.target(op)
	if t == nil {
		return "", false
	}
	sel := t.SelectedTextRange()
	if sel == nil {
		p.degraded(op, reasonNoSelection)
		return "", false
	}
	return p.textBetween(t, op, sel.End(), t.EndOfDocument())
}

// DocumentContextBeforeInput returns the text from the beginning of the
// document to the start of the selection.
func (p *Proxy) DocumentContextBeforeInput() (string, bool) {
	const op = "context_before"

	t := p.target(op)
	if t == nil {
		return "", false
	}
	sel := t.SelectedTextRange()
	if sel == nil {
		p.degraded(op, reasonNoSelection)
		return "", false
	}
	return p.textBetween(t, op, t.BeginningOfDocument(), sel.Start())
}

// SelectedText returns the text inside the current selection.
func (p *Proxy) SelectedText() (string, bool) {
	const op = "selected_text"

	t := p.target(op)
	if t == nil {
		return "", false
	}
	sel := t.SelectedTextRange()
	if sel == nil {
		p.degraded(op, reasonNoSelection)
		return "", false
	}
	return p.text(t, op, sel)
}

func (p *Proxy) textBetween(t TextInput, op string, from, to Position) (string, bool) {
	if from == nil || to == nil {
		p.degraded(op, reasonNoPosition)
		return "", false
	}
	r := t.TextRangeFrom(from, to)
	if r == nil {
		p.degraded(op, reasonNoRange)
		return "", false
	}
	return p.text(t, op, r)
}

func (p *Proxy) text(t TextInput, op string, r TextRange) (string, bool) {
	s, ok := t.Text(r)
	if !ok {
		p.degraded(op, reasonNoText)
		return "", false
	}
	return s, true
}

// AdjustTextPosition moves the cursor offset characters from the start of
// the selection, collapsing the selection. The move is expressed as a new
// zero-length selection because some controls do not honor direct cursor
// moves. Nothing happens if the new position is out of reach.
func (p *Proxy) AdjustTextPosition(offset int) {
	const op = "adjust_position"

	t := p.target(op)
	if t == nil {
		return
	}
	sel := t.SelectedTextRange()
	if sel == nil {
		p.degraded(op, reasonNoSelection)
		return
	}
	start := sel.Start()
	if start == nil {
		p.degraded(op, reasonNoPosition)
		return
	}
	pos := t.PositionFrom(start, offset)
	if pos == nil {
		p.degraded(op, reasonNoPosition)
		return
	}
	r := t.TextRangeFrom(pos, pos)
	if r == nil {
		p.degraded(op, reasonNoRange)
		return
	}
	t.SetSelectedTextRange(r)
}

// SetMarkedText forwards composition text to the target.
func (p *Proxy) SetMarkedText(text string, selected Span) {
	if t := p.target("set_marked_text"); t != nil {
		t.SetMarkedText(text, selected)
	}
}

// UnmarkText commits the target's composition text.
func (p *Proxy) UnmarkText() {
	if t := p.target("unmark_text"); t != nil {
		t.UnmarkText()
	}
}

// DocumentInputMode returns the target's input mode.
func (p *Proxy) DocumentInputMode() (InputMode, bool) {
	const op = "input_mode"

	t := p.target(op)
	if t == nil {
		return InputMode{}, false
	}
	mp, ok := t.(InputModeProvider)
	if !ok {
		p.degraded(op, reasonNoMode)
		return InputMode{}, false
	}
	return mp.TextInputMode()
}
