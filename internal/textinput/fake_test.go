package textinput

// fakePos is a rune offset into a fakeTarget.
type fakePos struct {
	owner *fakeTarget
	off   int
}

func (p fakePos) Compare(other Position) (int, bool) {
	o, ok := other.(fakePos)
	if !ok || o.owner != p.owner {
		return 0, false
	}
	switch {
	case p.off < o.off:
		return -1, true
	case p.off > o.off:
		return 1, true
	}
	return 0, true
}

type fakeRange struct {
	start, end fakePos
}

func (r fakeRange) Start() Position { return r.start }
func (r fakeRange) End() Position   { return r.end }
func (r fakeRange) IsEmpty() bool   { return r.start.off == r.end.off }

// fakeTarget is a minimal rune-indexed text control.
type fakeTarget struct {
	text     []rune
	selStart int
	selEnd   int
	noSel    bool
	noRanges bool
	marked   *fakeRange
	calls    []string
}

func newFake(text string, cursor int) *fakeTarget {
	return &fakeTarget{text: []rune(text), selStart: cursor, selEnd: cursor}
}

func (f *fakeTarget) pos(off int) fakePos { return fakePos{owner: f, off: off} }

func (f *fakeTarget) HasText() bool {
	f.calls = append(f.calls, "HasText")
	return len(f.text) > 0
}

func (f *fakeTarget) InsertText(text string) {
	f.calls = append(f.calls, "InsertText")
	ins := []rune(text)
	out := make([]rune, 0, len(f.text)+len(ins))
	out = append(out, f.text[:f.selStart]...)
	out = append(out, ins...)
	out = append(out, f.text[f.selEnd:]...)
	f.text = out
	f.selStart += len(ins)
	f.selEnd = f.selStart
	f.marked = nil
}

func (f *fakeTarget) DeleteBackward() {
	f.calls = append(f.calls, "DeleteBackward")
	if f.selStart == f.selEnd {
		if f.selStart == 0 {
			return
		}
		f.selStart--
	}
	f.text = append(f.text[:f.selStart], f.text[f.selEnd:]...)
	f.selEnd = f.selStart
}

func (f *fakeTarget) SelectedTextRange() TextRange {
	if f.noSel {
		return nil
	}
	return fakeRange{f.pos(f.selStart), f.pos(f.selEnd)}
}

func (f *fakeTarget) SetSelectedTextRange(r TextRange) {
	f.calls = append(f.calls, "SetSelectedTextRange")
	fr := r.(fakeRange)
	f.selStart, f.selEnd = fr.start.off, fr.end.off
	f.noSel = false
}

func (f *fakeTarget) TextRangeFrom(from, to Position) TextRange {
	if f.noRanges {
		return nil
	}
	a, ok1 := from.(fakePos)
	b, ok2 := to.(fakePos)
	if !ok1 || !ok2 || a.owner != f || b.owner != f || a.off > b.off {
		return nil
	}
	return fakeRange{a, b}
}

func (f *fakeTarget) Text(r TextRange) (string, bool) {
	fr, ok := r.(fakeRange)
	if !ok {
		return "", false
	}
	return string(f.text[fr.start.off:fr.end.off]), true
}

func (f *fakeTarget) PositionFrom(p Position, offset int) Position {
	fp, ok := p.(fakePos)
	if !ok {
		return nil
	}
	n := fp.off + offset
	if n < 0 || n > len(f.text) {
		return nil
	}
	return f.pos(n)
}

func (f *fakeTarget) BeginningOfDocument() Position { return f.pos(0) }
func (f *fakeTarget) EndOfDocument() Position       { return f.pos(len(f.text)) }

func (f *fakeTarget) MarkedTextRange() TextRange {
	if f.marked == nil {
		return nil
	}
	return *f.marked
}

func (f *fakeTarget) SetMarkedText(text string, selected Span) {
	f.calls = append(f.calls, "SetMarkedText")
	start := f.selStart
	f.InsertText(text)
	f.marked = &fakeRange{f.pos(start), f.pos(start + len([]rune(text)))}
	f.selStart = start + selected.Location
	f.selEnd = f.selStart + selected.Length
}

func (f *fakeTarget) UnmarkText() {
	f.calls = append(f.calls, "UnmarkText")
	f.marked = nil
}

// traitTarget adds trait and input mode reporting to fakeTarget.
type traitTarget struct {
	fakeTarget
	traits Traits
	mode   InputMode
}

func (t *traitTarget) InputTraits() Traits              { return t.traits }
func (t *traitTarget) TextInputMode() (InputMode, bool) { return t.mode, true }
