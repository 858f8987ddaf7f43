package textinput

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TestProxyDocumentIdentifier(t *testing.T) {
	target := newFake("hello", 5)
	p1 := New(target)
	p2 := New(target)

	if p1.DocumentIdentifier() == uuid.Nil {
		t.Fatal("identifier should not be nil")
	}
	if p1.DocumentIdentifier() != p1.DocumentIdentifier() {
		t.Error("identifier should be stable")
	}
	if p1.DocumentIdentifier() == p2.DocumentIdentifier() {
		t.Error("separate proxies should have distinct identifiers")
	}

	id := p1.DocumentIdentifier()
	p1.InsertText("x")
	p1.AdjustTextPosition(-1)
	if p1.DocumentIdentifier() != id {
		t.Error("identifier changed after edits")
	}
}

func TestProxyContextAroundCursor(t *testing.T) {
	target := newFake("hello world", 5)
	p := New(target)

	after, ok := p.DocumentContextAfterInput()
	if !ok || after != " world" {
		t.Errorf("DocumentContextAfterInput() = %q, %v; want %q, true", after, ok, " world")
	}

	before, ok := p.DocumentContextBeforeInput()
	if !ok || before != "hello" {
		t.Errorf("DocumentContextBeforeInput() = %q, %v; want %q, true", before, ok, "hello")
	}
}

func TestProxyContextUsesSelectionBounds(t *testing.T) {
	target := newFake("hello world", 0)
	target.selStart, target.selEnd = 2, 8
	p := New(target)

	before, _ := p.DocumentContextBeforeInput()
	if before != "he" {
		t.Errorf("before = %q, want %q", before, "he")
	}
	after, _ := p.DocumentContextAfterInput()
	if after != "rld" {
		t.Errorf("after = %q, want %q", after, "rld")
	}
	sel, ok := p.SelectedText()
	if !ok || sel != "llo wo" {
		t.Errorf("SelectedText() = %q, %v; want %q, true", sel, ok, "llo wo")
	}
}

func TestProxyQueriesAreLive(t *testing.T) {
	target := newFake("abc", 3)
	p := New(target)

	if before, _ := p.DocumentContextBeforeInput(); before != "abc" {
		t.Fatalf("before = %q, want %q", before, "abc")
	}

	// Mutate the target behind the proxy's back.
	target.text = []rune("abcdef")
	target.selStart, target.selEnd = 6, 6

	if before, _ := p.DocumentContextBeforeInput(); before != "abcdef" {
		t.Errorf("before = %q, want %q", before, "abcdef")
	}
}

func TestProxyAdjustTextPosition(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		selStart  int
		selEnd    int
		offset    int
		wantStart int
		wantEnd   int
		wantSet   bool
	}{
		{"back two from end", "hello", 5, 5, -2, 3, 3, true},
		{"forward one", "hello", 1, 1, 1, 2, 2, true},
		{"zero collapses selection", "hello", 1, 4, 0, 1, 1, true},
		{"selection collapses to start plus offset", "hello", 1, 4, 2, 3, 3, true},
		{"before start is no-op", "hello", 1, 3, -2, 1, 3, false},
		{"after end is no-op", "hello", 5, 5, 1, 5, 5, false},
		{"to document start", "hello", 2, 2, -2, 0, 0, true},
		{"to document end", "hello", 0, 0, 5, 5, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := newFake(tt.text, 0)
			target.selStart, target.selEnd = tt.selStart, tt.selEnd
			p := New(target)

			p.AdjustTextPosition(tt.offset)

			if target.selStart != tt.wantStart || target.selEnd != tt.wantEnd {
				t.Errorf("selection = [%d,%d), want [%d,%d)",
					target.selStart, target.selEnd, tt.wantStart, tt.wantEnd)
			}
			if got := containsCall(target.calls, "SetSelectedTextRange"); got != tt.wantSet {
				t.Errorf("SetSelectedTextRange called = %v, want %v", got, tt.wantSet)
			}
			if string(target.text) != tt.text {
				t.Errorf("text changed to %q", string(target.text))
			}
		})
	}
}

func TestProxyAdjustMovesInsertionPoint(t *testing.T) {
	target := newFake("hello", 5)
	p := New(target)

	p.AdjustTextPosition(-2)
	p.InsertText("_")

	if got := string(target.text); got != "hel_lo" {
		t.Errorf("text = %q, want %q", got, "hel_lo")
	}
}

func TestProxyNoSelection(t *testing.T) {
	target := newFake("hello", 2)
	target.noSel = true
	p := New(target)

	if s, ok := p.DocumentContextAfterInput(); ok || s != "" {
		t.Errorf("DocumentContextAfterInput() = %q, %v; want absent", s, ok)
	}
	if s, ok := p.DocumentContextBeforeInput(); ok || s != "" {
		t.Errorf("DocumentContextBeforeInput() = %q, %v; want absent", s, ok)
	}
	if s, ok := p.SelectedText(); ok || s != "" {
		t.Errorf("SelectedText() = %q, %v; want absent", s, ok)
	}

	p.AdjustTextPosition(1)
	if containsCall(target.calls, "SetSelectedTextRange") {
		t.Error("AdjustTextPosition should not touch a target without selection")
	}
}

func TestProxyRangeUnavailable(t *testing.T) {
	target := newFake("hello", 2)
	target.noRanges = true
	p := New(target)

	if _, ok := p.DocumentContextAfterInput(); ok {
		t.Error("DocumentContextAfterInput() should be absent")
	}
	if _, ok := p.DocumentContextBeforeInput(); ok {
		t.Error("DocumentContextBeforeInput() should be absent")
	}

	// Selection itself is still available.
	if s, ok := p.SelectedText(); !ok || s != "" {
		t.Errorf("SelectedText() = %q, %v; want empty, true", s, ok)
	}

	p.AdjustTextPosition(1)
	if target.selStart != 2 {
		t.Errorf("cursor moved to %d without a range", target.selStart)
	}
}

func TestProxyInsertThenSelectedText(t *testing.T) {
	target := newFake("ab", 1)
	p := New(target)

	p.InsertText("x")

	sel, ok := p.SelectedText()
	if !ok || sel != "" {
		t.Errorf("SelectedText() = %q, %v; want empty, true", sel, ok)
	}
	before, _ := p.DocumentContextBeforeInput()
	if before != "ax" {
		t.Errorf("before = %q, want %q", before, "ax")
	}
	if !p.HasText() {
		t.Error("HasText() = false, want true")
	}
}

func TestProxyDeleteBackward(t *testing.T) {
	target := newFake("abc", 3)
	p := New(target)

	p.DeleteBackward()

	if got := string(target.text); got != "ab" {
		t.Errorf("text = %q, want %q", got, "ab")
	}
}

func TestProxyHasText(t *testing.T) {
	p := New(newFake("", 0))
	if p.HasText() {
		t.Error("HasText() on empty document = true")
	}
}

func TestProxyMarkedText(t *testing.T) {
	target := newFake("ab", 2)
	p := New(target)

	p.SetMarkedText("ka", Span{Location: 2, Length: 0})
	if target.marked == nil {
		t.Fatal("marked text not forwarded")
	}
	if got := string(target.text); got != "abka" {
		t.Errorf("text = %q, want %q", got, "abka")
	}

	p.UnmarkText()
	if target.marked != nil {
		t.Error("UnmarkText not forwarded")
	}
}

func TestProxyInputMode(t *testing.T) {
	plain := New(newFake("", 0))
	if _, ok := plain.DocumentInputMode(); ok {
		t.Error("target without input mode should report absent")
	}

	tt := &traitTarget{fakeTarget: *newFake("", 0), mode: InputMode{PrimaryLanguage: "ja-JP"}}
	p := New(tt)
	mode, ok := p.DocumentInputMode()
	if !ok || mode.PrimaryLanguage != "ja-JP" {
		t.Errorf("DocumentInputMode() = %+v, %v; want ja-JP, true", mode, ok)
	}
}

func TestProxyDetached(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	for name, p := range map[string]*Proxy{
		"detached":   Detached(WithLogger(log)),
		"nil target": New[fakeTarget](nil, WithLogger(log)),
		"nil ref":    NewWithRef(nil, WithLogger(log)),
	} {
		t.Run(name, func(t *testing.T) {
			assertInert(t, p)
		})
	}

	if !strings.Contains(buf.String(), reasonNoTarget) {
		t.Errorf("expected degraded calls to be logged, got %q", buf.String())
	}
}

func TestProxyTargetVanishes(t *testing.T) {
	var target TextInput = newFake("hello", 5)
	alive := true
	p := NewWithRef(RefFunc(func() TextInput {
		if !alive {
			return nil
		}
		return target
	}))

	if !p.HasText() {
		t.Fatal("HasText() = false while target alive")
	}

	alive = false
	assertInert(t, p)

	alive = true
	if !p.HasTarget() {
		t.Error("proxy should follow its ref once the target resolves again")
	}
}

//go:noinline
func newCollectableProxy() *Proxy {
	return New(newFake("transient", 9))
}

func TestProxyDoesNotOwnTarget(t *testing.T) {
	p := newCollectableProxy()

	runtime.GC()

	if p.HasTarget() {
		t.Fatal("proxy kept its target reachable")
	}
	assertInert(t, p)
}

func TestProxyKeepsTargetWhileReferenced(t *testing.T) {
	target := newFake("kept", 4)
	p := New(target)

	runtime.GC()

	if !p.HasTarget() {
		t.Fatal("target collected while still referenced")
	}
	runtime.KeepAlive(target)
}

func assertInert(t *testing.T, p *Proxy) {
	t.Helper()

	if p.HasTarget() {
		t.Error("HasTarget() = true")
	}
	if p.HasText() {
		t.Error("HasText() = true")
	}
	if s, ok := p.DocumentContextAfterInput(); ok || s != "" {
		t.Errorf("DocumentContextAfterInput() = %q, %v", s, ok)
	}
	if s, ok := p.DocumentContextBeforeInput(); ok || s != "" {
		t.Errorf("DocumentContextBeforeInput() = %q, %v", s, ok)
	}
	if s, ok := p.SelectedText(); ok || s != "" {
		t.Errorf("SelectedText() = %q, %v", s, ok)
	}
	if _, ok := p.DocumentInputMode(); ok {
		t.Error("DocumentInputMode() reported a mode")
	}

	// Mutations must be silent no-ops.
	p.InsertText("x")
	p.DeleteBackward()
	p.AdjustTextPosition(-1)
	p.SetMarkedText("x", Span{})
	p.UnmarkText()

	if p.DocumentIdentifier() == uuid.Nil {
		t.Error("inert proxy should still carry an identifier")
	}
}

func containsCall(calls []string, name string) bool {
	for _, c := range calls {
		if c == name {
			return true
		}
	}
	return false
}
