package host

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/docproxy/internal/textinput"
)

// handleKey routes a key press through the focused proxy.
func (h *Host) handleKey(ev *tcell.EventKey) bool {
	p := h.proxy

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false

	case tcell.KeyRune:
		if text, ok := h.typed(ev.Rune()); ok {
			p.InsertText(text)
		}

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		p.DeleteBackward()

	case tcell.KeyLeft:
		p.AdjustTextPosition(-1)

	case tcell.KeyRight:
		p.AdjustTextPosition(1)

	case tcell.KeyEnter:
		h.pressReturn()

	case tcell.KeyTab:
		h.FocusNext()
	}
	return true
}

// pressReturn inserts a newline for the default return key and submits
// for any other.
func (h *Host) pressReturn() {
	p := h.proxy
	if p.Traits.EnablesReturnKeyAutomatically && !p.HasText() {
		return
	}

	rk := p.Traits.ReturnKeyType
	if rk == textinput.ReturnKeyDefault {
		p.InsertText("\n")
		return
	}

	id, _ := h.Active()
	text := documentText(p)
	h.status = rk.Label()
	h.log.Debug().
		Str("document", p.DocumentIdentifier().String()).
		Str("return_key", rk.String()).
		Msg("submitted")
	if h.onSubmit != nil {
		h.onSubmit(id, text, rk)
	}
}

// typed converts a typed rune according to the proxy's keyboard traits.
// ok is false when the keyboard type has no key for r.
func (h *Host) typed(r rune) (string, bool) {
	t := h.proxy.Traits

	if !keyboardAccepts(t.KeyboardType, r) {
		return "", false
	}

	if shouldCapitalize(t.Autocapitalization, h.proxy) {
		r = unicode.ToUpper(r)
	}
	return string(r), true
}

// keyboardAccepts reports whether a keyboard of type k can type r.
func keyboardAccepts(k textinput.KeyboardType, r rune) bool {
	switch k {
	case textinput.KeyboardTypeNumberPad, textinput.KeyboardTypeASCIICapableNumberPad:
		return r >= '0' && r <= '9'
	case textinput.KeyboardTypeDecimalPad:
		return (r >= '0' && r <= '9') || r == '.' || r == ','
	case textinput.KeyboardTypePhonePad:
		return (r >= '0' && r <= '9') || strings.ContainsRune("+*#", r)
	case textinput.KeyboardTypeASCIICapable:
		return r < unicode.MaxASCII
	default:
		return true
	}
}

// shouldCapitalize decides from the text before the cursor whether the
// next letter is shifted.
func shouldCapitalize(a textinput.Autocapitalization, p textinput.DocumentProxy) bool {
	switch a {
	case textinput.AutocapitalizationAllCharacters:
		return true
	case textinput.AutocapitalizationWords:
		before, ok := p.DocumentContextBeforeInput()
		if !ok {
			return false
		}
		return before == "" || unicode.IsSpace(lastRune(before))
	case textinput.AutocapitalizationSentences:
		before, ok := p.DocumentContextBeforeInput()
		if !ok {
			return false
		}
		trimmed := strings.TrimRightFunc(before, unicode.IsSpace)
		if trimmed == "" {
			return true
		}
		return trimmed != before && strings.ContainsRune(".!?", lastRune(trimmed))
	default:
		return false
	}
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

// documentText reassembles the document from the proxy's context queries.
func documentText(p textinput.DocumentProxy) string {
	before, _ := p.DocumentContextBeforeInput()
	selected, _ := p.SelectedText()
	after, _ := p.DocumentContextAfterInput()
	return before + selected + after
}
