package host

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/docproxy/internal/textinput"
)

// Screen rows.
const (
	rowTabs  = 0
	rowField = 2
)

const (
	prompt     = "> "
	secureMask = "•"
	newline    = "↵"
)

var (
	styleDefault  = tcell.StyleDefault
	styleActive   = tcell.StyleDefault.Reverse(true)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleStatus   = tcell.StyleDefault.Dim(true)
	styleDetached = tcell.StyleDefault.Italic(true).Dim(true)
)

// Draw renders the field tabs, the focused document and the status line.
// The document is read only through the focused proxy.
func (h *Host) Draw() {
	h.screen.Clear()
	width, height := h.screen.Size()

	x := 0
	for i, f := range h.fields {
		style := styleDefault
		if i == h.active {
			style = styleActive
		}
		x = h.drawText(x, rowTabs, " "+f.label+" ", style)
		x = h.drawText(x, rowTabs, " ", styleDefault)
	}

	h.drawDocument(width)

	if height > rowField+1 {
		h.drawText(0, height-1, h.statusLine(), styleStatus)
	}
	h.screen.Show()
}

// drawDocument draws the focused document and places the cursor.
func (h *Host) drawDocument(width int) {
	p := h.proxy
	x := h.drawText(0, rowField, prompt, styleDefault)

	before, ok := p.DocumentContextBeforeInput()
	if !ok {
		h.drawText(x, rowField, "no document", styleDetached)
		h.screen.HideCursor()
		return
	}
	selected, _ := p.SelectedText()
	after, _ := p.DocumentContextAfterInput()

	secure := p.Traits.SecureTextEntry
	x = h.drawText(x, rowField, displayText(before, secure), styleDefault)
	cursor := x
	x = h.drawText(x, rowField, displayText(selected, secure), styleSelected)
	h.drawText(x, rowField, displayText(after, secure), styleDefault)

	if cursor < width {
		h.screen.ShowCursor(cursor, rowField)
	} else {
		h.screen.HideCursor()
	}
}

// statusLine describes the focused field's keyboard.
func (h *Host) statusLine() string {
	t := h.proxy.Traits
	parts := []string{
		"keyboard: " + t.KeyboardType.String(),
		"return: " + t.ReturnKeyType.Label(),
	}
	if t.SecureTextEntry {
		parts = append(parts, "secure")
	}
	if mode, ok := h.proxy.DocumentInputMode(); ok {
		parts = append(parts, "lang: "+mode.PrimaryLanguage)
	}
	if h.status != "" {
		parts = append(parts, h.status)
	}
	return strings.Join(parts, "  ")
}

// displayText masks secure text and makes newlines visible.
func displayText(s string, secure bool) string {
	if secure {
		return strings.Repeat(secureMask, uniseg.GraphemeClusterCount(s))
	}
	return strings.ReplaceAll(s, "\n", newline)
}

// drawText draws s one grapheme cluster per cell group starting at x and
// returns the column after it.
func (h *Host) drawText(x, y int, s string, style tcell.Style) int {
	width, _ := h.screen.Size()
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if x >= width {
			break
		}
		runes := g.Runes()
		h.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += max(1, g.Width())
	}
	return x
}

// keyboardSummary formats the keyboard traits for logs.
func keyboardSummary(t textinput.Traits) string {
	return t.KeyboardType.String() + "/" + t.ReturnKeyType.String()
}
