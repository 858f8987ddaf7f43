package api

import (
	"github.com/rivo/uniseg"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/docproxy/internal/textinput"
)

// DocModule implements the ks.doc API module over a document proxy.
type DocModule struct {
	proxy *textinput.Proxy
}

// NewDocModule creates a doc module. A nil proxy behaves like one whose
// document is gone.
func NewDocModule(proxy *textinput.Proxy) *DocModule {
	return &DocModule{proxy: proxy}
}

// Name returns the module name.
func (m *DocModule) Name() string {
	return "doc"
}

// Register registers the module into the Lua state.
func (m *DocModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "has_text", L.NewFunction(m.hasText))
	L.SetField(mod, "insert", L.NewFunction(m.insert))
	L.SetField(mod, "delete_backward", L.NewFunction(m.deleteBackward))
	L.SetField(mod, "before", L.NewFunction(m.before))
	L.SetField(mod, "after", L.NewFunction(m.after))
	L.SetField(mod, "selected", L.NewFunction(m.selected))
	L.SetField(mod, "adjust", L.NewFunction(m.adjust))
	L.SetField(mod, "set_marked", L.NewFunction(m.setMarked))
	L.SetField(mod, "unmark", L.NewFunction(m.unmark))
	L.SetField(mod, "input_mode", L.NewFunction(m.inputMode))
	L.SetField(mod, "id", L.NewFunction(m.id))
	L.SetField(mod, "traits", L.NewFunction(m.traits))
	L.SetField(mod, "set_return_key", L.NewFunction(m.setReturnKey))
	L.SetField(mod, "set_secure", L.NewFunction(m.setSecure))

	L.SetGlobal("_ks_doc", mod)
	return nil
}

// pushOptional pushes s, or nil when ok is false.
func pushOptional(L *lua.LState, s string, ok bool) int {
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(s))
	return 1
}

// has_text() -> bool
func (m *DocModule) hasText(L *lua.LState) int {
	if m.proxy == nil {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(m.proxy.HasText()))
	return 1
}

// insert(text)
// Inserts text at the cursor, replacing any selection.
func (m *DocModule) insert(L *lua.LState) int {
	text := L.CheckString(1)
	if m.proxy != nil {
		m.proxy.InsertText(text)
	}
	return 0
}

// delete_backward()
func (m *DocModule) deleteBackward(L *lua.LState) int {
	if m.proxy != nil {
		m.proxy.DeleteBackward()
	}
	return 0
}

// before() -> string|nil
// Returns the text before the selection.
func (m *DocModule) before(L *lua.LState) int {
	if m.proxy == nil {
		return pushOptional(L, "", false)
	}
	s, ok := m.proxy.DocumentContextBeforeInput()
	return pushOptional(L, s, ok)
}

// after() -> string|nil
// Returns the text after the selection.
func (m *DocModule) after(L *lua.LState) int {
	if m.proxy == nil {
		return pushOptional(L, "", false)
	}
	s, ok := m.proxy.DocumentContextAfterInput()
	return pushOptional(L, s, ok)
}

// selected() -> string|nil
func (m *DocModule) selected(L *lua.LState) int {
	if m.proxy == nil {
		return pushOptional(L, "", false)
	}
	s, ok := m.proxy.SelectedText()
	return pushOptional(L, s, ok)
}

// adjust(offset)
// Moves the cursor by offset characters from the selection start.
func (m *DocModule) adjust(L *lua.LState) int {
	offset := L.CheckInt(1)
	if m.proxy != nil {
		m.proxy.AdjustTextPosition(offset)
	}
	return 0
}

// set_marked(text [, location [, length]])
// Marks text as provisional input. The selection inside it defaults to a
// cursor after the last character.
func (m *DocModule) setMarked(L *lua.LState) int {
	text := L.CheckString(1)
	location := L.OptInt(2, uniseg.GraphemeClusterCount(text))
	length := L.OptInt(3, 0)

	if location < 0 {
		L.ArgError(2, "location must be non-negative")
		return 0
	}
	if length < 0 {
		L.ArgError(3, "length must be non-negative")
		return 0
	}

	if m.proxy != nil {
		m.proxy.SetMarkedText(text, textinput.Span{Location: location, Length: length})
	}
	return 0
}

// unmark()
func (m *DocModule) unmark(L *lua.LState) int {
	if m.proxy != nil {
		m.proxy.UnmarkText()
	}
	return 0
}

// input_mode() -> string|nil
// Returns the primary language of the document's input mode.
func (m *DocModule) inputMode(L *lua.LState) int {
	if m.proxy == nil {
		return pushOptional(L, "", false)
	}
	mode, ok := m.proxy.DocumentInputMode()
	return pushOptional(L, mode.PrimaryLanguage, ok)
}

// id() -> string
func (m *DocModule) id(L *lua.LState) int {
	if m.proxy == nil {
		return pushOptional(L, "", false)
	}
	L.Push(lua.LString(m.proxy.DocumentIdentifier().String()))
	return 1
}

// traits() -> table
// Returns a copy of the proxy's traits.
func (m *DocModule) traits(L *lua.LState) int {
	t := textinput.DefaultTraits()
	if m.proxy != nil {
		t = m.proxy.Traits
	}

	tbl := L.NewTable()
	L.SetField(tbl, "autocapitalization", lua.LString(t.Autocapitalization.String()))
	L.SetField(tbl, "autocorrection", lua.LString(t.Autocorrection.String()))
	L.SetField(tbl, "spell_checking", lua.LString(t.SpellChecking.String()))
	L.SetField(tbl, "smart_dashes", lua.LString(t.SmartDashes.String()))
	L.SetField(tbl, "smart_insert_delete", lua.LString(t.SmartInsertDelete.String()))
	L.SetField(tbl, "smart_quotes", lua.LString(t.SmartQuotes.String()))
	L.SetField(tbl, "enables_return_key_automatically", lua.LBool(t.EnablesReturnKeyAutomatically))
	L.SetField(tbl, "secure_text_entry", lua.LBool(t.SecureTextEntry))
	L.SetField(tbl, "keyboard_appearance", lua.LString(t.KeyboardAppearance.String()))
	L.SetField(tbl, "keyboard_type", lua.LString(t.KeyboardType.String()))
	L.SetField(tbl, "return_key_type", lua.LString(t.ReturnKeyType.String()))
	L.Push(tbl)
	return 1
}

// set_return_key(name)
func (m *DocModule) setReturnKey(L *lua.LState) int {
	rk, err := textinput.ParseReturnKeyType(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	if m.proxy != nil {
		m.proxy.Traits.ReturnKeyType = rk
	}
	return 0
}

// set_secure(bool)
func (m *DocModule) setSecure(L *lua.LState) int {
	secure := L.CheckBool(1)
	if m.proxy != nil {
		m.proxy.Traits.SecureTextEntry = secure
	}
	return 0
}
