package api

import (
	"strings"

	"github.com/rivo/uniseg"
	lua "github.com/yuin/gopher-lua"
)

// TextModule implements the ks.text API module: string helpers that count
// in characters, as the document proxy does, rather than in bytes.
type TextModule struct{}

// NewTextModule creates a new text module.
func NewTextModule() *TextModule {
	return &TextModule{}
}

// Name returns the module name.
func (m *TextModule) Name() string {
	return "text"
}

// Register registers the module into the Lua state.
func (m *TextModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "length", L.NewFunction(m.length))
	L.SetField(mod, "width", L.NewFunction(m.width))
	L.SetField(mod, "chars", L.NewFunction(m.chars))
	L.SetField(mod, "sub", L.NewFunction(m.sub))
	L.SetField(mod, "split", L.NewFunction(m.split))
	L.SetField(mod, "lines", L.NewFunction(m.lines))
	L.SetField(mod, "trim", L.NewFunction(m.trim))
	L.SetField(mod, "starts_with", L.NewFunction(m.startsWith))
	L.SetField(mod, "ends_with", L.NewFunction(m.endsWith))

	L.SetGlobal("_ks_text", mod)
	return nil
}

// graphemes splits s into grapheme clusters.
func graphemes(s string) []string {
	var out []string
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}

func pushStrings(L *lua.LState, parts []string) int {
	tbl := L.NewTable()
	for i, part := range parts {
		tbl.RawSetInt(i+1, lua.LString(part))
	}
	L.Push(tbl)
	return 1
}

// length(str) -> number
// Returns the number of characters (grapheme clusters) in str.
func (m *TextModule) length(L *lua.LState) int {
	L.Push(lua.LNumber(uniseg.GraphemeClusterCount(L.CheckString(1))))
	return 1
}

// width(str) -> number
// Returns the monospace display width of str.
func (m *TextModule) width(L *lua.LState) int {
	L.Push(lua.LNumber(uniseg.StringWidth(L.CheckString(1))))
	return 1
}

// chars(str) -> {chars}
func (m *TextModule) chars(L *lua.LState) int {
	return pushStrings(L, graphemes(L.CheckString(1)))
}

// sub(str, i [, j]) -> string
// Returns characters i through j, 1-based and inclusive. Negative indices
// count from the end.
func (m *TextModule) sub(L *lua.LState) int {
	cs := graphemes(L.CheckString(1))
	n := len(cs)
	i := L.CheckInt(2)
	j := L.OptInt(3, -1)

	if i < 0 {
		i = n + i + 1
	}
	if j < 0 {
		j = n + j + 1
	}
	i = max(i, 1)
	j = min(j, n)

	if i > j {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(strings.Join(cs[i-1:j], "")))
	return 1
}

// split(str, sep) -> {parts}
func (m *TextModule) split(L *lua.LState) int {
	return pushStrings(L, strings.Split(L.CheckString(1), L.CheckString(2)))
}

// lines(str) -> {lines}
// Splits on \n and \r\n.
func (m *TextModule) lines(L *lua.LState) int {
	normalized := strings.ReplaceAll(L.CheckString(1), "\r\n", "\n")
	return pushStrings(L, strings.Split(normalized, "\n"))
}

// trim(str) -> string
func (m *TextModule) trim(L *lua.LState) int {
	L.Push(lua.LString(strings.TrimSpace(L.CheckString(1))))
	return 1
}

// starts_with(str, prefix) -> bool
func (m *TextModule) startsWith(L *lua.LState) int {
	L.Push(lua.LBool(strings.HasPrefix(L.CheckString(1), L.CheckString(2))))
	return 1
}

// ends_with(str, suffix) -> bool
func (m *TextModule) endsWith(L *lua.LState) int {
	L.Push(lua.LBool(strings.HasSuffix(L.CheckString(1), L.CheckString(2))))
	return 1
}
