package lua

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/docproxy/internal/document"
	"github.com/dshills/docproxy/internal/plugin/api"
	"github.com/dshills/docproxy/internal/textinput"
)

func newTestState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	state, err := NewState(opts...)
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	t.Cleanup(func() { _ = state.Close() })
	return state
}

func TestStateDoString(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(context.Background(), `x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if num, ok := state.GetGlobal("x").(glua.LNumber); !ok || num != 2 {
		t.Errorf("x = %v, want 2", state.GetGlobal("x"))
	}
}

func TestStateDoStringSyntaxError(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(context.Background(), `invalid lua code !!!`); err == nil {
		t.Error("DoString() should fail on invalid code")
	}
}

func TestStateSandbox(t *testing.T) {
	state := newTestState(t)
	ctx := context.Background()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "io", "os", "debug"} {
		if v := state.GetGlobal(name); v != glua.LNil {
			t.Errorf("%s = %v, want nil", name, v)
		}
	}

	if err := state.DoString(ctx, `require("os")`); err == nil {
		t.Error("require(\"os\") should fail")
	}
	if err := state.DoString(ctx, `local s = require("string"); n = s.len("abc")`); err != nil {
		t.Errorf("require(\"string\") error = %v", err)
	}
}

func TestStatePrint(t *testing.T) {
	var out bytes.Buffer
	state := newTestState(t, WithOutput(&out))

	if err := state.DoString(context.Background(), `print("a", 1, true)`); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "a\t1\ttrue\n" {
		t.Errorf("output = %q", got)
	}
}

func TestStateExecutionTimeout(t *testing.T) {
	state := newTestState(t, WithExecutionTimeout(50*time.Millisecond))

	err := state.DoString(context.Background(), `while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("DoString() error = %v, want %v", err, ErrExecutionTimeout)
	}

	if err := state.DoString(context.Background(), `y = 1`); err != nil {
		t.Errorf("state should be usable after a timeout: %v", err)
	}
}

func TestStateClosed(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatal(err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false")
	}
	if err := state.DoString(context.Background(), `x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want %v", err, ErrStateClosed)
	}
	if err := state.Inject(api.NewRegistry()); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Inject() error = %v, want %v", err, ErrStateClosed)
	}
}

func TestStateDoFileWithDocModule(t *testing.T) {
	field := document.New(document.WithText("hello"))
	proxy := textinput.New(field)

	reg := api.NewRegistry()
	if err := reg.Register(api.NewDocModule(proxy)); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	state := newTestState(t, WithOutput(&out))
	if err := state.Inject(reg); err != nil {
		t.Fatalf("Inject() error = %v", err)
	}

	script := filepath.Join(t.TempDir(), "edit.lua")
	code := `
local ks = require("ks")
ks.doc.insert(", world")
ks.doc.set_return_key("done")
print(ks.doc.before())
`
	if err := os.WriteFile(script, []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := state.DoFile(context.Background(), script); err != nil {
		t.Fatalf("DoFile() error = %v", err)
	}
	if got := field.Content(); got != "hello, world" {
		t.Errorf("Content = %q", got)
	}
	if proxy.Traits.ReturnKeyType != textinput.ReturnKeyDone {
		t.Errorf("ReturnKeyType = %v", proxy.Traits.ReturnKeyType)
	}
	if got := strings.TrimSpace(out.String()); got != "hello, world" {
		t.Errorf("output = %q", got)
	}
}
