// Package textinput provides a redirecting document proxy over whichever
// text control currently receives input.
//
// The package handles:
//
//   - The capability contracts a text control implements (KeyInput,
//     TextInput, TraitProvider, InputModeProvider)
//   - The contract consumers program against (DocumentProxy)
//   - Proxy, which forwards every DocumentProxy call to a weakly
//     referenced TextInput
//   - Input traits (Traits) captured once when a proxy is bound
//
// Ownership:
//
// A Proxy never keeps its target alive. It holds a Ref, which resolves to
// nil once the target is gone: WeakRef is backed by the runtime weak
// package, and registries may hand out their own Ref implementations.
// The Ref is fixed for the lifetime of the proxy; to follow a different
// control, bind a new proxy.
//
// Failure Policy:
//
// Proxy methods never return errors. A missing target, a missing
// selection, or a range or position the target cannot produce all degrade
// to a neutral result: false, an absent ("", false) value, or a no-op.
// Focus is transient and input events are not expected to handle errors.
//
// Derived Queries:
//
// Context before and after the cursor and the selected text are computed
// from the target's current selection on every call. Nothing about the
// document content is cached.
//
// Basic usage:
//
//	field := document.New(document.WithText("hello world"), document.WithCursor(5))
//	p := textinput.New(field)
//
//	after, _ := p.DocumentContextAfterInput() // " world"
//	p.AdjustTextPosition(-2)                  // cursor between "hel" and "lo"
//	p.InsertText("p")
//
// Thread Safety:
//
// Proxy performs no locking. It is meant to be driven from a single UI
// goroutine; concurrent safety is whatever the target provides.
package textinput
