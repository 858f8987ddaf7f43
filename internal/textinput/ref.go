package textinput

import "weak"

// Ref resolves the target a proxy forwards to.
// Resolve returns nil once the target is no longer available.
// A Ref must not keep its target alive.
type Ref interface {
	Resolve() TextInput
}

// RefFunc adapts a function to the Ref interface.
type RefFunc func() TextInput

// Resolve calls f.
func (f RefFunc) Resolve() TextInput {
	return f()
}

type emptyRef struct{}

func (emptyRef) Resolve() TextInput { return nil }

// weakRef resolves through a runtime weak pointer.
type weakRef[T any, P interface {
	*T
	TextInput
}] struct {
	ptr weak.Pointer[T]
}

func (r weakRef[T, P]) Resolve() TextInput {
	t := r.ptr.Value()
	if t == nil {
		return nil
	}
	return P(t)
}

// WeakRef returns a Ref that does not keep target reachable.
// Once the garbage collector reclaims target the Ref resolves to nil.
// A nil target yields a Ref that always resolves to nil.
func WeakRef[T any, P interface {
	*T
	TextInput
}](target P) Ref {
	if (*T)(target) == nil {
		return emptyRef{}
	}
	return weakRef[T, P]{ptr: weak.Make((*T)(target))}
}
