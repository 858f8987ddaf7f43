// Package registry owns the text controls of a host and hands out
// non-owning references to them.
//
// A host registers each focusable control once and binds document
// proxies by ID. When the control is unregistered every reference to it,
// and so every proxy bound to it, resolves to nothing. The registry does
// not decide which control has focus.
package registry

import (
	"errors"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dshills/docproxy/internal/textinput"
)

// ErrNotFound indicates an ID that is not registered.
var ErrNotFound = errors.New("target not registered")

// ID identifies a registered target.
type ID = uuid.UUID

// Registry maps IDs to the text controls it owns.
type Registry struct {
	mu      sync.RWMutex
	targets map[ID]textinput.TextInput
	order   []ID
	log     zerolog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registry events and for the proxies
// the registry binds.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		targets: make(map[ID]textinput.TextInput),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a target and returns its ID. A nil target, including a
// nil pointer in an interface, is not stored: its ID resolves to nothing.
func (r *Registry) Register(t textinput.TextInput) ID {
	id := uuid.New()

	if isNil(t) {
		r.log.Debug().Str("target", id.String()).Msg("nil target not registered")
		return id
	}

	r.mu.Lock()
	r.targets[id] = t
	r.order = append(r.order, id)
	r.mu.Unlock()

	r.log.Debug().Str("target", id.String()).Msg("target registered")
	return id
}

// Unregister drops a target. References to it resolve to nil afterwards.
// It returns false if the ID was not registered.
func (r *Registry) Unregister(id ID) bool {
	r.mu.Lock()
	_, ok := r.targets[id]
	if ok {
		delete(r.targets, id)
		for i, o := range r.order {
			if o == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.mu.Unlock()

	if ok {
		r.log.Debug().Str("target", id.String()).Msg("target unregistered")
	}
	return ok
}

// Lookup returns the target registered under id.
func (r *Registry) Lookup(id ID) (textinput.TextInput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.targets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

// IDs returns the registered IDs in registration order.
func (r *Registry) IDs() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]ID, len(r.order))
	copy(ids, r.order)
	return ids
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.targets)
}

// Ref returns a reference that resolves to the target while it stays
// registered. The ID does not need to be registered yet.
func (r *Registry) Ref(id ID) textinput.Ref {
	return textinput.RefFunc(func() textinput.TextInput {
		r.mu.RLock()
		defer r.mu.RUnlock()
		return r.targets[id]
	})
}

// Bind creates a document proxy for the target registered under id.
// Binding an unknown ID yields a proxy with no target.
func (r *Registry) Bind(id ID, opts ...textinput.Option) *textinput.Proxy {
	opts = append([]textinput.Option{textinput.WithLogger(r.log)}, opts...)
	p := textinput.NewWithRef(r.Ref(id), opts...)

	r.log.Debug().
		Str("target", id.String()).
		Str("document", p.DocumentIdentifier().String()).
		Bool("attached", p.HasTarget()).
		Msg("proxy bound")
	return p
}

func isNil(t textinput.TextInput) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
