// Package host is a terminal front end that edits registered text fields
// through document proxies.
//
// The host plays the keyboard's role: it never touches a field directly.
// Key presses become proxy edits, and every frame is drawn from proxy
// queries and the proxy's traits. Focus moves by binding a fresh proxy to
// the next field.
package host

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/docproxy/internal/config"
	"github.com/dshills/docproxy/internal/config/watcher"
	"github.com/dshills/docproxy/internal/registry"
	"github.com/dshills/docproxy/internal/textinput"
)

// ErrAlreadyRunning is returned when Run is called on a running host.
var ErrAlreadyRunning = errors.New("host already running")

// SubmitFunc receives the focused field's text when the return key submits.
type SubmitFunc func(id registry.ID, text string, key textinput.ReturnKeyType)

// quitEvent asks the event loop to stop.
type quitEvent struct{}

// field is a registered field as the host sees it.
type field struct {
	id    registry.ID
	label string
}

// Host edits registered fields on a tcell screen.
//
// All methods except Run must be called from the goroutine running the
// event loop, or before Run starts.
type Host struct {
	screen tcell.Screen
	reg    *registry.Registry

	fields []field
	active int
	proxy  *textinput.Proxy
	// base holds the focused field's traits as captured at bind time,
	// before the profile is overlaid.
	base textinput.Traits

	profile  config.Profile
	onSubmit SubmitFunc
	onReload func(error)
	updates  <-chan watcher.Update
	status   string

	log     zerolog.Logger
	running atomic.Bool
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the host's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(h *Host) {
		h.log = log
	}
}

// WithProfile sets the trait profile applied to every proxy the host binds.
func WithProfile(p config.Profile) Option {
	return func(h *Host) {
		h.profile = p
	}
}

// WithSubmit sets the callback for return keys other than the default.
func WithSubmit(fn SubmitFunc) Option {
	return func(h *Host) {
		h.onSubmit = fn
	}
}

// WithUpdates makes Run apply configuration reloads from ch.
func WithUpdates(ch <-chan watcher.Update) Option {
	return func(h *Host) {
		h.updates = ch
	}
}

// WithReloadHook sets a callback run on the event loop after each reload.
// err is the reload's error, if any.
func WithReloadHook(fn func(err error)) Option {
	return func(h *Host) {
		h.onReload = fn
	}
}

// New creates a host drawing to screen. The screen must be initialized
// by the caller.
func New(screen tcell.Screen, reg *registry.Registry, opts ...Option) *Host {
	h := &Host{
		screen: screen,
		reg:    reg,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.reg == nil {
		h.reg = registry.New(registry.WithLogger(h.log))
	}
	h.proxy = textinput.Detached(textinput.WithLogger(h.log))
	h.base = h.proxy.Traits
	return h
}

// AddField registers target under label. The first field added gets focus.
func (h *Host) AddField(label string, target textinput.TextInput) registry.ID {
	id := h.reg.Register(target)
	h.fields = append(h.fields, field{id: id, label: label})
	if len(h.fields) == 1 {
		h.focus(0)
	}
	return id
}

// RemoveField unregisters the field. Its proxy degrades until focus moves.
func (h *Host) RemoveField(id registry.ID) {
	for i, f := range h.fields {
		if f.id != id {
			continue
		}
		h.reg.Unregister(id)
		h.fields = append(h.fields[:i], h.fields[i+1:]...)
		switch {
		case len(h.fields) == 0:
			h.active = 0
		case i < h.active:
			h.active--
		case i == h.active:
			h.focus(h.active % len(h.fields))
		}
		return
	}
}

// Proxy returns the proxy bound to the focused field.
func (h *Host) Proxy() *textinput.Proxy {
	return h.proxy
}

// Active returns the ID of the focused field.
func (h *Host) Active() (registry.ID, bool) {
	if len(h.fields) == 0 {
		return registry.ID{}, false
	}
	return h.fields[h.active].id, true
}

// Status returns the message shown on the status line.
func (h *Host) Status() string {
	return h.status
}

// FocusNext moves focus to the next field, wrapping around.
func (h *Host) FocusNext() {
	if len(h.fields) == 0 {
		return
	}
	h.focus((h.active + 1) % len(h.fields))
}

// focus binds a new proxy to the field at index i.
func (h *Host) focus(i int) {
	h.active = i
	f := h.fields[i]

	h.proxy = h.reg.Bind(f.id)
	h.base = h.proxy.Traits
	if t, err := h.profile.Overlay(h.base); err == nil {
		h.proxy.Traits = t
	}

	h.log.Debug().
		Str("field", f.label).
		Str("document", h.proxy.DocumentIdentifier().String()).
		Str("keyboard", keyboardSummary(h.proxy.Traits)).
		Msg("focus changed")
}

// Run processes events until Escape, Ctrl-C or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	if !h.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer h.running.Store(false)

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		if parent.Err() != nil {
			_ = h.screen.PostEvent(tcell.NewEventInterrupt(quitEvent{}))
		}
	}()
	if h.updates != nil {
		go h.forwardUpdates(ctx)
	}

	for {
		h.Draw()
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !h.HandleEvent(ev) {
			return nil
		}
	}
}

// forwardUpdates posts reloads to the event loop.
func (h *Host) forwardUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-h.updates:
			if !ok {
				return
			}
			if err := h.screen.PostEvent(tcell.NewEventInterrupt(u)); err != nil {
				h.log.Warn().Err(err).Msg("dropped config update")
			}
		}
	}
}

// HandleEvent applies one event. It returns false when the host should stop.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(e)

	case *tcell.EventInterrupt:
		switch data := e.Data().(type) {
		case quitEvent:
			return false
		case watcher.Update:
			h.applyUpdate(data)
		}

	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

// applyUpdate switches to a reloaded profile and overlays it on the
// focused field's bind-time traits, so overrides dropped from the file
// no longer apply. A failed reload keeps the current profile and traits.
func (h *Host) applyUpdate(u watcher.Update) {
	err := u.Err
	if err == nil {
		var t textinput.Traits
		if t, err = u.Config.Profile.Overlay(h.base); err == nil {
			h.proxy.Traits = t
		}
	}

	if err != nil {
		h.status = "profile error: " + err.Error()
		h.log.Warn().Err(err).Msg("profile not applied")
	} else {
		h.profile = u.Config.Profile
		h.status = "profile reloaded"
		h.log.Info().Msg("profile reloaded")
	}

	if h.onReload != nil {
		h.onReload(err)
	}
}
