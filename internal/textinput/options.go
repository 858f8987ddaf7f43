package textinput

import "github.com/rs/zerolog"

// Option configures a Proxy during creation.
type Option func(*Proxy)

// WithLogger sets the logger degraded calls are reported to at debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Proxy) {
		p.log = log
	}
}

// WithTraits replaces the traits captured from the target.
// It is how a host overrides input behavior for one editing session.
func WithTraits(t Traits) Option {
	return func(p *Proxy) {
		p.Traits = t
	}
}

// WithTraitOverride adjusts the captured traits after capture.
func WithTraitOverride(fn func(*Traits)) Option {
	return func(p *Proxy) {
		if fn != nil {
			fn(&p.Traits)
		}
	}
}
