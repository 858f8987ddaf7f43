package config

import (
	"fmt"

	"github.com/dshills/docproxy/internal/textinput"
)

// Profile holds host overrides for the input traits of an editing session.
// Nil fields are not overridden. Enumerations use their configuration
// names, e.g. "sentences", "email-address", "search".
type Profile struct {
	Autocapitalization            *string `toml:"autocapitalization,omitempty" yaml:"autocapitalization,omitempty"`
	Autocorrection                *string `toml:"autocorrection,omitempty" yaml:"autocorrection,omitempty"`
	SpellChecking                 *string `toml:"spell_checking,omitempty" yaml:"spell_checking,omitempty"`
	SmartDashes                   *string `toml:"smart_dashes,omitempty" yaml:"smart_dashes,omitempty"`
	SmartInsertDelete             *string `toml:"smart_insert_delete,omitempty" yaml:"smart_insert_delete,omitempty"`
	SmartQuotes                   *string `toml:"smart_quotes,omitempty" yaml:"smart_quotes,omitempty"`
	EnablesReturnKeyAutomatically *bool   `toml:"enables_return_key_automatically,omitempty" yaml:"enables_return_key_automatically,omitempty"`
	SecureTextEntry               *bool   `toml:"secure_text_entry,omitempty" yaml:"secure_text_entry,omitempty"`
	KeyboardAppearance            *string `toml:"keyboard_appearance,omitempty" yaml:"keyboard_appearance,omitempty"`
	KeyboardType                  *string `toml:"keyboard_type,omitempty" yaml:"keyboard_type,omitempty"`
	ReturnKeyType                 *string `toml:"return_key_type,omitempty" yaml:"return_key_type,omitempty"`
}

// IsEmpty reports whether the profile overrides nothing.
func (p Profile) IsEmpty() bool {
	return p == Profile{}
}

// Validate checks every supplied enumeration name.
func (p Profile) Validate() error {
	_, err := p.Overlay(textinput.Traits{})
	return err
}

// Overlay returns base with the profile's supplied fields applied.
func (p Profile) Overlay(base textinput.Traits) (textinput.Traits, error) {
	t := base

	if err := setEnum(&t.Autocapitalization, p.Autocapitalization, "autocapitalization", textinput.ParseAutocapitalization); err != nil {
		return base, err
	}
	toggles := []struct {
		dst  *textinput.Toggle
		src  *string
		name string
	}{
		{&t.Autocorrection, p.Autocorrection, "autocorrection"},
		{&t.SpellChecking, p.SpellChecking, "spell_checking"},
		{&t.SmartDashes, p.SmartDashes, "smart_dashes"},
		{&t.SmartInsertDelete, p.SmartInsertDelete, "smart_insert_delete"},
		{&t.SmartQuotes, p.SmartQuotes, "smart_quotes"},
	}
	for _, tg := range toggles {
		if err := setEnum(tg.dst, tg.src, tg.name, textinput.ParseToggle); err != nil {
			return base, err
		}
	}
	if err := setEnum(&t.KeyboardAppearance, p.KeyboardAppearance, "keyboard_appearance", textinput.ParseKeyboardAppearance); err != nil {
		return base, err
	}
	if err := setEnum(&t.KeyboardType, p.KeyboardType, "keyboard_type", textinput.ParseKeyboardType); err != nil {
		return base, err
	}
	if err := setEnum(&t.ReturnKeyType, p.ReturnKeyType, "return_key_type", textinput.ParseReturnKeyType); err != nil {
		return base, err
	}

	if p.EnablesReturnKeyAutomatically != nil {
		t.EnablesReturnKeyAutomatically = *p.EnablesReturnKeyAutomatically
	}
	if p.SecureTextEntry != nil {
		t.SecureTextEntry = *p.SecureTextEntry
	}

	return t, nil
}

// Apply overlays the profile onto the proxy's traits. The proxy is left
// untouched if any value is invalid.
func (p Profile) Apply(proxy *textinput.Proxy) error {
	t, err := p.Overlay(proxy.Traits)
	if err != nil {
		return err
	}
	proxy.Traits = t
	return nil
}

// Option returns a proxy option applying the profile at bind time.
// Invalid values are skipped; call Validate first to detect them.
func (p Profile) Option() textinput.Option {
	return textinput.WithTraitOverride(func(t *textinput.Traits) {
		if nt, err := p.Overlay(*t); err == nil {
			*t = nt
		}
	})
}

func setEnum[E any](dst *E, src *string, name string, parse func(string) (E, error)) error {
	if src == nil {
		return nil
	}
	v, err := parse(*src)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", name, ErrInvalidValue, err)
	}
	*dst = v
	return nil
}
