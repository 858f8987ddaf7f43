package textinput

import "fmt"

// Autocapitalization controls automatic shifting of typed letters.
type Autocapitalization uint8

const (
	AutocapitalizationNone Autocapitalization = iota
	AutocapitalizationWords
	AutocapitalizationSentences
	AutocapitalizationAllCharacters
)

var autocapitalizationNames = []string{"none", "words", "sentences", "all-characters"}

// String returns the configuration name of the value.
func (a Autocapitalization) String() string {
	return enumName(autocapitalizationNames, int(a))
}

// ParseAutocapitalization parses a configuration name.
func ParseAutocapitalization(s string) (Autocapitalization, error) {
	i, err := parseEnum("autocapitalization", autocapitalizationNames, s)
	return Autocapitalization(i), err
}

// Toggle is a three-state preference whose Default defers to the host.
// It is used for autocorrection, spell checking and the smart
// punctuation behaviors.
type Toggle uint8

const (
	ToggleDefault Toggle = iota
	ToggleNo
	ToggleYes
)

var toggleNames = []string{"default", "no", "yes"}

// String returns the configuration name of the value.
func (t Toggle) String() string {
	return enumName(toggleNames, int(t))
}

// Enabled resolves the toggle against the host default.
func (t Toggle) Enabled(hostDefault bool) bool {
	switch t {
	case ToggleYes:
		return true
	case ToggleNo:
		return false
	default:
		return hostDefault
	}
}

// ParseToggle parses a configuration name.
func ParseToggle(s string) (Toggle, error) {
	i, err := parseEnum("toggle", toggleNames, s)
	return Toggle(i), err
}

// KeyboardAppearance selects the keyboard's visual style.
type KeyboardAppearance uint8

const (
	KeyboardAppearanceDefault KeyboardAppearance = iota
	KeyboardAppearanceDark
	KeyboardAppearanceLight
)

var keyboardAppearanceNames = []string{"default", "dark", "light"}

// String returns the configuration name of the value.
func (k KeyboardAppearance) String() string {
	return enumName(keyboardAppearanceNames, int(k))
}

// ParseKeyboardAppearance parses a configuration name.
func ParseKeyboardAppearance(s string) (KeyboardAppearance, error) {
	i, err := parseEnum("keyboard appearance", keyboardAppearanceNames, s)
	return KeyboardAppearance(i), err
}

// KeyboardType selects the key layout a keyboard should present.
type KeyboardType uint8

const (
	KeyboardTypeDefault KeyboardType = iota
	KeyboardTypeASCIICapable
	KeyboardTypeNumbersAndPunctuation
	KeyboardTypeURL
	KeyboardTypeNumberPad
	KeyboardTypePhonePad
	KeyboardTypeNamePhonePad
	KeyboardTypeEmailAddress
	KeyboardTypeDecimalPad
	KeyboardTypeSocial
	KeyboardTypeWebSearch
	KeyboardTypeASCIICapableNumberPad
)

var keyboardTypeNames = []string{
	"default",
	"ascii-capable",
	"numbers-and-punctuation",
	"url",
	"number-pad",
	"phone-pad",
	"name-phone-pad",
	"email-address",
	"decimal-pad",
	"social",
	"web-search",
	"ascii-capable-number-pad",
}

// String returns the configuration name of the value.
func (k KeyboardType) String() string {
	return enumName(keyboardTypeNames, int(k))
}

// ParseKeyboardType parses a configuration name.
func ParseKeyboardType(s string) (KeyboardType, error) {
	i, err := parseEnum("keyboard type", keyboardTypeNames, s)
	return KeyboardType(i), err
}

// ReturnKeyType selects the label and meaning of the return key.
type ReturnKeyType uint8

const (
	ReturnKeyDefault ReturnKeyType = iota
	ReturnKeyGo
	ReturnKeyJoin
	ReturnKeyNext
	ReturnKeyRoute
	ReturnKeySearch
	ReturnKeySend
	ReturnKeyDone
	ReturnKeyEmergencyCall
	ReturnKeyContinue
)

var returnKeyNames = []string{
	"default", "go", "join", "next", "route", "search", "send", "done", "emergency-call", "continue",
}

var returnKeyLabels = []string{
	"return", "Go", "Join", "Next", "Route", "Search", "Send", "Done", "Emergency Call", "Continue",
}

// String returns the configuration name of the value.
func (r ReturnKeyType) String() string {
	return enumName(returnKeyNames, int(r))
}

// Label returns the text a keyboard shows on the return key.
func (r ReturnKeyType) Label() string {
	if int(r) < len(returnKeyLabels) {
		return returnKeyLabels[r]
	}
	return returnKeyLabels[0]
}

// ParseReturnKeyType parses a configuration name.
func ParseReturnKeyType(s string) (ReturnKeyType, error) {
	i, err := parseEnum("return key type", returnKeyNames, s)
	return ReturnKeyType(i), err
}

// Traits are the input preferences a keyboard consults when presenting
// itself for a document. The zero value holds the documented defaults:
// no autocapitalization, every Toggle at its default, no secure entry,
// return key not auto-enabled, default appearance, layout and return key.
type Traits struct {
	Autocapitalization            Autocapitalization
	Autocorrection                Toggle
	SpellChecking                 Toggle
	SmartDashes                   Toggle
	SmartInsertDelete             Toggle
	SmartQuotes                   Toggle
	EnablesReturnKeyAutomatically bool
	SecureTextEntry               bool
	KeyboardAppearance            KeyboardAppearance
	KeyboardType                  KeyboardType
	ReturnKeyType                 ReturnKeyType
}

// DefaultTraits returns the traits used when a target supplies none.
func DefaultTraits() Traits {
	return Traits{}
}

func enumName(names []string, i int) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("unknown(%d)", i)
}

func parseEnum(kind string, names []string, s string) (int, error) {
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}
