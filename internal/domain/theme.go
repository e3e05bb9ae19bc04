package domain

// Theme is the binary display theme.
type Theme string

const (
	// ThemeLight is the default theme.
	ThemeLight Theme = "light"

	// ThemeDark is the dark theme.
	ThemeDark Theme = "dark"
)

// Valid reports whether t is one of the two recognized theme values.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}

	return ThemeDark
}

// ParseTheme parses a stored or user-supplied theme string.
// The second return value is false for anything but the two valid values,
// so stale or corrupted stored values are treated as absent.
func ParseTheme(s string) (Theme, bool) {
	t := Theme(s)
	return t, t.Valid()
}

// AmbientSignal is the host environment's reported color-scheme
// preference, independent of any stored choice.
type AmbientSignal int

const (
	// AmbientUnknown means the environment gave no signal.
	AmbientUnknown AmbientSignal = iota

	// AmbientLight means the environment prefers a light scheme.
	AmbientLight

	// AmbientDark means the environment prefers a dark scheme.
	AmbientDark
)

// ResolveTheme decides the active theme. Precedence, first match wins:
//
//  1. A stored explicit value, if it parses to a valid theme.
//  2. The ambient signal, when present.
//  3. ThemeLight.
//
// It never fails; absence at any tier simply falls through.
func ResolveTheme(stored string, ambient AmbientSignal) Theme {
	if t, ok := ParseTheme(stored); ok {
		return t
	}

	if ambient == AmbientDark {
		return ThemeDark
	}

	return ThemeLight
}
