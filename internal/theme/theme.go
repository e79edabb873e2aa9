// Package theme handles the site's light/dark appearance preference.
//
// The preference lives in a single-key store: the value "light" selects the
// light appearance, any other value (or no value at all) means the default
// dark appearance. The store is an interface so tests and different
// frontends (browser cookie, local file) can supply their own backing.
package theme

// PreferenceKey is the key under which the preference is stored.
const PreferenceKey = "theme"

// Theme is the site appearance. The zero value is Dark.
type Theme int

const (
	Dark Theme = iota
	Light
)

// Store is a single-key preference store.
type Store interface {
	// Get returns the stored preference value, or "" if none is stored.
	Get() string
	// Set persists the preference value.
	Set(value string) error
}

// Parse maps a stored preference value to a Theme. Only the literal
// "light" selects Light; anything else is Dark.
func Parse(value string) Theme {
	if value == "light" {
		return Light
	}
	return Dark
}

// String returns the value persisted for this theme.
func (t Theme) String() string {
	if t == Light {
		return "light"
	}
	return "dark"
}

// Class returns the marker class carried by the document root element:
// "light" for the light theme, "" for the default dark appearance.
func (t Theme) Class() string {
	if t == Light {
		return "light"
	}
	return ""
}

// IconClass returns the toggle icon marker class. The two classes are
// mutually exclusive: the icon shows the theme a click would switch to.
func (t Theme) IconClass() string {
	if t == Light {
		return "icon-moon"
	}
	return "icon-sun"
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// Resolve reads the current theme from a store.
func Resolve(s Store) Theme {
	return Parse(s.Get())
}

// Toggle flips the stored theme and persists the new value, returning the
// resulting theme.
func Toggle(s Store) (Theme, error) {
	next := Resolve(s).Toggled()
	if err := s.Set(next.String()); err != nil {
		return next, err
	}
	return next, nil
}

// MemoryStore is an in-memory Store for tests and defaults.
type MemoryStore struct {
	value string
}

// NewMemoryStore returns a MemoryStore holding the given initial value.
func NewMemoryStore(value string) *MemoryStore {
	return &MemoryStore{value: value}
}

// Get returns the stored value.
func (m *MemoryStore) Get() string { return m.value }

// Set stores the value.
func (m *MemoryStore) Set(value string) error {
	m.value = value
	return nil
}
