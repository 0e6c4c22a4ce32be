// Package theme handles the site color-scheme preference.
package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/masmgr/folio/internal/store"
)

// Scheme is a CSS color-scheme value.
type Scheme string

const (
	Light     Scheme = "light"
	Dark      Scheme = "dark"
	Automatic Scheme = "light dark"
)

// Default is used when no preference has been stored.
const Default = Automatic

// PreferenceKey is the store key holding the scheme.
const PreferenceKey = "colorScheme"

// Schemes lists the choices in menu order.
var Schemes = []Scheme{Automatic, Light, Dark}

// Label is the menu text for the scheme.
func (s Scheme) Label() string {
	switch s {
	case Light:
		return "Light"
	case Dark:
		return "Dark"
	case Automatic:
		return "Automatic"
	default:
		return string(s)
	}
}

// Parse accepts a scheme value or its label, case-insensitively.
func Parse(s string) (Scheme, error) {
	v := strings.ToLower(strings.Join(strings.Fields(s), " "))
	switch v {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	case "light dark", "automatic", "auto":
		return Automatic, nil
	}
	return "", fmt.Errorf("invalid color scheme %q (want light, dark, or \"light dark\")", s)
}

// Preferences reads and writes the scheme.
type Preferences interface {
	Get(key string) (string, error)
	Put(key, value string) error
}

// Load returns the stored scheme, or Default when none is stored.
// An unparseable stored value also yields Default.
func Load(p Preferences) (Scheme, error) {
	v, err := p.Get(PreferenceKey)
	if errors.Is(err, store.ErrNotFound) {
		return Default, nil
	}
	if err != nil {
		return Default, err
	}
	s, err := Parse(v)
	if err != nil {
		return Default, nil
	}
	return s, nil
}

// Save stores the scheme.
func Save(p Preferences, s Scheme) error {
	return p.Put(PreferenceKey, string(s))
}
