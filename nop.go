package config

import "fmt"

// NopProvider is a no-op provider.
type NopProvider struct{}

var _ Provider = NopProvider{}

// Name implements Provider.
func (NopProvider) Name() string {
	return "no-op"
}

// Get returns the default, as no configuration is available.
func (NopProvider) Get(_, _ string, def ...Value) (Value, error) {
	if len(def) > 0 {
		return def[0], nil
	}
	return Value{}, nil
}

// Items always fails with ErrSectionNotFound.
func (NopProvider) Items(section string) ([]Item, error) {
	return nil, fmt.Errorf("%w: %q", ErrSectionNotFound, section)
}
