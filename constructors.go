package config

import (
	"errors"
)

// Scope reads keys from a single section of a Provider.
type Scope struct {
	provider Provider
	section  string
}

// NewScopedProvider wraps a provider and pins all Get calls to section.
func NewScopedProvider(section string, provider Provider) *Scope {
	return &Scope{provider: provider, section: section}
}

// Section returns the name of the scoped section.
func (s *Scope) Section() string { return s.section }

// Get returns the coerced value of key in the scoped section.
func (s *Scope) Get(key string, def ...Value) (Value, error) {
	return s.provider.Get(s.section, key, def...)
}

// Items returns the raw pairs of the scoped section.
func (s *Scope) Items() ([]Item, error) {
	return s.provider.Items(s.section)
}

type providerGroup struct {
	name      string
	providers []Provider
}

var _ Provider = (*providerGroup)(nil)

// NewProviderGroup composes multiple providers, with later providers
// overriding earlier ones key by key. A key whose value is missing or empty
// in a later provider is looked up in the earlier ones.
func NewProviderGroup(name string, providers ...Provider) Provider {
	return &providerGroup{name: name, providers: providers}
}

func (g *providerGroup) Name() string { return g.name }

func (g *providerGroup) Get(section, key string, def ...Value) (Value, error) {
	for i := len(g.providers) - 1; i >= 0; i-- {
		v, err := g.providers[i].Get(section, key)
		if err != nil {
			return Value{}, err
		}
		if !v.IsNone() {
			return v, nil
		}
	}
	if len(def) > 0 {
		return def[0], nil
	}
	return Value{}, nil
}

func (g *providerGroup) Items(section string) ([]Item, error) {
	merged := newSection(section)
	found := false
	for _, p := range g.providers {
		items, err := p.Items(section)
		if errors.Is(err, ErrSectionNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		found = true
		for _, item := range items {
			merged.set(item.Key, item.Value)
		}
	}
	if !found {
		return NopProvider{}.Items(section)
	}
	return merged.items(), nil
}
