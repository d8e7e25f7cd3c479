package config

// Provider is an abstraction over a sectioned configuration store, such as
// a Config loaded from an ini or yaml file.
type Provider interface {
	Name() string                                         // name of the configuration store
	Get(section, key string, def ...Value) (Value, error) // coerced value, see Config.Get
	Items(section string) ([]Item, error)                 // raw pairs, see Config.Items
}

var _ Provider = (*Config)(nil)

// Name implements Provider.
func (c *Config) Name() string {
	return c.Option.Name
}
