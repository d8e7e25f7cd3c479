package config

import (
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/linxlib/iniconf/internal/logging"
)

// DefaultSection holds values every other section falls back to.
const DefaultSection = "DEFAULT"

// Config is a sectioned key/value store filled from configuration files.
// It is not safe for concurrent use.
type Config struct {
	*Option
	logger   *zap.Logger
	drivers  map[string]Driver
	aliasMap map[string]string
	defaults *section
	sections map[string]*section
	order    []string
}

type Option struct {
	// Name identifies the store when used as a Provider. Default "config".
	Name    string
	Debug   bool
	Verbose bool
	// Silent suppresses the warning logged for every skipped candidate.
	Silent bool
	// Files are the candidates Load tries when called without arguments.
	Files []string
	// You can use embed.FS or any other fs.FS to load configs from. Default - use "os" package
	FS     fs.FS
	Logger *zap.Logger
}

// New initialize a Config
func New(option *Option) *Config {
	if option == nil {
		option = &Option{}
	}

	if Getenv("CONFIG_DEBUG_MODE") != "" {
		option.Debug = true
	}

	if Getenv("CONFIG_VERBOSE_MODE") != "" {
		option.Verbose = true
	}

	if Getenv("CONFIG_SILENT_MODE") != "" {
		option.Silent = true
	}

	if option.Name == "" {
		option.Name = "config"
	}

	logger := option.Logger
	if logger == nil {
		var err error
		if logger, err = logging.New(option.Debug || option.Verbose); err != nil {
			logger = zap.NewNop()
		}
	}

	c := &Config{
		Option:   option,
		logger:   logger,
		drivers:  make(map[string]Driver),
		aliasMap: make(map[string]string),
		defaults: newSection(DefaultSection),
		sections: make(map[string]*section),
	}
	c.AddDriver(IniDriver)
	c.AddDriver(YamlDriver)
	return c
}

// Load tries paths in order and merges the first file that parses and
// declares at least one section. Later calls merge into what is already
// stored, overriding existing keys. Without arguments Option.Files is used.
//
// When no candidate loads, the store is left untouched and the returned
// error matches ErrNoConfig and wraps a *PathError per candidate.
func (c *Config) Load(paths ...string) error {
	if len(paths) == 0 {
		paths = c.Files
	}

	var errs error
	for _, path := range paths {
		c.logger.Debug("trying configuration file", zap.String("path", path))

		sections, err := c.parseFile(path)
		if err != nil {
			err = &PathError{Path: path, Err: err}
			if !c.Silent {
				c.logger.Warn("skipping configuration file", zap.String("path", path), zap.Error(err))
			}
			errs = multierr.Append(errs, err)
			continue
		}

		c.merge(sections)
		c.logger.Info("loaded configuration file",
			zap.String("path", path),
			zap.Int("sections", len(sections)))
		return nil
	}

	if errs == nil {
		return ErrNoConfig
	}
	return fmt.Errorf("%w: %w", ErrNoConfig, errs)
}

// LoadConfig is Load reduced to whether a candidate was loaded.
func (c *Config) LoadConfig(paths ...string) bool {
	return c.Load(paths...) == nil
}

func (c *Config) merge(sections []Section) {
	for _, s := range sections {
		target := c.defaults
		if s.Name != DefaultSection {
			var ok bool
			if target, ok = c.sections[s.Name]; !ok {
				target = newSection(s.Name)
				c.sections[s.Name] = target
				c.order = append(c.order, s.Name)
			}
		}
		for _, item := range s.Items {
			target.set(normalizeKey(item.Key), item.Value)
		}
	}
}

func (c *Config) lookup(section, key string) (string, bool) {
	key = normalizeKey(key)
	if section != DefaultSection {
		s, ok := c.sections[section]
		if !ok {
			return "", false
		}
		if raw, ok := s.values[key]; ok {
			return raw, true
		}
	}
	raw, ok := c.defaults.values[key]
	return raw, ok
}

// Get returns the coerced value of key in section. When the section or key
// is missing, or the stored raw value is empty, the first of def is
// returned unchanged (the zero Value if def is empty).
//
// Coercion applies in this order: a raw value containing a comma becomes a
// list of coerced pieces; true/yes and false/no in any case become booleans;
// canonical decimal integers become integers; anything else stays a string.
// An integer in non-canonical form such as "007" yields a *CoercionError.
func (c *Config) Get(section, key string, def ...Value) (Value, error) {
	raw, ok := c.lookup(section, key)
	if !ok || raw == "" {
		if len(def) > 0 {
			return def[0], nil
		}
		return Value{}, nil
	}

	v, err := coerce(raw)
	if err != nil {
		return Value{}, &CoercionError{Section: section, Key: key, Raw: raw, Err: err}
	}
	return v, nil
}

// GetString returns the raw value of key in section, or def when it is
// missing or empty.
func (c *Config) GetString(section, key, def string) string {
	if raw, ok := c.lookup(section, key); ok && raw != "" {
		return raw
	}
	return def
}

// GetInt returns the integer value of key in section, or def.
func (c *Config) GetInt(section, key string, def int64) int64 {
	v, ok := c.typed(section, key)
	if !ok {
		return def
	}
	n, err := v.Int()
	if err != nil {
		c.logMismatch(section, key, err)
		return def
	}
	return n
}

// GetBool returns the boolean value of key in section, or def.
func (c *Config) GetBool(section, key string, def bool) bool {
	v, ok := c.typed(section, key)
	if !ok {
		return def
	}
	b, err := v.Bool()
	if err != nil {
		c.logMismatch(section, key, err)
		return def
	}
	return b
}

// GetList returns the values of key in section. A value without a comma is
// returned as a one element list. def is returned when the key is missing
// or cannot be coerced.
func (c *Config) GetList(section, key string, def []Value) []Value {
	v, ok := c.typed(section, key)
	if !ok {
		return def
	}
	if v.Kind() != KindList {
		return []Value{v}
	}
	list := make([]Value, len(v.list))
	copy(list, v.list)
	return list
}

func (c *Config) typed(section, key string) (Value, bool) {
	v, err := c.Get(section, key)
	if err != nil {
		c.logger.Debug("config value not coercible", zap.String("section", section), zap.String("key", key), zap.Error(err))
		return Value{}, false
	}
	return v, !v.IsNone()
}

func (c *Config) logMismatch(section, key string, err error) {
	c.logger.Debug("config value has another type",
		zap.String("section", section),
		zap.String("key", key),
		zap.Error(err))
}

// Items returns the raw key/value pairs of section in file order. Values of
// the DEFAULT section come first unless the section overrides them.
func (c *Config) Items(section string) ([]Item, error) {
	s, ok := c.sections[section]
	if !ok && section != DefaultSection {
		return nil, fmt.Errorf("%w: %q", ErrSectionNotFound, section)
	}

	merged := newSection(section)
	for _, key := range c.defaults.keys {
		merged.set(key, c.defaults.values[key])
	}
	if ok {
		for _, key := range s.keys {
			merged.set(key, s.values[key])
		}
	}
	return merged.items(), nil
}

// Sections lists the loaded section names in load order, without DEFAULT.
func (c *Config) Sections() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// HasSection reports whether section has been loaded.
func (c *Config) HasSection(section string) bool {
	_, ok := c.sections[section]
	return ok
}

// HasKey reports whether key is set in section, directly or through the
// DEFAULT section.
func (c *Config) HasKey(section, key string) bool {
	_, ok := c.lookup(section, key)
	return ok
}

// Load creates a Config and loads the first usable file of files.
func Load(files ...string) (*Config, error) {
	c := New(&Option{Files: files})
	if err := c.Load(); err != nil {
		return nil, err
	}
	return c, nil
}

func normalizeKey(key string) string {
	return strings.ToLower(key)
}

// section keeps its keys in first-seen order.
type section struct {
	name   string
	keys   []string
	values map[string]string
}

func newSection(name string) *section {
	return &section{name: name, values: make(map[string]string)}
}

func (s *section) set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

func (s *section) items() []Item {
	out := make([]Item, 0, len(s.keys))
	for _, key := range s.keys {
		out = append(out, Item{Key: key, Value: s.values[key]})
	}
	return out
}
