package config

import (
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Item is one raw key/value pair of a section.
type Item struct {
	Key   string
	Value string
}

// Section is a named, ordered group of raw key/value pairs produced by a
// Parser.
type Section struct {
	Name  string
	Items []Item
}

type Parser interface {
	Parse(blob []byte) ([]Section, error)
}

// Driver interface.
type Driver interface {
	Name() string
	Aliases() []string // alias format names, use for resolve format name
	Parser
	GetParser() Parser
}

// StdDriver struct
type StdDriver struct {
	name    string
	aliases []string
	parser  Parser
}

func (d *StdDriver) GetParser() Parser {
	return d.parser
}

// NewDriver new std driver instance.
func NewDriver(name string, parser Parser) *StdDriver {
	return &StdDriver{name: name, parser: parser}
}

// WithAliases set aliases for driver
func (d *StdDriver) WithAliases(aliases ...string) *StdDriver {
	d.aliases = aliases
	return d
}

// WithAlias add alias for driver
func (d *StdDriver) WithAlias(alias string) *StdDriver {
	d.aliases = append(d.aliases, alias)
	return d
}

// Name of driver
func (d *StdDriver) Name() string { return d.name }

// Aliases format name of driver
func (d *StdDriver) Aliases() []string {
	return d.aliases
}

// Parse of driver
func (d *StdDriver) Parse(blob []byte) ([]Section, error) {
	return d.parser.Parse(blob)
}

// AddDriver registers d for its name and aliases, replacing any driver
// previously registered under them.
func (c *Config) AddDriver(d Driver) {
	name := strings.ToLower(d.Name())
	c.drivers[name] = d
	for _, alias := range d.Aliases() {
		c.aliasMap[strings.ToLower(alias)] = name
	}
}

/*************************************************************
 * Ini driver
 *************************************************************/

// IniDriver instance for ini files. It is also used for files whose
// extension matches no registered driver.
var IniDriver = NewDriver("ini", &iniParser{}).WithAliases("cfg", "conf")

type iniParser struct {
}

// Inline comments are stripped by stripInlineComment, a trailing backslash
// stays part of the value.
var iniLoadOptions = ini.LoadOptions{
	AllowPythonMultilineValues: true,
	IgnoreInlineComment:        true,
	IgnoreContinuation:         true,
	PreserveSurroundedQuote:    true,
}

// Parse for the driver. Values are returned raw, without %(name)s
// expansion. Keys before the first section header are rejected.
func (p *iniParser) Parse(blob []byte) ([]Section, error) {
	if err := checkSectionHeader(blob); err != nil {
		return nil, err
	}

	f, err := ini.LoadSources(iniLoadOptions, blob)
	if err != nil {
		return nil, err
	}

	var out []Section
	for _, s := range f.Sections() {
		keys := s.Keys()
		if s.Name() == ini.DefaultSection && len(keys) == 0 {
			continue
		}
		sec := Section{Name: s.Name(), Items: make([]Item, 0, len(keys))}
		for _, k := range keys {
			sec.Items = append(sec.Items, Item{Key: k.Name(), Value: stripInlineComment(k.Value())})
		}
		out = append(out, sec)
	}
	return out, nil
}

// checkSectionHeader requires the first line that is neither blank nor a
// comment to open a section.
func checkSectionHeader(blob []byte) error {
	text := strings.TrimPrefix(string(blob), "\ufeff")
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if line[0] == '[' {
			return nil
		}
		return fmt.Errorf("%w: line %d: %q", ErrMissingSectionHeader, n+1, line)
	}
	return nil
}

// stripInlineComment cuts the value at its first ';' when whitespace
// precedes it. '#' only starts a comment at the beginning of a line.
func stripInlineComment(v string) string {
	i := strings.IndexByte(v, ';')
	if i <= 0 || !unicode.IsSpace(rune(v[i-1])) {
		return v
	}
	return strings.TrimSpace(v[:i])
}

/*************************************************************
 * Yaml driver
 *************************************************************/

// YamlDriver instance fot yaml
var YamlDriver = NewDriver("yaml", &yamlParser{}).WithAliases("yml")

// yamlParser reads a mapping of sections to flat mappings of scalars.
// A sequence of scalars is joined with commas so it reads back as a list.
type yamlParser struct {
}

// Parse for the driver
func (p *yamlParser) Parse(blob []byte) ([]Section, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(blob, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	doc := resolveAlias(root.Content[0])
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("yaml: line %d: document must be a mapping of sections", doc.Line)
	}

	out := make([]Section, 0, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		name, body := doc.Content[i].Value, resolveAlias(doc.Content[i+1])
		if body.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("yaml: line %d: section %q must be a mapping", body.Line, name)
		}

		sec := Section{Name: name, Items: make([]Item, 0, len(body.Content)/2)}
		for j := 0; j+1 < len(body.Content); j += 2 {
			key := body.Content[j].Value
			value, err := yamlScalar(resolveAlias(body.Content[j+1]))
			if err != nil {
				return nil, fmt.Errorf("yaml: section %q key %q: %w", name, key, err)
			}
			sec.Items = append(sec.Items, Item{Key: key, Value: value})
		}
		out = append(out, sec)
	}
	return out, nil
}

func yamlScalar(n *yaml.Node) (string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return "", nil
		}
		return n.Value, nil
	case yaml.SequenceNode:
		parts := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.ScalarNode {
				return "", fmt.Errorf("line %d: nested values are not supported", item.Line)
			}
			parts = append(parts, item.Value)
		}
		return strings.Join(parts, ","), nil
	default:
		return "", fmt.Errorf("line %d: nested values are not supported", n.Line)
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
