package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/linxlib/iniconf/internal/unreachable"
)

func (c *Config) readFile(file string) ([]byte, error) {
	if c.FS != nil {
		return fs.ReadFile(c.FS, file)
	}
	return os.ReadFile(file)
}

// driverFor picks the driver registered for the file extension, falling
// back to the ini driver.
func (c *Config) driverFor(file string) (Driver, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file), "."))
	if d, ok := c.drivers[c.resolveFormat(ext)]; ok {
		return d, nil
	}
	if d, ok := c.drivers[IniDriver.Name()]; ok {
		return d, nil
	}
	return nil, unreachable.Wrap(errors.New("default ini driver is not registered"))
}

// parseFile reads and parses one candidate. It never touches the store,
// so a failing candidate leaves it unchanged.
func (c *Config) parseFile(file string) ([]Section, error) {
	data, err := c.readFile(file)
	if err != nil {
		return nil, err
	}

	driver, err := c.driverFor(file)
	if err != nil {
		return nil, err
	}
	if c.Verbose {
		c.logger.Sugar().Debugf("parsing %s with the %s driver", file, driver.Name())
	}

	sections, err := driver.Parse(data)
	if err != nil {
		return nil, err
	}
	if !hasNamedSection(sections) {
		return nil, ErrNoSections
	}
	return sections, nil
}

func hasNamedSection(sections []Section) bool {
	for _, s := range sections {
		if s.Name != DefaultSection {
			return true
		}
	}
	return false
}
