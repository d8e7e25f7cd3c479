package config

import (
	"errors"
	"fmt"
)

var (
	// ErrNoConfig is returned by Load when none of the candidate files
	// could be loaded.
	ErrNoConfig = errors.New("config: no configuration file could be loaded")
	// ErrNoSections marks a candidate file that parsed but declared no
	// section.
	ErrNoSections = errors.New("config: file declares no section")
	// ErrMissingSectionHeader marks an ini file with keys before its first
	// section header.
	ErrMissingSectionHeader = errors.New("config: file contains no section header")
	// ErrSectionNotFound is returned by Items for an unknown section.
	ErrSectionNotFound = errors.New("config: section not found")
	// ErrTypeMismatch is returned by the Value accessors when the value
	// holds another kind.
	ErrTypeMismatch = errors.New("config: type mismatch")
	// ErrNonCanonicalInt marks a raw value that parses as an integer but
	// is not written in canonical decimal form, e.g. "007" or "+5".
	ErrNonCanonicalInt = errors.New("config: integer is not in canonical form")
)

// PathError records why a candidate file was skipped during Load.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// CoercionError is returned by Get when a stored raw value cannot be
// converted to a typed Value.
type CoercionError struct {
	Section string
	Key     string
	Raw     string
	Err     error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("config: cannot coerce [%s] %s = %q: %v", e.Section, e.Key, e.Raw, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }
