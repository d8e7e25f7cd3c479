package config

import (
	"os"
)

// resolve format, check is alias
func (c *Config) resolveFormat(f string) string {
	if name, ok := c.aliasMap[f]; ok {
		return name
	}
	return f
}

/*************************************************************
 * helper methods/functions
 *************************************************************/

// GetEnv get os ENV value by name
func GetEnv(name string, defVal ...string) (val string) {
	return Getenv(name, defVal...)
}

// Getenv get os ENV value by name. like os.Getenv, but support default value
func Getenv(name string, defVal ...string) (val string) {
	if val = os.Getenv(name); val != "" {
		return
	}

	if len(defVal) > 0 {
		val = defVal[0]
	}
	return
}
