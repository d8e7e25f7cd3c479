// Package config reads sectioned configuration files into a key/value store
// and hands values back coerced to strings, integers, booleans or lists.
//
//	c := config.New(&config.Option{})
//	if err := c.Load("/etc/app.ini", "app.ini"); err != nil {
//		// none of the candidates could be loaded
//	}
//	port := c.GetInt("server", "port", 8080)
//
// Candidates are tried in order and the first one that parses and declares
// a section wins. Files ending in .yaml or .yml are read with the yaml
// driver, everything else as ini.
package config
