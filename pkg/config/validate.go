package config

import (
	"errors"
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks cross-field constraints cleanenv tags cannot express.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if _, err := url.ParseRequestURI(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("backend base_url %q: %w", c.Backend.BaseURL, err)
	}
	if len(c.Session.Secret) < 32 {
		return errors.New("session secret must be at least 32 bytes")
	}
	if c.Console.PageSize < 1 || c.Console.PageSize > 100 {
		return fmt.Errorf("console page_size %d out of range [1,100]", c.Console.PageSize)
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("log level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}
