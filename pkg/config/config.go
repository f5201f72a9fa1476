package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Config is the root application configuration for the admin console.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Session SessionConfig `yaml:"session"`
	Console ConsoleConfig `yaml:"console"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	BasePath        string        `yaml:"base_path"        env:"SERVER_BASE_PATH"        env-default:"/admin"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// BackendConfig holds the catalog REST backend connection settings.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_BASE_URL" env-required:"true"`
	APIKey  string        `yaml:"api_key"  env:"BACKEND_API_KEY"`
	Timeout time.Duration `yaml:"timeout"  env:"BACKEND_TIMEOUT"  env-default:"10s"`
}

// SessionConfig holds bearer-token session settings.
type SessionConfig struct {
	Secret string        `yaml:"secret" env:"SESSION_SECRET" env-required:"true"`
	Issuer string        `yaml:"issuer" env:"SESSION_ISSUER" env-default:"catalog-admin"`
	TTL    time.Duration `yaml:"ttl"    env:"SESSION_TTL"    env-default:"8h"`
}

// ConsoleConfig holds console page behavior settings.
type ConsoleConfig struct {
	PageSize    int           `yaml:"page_size"   env:"CONSOLE_PAGE_SIZE"   env-default:"10"`
	ChartTheme  string        `yaml:"chart_theme" env:"CONSOLE_CHART_THEME" env-default:"westeros"`
	ChartTTL    time.Duration `yaml:"chart_ttl"   env:"CONSOLE_CHART_TTL"   env-default:"5m"`
	DenylistRaw string        `yaml:"denylist"    env:"CONSOLE_DENYLIST"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Denylist returns the extra redaction keys parsed from the raw
// comma-separated setting.
func (c ConsoleConfig) Denylist() []string {
	if strings.TrimSpace(c.DenylistRaw) == "" {
		return nil
	}
	var keys []string
	for _, key := range strings.Split(c.DenylistRaw, ",") {
		key = strings.TrimSpace(key)
		if key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
