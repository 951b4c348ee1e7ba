package config

import (
	"encoding/json"
	"os"

	"github.com/signalregistry/api/internal/flagx"
	"github.com/signalregistry/api/internal/timex"
)

// JsonConfig is the DTO used only for reading JSON configuration files.
// Duration fields accept both strings such as "60s" and integer nanoseconds.
// After unmarshalling, values are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr           string         `json:"endpoint_addr"`
	MongoURI               string         `json:"mongo_uri"`
	Database               string         `json:"database"`
	ServerSelectionTimeout timex.Duration `json:"server_selection_timeout"`
	MinPoolSize            uint64         `json:"min_pool_size"`
	MaxPoolSize            uint64         `json:"max_pool_size"`
	CookieName             string         `json:"cookie_name"`
	CookieTTL              timex.Duration `json:"cookie_ttl"`
	CookieDomain           string         `json:"cookie_domain"`
	CookieSecure           *bool          `json:"cookie_secure"`
	AllowedOrigins         []string       `json:"allowed_origins"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config flags, if any. Missing flag means no JSON overlay; an
// unreadable or invalid file panics, matching flag parsing behavior.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.MongoURI != "" {
		config.MongoURI = c.MongoURI
	}
	if c.Database != "" {
		config.Database = c.Database
	}
	if c.ServerSelectionTimeout.Duration != 0 {
		config.ServerSelectionTimeout = c.ServerSelectionTimeout.Duration
	}
	if c.MinPoolSize != 0 {
		config.MinPoolSize = c.MinPoolSize
	}
	if c.MaxPoolSize != 0 {
		config.MaxPoolSize = c.MaxPoolSize
	}
	if c.CookieName != "" {
		config.CookieName = c.CookieName
	}
	if c.CookieTTL.Duration != 0 {
		config.CookieTTL = c.CookieTTL.Duration
	}
	if c.CookieDomain != "" {
		config.CookieDomain = c.CookieDomain
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
}
