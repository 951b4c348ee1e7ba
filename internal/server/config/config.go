// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the Signal Registry server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - MongoURI / Database: document store connection string and database name.
//   - ServerSelectionTimeout: how long the driver waits for a reachable server.
//   - MinPoolSize / MaxPoolSize: connection pool bounds.
//   - CookieName / CookieTTL / CookieDomain / CookieSecure: session cookie policy.
//   - AllowedOrigins: origins granted credentialed CORS access.
type Config struct {
	EndpointAddr           string
	MongoURI               string
	Database               string
	ServerSelectionTimeout time.Duration
	MinPoolSize            uint64
	MaxPoolSize            uint64
	CookieName             string
	CookieTTL              time.Duration
	CookieDomain           string
	CookieSecure           bool
	AllowedOrigins         []string
}

// LoadDefaults populates Config with development defaults matching the
// historical deployment (port 7339, local MongoDB, the "sr" cookie).
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":7339"
	c.MongoURI = "mongodb://127.0.0.1:27017"
	c.Database = "signalregistry"
	c.ServerSelectionTimeout = 5 * time.Second
	c.MinPoolSize = 10
	c.MaxPoolSize = 20
	c.CookieName = "sr"
	c.CookieTTL = 1 * time.Minute
	c.CookieDomain = ""
	c.CookieSecure = true
	c.AllowedOrigins = []string{"http://127.0.0.1:7339"}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
