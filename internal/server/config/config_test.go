package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.EndpointAddr, ":7339")
	assert.Equal(t, c.MongoURI, "mongodb://127.0.0.1:27017")
	assert.Equal(t, c.Database, "signalregistry")
	assert.Equal(t, c.ServerSelectionTimeout, 5*time.Second)
	assert.Equal(t, c.MinPoolSize, uint64(10))
	assert.Equal(t, c.MaxPoolSize, uint64(20))
	assert.Equal(t, c.CookieName, "sr")
	assert.Equal(t, c.CookieTTL, 1*time.Minute)
	assert.True(t, c.CookieSecure)
	assert.Equal(t, c.AllowedOrigins, []string{"http://127.0.0.1:7339"})
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, c.EndpointAddr, ":7339")
	assert.Equal(t, c.Database, "signalregistry")
	assert.Equal(t, c.CookieName, "sr")
}
