package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/signalregistry/api/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":7339")
//	-m string   MongoDB connection URI
//	-n string   database name
//	-k string   session cookie name
//	-t int      session cookie TTL, seconds
//	-w int      store server-selection timeout, seconds
//	-o string   comma-separated allowed CORS origins
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-n", "-k", "-t", "-w", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "document store URI")
	fs.StringVar(&config.Database, "n", config.Database, "database name")
	fs.StringVar(&config.CookieName, "k", config.CookieName, "session cookie name")

	cookieTTL := fs.Int("t", int(config.CookieTTL.Seconds()), "session cookie TTL (in seconds)")
	selectionTimeout := fs.Int("w", int(config.ServerSelectionTimeout.Seconds()), "server selection timeout (in seconds)")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "comma-separated allowed origins")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CookieTTL = time.Duration(*cookieTTL) * time.Second
	config.ServerSelectionTimeout = time.Duration(*selectionTimeout) * time.Second
	if *origins != "" {
		config.AllowedOrigins = strings.Split(*origins, ",")
	}
}
