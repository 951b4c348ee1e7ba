// Package registryctl implements the administrative CLI for the registry:
// provisioning users and checking store reachability. It talks to the
// document store directly, not to a running server.
package registryctl

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/signalregistry/api/internal/server/config"
	"github.com/signalregistry/api/internal/server/repositories/repomanager"
)

var (
	uriFlag      string
	databaseFlag string
)

var rootCmd = &cobra.Command{
	Use:   "registryctl",
	Short: "Administrative tool for the signal registry.",
	Long: `registryctl manages the registry's document store: provisioning
users for the login endpoint and checking connectivity. The server itself
has no user-creation surface, so this is where accounts come from.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&uriFlag, "uri", "mongodb://127.0.0.1:27017", "document store connection string")
	rootCmd.PersistentFlags().StringVar(&databaseFlag, "database", "signalregistry", "database name")
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(pingCmd)
}

func connect(ctx context.Context) (*repomanager.MongoRepositoryManager, error) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.MongoURI = uriFlag
	cfg.Database = databaseFlag
	return repomanager.NewMongoRepositoryManager(ctx, cfg)
}
