package registryctl

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check document store reachability.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		repos, err := connect(ctx)
		if err != nil {
			return err
		}
		defer repos.Close(context.Background())

		if err := repos.Ping(ctx); err != nil {
			return err
		}
		cmd.Println("store reachable")
		return nil
	},
}
