package registryctl

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/signalregistry/api/internal/server/models"
)

var (
	emailFlag    string
	usernameFlag string
	roleFlag     string
	hashFlag     bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage registry users.",
}

var userAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Create a user in the users collection.",
	Example: "registryctl user add --email alice@example.com --username alice --role admin --hash",
	RunE: func(cmd *cobra.Command, args []string) error {
		if emailFlag == "" || usernameFlag == "" {
			return errors.New("email and username are required")
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		if len(password) == 0 {
			return errors.New("password must not be empty")
		}

		stored := string(password)
		if hashFlag {
			hashed, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			stored = string(hashed)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		repos, err := connect(ctx)
		if err != nil {
			return err
		}
		defer repos.Close(context.Background())

		user := &models.User{
			Email:    emailFlag,
			Password: stored,
			Username: usernameFlag,
			Role:     roleFlag,
		}
		if err := repos.Users().Create(ctx, user); err != nil {
			return err
		}

		cmd.Printf("user %q created\n", usernameFlag)
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVar(&emailFlag, "email", "", "login email (required)")
	userAddCmd.Flags().StringVar(&usernameFlag, "username", "", "username (required)")
	userAddCmd.Flags().StringVar(&roleFlag, "role", models.RoleGuest, "role recorded on the user (admin or guest)")
	userAddCmd.Flags().BoolVar(&hashFlag, "hash", false, "store the password as a bcrypt hash instead of plaintext")
	userCmd.AddCommand(userAddCmd)
}
