package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"evalgo.org/cookbook/internal/auth"
	"evalgo.org/cookbook/internal/storage"
	"evalgo.org/cookbook/models"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage API users",
}

var addUserCmd = &cobra.Command{
	Use:   "add [username]",
	Short: "Create an API user",
	Long: `Create a user in MongoDB with a bcrypt password hash.

Examples:
  cookbook user add alice --password 's3cret-pass'
  cookbook user add root --password 's3cret-pass' --roles admin`,
	Args: cobra.ExactArgs(1),
	RunE: runAddUser,
}

var (
	userPassword string
	userRoles    []string
)

func init() {
	addUserCmd.Flags().StringVar(&userPassword, "password", "", "password for the new user")
	addUserCmd.Flags().StringSliceVar(&userRoles, "roles", []string{models.RoleUser}, "roles to grant (admin, user, viewer)")
	_ = addUserCmd.MarkFlagRequired("password") //nolint:errcheck

	userCmd.AddCommand(addUserCmd)
}

func runAddUser(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	roles, err := parseRoles(userRoles)
	if err != nil {
		return err
	}
	if len(userPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close(ctx)

	user, err := auth.NewAuthenticator(store, auth.NewJWTService(cfg)).Register(ctx, args[0], userPassword, roles)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("Created user %s (%s) with roles %v\n", user.Username, user.ID.Hex(), user.Roles)
	return nil
}
