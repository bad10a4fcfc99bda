package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"evalgo.org/cookbook/internal/auth"
	"evalgo.org/cookbook/models"
)

var tokenCmd = &cobra.Command{
	Use:   "token [username]",
	Short: "Generate an API access token",
	Long: `Generate a JWT access token for a username without a password check.

The token is signed with security.jwt_secret from the configuration file.
By default it carries the "user" role and expires after
security.jwt_expiration.

Examples:
  # Token for alice with the default role
  cookbook token alice

  # Admin token valid for a day
  cookbook token root --roles admin --expiration 24h

  # Use custom secret (overrides config)
  cookbook token alice --secret "my-custom-secret"`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerateToken,
}

var (
	tokenRoles      []string
	tokenExpiration time.Duration
	tokenSecret     string
)

func init() {
	tokenCmd.Flags().StringSliceVar(&tokenRoles, "roles", []string{models.RoleUser}, "roles to grant (admin, user, viewer)")
	tokenCmd.Flags().DurationVar(&tokenExpiration, "expiration", 0, "token lifetime (default: security.jwt_expiration)")
	tokenCmd.Flags().StringVar(&tokenSecret, "secret", "", "JWT secret (default: from config file)")
}

func runGenerateToken(cmd *cobra.Command, args []string) error {
	username := args[0]

	roles, err := parseRoles(tokenRoles)
	if err != nil {
		return err
	}

	signing := *cfg
	if tokenSecret != "" {
		signing.Security.JWTSecret = tokenSecret
	}
	if signing.Security.JWTSecret == "" {
		return fmt.Errorf(`jwt_secret not found in config file and --secret not provided

Please either:
  1. Add to your config.yaml:
     security:
       jwt_secret: your-secret-here

  2. Or use the --secret flag:
     cookbook token %s --secret "your-secret-here"`, username)
	}

	token, err := auth.NewJWTService(&signing).Sign(username, "", roles, tokenExpiration)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Printf("Token Generated Successfully\n")
	fmt.Printf("============================\n\n")
	fmt.Printf("Username:   %s\n", username)
	fmt.Printf("Roles:      %v\n", roles)
	fmt.Printf("Expires at: %s\n", token.ExpiresAt.Format(time.RFC3339))
	fmt.Printf("\nToken:\n%s\n\n", token.AccessToken)
	fmt.Printf("Use it as:\n")
	fmt.Printf("  Authorization: Bearer %s\n", token.AccessToken)

	return nil
}

// parseRoles checks role flag values against the known roles.
func parseRoles(values []string) ([]models.Role, error) {
	roles := make([]models.Role, 0, len(values))
	for _, v := range values {
		switch v {
		case models.RoleAdmin, models.RoleUser, models.RoleViewer:
			roles = append(roles, v)
		default:
			return nil, fmt.Errorf("unknown role %q (want admin, user or viewer)", v)
		}
	}
	return roles, nil
}
