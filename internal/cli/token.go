package cli

import (
	"fmt"
	"time"

	"brainshift/internal/config"
	"brainshift/internal/util"

	"github.com/spf13/cobra"
)

// tokenCmd issues a token the way the identity service would, for local
// development and scripting.
func tokenCmd() *cobra.Command {
	var (
		userID uint
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed access token for a user id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return fmt.Errorf("--user is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = time.Duration(cfg.JWT.ExpireHours) * time.Hour
			}
			token, err := util.GenerateToken(cfg.JWT.Secret, cfg.JWT.Issuer, userID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().UintVarP(&userID, "user", "u", 0, "user id to embed")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default jwt.expire_hours)")
	return cmd
}
