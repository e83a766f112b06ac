package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nerrad567/knx-ga-studio/internal/auth"
)

func newTokenCmd(opts *options) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the editor API",
		Long:  "Sign a token with api.auth.secret. Paste it into the editor when it asks, or send it as \"Authorization: Bearer <token>\".",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.API.Auth.Secret == "" {
				return errors.New("api.auth.secret is not configured")
			}
			if !cmd.Flags().Changed("ttl") {
				ttl = cfg.API.Auth.TokenTTL()
			}

			token, err := auth.GenerateToken(subject, cfg.API.Auth.Secret, ttl)
			if err != nil {
				return fmt.Errorf("issuing token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", humanize.Time(time.Now().Add(ttl)))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "integrator", "who the token is issued to")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default api.auth.token_ttl_minutes)")

	return cmd
}
