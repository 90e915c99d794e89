package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailpush/core/auth"
	"github.com/dmitrymomot/mailpush/core/config"
)

func tokenCmd() *cobra.Command {
	var (
		email string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed credential for an identity",
		Long: `Print a signed credential for an identity, for use as the token query
parameter of /ws/mail/{identity} or as a Bearer token for /api/mail.
The signing key is read from JWT_SECRET.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}

			var cfg auth.Config
			if err := config.Parse(&cfg); err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.TTL
			}

			svc, err := auth.NewService(cfg)
			if err != nil {
				return err
			}

			token, err := auth.NewIssuer(svc, ttl, auth.WithIssuerName(cfg.Issuer)).Issue(email)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Identity (email address) to issue the credential for")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Credential lifetime (default JWT_TTL)")

	return cmd
}
