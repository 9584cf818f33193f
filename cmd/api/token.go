package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"newshub/internal/auth"
	"newshub/internal/config"
)

func newTokenCmd() *cobra.Command {
	var (
		email string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			lifetime := cfg.Auth.TokenTTL
			if ttl > 0 {
				lifetime = ttl
			}

			token, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, lifetime).Issue(email)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email claim of the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, e.g. 30m (defaults to JWT_TOKEN_TTL)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
