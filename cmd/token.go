package main

import (
	"errors"
	"fmt"

	"restaurant-booking/internal/domain/auth"
	"restaurant-booking/internal/pkg/config"
	"restaurant-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		restaurants []int
		userID      string
		roles       []string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the maitre d' schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(restaurants) == 0 {
				return errors.New("at least one --restaurants id is required")
			}

			uid := uuid.New()
			if userID != "" {
				parsed, err := uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
				uid = parsed
			}
			for _, r := range roles {
				if _, err := auth.NewRole(r); err != nil {
					return err
				}
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			d, err := cfg.JWT.TokenDuration()
			if err != nil {
				return err
			}

			token, err := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, d).GenerateToken(uid, roles, restaurants)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&restaurants, "restaurants", nil, "restaurant ids the bearer may administer")
	cmd.Flags().StringVar(&userID, "user", "", "user id to embed (random when empty)")
	cmd.Flags().StringSliceVar(&roles, "role", []string{string(auth.RoleMaitreD)}, "roles to grant")
	return cmd
}
