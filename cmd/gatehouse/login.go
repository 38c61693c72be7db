package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gatehouse/internal/auth/models"
)

func loginCmd() *cobra.Command {
	var (
		email    string
		password string
		remember bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the resolved tenant and persist the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stack, err := buildStack()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := stack.gate.Bootstrap(ctx); err != nil {
				return err
			}

			creds := models.Credentials{
				Email:      email,
				Password:   password,
				RememberMe: remember,
			}
			if err := stack.engine.Login(ctx, creds); err != nil {
				return err
			}

			snap := stack.engine.Snapshot()
			fmt.Printf("logged in as %s (roles: %s)\n",
				snap.User.Email, strings.Join(snap.User.Roles, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().BoolVar(&remember, "remember", false, "keep the session after the browser would close")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stack, err := buildStack()
			if err != nil {
				return err
			}
			stack.engine.Logout(cmd.Context())
			fmt.Println("logged out")
			return nil
		},
	}
}
