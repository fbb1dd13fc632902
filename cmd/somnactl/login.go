package main

import (
	"github.com/spf13/cobra"
)

func init() {
	var email, password string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().
				SetBody(map[string]string{"email": email, "password": password}).
				Post("/api/auth/login")
			if err != nil {
				return err
			}
			return printResponse(resp)
		},
	}
	loginCmd.Flags().StringVarP(&email, "email", "e", "", "User email (required)")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(loginCmd)
}
