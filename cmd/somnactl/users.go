package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	usersCmd := &cobra.Command{Use: "users", Short: "User operations"}

	// create
	var email, password, firstName, lastName, tz string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"email": email, "password": password}
			if firstName != "" {
				payload["firstName"] = firstName
			}
			if lastName != "" {
				payload["lastName"] = lastName
			}
			if tz != "" {
				payload["timeZone"] = tz
			}
			resp, err := newClient().R().SetBody(payload).Post("/api/users")
			if err != nil {
				return err
			}
			return printResponse(resp)
		},
	}
	createCmd.Flags().StringVarP(&email, "email", "e", "", "User email (required)")
	createCmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	createCmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	createCmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	createCmd.Flags().StringVarP(&tz, "tz", "t", "", "Time zone")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")
	usersCmd.AddCommand(createCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Get("/api/users/" + args[0])
			if err != nil {
				return err
			}
			return printResponse(resp)
		},
	}
	usersCmd.AddCommand(getCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete USER_ID",
		Short: "Delete a user and all their data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Delete("/api/users/" + args[0])
			if err != nil {
				return err
			}
			if resp.IsError() {
				fmt.Println(string(resp.Body()))
				return fmt.Errorf("http %d", resp.StatusCode())
			}
			fmt.Println("deleted")
			return nil
		},
	}
	usersCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(usersCmd)
}
