package main

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var (
	apiFlag string
	rootCmd = &cobra.Command{
		Use:   "somnactl",
		Short: "CLI client for the sleep backend REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Sleep service base URL")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClient builds a resty client rooted at the service base URL.
func newClient() *resty.Client {
	return resty.New().SetBaseURL(apiFlag).SetHeader("Content-Type", "application/json")
}

// printResponse writes the response body and surfaces non-2xx statuses as
// errors so cobra exits non-zero.
func printResponse(resp *resty.Response) error {
	fmt.Fprintln(os.Stdout, string(resp.Body()))
	if resp.IsError() {
		return fmt.Errorf("http %d", resp.StatusCode())
	}
	return nil
}
