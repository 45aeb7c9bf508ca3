// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	userID       string
	httpEndpoint string
	accessToken  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "app",
	Short: "Agency Service",
	Long:  `Agency Service CLI for running the server and managing agencies, subaccounts and invitations.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpEndpoint, "http-endpoint", "localhost:8080", "HTTP server endpoint (e.g. http://localhost:8080)")
	rootCmd.PersistentFlags().StringVar(&userID, "user-id", "", "Identity ID to act as, sent in the authenticated identity header")
	rootCmd.PersistentFlags().StringVar(&accessToken, "access-token", os.Getenv("AGENCY_ACCESS_TOKEN"), "Bearer token for the JSON API, see the token command")
}
