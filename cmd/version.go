// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/canonical/agency-service/pkg/status"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get the application's version",
	Long:  `Print the build version, the same payload is served on /api/v0/version`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := status.NewBuildInfo()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(info)
		}

		cmd.Printf("App Version: %s (%s)\n", info.Version, info.GoVersion)
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "Print the build information as JSON")

	rootCmd.AddCommand(versionCmd)
}
