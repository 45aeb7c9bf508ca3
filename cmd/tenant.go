// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/canonical/agency-service/internal/types"
	"github.com/canonical/agency-service/pkg/tenant"
)

var agencyCmd = &cobra.Command{
	Use:   "agency",
	Short: "Manage agencies",
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the authenticated user with its agency and permissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		me, err := getClient().Me(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}

		agency := "-"
		if me.Agency != nil {
			agency = fmt.Sprintf("%s (ID: %s)", me.Agency.Name, me.Agency.ID)
		}

		fmt.Printf("User: %s <%s>\nRole: %s\nAgency: %s\n", me.Name, me.Email, me.Role, agency)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "SUBACCOUNT_ID\tACCESS")
		for _, p := range me.Permissions {
			fmt.Fprintf(w, "%s\t%v\n", p.SubAccountID, p.Access)
		}
		return w.Flush()
	},
}

var createAgencyCmd = &cobra.Command{
	Use:   "create [name] [company-email]",
	Short: "Create an agency owned by the authenticated user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		agency, err := getClient().CreateAgency(cmd.Context(), &types.Agency{
			Name:         args[0],
			CompanyEmail: args[1],
		})
		if err != nil {
			return fmt.Errorf("failed to create agency: %w", err)
		}

		fmt.Printf("Agency created: %s (ID: %s)\n", agency.Name, agency.ID)
		return nil
	},
}

var getAgencyCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show an agency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		agency, err := getClient().GetAgency(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get agency: %w", err)
		}

		plan := "-"
		if agency.Plan != nil {
			plan = string(*agency.Plan)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tWHITE_LABEL\tPLAN\tCREATED_AT")
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\t%s\n", agency.ID, agency.Name, agency.CompanyEmail, agency.WhiteLabel, plan, agency.CreatedAt)
		return w.Flush()
	},
}

var (
	agencyName       string
	agencyWhiteLabel bool
	agencyGoal       int
)

var updateAgencyCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update the name, white label flag or goal of an agency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := new(tenant.UpdateAgencyRequest)
		if cmd.Flags().Changed("name") {
			req.Name = &agencyName
		}
		if cmd.Flags().Changed("white-label") {
			req.WhiteLabel = &agencyWhiteLabel
		}
		if cmd.Flags().Changed("goal") {
			req.GoalCount = &agencyGoal
		}

		if _, err := getClient().UpdateAgency(cmd.Context(), args[0], req); err != nil {
			return fmt.Errorf("failed to update agency: %w", err)
		}

		fmt.Printf("Agency updated: %s\n", args[0])
		return nil
	},
}

var deleteAgencyCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an agency with its subaccounts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getClient().DeleteAgency(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete agency: %w", err)
		}

		fmt.Printf("Agency deleted: %s\n", args[0])
		return nil
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications [id]",
	Short: "List the activity log of an agency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notifications, err := getClient().ListNotifications(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to list notifications: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CREATED_AT\tUSER\tNOTIFICATION")
		for _, n := range notifications {
			fmt.Fprintf(w, "%s\t%s\t%s\n", n.CreatedAt, n.User.Email, n.Notification.Notification)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(meCmd)
	rootCmd.AddCommand(agencyCmd)
	agencyCmd.AddCommand(createAgencyCmd)
	agencyCmd.AddCommand(getAgencyCmd)
	agencyCmd.AddCommand(updateAgencyCmd)
	agencyCmd.AddCommand(deleteAgencyCmd)
	agencyCmd.AddCommand(notificationsCmd)

	updateAgencyCmd.Flags().StringVar(&agencyName, "name", "", "New agency name")
	updateAgencyCmd.Flags().BoolVar(&agencyWhiteLabel, "white-label", false, "Show the agency logo on subaccount workspaces")
	updateAgencyCmd.Flags().IntVar(&agencyGoal, "goal", 0, "Subaccount goal of the agency")
}
