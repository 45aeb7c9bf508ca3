// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/canonical/agency-service/internal/types"
	"github.com/canonical/agency-service/pkg/invitation"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage agency team members",
}

var listTeamCmd = &cobra.Command{
	Use:   "list [agency-id]",
	Short: "List the users of an agency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := getClient().ListTeam(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "USER_ID\tEMAIL\tROLE")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.Email, u.Role)
		}
		return w.Flush()
	},
}

var removeTeamMemberCmd = &cobra.Command{
	Use:   "remove [agency-id] [user-id]",
	Short: "Remove a user from an agency",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getClient().RemoveTeamMember(cmd.Context(), args[0], args[1]); err != nil {
			return fmt.Errorf("failed to remove user: %w", err)
		}

		fmt.Printf("User %s removed from agency %s\n", args[1], args[0])
		return nil
	},
}

var invitationCmd = &cobra.Command{
	Use:   "invitation",
	Short: "Manage agency invitations",
}

var listInvitationsCmd = &cobra.Command{
	Use:   "list [agency-id]",
	Short: "List the invitations of an agency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		invitations, err := getClient().ListInvitations(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to list invitations: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "EMAIL\tROLE\tSTATUS\tCREATED_AT")
		for _, i := range invitations {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", i.Email, i.Role, i.Status, i.CreatedAt)
		}
		return w.Flush()
	},
}

var inviteCmd = &cobra.Command{
	Use:   "create [agency-id] [email] [role]",
	Short: "Invite an email to an agency with the given role",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		role := types.Role(args[2])
		if !role.Valid() {
			return fmt.Errorf("invalid role %q", args[2])
		}

		inv, err := getClient().Invite(cmd.Context(), args[0], &invitation.CreateInvitationRequest{
			Email: args[1],
			Role:  role,
		})
		if err != nil {
			return fmt.Errorf("failed to invite user: %w", err)
		}

		fmt.Printf("Invitation sent to %s as %s (status: %s)\n", inv.Email, inv.Role, inv.Status)
		return nil
	},
}

var revokeInvitationCmd = &cobra.Command{
	Use:   "revoke [agency-id] [email]",
	Short: "Revoke a pending invitation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getClient().RevokeInvitation(cmd.Context(), args[0], args[1]); err != nil {
			return fmt.Errorf("failed to revoke invitation: %w", err)
		}

		fmt.Printf("Invitation revoked: %s\n", args[1])
		return nil
	},
}

var acceptInvitationCmd = &cobra.Command{
	Use:   "accept",
	Short: "Accept the pending invitation of the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := getClient().AcceptInvitation(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to accept invitation: %w", err)
		}

		agency := "-"
		if res.AgencyID != nil {
			agency = *res.AgencyID
		}

		fmt.Printf("State: %s\nAgency: %s\n", res.State, agency)
		return nil
	},
}

var subAccountCmd = &cobra.Command{
	Use:   "subaccount",
	Short: "Manage subaccounts",
}

var createSubAccountCmd = &cobra.Command{
	Use:   "create [agency-id] [name] [company-email]",
	Short: "Create a subaccount in an agency",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sa, err := getClient().UpsertSubAccount(cmd.Context(), &types.SubAccount{
			AgencyID:     args[0],
			Name:         args[1],
			CompanyEmail: args[2],
		})
		if err != nil {
			return fmt.Errorf("failed to create subaccount: %w", err)
		}

		fmt.Printf("Subaccount created: %s (ID: %s)\n", sa.Name, sa.ID)
		return nil
	},
}

var deleteSubAccountCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a subaccount",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getClient().DeleteSubAccount(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete subaccount: %w", err)
		}

		fmt.Printf("Subaccount deleted: %s\n", args[0])
		return nil
	},
}

var permissionCmd = &cobra.Command{
	Use:   "permission [subaccount-id] [email] [true|false]",
	Short: "Grant or revoke the access of a user to a subaccount",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		access, err := strconv.ParseBool(args[2])
		if err != nil {
			return fmt.Errorf("invalid access value %q", args[2])
		}

		p, err := getClient().ChangePermission(cmd.Context(), args[0], args[1], access)
		if err != nil {
			return fmt.Errorf("failed to change permission: %w", err)
		}

		fmt.Printf("Access of %s to %s set to %v\n", p.Email, p.SubAccountID, p.Access)
		return nil
	},
}

func init() {
	agencyCmd.AddCommand(teamCmd)
	teamCmd.AddCommand(listTeamCmd)
	teamCmd.AddCommand(removeTeamMemberCmd)

	rootCmd.AddCommand(invitationCmd)
	invitationCmd.AddCommand(listInvitationsCmd)
	invitationCmd.AddCommand(inviteCmd)
	invitationCmd.AddCommand(revokeInvitationCmd)
	invitationCmd.AddCommand(acceptInvitationCmd)

	rootCmd.AddCommand(subAccountCmd)
	subAccountCmd.AddCommand(createSubAccountCmd)
	subAccountCmd.AddCommand(deleteSubAccountCmd)
	subAccountCmd.AddCommand(permissionCmd)
}
