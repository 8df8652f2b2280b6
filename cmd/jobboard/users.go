package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hireboard/job-portal/internal/core/domain"
)

func newUsersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage recruiters (admin only)",
	}
	cmd.AddCommand(newUsersListCmd(c), newUsersAddCmd(c))
	return cmd
}

func newUsersListCmd(c *cli) *cobra.Command {
	var subOnly bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(a *app) error {
				if !a.session.IsAdmin() {
					return domain.ErrForbidden
				}
				users := a.session.AllUsers()
				if subOnly {
					users = a.session.SubUsers()
				}
				return c.render(cmd.OutOrStdout(), users, usersTable(users))
			})
		},
	}
	cmd.Flags().BoolVar(&subOnly, "sub", false, "only recruiters provisioned by the admin")
	return cmd
}

func newUsersAddCmd(c *cli) *cobra.Command {
	var in domain.SubUserInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Provision a recruiter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(a *app) error {
				u, err := a.session.CreateSubUser(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", u.Username, u.Role)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&in.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
