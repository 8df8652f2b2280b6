package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNavigateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "navigate <path>",
		Short: "Ask the navigation guard where a page transition ends up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(a *app) error {
				d, err := a.guard.Navigate(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", d.Outcome, d.Location, d.Route.Name)
				return nil
			})
		},
	}
}
