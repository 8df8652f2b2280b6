package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hireboard/job-portal/internal/core/domain"
)

func newCompaniesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "companies",
		Short: "Browse companies",
	}
	cmd.AddCommand(newCompaniesShowCmd(c))
	return cmd
}

type companyView struct {
	domain.Company `yaml:",inline"`
	Jobs           []domain.JobPosting `json:"jobs,omitempty" yaml:"jobs,omitempty"`
}

func newCompaniesShowCmd(c *cli) *cobra.Command {
	var withJobs bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(a *app) error {
				company, err := a.companies.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				view := companyView{Company: *company}
				if withJobs {
					if view.Jobs, err = a.companies.ListJobs(cmd.Context(), args[0]); err != nil {
						return err
					}
				}
				return c.render(cmd.OutOrStdout(), view, func(tw *tabwriter.Writer) {
					fmt.Fprintf(tw, "id:\t%s\n", company.CompanyID)
					fmt.Fprintf(tw, "name:\t%s\n", company.Name)
					fmt.Fprintf(tw, "website:\t%s\n", company.Website)
					fmt.Fprintf(tw, "admins:\t%s\n", strings.Join(company.Admins, ", "))
					fmt.Fprintf(tw, "active:\t%t\n", company.Active)
					if withJobs {
						fmt.Fprintf(tw, "jobs:\t%d\n", len(view.Jobs))
						for _, j := range view.Jobs {
							fmt.Fprintf(tw, "\t%s  %s\n", j.ID, j.Title)
						}
					}
				})
			})
		},
	}
	cmd.Flags().BoolVar(&withJobs, "jobs", false, "include the company's postings")
	return cmd
}
