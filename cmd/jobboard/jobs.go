package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hireboard/job-portal/internal/core/domain"
	"github.com/hireboard/job-portal/internal/core/session"
)

func newJobsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Browse and manage job postings",
	}
	cmd.AddCommand(
		newJobsListCmd(c),
		newJobsShowCmd(c),
		newJobsPostCmd(c),
		newJobsDeleteCmd(c),
	)
	return cmd
}

func newJobsListCmd(c *cli) *cobra.Command {
	var (
		filter session.JobFilter
		active bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List postings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if active {
				filter.ActiveAt = time.Now()
			}
			return c.withApp(cmd.Context(), func(a *app) error {
				jobs := a.session.FilterJobPostings(filter)
				return c.render(cmd.OutOrStdout(), jobs, jobsTable(jobs))
			})
		},
	}
	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "match title, description or company")
	cmd.Flags().StringVar(&filter.Location, "location", "", "exact location")
	cmd.Flags().StringVar(&filter.Type, "type", "", "employment type")
	cmd.Flags().BoolVar(&filter.FeaturedOnly, "featured", false, "only featured postings")
	cmd.Flags().BoolVar(&active, "active", false, "hide expired postings")
	return cmd
}

func newJobsShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(a *app) error {
				job, err := a.jobs.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.render(cmd.OutOrStdout(), job, func(tw *tabwriter.Writer) {
					fmt.Fprintf(tw, "id:\t%s\n", job.ID)
					fmt.Fprintf(tw, "title:\t%s\n", job.Title)
					fmt.Fprintf(tw, "company:\t%s\n", deref(job.CompanyName))
					fmt.Fprintf(tw, "location:\t%s\n", job.Location)
					fmt.Fprintf(tw, "type:\t%s\n", job.Type)
					fmt.Fprintf(tw, "salary:\t%s\n", job.Salary)
					fmt.Fprintf(tw, "tier:\t%s\n", job.Tier)
					fmt.Fprintf(tw, "posted by:\t%s\n", job.PostedBy)
					fmt.Fprintf(tw, "posted:\t%s\n", job.DatePosted.Format(time.RFC3339))
					fmt.Fprintf(tw, "ends:\t%s\n", job.ListingEndDate.Format(time.RFC3339))
					fmt.Fprintf(tw, "description:\t%s\n", job.Description)
				})
			})
		},
	}
}

func newJobsPostCmd(c *cli) *cobra.Command {
	var (
		in   domain.JobInput
		tier string
	)
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a job as the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseTier(strings.ToLower(tier))
			if err != nil {
				return err
			}
			in.Tier = t
			return c.withApp(cmd.Context(), func(a *app) error {
				job, err := a.session.CreateJob(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "posted %s (%s, ends %s)\n",
					job.ID, job.Tier, job.ListingEndDate.Format(time.DateOnly))
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "job title")
	f.StringVar(&in.Description, "description", "", "description")
	f.StringVar(&in.Location, "location", "", "location")
	f.StringVar(&in.Experience, "experience", "", "required experience")
	f.StringVar(&in.Type, "type", "", "employment type")
	f.StringVar(&in.Salary, "salary", "", "salary range")
	f.StringVar(&in.Requirements, "requirements", "", "requirements")
	f.StringVar(&in.ContactEmail, "contact-email", "", "contact email")
	f.StringVar(&in.CompanyID, "company", "", "company id; defaults to the company you manage")
	f.StringVar(&tier, "tier", string(domain.TierFree), "free or premium")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newJobsDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(a *app) error {
				if !a.session.IsAuthenticated() {
					return domain.ErrUnauthenticated
				}
				if err := a.session.DeleteJob(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}
}
