package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hireboard/job-portal/internal/core/domain"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// render writes v in the selected format. table is used for formatTable.
func (c *cli) render(w io.Writer, v any, table func(*tabwriter.Writer)) error {
	switch c.output {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}
}

func jobsTable(jobs []domain.JobPosting) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tLOCATION\tTIER\tPOSTED BY\tPOSTED\tENDS")
		for _, j := range jobs {
			tier := string(j.Tier)
			if j.IsFeatured {
				tier += "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				j.ID, j.Title, deref(j.CompanyName), j.Location, tier, j.PostedBy,
				j.DatePosted.Format(time.DateOnly), j.ListingEndDate.Format(time.DateOnly))
		}
	}
}

func usersTable(users []domain.User) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tUSERNAME\tROLE\tCREATED BY")
		for _, u := range users {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, u.CreatedBy)
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
