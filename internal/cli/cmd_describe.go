package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/quest/internal/spellbook"
)

// newDescribeCmd creates the describe command.
func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <book>",
		Short: "Show the requests declared in a spell-book",
		Long: `Describe prints the api metadata and the list of requests in a spell-book.

Example:
  quest describe auth`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := spellbook.Load(bookDir(), args[0]+".toml", nil)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", book.API.Name)
			if book.API.Description != "" {
				fmt.Printf("  %s\n", book.API.Description)
			}
			fmt.Printf("  base_url: %s\n\n", book.API.BaseURL)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMETHOD\tPATH\tSCRIPTS")
			fmt.Fprintln(w, "────\t──────\t────\t───────")
			for _, r := range book.Requests {
				scripts := ""
				if r.PreScript != "" {
					scripts += "pre"
				}
				if r.TestScript != "" {
					if scripts != "" {
						scripts += "+"
					}
					scripts += "post"
				}
				if scripts == "" {
					scripts = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.Method, r.Path, scripts)
			}
			return w.Flush()
		},
	}
}
