package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
)

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available spell-books",
		Long: `List the spell-book files found in the configured book directory.

Example:
  quest list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := bookDir()
			matches, err := doublestar.Glob(os.DirFS(dir), "*.toml")
			if err != nil {
				return fmt.Errorf("glob spell-books: %w", err)
			}

			if len(matches) == 0 {
				fmt.Println("No spell-books found. Create one with: quest create <name>")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "BOOK\tFILE")
			fmt.Fprintln(w, "────\t────")
			for _, m := range matches {
				name := strings.TrimSuffix(m, ".toml")
				fmt.Fprintf(w, "%s\t%s\n", name, m)
			}
			return w.Flush()
		},
	}
}
