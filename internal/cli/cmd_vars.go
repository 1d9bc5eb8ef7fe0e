package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newVarsCmd creates the vars command with list/set/unset subcommands.
func newVarsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vars",
		Short: "Inspect and edit the Variable Store",
	}
	cmd.AddCommand(newVarsListCmd())
	cmd.AddCommand(newVarsSetCmd())
	cmd.AddCommand(newVarsUnsetCmd())
	return cmd
}

func newVarsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <book>",
		Short: "List stored variables for a book/environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			vars, err := st.Load(ctx, args[0], envName())
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(vars)
			}

			if len(vars) == 0 {
				fmt.Println("No variables stored")
				return nil
			}

			keys := make([]string, 0, len(vars))
			for k := range vars {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(w, "%s\t%s\n", k, vars[k])
			}
			return w.Flush()
		},
	}
}

func newVarsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <book> <name> <value>",
		Short: "Set a stored variable",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			return st.UpsertOne(ctx, args[0], envName(), args[1], args[2])
		},
	}
}

func newVarsUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <book> <name>",
		Short: "Remove a stored variable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			return st.Delete(ctx, args[0], envName(), args[1])
		},
	}
}
