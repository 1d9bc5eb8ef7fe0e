package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// newDeleteCmd creates the delete command.
func newDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <book>",
		Short: "Delete a spell-book file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(bookDir(), args[0]+".toml")
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("spell-book %q not found at %s", args[0], path)
			}

			if !force {
				fmt.Printf("Delete %s? [y/N] ", path)
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if strings.ToLower(strings.TrimSpace(answer)) != "y" {
					fmt.Println("Aborted")
					return nil
				}
			}

			if err := os.Remove(path); err != nil {
				return fmt.Errorf("delete spell-book: %w", err)
			}
			fmt.Printf("Deleted %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")
	return cmd
}
