package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// newEditCmd creates the edit command.
func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <book>",
		Short: "Open an existing spell-book in $EDITOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(bookDir(), args[0]+".toml")
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("spell-book %q not found at %s", args[0], path)
			}

			if os.Getenv("EDITOR") == "" && os.Getenv("VISUAL") == "" {
				return fmt.Errorf("no editor configured: set $EDITOR or $VISUAL")
			}
			return openInEditor(path)
		},
	}
}
