package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
)

const templateBook = `[api]
name = "%s"
base_url = "https://example.com"

[[request]]
name = "ping"
method = "GET"
path = "/"
`

// newCreateCmd creates the create command.
func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <book>",
		Short: "Create a new spell-book from a template",
		Long: `Create writes a minimal template spell-book file and, if $EDITOR or
$VISUAL is set, opens it for editing.

Example:
  quest create auth`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			path := filepath.Join(bookDir(), name+".toml")

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("spell-book %q already exists at %s", name, path)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("create book directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(fmt.Sprintf(templateBook, name)), 0644); err != nil {
				return fmt.Errorf("write spell-book: %w", err)
			}

			fmt.Printf("Created %s\n", path)
			return openInEditor(path)
		},
	}
}

// openInEditor launches $EDITOR (falling back to $VISUAL) on path. If
// neither is set, it is a no-op: the file has already been written.
func openInEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		return nil
	}

	editorCmd := exec.Command(editor, path)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	return editorCmd.Run()
}
