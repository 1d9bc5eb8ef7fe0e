package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/quest/internal/progress"
)

// newRunCmd creates the run command.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <book> <spell>",
		Short: "Run a named request from a spell-book",
		Long: `Run loads the spell-book, seeds variables from the environment file and
the Variable Store, executes the named request, and commits any variables
the pre/post scripts produced.

Example:
  quest run auth login
  quest run auth login --env staging`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bookName, spellName := args[0], args[1]

			orch, st, err := newOrchestrator(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			// Response rendering is buffered and flushed after the spinner
			// finishes so the two don't fight over the same terminal lines.
			var rendered bytes.Buffer
			label := fmt.Sprintf("%s %s", bookName, spellName)
			runErr := progress.Run(os.Stdout, label, plain, func() error {
				_, err := orch.HandleRun(ctx, bookName, spellName, envName(), &rendered)
				return err
			})
			os.Stdout.Write(rendered.Bytes())
			return runErr
		},
	}
}
