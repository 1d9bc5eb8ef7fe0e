// Package cli provides error handling utilities for CLI output.
package cli

import (
	"fmt"
	"os"

	questerrors "github.com/randalmurphal/quest/internal/errors"
)

// PrintError prints an error to stderr with appropriate formatting.
// If the error is a QuestError, it uses the user-friendly format.
// Otherwise, it prints a simple error message.
func PrintError(err error) {
	if qErr := questerrors.AsQuestError(err); qErr != nil {
		fmt.Fprintln(os.Stderr, qErr.UserMessage())
		if verbose {
			fmt.Fprintf(os.Stderr, "\nCode: %s\n", qErr.Code)
			if qErr.Cause != nil {
				fmt.Fprintf(os.Stderr, "Cause: %v\n", qErr.Cause)
			}
		}
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
