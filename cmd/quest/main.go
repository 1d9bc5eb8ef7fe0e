// Package main provides the entry point for the quest CLI.
package main

import (
	"fmt"
	"os"

	"github.com/randalmurphal/quest/internal/cli"
	questerrors "github.com/randalmurphal/quest/internal/errors"
)

func main() {
	if err := cli.Execute(); err != nil {
		if qErr := questerrors.AsQuestError(err); qErr != nil {
			fmt.Fprintln(os.Stderr, qErr.UserMessage())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
