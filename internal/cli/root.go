// Package cli implements the quest command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/randalmurphal/quest/internal/config"
)

var (
	cfgFile     string
	verbose     bool
	quiet       bool
	jsonOut     bool
	plain       bool
	flagBook    string
	flagEnv     string
	flagEnvFile string

	tracked *config.TrackedConfig
)

const (
	groupCore   = "core"
	groupManage = "manage"
	groupVars   = "vars"
	groupShare  = "share"
)

var rootCmd = &cobra.Command{
	Use:   "quest",
	Short: "Run declarative HTTP spell-books from the command line",
	Long: `quest runs named HTTP requests declared in TOML spell-book files, with a
persistent variable store, ${NAME} placeholder substitution, and optional
pre/post scripts for chaining requests.

Quick start:
  quest list                  List available spell-books
  quest describe auth         Show the requests in a spell-book
  quest run auth login        Run the "login" request from the "auth" book`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file for viper discovery (default .quest/config.yaml); quest settings are read from the layered config.yaml files, not this flag")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "plain output, no spinner/color")
	rootCmd.PersistentFlags().StringVar(&flagBook, "book", "", "spell-book directory override")
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", "", "environment name override")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "environment JSON file override")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupCore, Title: "Core Commands:"},
		&cobra.Group{ID: groupManage, Title: "Spell-Book Management:"},
		&cobra.Group{ID: groupVars, Title: "Variables:"},
		&cobra.Group{ID: groupShare, Title: "Sharing:"},
	)

	addCmd(newListCmd(), groupCore)
	addCmd(newDescribeCmd(), groupCore)
	addCmd(newRunCmd(), groupCore)

	addCmd(newCreateCmd(), groupManage)
	addCmd(newEditCmd(), groupManage)
	addCmd(newDeleteCmd(), groupManage)

	addCmd(newVarsCmd(), groupVars)

	addCmd(newShareCmd(), groupShare)
}

func addCmd(cmd *cobra.Command, groupID string) {
	cmd.GroupID = groupID
	rootCmd.AddCommand(cmd)
}

// initConfig loads quest's layered configuration and applies CLI overrides.
// It also sets up viper purely for the QUEST_* automatic-env/config-file
// discovery convention the CLI advertises (--config, $QUEST_*); the
// resulting *config.TrackedConfig from internal/config is what commands
// actually read.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".quest")
		viper.AddConfigPath("$HOME/.quest")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}
	viper.SetEnvPrefix("QUEST")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	var err error
	tracked, err = config.LoadWithSources()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if flagBook != "" {
		tracked.Config.BookDir = flagBook
	}
	if flagEnv != "" {
		tracked.Config.DefaultEnv = flagEnv
	}
	if flagEnvFile != "" {
		tracked.Config.EnvFile = flagEnvFile
	}

	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
