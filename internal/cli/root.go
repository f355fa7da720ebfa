// Package cli defines Cobra command definitions for the spoke CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spoke-dev/spoke/internal/tui"
	tuiapp "github.com/spoke-dev/spoke/internal/tui/app"
)

var (
	apiURL  string
	version = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "spoke",
	Short: "Terminal admin client for a cycle repair shop backend",
	Long: `Spoke is the staff-facing admin client for a cycle repair shop.
It manages users, bikes, repairs, parts, quotes, custom builds and
transactions against the shop's REST backend, either interactively
or through scriptable subcommands.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch TUI if TTY, show help otherwise
		if !tui.IsTTY() {
			return cmd.Help()
		}

		env, err := buildEnv()
		if err != nil {
			return err
		}

		return tui.Run(tuiapp.New(env.Session, env.Status, env.Deps))
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (overrides config)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(listCmd)
}
