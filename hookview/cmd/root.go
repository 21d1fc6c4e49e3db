// Package cmd provides the command-line interface for inspecting
// recorded saved-value hook events.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "hookview",
	Short: "Hookview inspects the hook-scope event databases written " +
		"by the recording package.",
	Long: `Hookview inspects the hook-scope event databases written by ` +
		`the recording package. It can list the tables of a recording ` +
		`and dump the recorded push, pop, disable, and enable events.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// A .env file is optional.
		_ = godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("db", "",
		"path of the recording database (default $HOOKVIEW_DB)")
}

func databasePath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = os.Getenv("HOOKVIEW_DB")
	}

	if path == "" {
		fmt.Fprintln(os.Stderr,
			"Must specify a database with --db or HOOKVIEW_DB")
		os.Exit(1)
	}

	return path
}
