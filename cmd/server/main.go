// Package main is the entry point for the story server and authoring tools
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "rpg-story",
	Short: "Interactive story authoring server",
	Long: `rpg-story stores branching stories, derives their scene graphs, lints them and
runs preview playthroughs over gRPC, HTTP or the terminal.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load before reading the environment (default .env)")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(playCmd)
}
