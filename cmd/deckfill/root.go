package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "deckfill",
	Short: "Deckfill - LLM-powered flashcard field generation",
	Long: `Deckfill fills the empty fields of flashcard notes with LLM-generated
content.

It selects the notes whose mapped fields are still empty, renders a prompt
per note, and runs the provider calls concurrently under a sliding-window
rate limiter (requests per minute and tokens per minute), writing the
generated values back to the note store.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "deckfill.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
