// Package main provides the studygram command line: batch document analysis and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studygram",
	Short: "Study material analyzer and organizer",
	Long:  "studygram turns study documents (PDF, DOCX, plain text) into summaries, notes, flashcards and quizzes, and serves a study organizer over a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
