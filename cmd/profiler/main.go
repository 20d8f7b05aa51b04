// Package main provides the entry point for the resume profiler CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "profiler",
	Short: "Resume profiler CLI",
	Long:  "Resume profiler extracts a structured candidate record from a resume document (PDF, DOCX, or text), validates it against closed catalogs, and fills missing fields by inference.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
