package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-profiler/internal/ingestion"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract and clean text from a resume document",
	Long:  "Extract text from a resume document (PDF, DOCX, or plain text), clean the content, and output cleaned text with metadata. No model calls are made.",
	RunE:  runIngest,
}

var (
	ingestResume string
	ingestOut    string
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestResume, "resume", "r", "", "Path to resume document (required)")
	ingestCmd.Flags().StringVarP(&ingestOut, "out", "o", "", "Output directory (required)")

	ingestCmd.MarkFlagRequired("resume")
	ingestCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cleanedText, metadata, err := ingestion.IngestFromFile(ingestResume)
	if err != nil {
		return fmt.Errorf("failed to ingest resume: %w", err)
	}

	if err := ingestion.WriteOutput(ingestOut, cleanedText, metadata); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Successfully ingested resume\n")
	fmt.Fprintf(os.Stdout, "Cleaned text: %s/resume.cleaned.txt\n", ingestOut)
	fmt.Fprintf(os.Stdout, "Metadata: %s/resume.meta.json\n", ingestOut)

	return nil
}
