package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/resume-profiler/internal/catalog"
	"github.com/jonathan/resume-profiler/internal/infer"
	"github.com/jonathan/resume-profiler/internal/normalize"
	"github.com/jonathan/resume-profiler/internal/observability"
	"github.com/jonathan/resume-profiler/internal/schemas"
	"github.com/jonathan/resume-profiler/internal/types"
	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Validate and correct an existing candidate record JSON file",
	Long:  "Run the deterministic validation and inference stages on a candidate record JSON file, without any model calls. Invalid field values are cleared or corrected and missing fields are filled by inference; every change is reported.",
	RunE:  runNormalize,
}

var (
	normalizeRecord    string
	normalizeOut       string
	normalizeExpertise []string
	normalizeVerbose   bool
)

func init() {
	normalizeCmd.Flags().StringVar(&normalizeRecord, "record", "", "Path to candidate record JSON file (required)")
	normalizeCmd.Flags().StringVarP(&normalizeOut, "out", "o", "", "Path to write the normalized record (defaults to stdout)")
	normalizeCmd.Flags().StringSliceVar(&normalizeExpertise, "expertise", nil, "Candidate-selected functional expertise (authoritative, comma-separated)")
	normalizeCmd.Flags().BoolVarP(&normalizeVerbose, "verbose", "v", false, "Print detailed debug information")

	normalizeCmd.MarkFlagRequired("record")

	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(normalizeRecord)
	if err != nil {
		return fmt.Errorf("failed to read record file: %w", err)
	}

	if err := schemas.ValidateCandidateRecord(string(data)); err != nil {
		return fmt.Errorf("record failed schema validation: %w", err)
	}

	rec, err := types.ParseCandidateRecord(data)
	if err != nil {
		return fmt.Errorf("failed to parse candidate record: %w", err)
	}

	cats, err := catalog.Load()
	if err != nil {
		return err
	}

	log := normalize.NewValidator(cats).ValidateRecord(rec)
	log.Merge(infer.NewEngine(cats).Infer(rec, time.Now()))
	if len(normalizeExpertise) > 0 {
		rec.FunctionalExpertise = infer.MergeFunctionalExpertise(normalizeExpertise, rec.FunctionalExpertise, cats.FunctionalExpertise, &log)
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal normalized record: %w", err)
	}

	if normalizeOut != "" {
		if err := os.WriteFile(normalizeOut, out, 0644); err != nil {
			return fmt.Errorf("failed to write normalized record: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Normalized record: %s\n", normalizeOut)
	} else {
		fmt.Fprintln(os.Stdout, string(out))
	}

	printer := observability.NewPrinter(os.Stdout)
	if normalizeVerbose {
		printer.PrintCandidateRecord(rec)
	}
	printer.PrintChangeLog(log)

	return nil
}
