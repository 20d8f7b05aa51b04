package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-profiler/internal/config"
	"github.com/jonathan/resume-profiler/internal/db"
	"github.com/jonathan/resume-profiler/internal/extraction"
	"github.com/jonathan/resume-profiler/internal/ingestion"
	"github.com/jonathan/resume-profiler/internal/llm"
	"github.com/jonathan/resume-profiler/internal/observability"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run the full extraction pipeline on a resume document",
	Long: `Orchestrates the entire profiling process: ingestion -> extraction -> validation -> inference.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runExtractCmd,
}

var (
	extractConfigPath  string
	extractResume      string
	extractOut         string
	extractExpertise   []string
	extractAPIKey      string
	extractDatabaseURL string
	extractUseVision   bool
	extractVerbose     bool
)

func init() {
	// Config file flag (processed first)
	extractCmd.Flags().StringVar(&extractConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	extractCmd.Flags().StringVarP(&extractResume, "resume", "r", "", "Path to resume document (PDF, DOCX, or text)")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Output directory for extracted artifacts")
	extractCmd.Flags().StringSliceVar(&extractExpertise, "expertise", nil, "Candidate-selected functional expertise (authoritative, comma-separated)")
	extractCmd.Flags().BoolVar(&extractUseVision, "use-vision", false, "Also send the raw document to the vision model (PDF and DOCX only)")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for job and record persistence
	extractCmd.Flags().StringVar(&extractDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(extractCmd)
}

func runExtractCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if extractConfigPath != "" {
		loadedCfg, err := config.LoadConfig(extractConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if extractVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", extractConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = extractResume
	}
	if cmd.Flags().Changed("out") {
		cfg.Output = extractOut
	}
	if cmd.Flags().Changed("expertise") {
		cfg.UserExpertise = extractExpertise
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = extractAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = extractDatabaseURL
	}
	if cmd.Flags().Changed("use-vision") {
		cfg.UseVision = extractUseVision
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = extractVerbose
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{Output: "out"})

	// Step 4: Validate required fields
	if cfg.Resume == "" {
		return fmt.Errorf("--resume must be provided (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 5: API Key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	// Step 6: Database URL handling (optional; without it results are only
	// written to the output directory)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	var store extraction.Store
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		store = database
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	doc, err := ingestion.LoadDocument(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	orchestrator, err := extraction.New(extraction.Options{
		Client:        client,
		Store:         store,
		UserExpertise: cfg.UserExpertise,
		UseVision:     cfg.UseVision,
	})
	if err != nil {
		return err
	}

	result, err := orchestrator.Run(ctx, doc)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if err := writeExtractionOutput(cfg.Output, result); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintCandidateRecord(result.Record)
		printer.PrintChangeLog(result.Log)
	}

	fmt.Fprintf(os.Stdout, "Extraction complete (job %s)\n", result.JobID)
	fmt.Fprintf(os.Stdout, "Candidate record: %s/candidate_record.json\n", cfg.Output)
	fmt.Fprintf(os.Stdout, "Change log: %s/change_log.json\n", cfg.Output)

	return nil
}

// writeExtractionOutput writes the final record and its change log as JSON
// files in the output directory.
func writeExtractionOutput(outDir string, result *extraction.Result) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	recordJSON, err := json.MarshalIndent(result.Record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal candidate record: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "candidate_record.json"), recordJSON, 0644); err != nil {
		return fmt.Errorf("failed to write candidate record: %w", err)
	}

	logJSON, err := json.MarshalIndent(result.Log.Entries(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal change log: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "change_log.json"), logJSON, 0644); err != nil {
		return fmt.Errorf("failed to write change log: %w", err)
	}

	return nil
}
