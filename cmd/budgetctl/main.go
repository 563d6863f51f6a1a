package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shepard5/Reapprop-Automation/internal/budget"
	"github.com/shepard5/Reapprop-Automation/internal/compare"
	"github.com/shepard5/Reapprop-Automation/internal/config"
	"github.com/shepard5/Reapprop-Automation/internal/enrich"
	"github.com/shepard5/Reapprop-Automation/internal/gcs"
	"github.com/shepard5/Reapprop-Automation/internal/logger"
	"github.com/shepard5/Reapprop-Automation/internal/pdftext"
	"github.com/shepard5/Reapprop-Automation/internal/pipeline"
	"github.com/shepard5/Reapprop-Automation/internal/reportio"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "parse":
		runParse(log)
	case "chunks":
		runChunks(log)
	case "enrich":
		runEnrich(log)
	case "compare":
		runCompare(log)
	case "list":
		runList(log)
	case "upload":
		runUpload(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("NYS Budget Reappropriation Toolkit")
	fmt.Println("\nUsage:")
	fmt.Println("  budgetctl <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  parse     Extract appropriation and reappropriation records from a budget PDF")
	fmt.Println("  chunks    Extract citation-aware reappropriation chunks from a budget PDF")
	fmt.Println("  enrich    Fill in model-extracted detail columns for a reappropriations CSV")
	fmt.Println("  compare   Reconcile an enacted budget against an executive budget")
	fmt.Println("  list      List budget PDFs in a GCS bucket")
	fmt.Println("  upload    Upload a budget PDF to a GCS bucket")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'budgetctl <command> -h' for more information on a command.")
}

// loadConfig builds the effective configuration and a logger at its level.
func loadConfig(log zerolog.Logger, configPath string) (config.Config, zerolog.Logger) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	return cfg, logger.NewWithLevel(cfg.Log.Level)
}

func runParse(log zerolog.Logger) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	pdfPath := fs.String("pdf", "", "Path or gs:// URI of the budget PDF")
	outDir := fs.String("out", "", "Output directory (defaults to config output.dir)")
	configPath := fs.String("config", "", "Path to YAML config file")
	fs.Parse(os.Args[2:])

	if *pdfPath == "" {
		log.Fatal().Msg("Error: --pdf is required")
	}

	cfg, log := loadConfig(log, *configPath)
	if *outDir == "" {
		*outDir = cfg.Output.Dir
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Info().Str("pdf", *pdfPath).Msg("Starting extraction")

	source, err := pdftext.Resolve(ctx, *pdfPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open PDF")
	}

	state := &pipeline.State{Source: source}
	if err := pipeline.NewExtractionPipeline().Execute(ctx, state); err != nil {
		log.Fatal().Err(err).Msg("Extraction failed")
	}

	appropPath := filepath.Join(*outDir, "Appropriations.csv")
	if err := writeOutputFile(appropPath, func(f *os.File) error {
		return reportio.WriteAppropriationsCSV(f, state.Appropriations)
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to write appropriations")
	}

	reappropPath := filepath.Join(*outDir, "Reappropriations.csv")
	if err := writeOutputFile(reappropPath, func(f *os.File) error {
		return reportio.WriteReappropriationsCSV(f, state.Reappropriations)
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to write reappropriations")
	}

	log.Info().
		Int("appropriations", len(state.Appropriations)).
		Int("reappropriations", len(state.Reappropriations)).
		Msg("Extraction complete")
	fmt.Printf("Wrote %s and %s\n", appropPath, reappropPath)
}

func runChunks(log zerolog.Logger) {
	fs := flag.NewFlagSet("chunks", flag.ExitOnError)
	pdfPath := fs.String("pdf", "", "Path or gs:// URI of the budget PDF")
	outPath := fs.String("out", "Reappropriations.csv", "Output CSV path")
	configPath := fs.String("config", "", "Path to YAML config file")
	fs.Parse(os.Args[2:])

	if *pdfPath == "" {
		log.Fatal().Msg("Error: --pdf is required")
	}

	_, log = loadConfig(log, *configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	source, err := pdftext.Resolve(ctx, *pdfPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open PDF")
	}
	pages, err := source.Pages(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read pages")
	}

	// Chunking runs over the whole document; capture only begins at a
	// chapter citation, so non-reappropriation text falls through.
	var lines []string
	for _, page := range pages {
		if page.Text == "" {
			continue
		}
		lines = append(lines, strings.Split(page.Text, "\n")...)
	}

	log.Info().Int("pages", len(pages)).Msg("Chunking reappropriation citations")
	records := budget.ParseReappropriationChunks(lines)

	if err := writeOutputFile(*outPath, func(f *os.File) error {
		return reportio.WriteReappropriationsCSV(f, records)
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to write chunks")
	}

	log.Info().Int("chunks", len(records)).Msg("Chunk extraction complete")
	fmt.Printf("Wrote %d chunks to %s\n", len(records), *outPath)
}

func runEnrich(log zerolog.Logger) {
	fs := flag.NewFlagSet("enrich", flag.ExitOnError)
	inPath := fs.String("in", "", "Reappropriations CSV to enrich")
	outPath := fs.String("out", "", "Output CSV path (defaults to overwriting the input)")
	configPath := fs.String("config", "", "Path to YAML config file")
	fs.Parse(os.Args[2:])

	if *inPath == "" {
		log.Fatal().Msg("Error: --in is required")
	}

	cfg, log := loadConfig(log, *configPath)
	if cfg.GenAI.APIKey == "" {
		log.Fatal().Msg("Error: Gemini API key is not configured")
	}
	if *outPath == "" {
		*outPath = *inPath
	}

	in, err := os.Open(*inPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open input CSV")
	}
	records, err := reportio.ReadReappropriationsCSV(in)
	in.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read input CSV")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	extractor, err := enrich.NewGeminiExtractor(ctx, cfg.GenAI.APIKey, cfg.GenAI.Model)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create extractor")
	}

	log.Info().Int("records", len(records)).Str("model", cfg.GenAI.Model).Msg("Starting enrichment")

	enriched := enrich.NewEnricher(extractor, cfg.GenAI.RequestDelay, log).EnrichAll(ctx, records)

	if err := writeOutputFile(*outPath, func(f *os.File) error {
		return reportio.WriteEnrichedCSV(f, enriched)
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to write enriched CSV")
	}

	fmt.Printf("Enriched %d records into %s\n", len(enriched), *outPath)
}

func runCompare(log zerolog.Logger) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	enactedPath := fs.String("enacted", "", "Enacted budget PDF (defaults to config inputs.enacted_pdf)")
	executivePath := fs.String("executive", "", "Executive budget PDF (defaults to config inputs.executive_pdf)")
	outDir := fs.String("out", "", "Output directory (defaults to config output.dir)")
	configPath := fs.String("config", "", "Path to YAML config file")
	fs.Parse(os.Args[2:])

	cfg, log := loadConfig(log, *configPath)
	if *enactedPath == "" {
		*enactedPath = cfg.Inputs.EnactedPDF
	}
	if *executivePath == "" {
		*executivePath = cfg.Inputs.ExecutivePDF
	}
	if *outDir == "" {
		*outDir = cfg.Output.Dir
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	scanner := compare.NewScanner(log)

	enacted, err := scanRecords(ctx, scanner, *enactedPath, compare.SourceEnacted)
	if err != nil {
		log.Fatal().Err(err).Str("pdf", *enactedPath).Msg("Failed to extract enacted budget")
	}
	executive, err := scanRecords(ctx, scanner, *executivePath, compare.SourceExecutive)
	if err != nil {
		log.Fatal().Err(err).Str("pdf", *executivePath).Msg("Failed to extract executive budget")
	}

	log.Info().
		Int("enacted_records", len(enacted)).
		Int("executive_records", len(executive)).
		Msg("Reconciling budgets")

	discrepancies := compare.FindDiscrepancies(enacted, executive)
	summary := compare.Summarize(discrepancies)

	outputs := []struct {
		name  string
		write func(f *os.File) error
	}{
		{"enacted_budget_data.csv", func(f *os.File) error { return reportio.WriteLineRecordsCSV(f, enacted) }},
		{"executive_budget_data.csv", func(f *os.File) error { return reportio.WriteLineRecordsCSV(f, executive) }},
		{"budget_discrepancies.csv", func(f *os.File) error { return reportio.WriteDiscrepanciesCSV(f, discrepancies) }},
		{"analysis_summary.json", func(f *os.File) error { return reportio.WriteSummaryJSON(f, summary) }},
	}
	for _, out := range outputs {
		path := filepath.Join(*outDir, out.name)
		if err := writeOutputFile(path, out.write); err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("Failed to write output")
		}
	}

	compare.RenderReport(os.Stdout, discrepancies, summary)
	fmt.Println()
	fmt.Println("Output files written:")
	fmt.Println("  • budget_discrepancies.csv - Detailed list of all missing reappropriations")
	fmt.Println("  • enacted_budget_data.csv - All data extracted from enacted budget")
	fmt.Println("  • executive_budget_data.csv - All data extracted from executive budget")
	fmt.Println("  • analysis_summary.json - Summary statistics")
}

func scanRecords(ctx context.Context, scanner *compare.Scanner, pdfPath string, source compare.Source) ([]compare.LineRecord, error) {
	pageSource, err := pdftext.Resolve(ctx, pdfPath)
	if err != nil {
		return nil, err
	}
	pages, err := pageSource.Pages(ctx)
	if err != nil {
		return nil, err
	}
	return scanner.ExtractRecords(pages, source), nil
}

func runList(log zerolog.Logger) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	bucket := fs.String("bucket", "", "GCS bucket name")
	prefix := fs.String("prefix", "", "Object name prefix filter")
	fs.Parse(os.Args[2:])

	if *bucket == "" {
		log.Fatal().Msg("Error: --bucket is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	uris, err := gcs.ListPDFs(ctx, *bucket, *prefix)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list bucket")
	}

	if len(uris) == 0 {
		fmt.Println("No PDF objects found.")
		return
	}
	for _, uri := range uris {
		fmt.Println(uri)
	}
}

func runUpload(log zerolog.Logger) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	bucket := fs.String("bucket", "", "GCS bucket name")
	object := fs.String("object", "", "GCS object name (defaults to filename)")
	filePath := fs.String("file", "", "Path to local PDF file")
	fs.Parse(os.Args[2:])

	if *bucket == "" || *filePath == "" {
		log.Fatal().Msg("Usage: budgetctl upload -bucket NAME -file PATH")
	}
	if *object == "" {
		*object = filepath.Base(*filePath)
	}

	ctx := logger.WithContext(context.Background(), log)

	log.Info().
		Str("bucket", *bucket).
		Str("object", *object).
		Str("file", *filePath).
		Msg("Uploading file to GCS")

	if err := gcs.Upload(ctx, *bucket, *object, *filePath); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	fmt.Printf("Uploaded %s to gs://%s/%s\n", *filePath, *bucket, *object)
}

// writeOutputFile creates path and hands the open file to write, closing it
// afterwards even when write fails.
func writeOutputFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
