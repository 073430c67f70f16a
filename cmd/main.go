package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/goalscanpro/goalscan/internal/logger"
	"github.com/goalscanpro/goalscan/pkg/ai"
	"github.com/goalscanpro/goalscan/pkg/goalscan"
	"github.com/goalscanpro/goalscan/pkg/ingest"
	"github.com/goalscanpro/goalscan/pkg/store"
)

const defaultDatabasePath = "/tmp/goalscan.db"

func main() {
	logger.SetShowDateTime(true)

	// Results print to stdout; keep log output out of the way
	logger.SetLogOutput('f')

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	if err := store.Open(databasePath()); err != nil {
		logger.Error("Failed to open database:", err)
		os.Exit(1)
	}
	defer store.Close()
	if err := store.InitSchema(); err != nil {
		logger.Error("Failed to initialize schema:", err)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "analyze":
		err = runAnalyze(os.Args[2:])
	case "show":
		err = runShow(os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	case "bankroll":
		err = runBankroll()
	case "purge":
		err = runPurge()
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error("Command failed:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  goalscan analyze <request.json> [save-id] [preview-url]
  goalscan show <save-id>
  goalscan import <stats.csv>
  goalscan bankroll
  goalscan purge`)
}

func databasePath() string {
	if path := os.Getenv("GOALSCAN_DB"); path != "" {
		return path
	}
	return defaultDatabasePath
}

// runAnalyze loads an analysis request from a JSON file, optionally
// asks the AI estimator for a second opinion, runs the engine and
// prints the result. A save-id argument persists the result.
func runAnalyze(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("analyze requires a request file")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read request file: %w", err)
	}
	req := &goalscan.AnalysisRequest{}
	if err := json.Unmarshal(data, req); err != nil {
		return fmt.Errorf("failed to decode request file: %w", err)
	}

	saveID := ""
	if len(args) > 1 {
		saveID = args[1]
	}
	previewURL := ""
	if len(args) > 2 {
		previewURL = args[2]
	}

	if req.AI == nil {
		req.AI = fetchAIEstimate(req, previewURL)
	}

	result, err := goalscan.Analyze(req)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if saveID != "" {
		record := store.NewSavedAnalysis(saveID, req.HomeTeam, req.AwayTeam, result, store.DefaultAnalysisTTL)
		if err := store.Save(record); err != nil {
			return fmt.Errorf("failed to save analysis: %w", err)
		}
		logger.Info("Analysis saved as", saveID)
	}
	return nil
}

// fetchAIEstimate asks the configured model for an estimate. Missing
// configuration or a failed call just means no AI source.
func fetchAIEstimate(req *goalscan.AnalysisRequest, previewURL string) *goalscan.AIEstimateInput {
	endpoint := os.Getenv("GOALSCAN_AI_ENDPOINT")
	apiKey := os.Getenv("GOALSCAN_AI_KEY")
	model := os.Getenv("GOALSCAN_AI_MODEL")
	if endpoint == "" || apiKey == "" || model == "" {
		logger.Debug("AI estimator not configured, skipping")
		return nil
	}

	client := ai.NewClient(endpoint, apiKey, model)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var estimate *goalscan.AIEstimateInput
	var err error
	if previewURL != "" {
		estimate, err = client.EstimateFromURL(ctx, previewURL, req.HomeTeam, req.AwayTeam)
	} else {
		estimate, err = client.Estimate(ctx, req.HomeTeam, req.AwayTeam, "")
	}
	if err != nil {
		logger.Warn("AI estimate unavailable:", err)
		return nil
	}
	return estimate
}

func runShow(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("show requires a save-id")
	}
	record, err := store.LoadAnalysis(args[0])
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(record.Result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// runImport parses a provider CSV and prints the recognized snapshots
// keyed by team, ready for pasting into a request file
func runImport(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("import requires a csv file")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	stats, err := ingest.ParseCSV(f)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	logger.Info("Imported statistics for", fmt.Sprintf("%d teams", len(stats)))
	return nil
}

func runBankroll() error {
	balance, err := store.BankrollBalance()
	if err != nil {
		return err
	}
	fmt.Printf("settled balance: %+.2f units\n", balance)
	return nil
}

func runPurge() error {
	purged, err := store.PurgeExpired()
	if err != nil {
		return err
	}
	logger.Info("Purged expired analyses:", purged)
	return nil
}
