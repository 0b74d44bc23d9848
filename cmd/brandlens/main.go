package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/brandlens/brandlens/internal/analyzer"
	"github.com/brandlens/brandlens/internal/classifier"
	"github.com/brandlens/brandlens/internal/config"
	"github.com/brandlens/brandlens/internal/logger"
	"github.com/brandlens/brandlens/internal/lookup"
	"github.com/brandlens/brandlens/internal/models"
	"github.com/brandlens/brandlens/internal/report"
	"github.com/brandlens/brandlens/internal/taskstore"
	"github.com/brandlens/brandlens/internal/telegram"
)

var (
	configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")
	inputPath  = flag.String("input", "", "Path to a JSON file of raw creator records")
)

func main() {
	flag.Parse()

	if *inputPath == "" {
		logger.Fatal("missing required -input flag")
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	rawRecords, err := readRecords(*inputPath)
	if err != nil {
		logger.Fatal("Failed to read input records: %v", err)
	}
	logger.Info("Loaded %d raw records from %s", len(rawRecords), *inputPath)

	// Initialize task store
	store := taskstore.New(cfg.Storage.FilePath)
	if err := store.Load(); err != nil {
		logger.Warn("Failed to load persisted task state: %v", err)
	}

	// Initialize profile lookup client
	lookupClient := lookup.NewClient(
		cfg.Lookup.APIBaseURL,
		cfg.Lookup.APIKey,
		cfg.Lookup.APIHost,
		cfg.Lookup.Timeout,
		cfg.Lookup.MaxRetries,
		cfg.Lookup.RetryDelayBase,
		cfg.Lookup.RecentPostsCount,
	)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, finishing current batch...")
		cancel()
	}()

	// Initialize the AI completer. A missing key or client failure is not
	// fatal: classification falls through to the rule ladder.
	var completer classifier.Completer
	if cfg.Gemini.APIKey != "" {
		gemini, err := classifier.NewGeminiCompleter(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			logger.Warn("Gemini client unavailable, using rule-based classification only: %v", err)
		} else {
			completer = gemini
		}
	} else {
		logger.Warn("No Gemini API key configured, using rule-based classification only")
	}

	cls := classifier.New(completer, classifier.Options{
		MaxRetries:      cfg.Gemini.MaxRetries,
		BackoffBase:     cfg.Gemini.BackoffBase,
		BackoffCap:      cfg.Gemini.BackoffCap,
		MinCallInterval: cfg.Analyzer.MinCallInterval,
		CooldownEvery:   cfg.Analyzer.CooldownEvery,
		Cooldown:        cfg.Analyzer.Cooldown,
	})

	// Initialize Telegram client
	var telegramClient *telegram.Client
	if cfg.Telegram.Enabled {
		telegramClient, err = telegram.NewClient(
			cfg.Telegram.BotToken,
			cfg.Telegram.ChatID,
			cfg.Telegram.MaxRetries,
			cfg.Telegram.RetryDelayBase,
		)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram client: %v", err)
		}
		logger.Info("Telegram client initialized successfully")
	}

	progress := func(event models.ProgressEvent) {
		logger.Info("Progress %d/%d: %s", event.Processed, event.Total, event.Message)
	}

	a := analyzer.New(lookupClient, cls, store, store, progress, analyzer.Options{
		BatchSize:      cfg.Analyzer.BatchSize,
		BatchPause:     cfg.Analyzer.BatchPause,
		MaxRunDuration: cfg.Analyzer.MaxRunDuration,
	})

	final, err := a.Run(ctx, rawRecords)
	if err != nil {
		if telegramClient != nil {
			runID := ""
			if final != nil {
				runID = final.RunID
			}
			if sendErr := telegramClient.SendError(runID, err); sendErr != nil {
				logger.Error("Failed to send Telegram error notification: %v", sendErr)
			}
		}
		logger.Fatal("Analysis run failed: %v", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(*inputPath), filepath.Ext(*inputPath))
	if err := report.WriteCSV(cfg.Report.OutputDir, baseName, final.Creators); err != nil {
		logger.Error("Failed to write CSV reports: %v", err)
	} else {
		logger.Info("Reports written to %s", cfg.Report.OutputDir)
	}

	logger.Info("%s", report.Summary(*final))

	if telegramClient != nil {
		if err := telegramClient.SendSummary(final); err != nil {
			logger.Error("Failed to send Telegram summary: %v", err)
		}
	}

	if err := store.Save(); err != nil {
		logger.Warn("Failed to persist task state: %v", err)
	}
}

// readRecords loads the raw creator records from a JSON array file.
func readRecords(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
