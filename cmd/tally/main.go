// Command tally extracts the line-item table from a budget document and
// writes it out as XLSX or CSV.
//
// Usage:
//
//	tally [flags] planilha.pdf
//
// The extraction cascade and its thresholds can be tuned with an optional
// YAML config file; see -config.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tsawler/tally"
	"github.com/tsawler/tally/backends/cloud"
	"github.com/tsawler/tally/cascade"
	"github.com/tsawler/tally/export"
)

func main() {
	var (
		configPath = flag.String("config", "", "optional YAML config file")
		outPath    = flag.String("o", "", "output file (.xlsx or .csv); default stdout CSV")
		pagesFlag  = flag.String("pages", "", "comma-separated 1-based page selection")
		verbose    = flag.Bool("v", false, "log cascade attempts")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(*verbose),
	}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tally [flags] <document>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("config", "error", err)
		os.Exit(2)
	}

	pages, err := parsePages(*pagesFlag)
	if err != nil {
		logger.Error("pages", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cfg, flag.Arg(0), *outPath, pages); err != nil {
		logger.Error("extract", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *fileConfig, document, outPath string, pages []int) error {
	extractor := tally.Open(document).
		Language(cfg.Language).
		Logger(logger)

	if len(pages) > 0 {
		extractor = extractor.Pages(pages...)
	}
	for name, t := range cfg.Thresholds {
		extractor = extractor.Threshold(name, t)
	}
	if cfg.Cloud.URL != "" {
		extractor = extractor.WithBackend(cloudBackend(cfg, logger))
	}

	result, err := extractor.Extract(ctx)
	if err != nil {
		return err
	}

	logger.Info("extracted",
		"backend", result.Backend,
		"records", len(result.Records),
		"confidence", result.Confidence,
	)

	switch {
	case strings.HasSuffix(outPath, ".xlsx"):
		data, err := export.XLSX(result.Records)
		if err != nil {
			return err
		}
		return os.WriteFile(outPath, data, 0o644)
	case outPath != "":
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		return export.CSV(f, result.Records)
	default:
		return export.CSV(os.Stdout, result.Records)
	}
}

// cloudBackend wires the model-based backend from file configuration. The
// request body is the minimal provider-neutral payload: the document path
// and language; the service owns its own prompting.
func cloudBackend(cfg *fileConfig, logger *slog.Logger) cascade.Backend {
	return cloud.New(nil, cloud.Config{
		URL:     cfg.Cloud.URL,
		Headers: cfg.Cloud.Headers,
		BuildRequest: func(doc *cascade.Document) (any, error) {
			return map[string]any{
				"document": doc.Path,
				"language": doc.Language,
			}, nil
		},
	}, logger)
}

func parsePages(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var pages []int
	for _, part := range strings.Split(s, ",") {
		var p int
		if _, err := fmt.Sscanf(strings.TrimSpace(part), "%d", &p); err != nil || p < 1 {
			return nil, fmt.Errorf("invalid page %q", part)
		}
		pages = append(pages, p)
	}
	return pages, nil
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelInfo
	}
	return slog.LevelWarn
}
