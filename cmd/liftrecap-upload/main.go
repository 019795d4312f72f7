package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/claude/liftrecap/internal/models"
	"github.com/claude/liftrecap/internal/report"
	"github.com/claude/liftrecap/internal/upload"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "liftrecap server URL (e.g. https://liftrecap.tail1234.ts.net)")
	file := flag.String("file", "", "path to a Strong CSV export")
	year := flag.Int("year", 0, "calendar year to summarise (default: latest in the export)")
	unitsFlag := flag.String("units", "", "weight unit label: kg or lbs (default: server setting)")
	apiKey := flag.String("api-key", os.Getenv("LIFTRECAP_AUTH_API_KEY"), "API key for the upload endpoints")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftrecap-upload", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *file == "" || *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftrecap-upload -server <URL> -file strong.csv [-year 2025] [-units kg|lbs] [-api-key KEY]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var units models.Units
	if *unitsFlag != "" {
		var err error
		units, err = models.ParseUnits(*unitsFlag)
		if err != nil {
			log.Error("invalid -units", "error", err)
			os.Exit(1)
		}
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Error("failed to read export", "error", err)
		os.Exit(1)
	}
	log.Info("uploading export", "file", *file, "bytes", len(data), "server", *serverURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := upload.NewClient(*serverURL, *apiKey)
	rep, err := client.Recap(ctx, data, *year, units)
	if err != nil {
		log.Error("upload failed", "error", err)
		os.Exit(1)
	}

	log.Info("upload complete",
		"report_id", rep.ID,
		"rows", rep.Ingest.RowsReceived,
		"dropped", rep.Ingest.RowsDropped,
		"sessions", rep.Ingest.SessionsBuilt,
	)
	report.WriteText(os.Stdout, rep)
}
