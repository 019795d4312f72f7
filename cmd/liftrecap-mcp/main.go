package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/liftrecap/internal/analytics"
	"github.com/claude/liftrecap/internal/ingest/strong"
	"github.com/claude/liftrecap/internal/mcp"
	"github.com/claude/liftrecap/internal/models"
	"github.com/claude/liftrecap/internal/report"
	"github.com/claude/liftrecap/internal/upload"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	file := flag.String("file", "", "path to a Strong CSV export (required)")
	serverURL := flag.String("server", "", "liftrecap server URL; when set, recaps are computed remotely")
	apiKey := flag.String("api-key", os.Getenv("LIFTRECAP_AUTH_API_KEY"), "API key for remote mode")
	unitsFlag := flag.String("units", string(models.DefaultUnits), "default weight unit label: kg or lbs")
	flag.Parse()

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *file == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftrecap-mcp -file strong.csv [-server URL] [-units kg|lbs]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	units, err := models.ParseUnits(*unitsFlag)
	if err != nil {
		log.Error("invalid -units", "error", err)
		os.Exit(1)
	}

	var src mcp.Source
	if *serverURL != "" {
		src = mcp.NewRemoteSource(*file, upload.NewClient(*serverURL, *apiKey))
		log.Info("mcp remote mode", "server", *serverURL)
	} else {
		reports := report.New(strong.NewProvider(strong.NewBuilder(nil, time.Local), log), analytics.New())
		src = mcp.NewFileSource(*file, reports)
		log.Info("mcp local mode", "file", *file)
	}

	s := mcp.New(src, units, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
