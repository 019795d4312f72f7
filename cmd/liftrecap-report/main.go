package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/claude/liftrecap/internal/analytics"
	"github.com/claude/liftrecap/internal/ingest/strong"
	"github.com/claude/liftrecap/internal/models"
	"github.com/claude/liftrecap/internal/report"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	file := flag.String("file", "", "path to a Strong CSV export (required)")
	year := flag.Int("year", 0, "calendar year to summarise (default: latest in the export)")
	unitsFlag := flag.String("units", string(models.DefaultUnits), "weight unit label: kg or lbs")
	timezone := flag.String("timezone", "Local", "IANA zone the export timestamps are in")
	asJSON := flag.Bool("json", false, "print the full report as JSON")
	xlsxPath := flag.String("xlsx", "", "also write the recap as an Excel workbook to this path")
	verbose := flag.Bool("v", false, "debug logging")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftrecap-report", Version)
		return
	}

	if *file == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftrecap-report -file strong.csv [-year 2025] [-units kg|lbs] [-json]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	units, err := models.ParseUnits(*unitsFlag)
	if err != nil {
		log.Error("invalid -units", "error", err)
		os.Exit(1)
	}

	loc := time.Local
	if *timezone != "" && *timezone != "Local" {
		loc, err = time.LoadLocation(*timezone)
		if err != nil {
			log.Error("invalid -timezone", "error", err)
			os.Exit(1)
		}
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Error("failed to open export", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	reports := report.New(strong.NewProvider(strong.NewBuilder(nil, loc), log), analytics.New())
	rep, err := reports.Build(context.Background(), f, *year, units)
	if errors.Is(err, report.ErrNoData) {
		fmt.Fprintln(os.Stderr, "No valid dates found in the export.")
		os.Exit(1)
	}
	if err != nil {
		log.Error("report failed", "error", err)
		os.Exit(1)
	}

	if *xlsxPath != "" {
		if err := writeWorkbook(*xlsxPath, rep); err != nil {
			log.Error("writing workbook", "error", err)
			os.Exit(1)
		}
		log.Info("workbook written", "path", *xlsxPath)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			log.Error("encoding report", "error", err)
			os.Exit(1)
		}
		return
	}
	report.WriteText(os.Stdout, rep)
}

func writeWorkbook(path string, rep *report.Report) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteXLSX(out, rep); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
