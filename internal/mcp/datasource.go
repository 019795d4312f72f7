package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/claude/liftrecap/internal/models"
	"github.com/claude/liftrecap/internal/report"
	"github.com/claude/liftrecap/internal/upload"
)

// Source supplies recaps for MCP tools. FileSource works on a local export;
// RemoteSource uploads the export to a liftrecap server.
type Source interface {
	Report(ctx context.Context, year int, units models.Units) (*report.Report, error)
	Years(ctx context.Context) ([]int, error)
}

// Compile-time checks: both sources satisfy Source.
var (
	_ Source = (*FileSource)(nil)
	_ Source = (*RemoteSource)(nil)
)

// FileSource re-reads a Strong CSV export on every call, so edits to the file
// show up without restarting.
type FileSource struct {
	path    string
	reports *report.Service
}

// NewFileSource creates a Source backed by the export at path.
func NewFileSource(path string, reports *report.Service) *FileSource {
	return &FileSource{path: path, reports: reports}
}

func (s *FileSource) Report(ctx context.Context, year int, units models.Units) (*report.Report, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()
	return s.reports.Build(ctx, f, year, units)
}

func (s *FileSource) Years(ctx context.Context) ([]int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()
	return s.reports.Years(ctx, f)
}

// RemoteSource sends a local export to a liftrecap server for every call.
// Used when the MCP binary runs locally (stdio) but the server runs elsewhere,
// e.g. on the tailnet.
type RemoteSource struct {
	path   string
	client *upload.Client
}

// NewRemoteSource creates a Source that uploads the export at path.
func NewRemoteSource(path string, client *upload.Client) *RemoteSource {
	return &RemoteSource{path: path, client: client}
}

func (s *RemoteSource) Report(ctx context.Context, year int, units models.Units) (*report.Report, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	return s.client.Recap(ctx, data, year, units)
}

func (s *RemoteSource) Years(ctx context.Context) ([]int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	return s.client.Years(ctx, data)
}
