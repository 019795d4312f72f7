// Package report runs the full pipeline: CSV export in, year summary out.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/claude/liftrecap/internal/analytics"
	"github.com/claude/liftrecap/internal/ingest"
	"github.com/claude/liftrecap/internal/ingest/strong"
	"github.com/claude/liftrecap/internal/models"
)

// ErrNoData is returned when an export has no session with a valid date.
var ErrNoData = errors.New("no valid dates found")

// Report is one generated year recap.
type Report struct {
	ID          uuid.UUID        `json:"id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Ingest      ingest.Result    `json:"ingest"`
	Years       []int            `json:"years"`
	Stats       models.YearStats `json:"stats"`
}

// Service builds reports from CSV exports.
type Service struct {
	provider *strong.Provider
	agg      *analytics.Aggregator
}

// New creates a Service. Nil arguments use defaults.
func New(provider *strong.Provider, agg *analytics.Aggregator) *Service {
	if provider == nil {
		provider = strong.NewProvider(nil, nil)
	}
	if agg == nil {
		agg = analytics.New()
	}
	return &Service{provider: provider, agg: agg}
}

// Build loads the export from r and summarises year. A year of 0 selects the
// latest year present; empty units default to models.DefaultUnits.
func (s *Service) Build(ctx context.Context, r io.Reader, year int, units models.Units) (*Report, error) {
	sessions, result, err := s.provider.Load(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("loading export: %w", err)
	}

	years := analytics.AvailableYears(sessions)
	if year == 0 {
		if len(years) == 0 {
			return nil, ErrNoData
		}
		year = years[0]
	}
	if units == "" {
		units = models.DefaultUnits
	}

	return &Report{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Ingest:      *result,
		Years:       years,
		Stats:       s.agg.Year(sessions, year, units),
	}, nil
}

// Years loads the export from r and lists its years, latest first.
func (s *Service) Years(ctx context.Context, r io.Reader) ([]int, error) {
	sessions, _, err := s.provider.Load(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("loading export: %w", err)
	}
	years := analytics.AvailableYears(sessions)
	if len(years) == 0 {
		return nil, ErrNoData
	}
	return years, nil
}
