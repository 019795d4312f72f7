package strong

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/liftrecap/internal/ingest"
	"github.com/claude/liftrecap/internal/models"
)

// Provider loads Strong CSV exports into sessions.
type Provider struct {
	builder *Builder
	log     *slog.Logger
}

// NewProvider creates a Strong ingest provider.
func NewProvider(builder *Builder, log *slog.Logger) *Provider {
	if builder == nil {
		builder = NewBuilder(nil, nil)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Provider{builder: builder, log: log}
}

// Load parses a CSV export and builds date-sorted sessions from it.
func (p *Provider) Load(ctx context.Context, r io.Reader) ([]models.WorkoutSession, *ingest.Result, error) {
	rows, dropped, err := parseRows(r, p.log)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	sessions := p.builder.Build(rows)

	result := &ingest.Result{
		RowsReceived:  len(rows) + dropped,
		RowsDropped:   dropped,
		SessionsBuilt: len(sessions),
	}
	for _, s := range sessions {
		result.SetsBuilt += len(s.Sets)
	}
	if dropped > 0 {
		result.Message = fmt.Sprintf("dropped %d of %d rows (missing date or workout name, or malformed)",
			dropped, result.RowsReceived)
	}

	p.log.Info("loaded workout export",
		"rows", result.RowsReceived,
		"dropped", result.RowsDropped,
		"sessions", result.SessionsBuilt,
		"sets", result.SetsBuilt,
	)
	return sessions, result, nil
}
