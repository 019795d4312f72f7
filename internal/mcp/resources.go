package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) latestRecap(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rep, err := h.src.Report(ctx, 0, h.units)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(rep)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
