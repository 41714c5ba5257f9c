package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prepdeck/prepdeck/internal/store"
)

func registerStatsResource(s *server.MCPServer, st store.Store) {
	resource := mcp.NewResource(
		"prepdeck://stats",
		"Session Statistics",
		mcp.WithResourceDescription("Totals, success rate, per-strategy counts, and average questions per successful session."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if st == nil {
			return nil, fmt.Errorf("session log is not configured")
		}

		dbMu.Lock()
		defer dbMu.Unlock()

		stats, err := st.Stats(ctx)
		if err != nil {
			return nil, fmt.Errorf("querying stats resource: %w", err)
		}

		payload := map[string]any{
			"session_count":   stats.SessionCount,
			"success_count":   stats.SuccessCount,
			"success_rate":    stats.SuccessRate,
			"strategy_counts": stats.StrategyCounts,
			"avg_questions":   stats.AvgQuestions,
			"db_size_bytes":   stats.DBSizeBytes,
		}
		data, _ := json.MarshalIndent(payload, "", "  ")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})
}

func registerRecentResource(s *server.MCPServer, st store.Store) {
	resource := mcp.NewResource(
		"prepdeck://sessions/recent",
		"Recent Sessions",
		mcp.WithResourceDescription("The 10 most recent parse and generate sessions."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if st == nil {
			return nil, fmt.Errorf("session log is not configured")
		}

		dbMu.Lock()
		defer dbMu.Unlock()

		sessions, err := st.ListSessions(ctx, store.ListOpts{Limit: 10})
		if err != nil {
			return nil, fmt.Errorf("querying recent sessions resource: %w", err)
		}

		payload := map[string]any{
			"sessions": sessionSummaries(sessions),
			"count":    len(sessions),
		}
		data, _ := json.MarshalIndent(payload, "", "  ")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})
}
