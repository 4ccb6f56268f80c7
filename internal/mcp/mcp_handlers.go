package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/triagehq/triage/core"
	"github.com/triagehq/triage/internal/contract"
	"github.com/triagehq/triage/internal/profile"
	"github.com/triagehq/triage/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	src     contract.IssueSource
	mgr     contract.StoreManager
}

func (h *toolHandler) handlePrioritizeIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if r := request.GetString("repository", ""); r != "" {
		cfg.Repository = r
	}
	if s := request.GetString("state", ""); s != "" {
		cfg.IssueState = s
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	results, err := core.GetPrioritizedResults(ctx, cfg, h.src, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("triage failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRecommendIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if r := request.GetString("repository", ""); r != "" {
		cfg.Repository = r
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	// Keywords from the request win; otherwise fall back to the saved profile.
	var p schema.ExpertiseProfile
	if kw := request.GetString("keywords", ""); kw != "" {
		p.Keywords = schema.NormalizeTerms(strings.Split(kw, ","))
	} else {
		var err error
		p, err = profile.Load(cfg.ProfilePath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load expertise profile: %v", err)), nil
		}
	}
	if p.IsEmpty() {
		return mcp.NewToolResultError("no expertise keywords provided and no saved profile found"), nil
	}

	results, err := core.GetRecommendResults(ctx, cfg, h.src, h.mgr, p)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recommendation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAnalyzeIssue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if r := request.GetString("repository", ""); r != "" {
		cfg.Repository = r
	}

	number := request.GetInt("number", 0)
	if number <= 0 {
		return mcp.NewToolResultError("number must be a positive issue number"), nil
	}

	result, approach, err := core.GetAnalyzeResult(ctx, cfg, h.src, h.mgr, number)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	payload := struct {
		schema.ScoredIssue
		SuggestedApproach string `json:"suggested_approach"`
	}{
		ScoredIssue:       *result,
		SuggestedApproach: approach,
	}

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleStaleIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if r := request.GetString("repository", ""); r != "" {
		cfg.Repository = r
	}
	if d := request.GetInt("stale_days", 0); d > 0 {
		cfg.StaleDays = d
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	results, err := core.GetStaleResults(ctx, cfg, h.src, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stale detection failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
