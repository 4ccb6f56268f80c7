// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/triagehq/triage/internal/contract"
)

// NewMCPServer initializes and configures the Triage MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, src contract.IssueSource, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Issue Triage Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		src:     src,
		mgr:     mgr,
	}

	// --- 1. Tool: prioritize_issues ---
	s.AddTool(mcp.NewTool("prioritize_issues",
		mcp.WithDescription("Score open GitHub issues and rank them by triage priority."),
		mcp.WithString("repository", mcp.Description("Repository slug in owner/name form (defaults to the configured repository).")),
		mcp.WithString("state", mcp.Description("Issue state to fetch (open, closed, all). Defaults to 'open'."), mcp.Enum("open", "closed", "all")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handlePrioritizeIssues)

	// --- 2. Tool: recommend_issues ---
	s.AddTool(mcp.NewTool("recommend_issues",
		mcp.WithDescription("Rank issues by how well they match an expertise profile."),
		mcp.WithString("repository", mcp.Description("Repository slug in owner/name form.")),
		mcp.WithString("keywords", mcp.Description("Comma-separated expertise keywords. Falls back to the saved profile when omitted.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results.")),
	), h.handleRecommendIssues)

	// --- 3. Tool: analyze_issue ---
	s.AddTool(mcp.NewTool("analyze_issue",
		mcp.WithDescription("Produce the full triage detail for a single issue, including a suggested approach."),
		mcp.WithNumber("number", mcp.Description("The issue number to analyze."), mcp.Required()),
		mcp.WithString("repository", mcp.Description("Repository slug in owner/name form.")),
	), h.handleAnalyzeIssue)

	// --- 4. Tool: stale_issues ---
	s.AddTool(mcp.NewTool("stale_issues",
		mcp.WithDescription("Find open, unassigned issues with no recent activity."),
		mcp.WithString("repository", mcp.Description("Repository slug in owner/name form.")),
		mcp.WithNumber("stale_days", mcp.Description("Inactivity threshold in days. Defaults to the configured threshold.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results.")),
	), h.handleStaleIssues)

	return s
}

// StartMCPServer starts the Triage MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, src contract.IssueSource, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, src, mgr)
	return server.ServeStdio(s)
}
