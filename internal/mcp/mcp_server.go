// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the sizewatch MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Sizewatch Compressed Size Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: compare_sizes ---
	s.AddTool(mcp.NewTool("compare_sizes",
		mcp.WithDescription("Compare two size maps (filename to compressed bytes) and render the markdown size report."),
		mcp.WithObject("base_sizes", mcp.Description("Sizes of the old build, e.g. {\"dist/main.js\": 1024}."), mcp.Required()),
		mcp.WithObject("head_sizes", mcp.Description("Sizes of the new build, same shape as base_sizes."), mcp.Required()),
		mcp.WithString("strip_hash", mcp.Description("Regular expression matching content hashes to strip from filenames.")),
		mcp.WithNumber("minimum_change_threshold", mcp.Description("Changes smaller than this many bytes count as unchanged.")),
		mcp.WithBoolean("show_total", mcp.Description("Include the total size change lines.")),
		mcp.WithBoolean("collapse_unchanged", mcp.Description("Move unchanged files into a collapsed section.")),
		mcp.WithBoolean("omit_unchanged", mcp.Description("Leave unchanged files out of the report.")),
		mcp.WithString("order_by", mcp.Description("Row order as Column:direction, e.g. 'Change:desc'. Columns: Filename, Size, Change.")),
	), h.handleCompareSizes)

	// --- 2. Tool: collect_sizes ---
	s.AddTool(mcp.NewTool("collect_sizes",
		mcp.WithDescription("Measure the compressed size of every build output under a directory."),
		mcp.WithString("path", mcp.Description("Directory to scan (defaults to the configured working directory).")),
		mcp.WithString("pattern", mcp.Description("Glob of files to include, e.g. '**/dist/**/*.js'.")),
		mcp.WithString("exclude", mcp.Description("Glob of files to leave out.")),
		mcp.WithString("compression", mcp.Description("Compression used for measuring."), mcp.Enum("gzip", "brotli", "zstd", "lz4", "none")),
	), h.handleCollectSizes)

	return s
}

// StartMCPServer starts the sizewatch MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, version string) error {
	s := NewMCPServer(baseCfg, version)
	return server.ServeStdio(s)
}
