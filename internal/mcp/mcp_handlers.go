package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/huangsam/sizewatch/core"
	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/internal/sizes"
	"github.com/huangsam/sizewatch/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleCompareSizes(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	baseSizes, err := sizeMapArg(request, "base_sizes")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	headSizes, err := sizeMapArg(request, "head_sizes")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := h.baseCfg.Clone()
	if p := request.GetString("strip_hash", ""); p != "" {
		re, err := regexp.Compile(p)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid strip_hash pattern: %v", err)), nil
		}
		cfg.StripHash = re
	}

	opts := cfg.Report
	threshold := request.GetInt("minimum_change_threshold", int(opts.MinimumChangeThreshold))
	if threshold < 0 {
		return mcp.NewToolResultError("minimum_change_threshold cannot be negative"), nil
	}
	opts.MinimumChangeThreshold = int64(threshold)
	opts.ShowTotal = request.GetBool("show_total", opts.ShowTotal)
	opts.CollapseUnchanged = request.GetBool("collapse_unchanged", opts.CollapseUnchanged)
	opts.OmitUnchanged = request.GetBool("omit_unchanged", opts.OmitUnchanged)
	if raw := request.GetString("order_by", ""); raw != "" {
		spec, err := schema.ParseSortSpec(raw)
		if err != nil {
			contract.LogWarn("order_by ignored, using "+schema.DefaultSortSpec.String(), err)
		}
		opts.SortBy = spec
	}
	cfg.Report = opts

	report := core.CompareSizeMaps(baseSizes, headSizes, cfg)
	return mcp.NewToolResultText(report.Markdown), nil
}

func (h *toolHandler) handleCollectSizes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("path", ""); p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid path: %v", err)), nil
		}
		cfg.WorkDir = abs
	}
	if p := request.GetString("pattern", ""); p != "" {
		cfg.Pattern = p
	}
	if e := request.GetString("exclude", ""); e != "" {
		cfg.Exclude = e
	}
	if c := request.GetString("compression", ""); c != "" {
		mode := schema.CompressionMode(c)
		if _, ok := schema.ValidCompressionModes[mode]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid compression '%s'", c)), nil
		}
		cfg.Compression = mode
	}

	result, err := core.ExecuteSizes(core.WithSuppressHeader(ctx), cfg, sizes.NewCollector(cfg))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("size collection failed: %v", err)), nil
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode sizes: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// sizeMapArg reads a size map argument given either as a JSON object or as its string encoding.
func sizeMapArg(request mcp.CallToolRequest, name string) (schema.SizeMap, error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%s is required", name)
	}

	var data []byte
	switch v := raw.(type) {
	case string:
		data = []byte(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
		data = encoded
	}

	var result schema.SizeMap
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("invalid %s: must map filenames to byte counts: %w", name, err)
	}
	for filename, size := range result {
		if size < 0 {
			return nil, fmt.Errorf("invalid %s: negative size for %s", name, filename)
		}
	}
	if result == nil {
		result = schema.SizeMap{}
	}
	return result, nil
}
