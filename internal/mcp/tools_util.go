// tools_util.go centralises typed parameter extraction from MCP's
// generic argument map. Extraction is permissive: an LLM omitting an
// optional parameter or sending the wrong JSON type gets the default,
// not a type error it cannot act on.
package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

func getInt(req mcp.CallToolRequest, name string, def int) int {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	// JSON numbers decode as float64.
	if v, ok := args[name].(float64); ok {
		return int(v)
	}
	return def
}

// getFloat returns nil when the parameter is absent, which the search
// filters use to mean "unconstrained".
func getFloat(req mcp.CallToolRequest, name string) *float64 {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	if v, ok := args[name].(float64); ok {
		return &v
	}
	return nil
}

func getStrings(req mcp.CallToolRequest, name string) []string {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	arr, ok := args[name].([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// jsonResult wraps a value as a pretty-printed JSON text result. LLMs
// parse indented JSON more reliably than compact output.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
