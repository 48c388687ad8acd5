package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// scanDocsTool returns the tool definition for scan_docs
func scanDocsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "scan_docs",
		Description: "Scan a game source tree and index its type declarations",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the source root (must contain source files)",
				},
				"source_ext": map[string]interface{}{
					"type":        "string",
					"description": "Source file extension to scan",
					"default":     ".cs",
				},
				"excludes": map[string]interface{}{
					"type":        "array",
					"description": "Glob patterns for paths to skip (e.g. 'obj/**')",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
			},
			Required: []string{"path"},
		},
	}
}

// lookupTypeTool returns the tool definition for lookup_type
func lookupTypeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "lookup_type",
		Description: "Look up an indexed type by exact name, including its members",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Exact type name (e.g. 'Pawn')",
				},
			},
			Required: []string{"name"},
		},
	}
}

// searchTypesTool returns the tool definition for search_types
func searchTypesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_types",
		Description: "Full-text search over indexed type names",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "FTS5 query over type names (prefix queries like 'Pawn*' supported)",
				},
				"kinds": map[string]interface{}{
					"type":        "array",
					"description": "Restrict results to these kinds",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"class", "interface", "struct", "enum"},
					},
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
			},
			Required: []string{"query"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Query scan status and statistics for a source root",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the source root",
				},
			},
			Required: []string{"path"},
		},
	}
}
