// Package mcp implements the Model Context Protocol (MCP) server for moddocs.
//
// The MCP server exposes four tools to AI coding assistants:
//   - scan_docs: Scan a game source tree and index its type declarations
//   - lookup_type: Resolve one indexed type by exact name, with members
//   - search_types: Full-text search over indexed type names
//   - get_status: Check scan status and statistics for a root
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server communicates with MCP clients via standard input/output.
//
// # Basic Usage
//
// The MCP server is typically started via the serve command:
//
//	moddocs serve
//
// The database location defaults to ~/.moddocs/indices and can be overridden
// with the --db flag or the MODDOCS_DB_PATH environment variable.
//
// # Error Codes
//
// Tool failures use JSON-RPC error codes:
//   - -32602 invalid parameters
//   - -32603 internal error
//   - -32001 root contains no source files
//   - -32002 a scan is already running
//   - -32003 root not scanned / type not indexed
//   - -32004 empty query
//
// Only one scan_docs invocation runs at a time; concurrent requests are
// rejected with -32002 rather than queued.
package mcp
