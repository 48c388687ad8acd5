// Package cli wires the moddocs commands: scan, xmllinks, translations,
// serve and version. Each command file owns its flags and delegates the
// actual work to internal/indexer, internal/linker or internal/mcp.
package cli
