// Package searcher answers type lookup and search queries for the MCP
// server. It is a read-only layer over storage: LookupType resolves one
// type by exact name with its members, SearchTypes runs FTS5 queries over
// type names with optional kind filtering.
package searcher
