package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"moddocs/internal/indexer"
	"moddocs/internal/searcher"
	"moddocs/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "moddocs"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// DBPathEnv overrides the database location
	DBPathEnv = "MODDOCS_DB_PATH"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	storage  storage.Storage
	indexer  *indexer.Indexer
	searcher *searcher.Searcher
	scanLock indexer.ScanLock
}

// NewServer creates a new MCP server instance. An empty dbPath falls back to
// the MODDOCS_DB_PATH environment variable, then to ~/.moddocs/indices.
func NewServer(dbPath string) (*Server, error) {
	if dbPath == "" {
		dbPath = os.Getenv(DBPathEnv)
	}
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".moddocs", "indices")
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dbFile := filepath.Join(dbPath, "moddocs.db")

	store, err := storage.NewSQLiteStorage(dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:      mcpServer,
		storage:  store,
		indexer:  indexer.New(store),
		searcher: searcher.New(store),
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.storage.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	s.mcp.AddTool(scanDocsTool(), s.handleScanDocs)
	s.mcp.AddTool(lookupTypeTool(), s.handleLookupType)
	s.mcp.AddTool(searchTypesTool(), s.handleSearchTypes)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
	return nil
}
