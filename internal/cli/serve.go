package cli

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"moddocs/internal/mcp"
	"moddocs/internal/storage"
)

var serveDBPath string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Long: `Serve starts the Model Context Protocol server, exposing the scan_docs,
lookup_type, search_types and get_status tools to MCP clients over stdio.

The database location defaults to ~/.moddocs/indices and can be overridden
with --db or the MODDOCS_DB_PATH environment variable.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "Database directory (default ~/.moddocs/indices)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Log to stderr: stdout is reserved for the MCP protocol
	log.SetOutput(os.Stderr)
	log.Printf("moddocs MCP server v%s starting...", mcp.ServerVersion)
	log.Printf("Build Mode: %s, Driver: %s", storage.BuildMode, storage.DriverName)

	server, err := mcp.NewServer(serveDBPath)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	log.Println("MCP server ready, listening on stdio...")
	return server.Serve(ctx)
}
