package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"moddocs/internal/config"
	"moddocs/internal/indexer"
	"moddocs/internal/storage"
)

var (
	scanRoot     string
	scanOutput   string
	scanDB       string
	scanExcludes []string
	scanQuiet    bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a source tree and write the docs index",
	Long: `Scan recursively discovers C# source files under the root, extracts type
and member declarations with the line-oriented structural parser, and writes
the docs index JSON document.

Files are parsed strictly sequentially in lexical path order, so repeated
scans of an unchanged tree produce identical output apart from the
generated_at timestamp.

Examples:
  # Scan the current directory
  moddocs scan

  # Scan a game installation
  moddocs scan --root /games/mygame --output /tmp/docs_index.json

  # Skip build output directories
  moddocs scan --root . --exclude 'obj/**' --exclude 'bin/**'

  # Also persist results to a SQLite database for the MCP server
  moddocs scan --root . --db ~/.moddocs/indices/moddocs.db
`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVar(&scanRoot, "root", ".", "Source root to scan")
	scanCmd.Flags().StringVar(&scanOutput, "output", "", "Output file (default docs_index.json inside the root)")
	scanCmd.Flags().StringVar(&scanDB, "db", "", "SQLite database to persist results to (optional)")
	scanCmd.Flags().StringArrayVar(&scanExcludes, "exclude", nil, "Glob pattern to skip, relative to root (repeatable)")
	scanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "Disable progress bars and non-error output")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, err := config.Load(scanRoot)
	if err != nil {
		return err
	}
	if len(scanExcludes) > 0 {
		cfg.Scan.Excludes = scanExcludes
	}

	var store storage.Storage
	if scanDB != "" {
		s, err := storage.NewSQLiteStorage(scanDB)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() { _ = s.Close() }()
		store = s
	}

	idx := indexer.New(store)
	index, stats, err := idx.Scan(ctx, scanRoot, &indexer.Config{
		SourceExt: cfg.Scan.SourceExt,
		Excludes:  cfg.Scan.Excludes,
		BatchSize: cfg.Scan.BatchSize,
		Quiet:     scanQuiet,
	})
	if err != nil {
		return err
	}

	output := scanOutput
	if output == "" {
		output = filepath.Join(scanRoot, indexer.DefaultIndexFile)
	}
	if err := indexer.WriteIndex(index, output); err != nil {
		return err
	}

	if !scanQuiet {
		fmt.Printf("\nScanned %d files (%d failed) in %v\n", stats.FilesScanned, stats.FilesFailed, stats.Duration.Round(time.Millisecond))
		fmt.Printf("Extracted %d types, %d members\n", stats.TypesExtracted, stats.MembersExtracted)
		kinds := make([]string, 0, len(index.TypeCounts))
		for kind := range index.TypeCounts {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			fmt.Printf("  %s: %d\n", kind, index.TypeCounts[kind])
		}
		fmt.Printf("Index written to %s\n", output)
	}
	if verbose {
		for _, msg := range stats.ErrorMessages {
			log.Println(msg)
		}
	}

	return nil
}

// signalContext returns a context cancelled on SIGINT/SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()
	return ctx, cancel
}
