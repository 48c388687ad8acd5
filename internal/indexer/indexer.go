package indexer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/schollz/progressbar/v3"

	"moddocs/internal/parser"
	"moddocs/internal/storage"
	"moddocs/pkg/types"
)

// ErrRootNotFound is returned when the scan root does not exist
var ErrRootNotFound = errors.New("scan root not found")

// Indexer coordinates the scan pipeline: discover -> parse -> report -> store
type Indexer struct {
	parser  *parser.Parser
	storage storage.Storage // optional, nil disables persistence
}

// Config contains configuration for a scan
type Config struct {
	SourceExt string   // Source file extension (default: ".cs")
	Excludes  []string // Glob patterns for paths to skip, relative to root
	BatchSize int      // Number of files to commit per transaction (default: 100)
	Quiet     bool     // Suppress the progress bar
}

// Statistics contains statistics about a scan operation
type Statistics struct {
	FilesScanned     int
	FilesSkipped     int
	FilesFailed      int
	TypesExtracted   int
	MembersExtracted int
	Duration         time.Duration
	ErrorMessages    []string
}

// New creates a new Indexer instance. Pass nil storage to scan without
// persisting to a database.
func New(store storage.Storage) *Indexer {
	return &Indexer{
		parser:  parser.New(),
		storage: store,
	}
}

// Scan walks the root, parses every source file in lexical path order and
// builds the doc index. Files are parsed strictly sequentially so that the
// resulting index is deterministic for a given tree.
func (idx *Indexer) Scan(ctx context.Context, rootPath string, config *Config) (*types.DocIndex, *Statistics, error) {
	if config == nil {
		config = &Config{}
	}
	if config.SourceExt == "" {
		config.SourceExt = ".cs"
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}

	info, err := os.Stat(rootPath)
	if err != nil || !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrRootNotFound, rootPath)
	}

	startTime := time.Now()
	stats := &Statistics{
		ErrorMessages: make([]string, 0),
	}

	files, err := idx.discoverFiles(rootPath, config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to discover files: %w", err)
	}

	var bar *progressbar.ProgressBar
	if !config.Quiet {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("Scanning files"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("files/s"),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetWriter(os.Stderr),
		)
	}

	allTypes := make([]types.TypeInfo, 0)
	results := make([]fileResult, 0, len(files))
	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		result, err := idx.parser.ParseFile(filePath)
		if err != nil {
			stats.FilesFailed++
			stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", filePath, err))
			log.Printf("warning: skipping %s: %v", filePath, err)
			if bar != nil {
				_ = bar.Add(1)
			}
			continue
		}

		relFile := filePath
		if rel, relErr := filepath.Rel(rootPath, filePath); relErr == nil {
			relFile = filepath.ToSlash(rel)
		}
		for i := range result.Types {
			result.Types[i].FilePath = relFile
			stats.MembersExtracted += len(result.Types[i].Members)
		}
		allTypes = append(allTypes, result.Types...)
		results = append(results, fileResult{
			absPath: filePath,
			relPath: relFile,
			types:   result.Types,
		})

		stats.FilesScanned++
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	stats.TypesExtracted = len(allTypes)
	index := BuildIndex(allTypes)

	if idx.storage != nil {
		if err := idx.persist(ctx, rootPath, results, config, stats); err != nil {
			return nil, nil, fmt.Errorf("failed to persist scan: %w", err)
		}
	}

	stats.Duration = time.Since(startTime)
	return index, stats, nil
}

// discoverFiles finds all source files under the root in lexical path order
func (idx *Indexer) discoverFiles(rootPath string, config *Config) ([]string, error) {
	globs := make([]glob.Glob, 0, len(config.Excludes))
	for _, pattern := range config.Excludes {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}

	excluded := func(relPath string) bool {
		relPath = filepath.ToSlash(relPath)
		for _, g := range globs {
			if g.Match(relPath) {
				return true
			}
		}
		return false
	}

	var files []string
	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(rootPath, path)
		if relErr != nil {
			return relErr
		}

		if info.IsDir() {
			// Skip hidden directories
			if strings.HasPrefix(info.Name(), ".") && path != rootPath {
				return filepath.SkipDir
			}
			if relPath != "." && excluded(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(path, config.SourceExt) {
			return nil
		}

		if excluded(relPath) {
			return nil
		}

		files = append(files, path)
		return nil
	})

	// filepath.Walk visits entries in lexical order, so files is already
	// sorted by path.
	return files, err
}
