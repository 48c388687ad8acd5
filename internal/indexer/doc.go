// Package indexer coordinates the end-to-end scan pipeline for game source trees.
//
// The indexer orchestrates file discovery, structural parsing, doc index
// assembly, and optional database persistence.
//
// # Basic Usage
//
//	idx := indexer.New(nil) // nil storage: report-only scan
//
//	index, stats, err := idx.Scan(ctx, "/games/mygame", &indexer.Config{
//	    SourceExt: ".cs",
//	    Excludes:  []string{"obj/**", "bin/**"},
//	})
//
//	fmt.Printf("Scanned %d files in %v\n", stats.FilesScanned, stats.Duration)
//
// # Scan Pipeline
//
// The scan executes a multi-stage pipeline:
//
//  1. Discovery: Walk the root, collect source files, apply exclusion globs
//  2. Parse: Extract type declarations and members, file by file
//  3. Report: Assemble the doc index with deterministic ordering
//  4. Store: Optionally persist to SQLite in batched transactions
//
// Parsing is strictly sequential in lexical path order. For a given source
// tree two scans produce byte-identical indexes apart from the timestamp.
//
// # Incremental Persistence
//
// When a storage backend is attached, unchanged files are skipped using
// SHA-256 content hashing:
//
//	stored, err := db.GetFile(ctx, scanID, relPath)
//	if err == nil && stored.ContentHash == currentHash {
//	    skip(file) // unchanged, keep existing rows
//	}
//
// Changed files have their old type rows deleted before the fresh
// extraction is inserted, all within a per-batch transaction.
//
// # Error Handling
//
// Per-file read errors are non-fatal: the file is skipped, a warning is
// logged, and the scan continues. Only discovery and storage failures abort
// the scan.
//
//	index, stats, err := idx.Scan(ctx, root, cfg)
//	if stats.FilesFailed > 0 {
//	    for _, msg := range stats.ErrorMessages {
//	        log.Println(msg)
//	    }
//	}
package indexer
