// Package storage provides SQLite-based persistence for extracted docs data.
//
// The storage layer manages:
//   - Scan metadata (one row per scanned installation root)
//   - File information and content hashes
//   - Extracted type declarations
//   - Extracted type members
//   - Full-text search over type names
//
// # Database Schema
//
// Tables:
//   - scans: Scan metadata (root path, totals, index version)
//   - files: File paths and SHA-256 hashes
//   - types: Extracted declarations (class, interface, struct, enum)
//   - members: Extracted members (methods, properties, fields, events, ...)
//   - types_fts: FTS5 full-text search index on type names
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage("moddocs.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	scan := &storage.Scan{RootPath: "/games/mygame", IndexVersion: "1.0.0"}
//	err = db.CreateScan(ctx, scan)
//
// # Transactions
//
// Use transactions for atomic per-file updates:
//
//	tx, err := db.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer tx.Rollback()
//
//	_ = tx.DeleteTypesByFile(ctx, fileID)
//	_ = tx.InsertType(ctx, rec)
//	for i := range members {
//	    _ = tx.InsertMember(ctx, &members[i])
//	}
//
//	if err := tx.Commit(); err != nil {
//	    return err
//	}
//
// # Incremental Updates
//
// Compare file hashes to skip unchanged files:
//
//	stored, err := db.GetFile(ctx, scanID, relPath)
//	if err == nil && stored.ContentHash == currentHash {
//	    return nil // unchanged, skip re-parsing
//	}
//
// # Full-Text Search
//
// Query type names with BM25 ranking:
//
//	results, err := db.SearchTypes(ctx, "Pawn", []string{"class"}, 10)
//	for _, rec := range results {
//	    fmt.Printf("%s %s (%s:%d)\n", rec.Kind, rec.Name, rec.FilePath, rec.Line)
//	}
//
// The FTS index is kept in sync by triggers on the types table.
//
// # Build Tags
//
// The storage package supports two build configurations:
//
// CGO Build (cgosqlite tag):
//
//   - Uses github.com/mattn/go-sqlite3 driver
//
//   - Requires C compiler
//
//     CGO_ENABLED=1 go build -tags "cgosqlite,fts5"
//
// Pure Go Build (default, or purego tag):
//
//   - Uses modernc.org/sqlite driver
//
//   - No C compiler needed
//
//     CGO_ENABLED=0 go build -tags "purego"
package storage
