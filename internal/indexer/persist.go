package indexer

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"time"

	"moddocs/internal/storage"
	"moddocs/pkg/types"
)

// fileResult holds the parse output for one scanned file
type fileResult struct {
	absPath string
	relPath string
	types   []types.TypeInfo
}

// persist writes scan results to storage. Files are committed in batches and
// unchanged files (matching content hash) are skipped.
func (idx *Indexer) persist(ctx context.Context, rootPath string, results []fileResult, config *Config, stats *Statistics) error {
	scan, err := idx.getOrCreateScan(ctx, rootPath)
	if err != nil {
		return fmt.Errorf("failed to get or create scan: %w", err)
	}

	for i := 0; i < len(results); i += config.BatchSize {
		end := i + config.BatchSize
		if end > len(results) {
			end = len(results)
		}
		if err := idx.persistBatch(ctx, scan, results[i:end], stats); err != nil {
			return err
		}
	}

	return idx.updateScanStats(ctx, scan)
}

// persistBatch stores one batch of files within a single transaction
func (idx *Indexer) persistBatch(ctx context.Context, scan *storage.Scan, batch []fileResult, stats *Statistics) error {
	tx, err := idx.storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range batch {
		if err := idx.persistFile(ctx, tx, scan, &batch[i], stats); err != nil {
			return fmt.Errorf("failed to persist %s: %w", batch[i].relPath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// persistFile stores one file's extracted types, replacing any stale rows
func (idx *Indexer) persistFile(ctx context.Context, store storage.Storage, scan *storage.Scan, res *fileResult, stats *Statistics) error {
	hash, modTime, sizeBytes, err := computeFileHash(res.absPath)
	if err != nil {
		return err
	}

	existing, err := store.GetFile(ctx, scan.ID, res.relPath)
	if err == nil && existing.ContentHash == hash {
		// File unchanged, keep existing rows
		stats.FilesSkipped++
		return nil
	}
	if err != nil && err != storage.ErrNotFound {
		return err
	}

	file := &storage.File{
		ScanID:      scan.ID,
		FilePath:    res.relPath,
		ContentHash: hash,
		ModTime:     modTime,
		SizeBytes:   sizeBytes,
	}
	if err := store.UpsertFile(ctx, file); err != nil {
		return err
	}

	// Replace stale rows before inserting the fresh extraction
	if err := store.DeleteTypesByFile(ctx, file.ID); err != nil {
		return fmt.Errorf("failed to delete old types: %w", err)
	}

	for i := range res.types {
		t := &res.types[i]
		rec := storage.FromTypeInfo(t, file.ID)
		if err := store.InsertType(ctx, rec); err != nil {
			return err
		}
		for j := range t.Members {
			mrec := storage.FromMember(&t.Members[j], rec.ID)
			if err := store.InsertMember(ctx, mrec); err != nil {
				return err
			}
		}
	}

	return nil
}

// getOrCreateScan retrieves an existing scan row or creates a new one
func (idx *Indexer) getOrCreateScan(ctx context.Context, rootPath string) (*storage.Scan, error) {
	scan, err := idx.storage.GetScan(ctx, rootPath)
	if err == nil {
		return scan, nil
	}
	if err != storage.ErrNotFound {
		return nil, err
	}

	scan = &storage.Scan{
		RootPath:     rootPath,
		IndexVersion: storage.CurrentSchemaVersion,
	}
	if err := idx.storage.CreateScan(ctx, scan); err != nil {
		return nil, err
	}
	return scan, nil
}

// updateScanStats refreshes the scan row's totals from stored rows
func (idx *Indexer) updateScanStats(ctx context.Context, scan *storage.Scan) error {
	status, err := idx.storage.GetStatus(ctx, scan.ID)
	if err != nil {
		return err
	}

	scan.TotalTypes = status.TypesCount
	scan.TotalMembers = status.MembersCount
	scan.LastScannedAt = time.Now()

	return idx.storage.UpdateScan(ctx, scan)
}

// computeFileHash computes SHA-256 hash of a file
func computeFileHash(filePath string) ([32]byte, time.Time, int64, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return [32]byte{}, time.Time{}, 0, err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return [32]byte{}, time.Time{}, 0, err
	}

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return [32]byte{}, time.Time{}, 0, err
	}

	var result [32]byte
	copy(result[:], hash.Sum(nil))

	return result, info.ModTime(), info.Size(), nil
}
