package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when trying to create a duplicate entity
	ErrAlreadyExists = errors.New("already exists")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite benefits from single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Apply migrations
	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx, storage: s}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// querier returns the transaction querier
func (t *sqliteTx) querier() querier {
	return t.tx
}

// querier returns the DB querier
func (s *SQLiteStorage) querier() querier {
	return s.db
}

// Scan operations

// createScanWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) createScanWithQuerier(ctx context.Context, q querier, scan *Scan) error {
	query := `
		INSERT INTO scans (root_path, index_version, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`
	now := time.Now()
	result, err := q.ExecContext(ctx, query, scan.RootPath, scan.IndexVersion, now, now)
	if err != nil {
		return fmt.Errorf("failed to create scan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	scan.ID = id
	scan.CreatedAt = now
	scan.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) CreateScan(ctx context.Context, scan *Scan) error {
	return s.createScanWithQuerier(ctx, s.querier(), scan)
}

// getScanWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getScanWithQuerier(ctx context.Context, q querier, rootPath string) (*Scan, error) {
	query := `
		SELECT id, root_path, total_types, total_members, index_version,
		       last_scanned_at, created_at, updated_at
		FROM scans
		WHERE root_path = ?
	`
	var scan Scan
	var lastScannedAt sql.NullTime
	err := q.QueryRowContext(ctx, query, rootPath).Scan(
		&scan.ID, &scan.RootPath, &scan.TotalTypes, &scan.TotalMembers,
		&scan.IndexVersion, &lastScannedAt, &scan.CreatedAt, &scan.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if lastScannedAt.Valid {
		scan.LastScannedAt = lastScannedAt.Time
	}
	return &scan, nil
}

func (s *SQLiteStorage) GetScan(ctx context.Context, rootPath string) (*Scan, error) {
	return s.getScanWithQuerier(ctx, s.querier(), rootPath)
}

// updateScanWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) updateScanWithQuerier(ctx context.Context, q querier, scan *Scan) error {
	query := `
		UPDATE scans
		SET total_types = ?, total_members = ?, index_version = ?,
		    last_scanned_at = ?, updated_at = ?
		WHERE id = ?
	`
	now := time.Now()
	_, err := q.ExecContext(ctx, query,
		scan.TotalTypes, scan.TotalMembers, scan.IndexVersion,
		scan.LastScannedAt, now, scan.ID)
	if err != nil {
		return fmt.Errorf("failed to update scan: %w", err)
	}
	scan.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpdateScan(ctx context.Context, scan *Scan) error {
	return s.updateScanWithQuerier(ctx, s.querier(), scan)
}

// File operations

// upsertFileWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) upsertFileWithQuerier(ctx context.Context, q querier, file *File) error {
	query := `
		INSERT INTO files (scan_id, file_path, content_hash, mod_time, size_bytes, last_scanned_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(scan_id, file_path) DO UPDATE SET
			content_hash = excluded.content_hash,
			mod_time = excluded.mod_time,
			size_bytes = excluded.size_bytes,
			last_scanned_at = excluded.last_scanned_at,
			updated_at = excluded.updated_at
		RETURNING id
	`
	now := time.Now()
	err := q.QueryRowContext(ctx, query,
		file.ScanID, file.FilePath, file.ContentHash[:],
		file.ModTime, file.SizeBytes, now, now, now).Scan(&file.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert file: %w", err)
	}

	file.LastScannedAt = now
	file.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpsertFile(ctx context.Context, file *File) error {
	return s.upsertFileWithQuerier(ctx, s.querier(), file)
}

// getFileWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getFileWithQuerier(ctx context.Context, q querier, scanID int64, filePath string) (*File, error) {
	query := `
		SELECT id, scan_id, file_path, content_hash, mod_time, size_bytes,
		       last_scanned_at, created_at, updated_at
		FROM files
		WHERE scan_id = ? AND file_path = ?
	`
	var file File
	var hash []byte
	var lastScannedAt sql.NullTime
	err := q.QueryRowContext(ctx, query, scanID, filePath).Scan(
		&file.ID, &file.ScanID, &file.FilePath, &hash,
		&file.ModTime, &file.SizeBytes, &lastScannedAt,
		&file.CreatedAt, &file.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	copy(file.ContentHash[:], hash)
	if lastScannedAt.Valid {
		file.LastScannedAt = lastScannedAt.Time
	}
	return &file, nil
}

func (s *SQLiteStorage) GetFile(ctx context.Context, scanID int64, filePath string) (*File, error) {
	return s.getFileWithQuerier(ctx, s.querier(), scanID, filePath)
}

// listFilesWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) listFilesWithQuerier(ctx context.Context, q querier, scanID int64) ([]*File, error) {
	query := `
		SELECT id, scan_id, file_path, content_hash, mod_time, size_bytes,
		       last_scanned_at, created_at, updated_at
		FROM files
		WHERE scan_id = ?
		ORDER BY file_path
	`
	rows, err := q.QueryContext(ctx, query, scanID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	files := make([]*File, 0)
	for rows.Next() {
		var file File
		var hash []byte
		var lastScannedAt sql.NullTime

		err := rows.Scan(
			&file.ID, &file.ScanID, &file.FilePath, &hash,
			&file.ModTime, &file.SizeBytes, &lastScannedAt,
			&file.CreatedAt, &file.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		copy(file.ContentHash[:], hash)
		if lastScannedAt.Valid {
			file.LastScannedAt = lastScannedAt.Time
		}

		files = append(files, &file)
	}
	return files, rows.Err()
}

func (s *SQLiteStorage) ListFiles(ctx context.Context, scanID int64) ([]*File, error) {
	return s.listFilesWithQuerier(ctx, s.querier(), scanID)
}

// deleteFileWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) deleteFileWithQuerier(ctx context.Context, q querier, fileID int64) error {
	query := `DELETE FROM files WHERE id = ?`
	_, err := q.ExecContext(ctx, query, fileID)
	return err
}

func (s *SQLiteStorage) DeleteFile(ctx context.Context, fileID int64) error {
	return s.deleteFileWithQuerier(ctx, s.querier(), fileID)
}

// Type operations

// insertTypeWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) insertTypeWithQuerier(ctx context.Context, q querier, rec *TypeRecord) error {
	query := `
		INSERT INTO types (file_id, name, kind, access_modifier, modifiers, line, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(file_id, name, line) DO UPDATE SET
			kind = excluded.kind,
			access_modifier = excluded.access_modifier,
			modifiers = excluded.modifiers
		RETURNING id, created_at
	`
	now := time.Now()
	err := q.QueryRowContext(ctx, query,
		rec.FileID, rec.Name, rec.Kind, rec.AccessModifier,
		rec.Modifiers, rec.Line, now,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert type: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) InsertType(ctx context.Context, rec *TypeRecord) error {
	return s.insertTypeWithQuerier(ctx, s.querier(), rec)
}

// getTypeByNameWithQuerier is the internal implementation that uses a querier.
// When the same name is declared in multiple files the lowest file path wins.
func (s *SQLiteStorage) getTypeByNameWithQuerier(ctx context.Context, q querier, name string) (*TypeRecord, error) {
	query := `
		SELECT t.id, t.file_id, t.name, t.kind, t.access_modifier, t.modifiers,
		       t.line, f.file_path, t.created_at
		FROM types t
		JOIN files f ON t.file_id = f.id
		WHERE t.name = ?
		ORDER BY f.file_path, t.line
		LIMIT 1
	`
	var rec TypeRecord
	var modifiers sql.NullString
	err := q.QueryRowContext(ctx, query, name).Scan(
		&rec.ID, &rec.FileID, &rec.Name, &rec.Kind, &rec.AccessModifier,
		&modifiers, &rec.Line, &rec.FilePath, &rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if modifiers.Valid {
		rec.Modifiers = modifiers.String
	}
	return &rec, nil
}

func (s *SQLiteStorage) GetTypeByName(ctx context.Context, name string) (*TypeRecord, error) {
	return s.getTypeByNameWithQuerier(ctx, s.querier(), name)
}

// listTypesByFileWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) listTypesByFileWithQuerier(ctx context.Context, q querier, fileID int64) ([]*TypeRecord, error) {
	query := `
		SELECT t.id, t.file_id, t.name, t.kind, t.access_modifier, t.modifiers,
		       t.line, f.file_path, t.created_at
		FROM types t
		JOIN files f ON t.file_id = f.id
		WHERE t.file_id = ?
		ORDER BY t.line
	`
	rows, err := q.QueryContext(ctx, query, fileID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanTypeRows(rows)
}

func (s *SQLiteStorage) ListTypesByFile(ctx context.Context, fileID int64) ([]*TypeRecord, error) {
	return s.listTypesByFileWithQuerier(ctx, s.querier(), fileID)
}

// deleteTypesByFileWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) deleteTypesByFileWithQuerier(ctx context.Context, q querier, fileID int64) error {
	query := `DELETE FROM types WHERE file_id = ?`
	_, err := q.ExecContext(ctx, query, fileID)
	return err
}

func (s *SQLiteStorage) DeleteTypesByFile(ctx context.Context, fileID int64) error {
	return s.deleteTypesByFileWithQuerier(ctx, s.querier(), fileID)
}

// searchTypesWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) searchTypesWithQuerier(ctx context.Context, q querier, query string, kinds []string, limit int) ([]*TypeRecord, error) {
	// Note: In FTS5, 'rank' is a built-in virtual column representing BM25 relevance score.
	// It should be accessed without table qualification when used in ORDER BY.
	// Lower rank values indicate better matches (negative values in FTS5).
	sqlQuery := `
		SELECT t.id, t.file_id, t.name, t.kind, t.access_modifier, t.modifiers,
		       t.line, f.file_path, t.created_at
		FROM types t
		JOIN types_fts fts ON t.id = fts.rowid
		JOIN files f ON t.file_id = f.id
		WHERE types_fts MATCH ?
	`
	args := []interface{}{query}
	if len(kinds) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(kinds)), ", ")
		sqlQuery += " AND t.kind IN (" + placeholders + ")"
		for _, k := range kinds {
			args = append(args, k)
		}
	}
	sqlQuery += " ORDER BY rank LIMIT ?"
	args = append(args, limit)

	rows, err := q.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanTypeRows(rows)
}

func (s *SQLiteStorage) SearchTypes(ctx context.Context, query string, kinds []string, limit int) ([]*TypeRecord, error) {
	return s.searchTypesWithQuerier(ctx, s.querier(), query, kinds, limit)
}

// scanTypeRows reads TypeRecord rows produced by the shared select column list
func scanTypeRows(rows *sql.Rows) ([]*TypeRecord, error) {
	records := make([]*TypeRecord, 0)
	for rows.Next() {
		var rec TypeRecord
		var modifiers sql.NullString
		err := rows.Scan(
			&rec.ID, &rec.FileID, &rec.Name, &rec.Kind, &rec.AccessModifier,
			&modifiers, &rec.Line, &rec.FilePath, &rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if modifiers.Valid {
			rec.Modifiers = modifiers.String
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// Member operations

// insertMemberWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) insertMemberWithQuerier(ctx context.Context, q querier, rec *MemberRecord) error {
	query := `
		INSERT INTO members (type_id, kind, name, access_modifier, modifiers, return_type, signature, line, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := q.ExecContext(ctx, query,
		rec.TypeID, rec.Kind, rec.Name, rec.AccessModifier,
		rec.Modifiers, rec.ReturnType, rec.Signature, rec.Line, now)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = id
	rec.CreatedAt = now
	return nil
}

func (s *SQLiteStorage) InsertMember(ctx context.Context, rec *MemberRecord) error {
	return s.insertMemberWithQuerier(ctx, s.querier(), rec)
}

// listMembersByTypeWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) listMembersByTypeWithQuerier(ctx context.Context, q querier, typeID int64) ([]*MemberRecord, error) {
	query := `
		SELECT id, type_id, kind, name, access_modifier, modifiers, return_type, signature, line, created_at
		FROM members
		WHERE type_id = ?
		ORDER BY line
	`
	rows, err := q.QueryContext(ctx, query, typeID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := make([]*MemberRecord, 0)
	for rows.Next() {
		var rec MemberRecord
		var modifiers, returnType, signature sql.NullString
		err := rows.Scan(
			&rec.ID, &rec.TypeID, &rec.Kind, &rec.Name, &rec.AccessModifier,
			&modifiers, &returnType, &signature, &rec.Line, &rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if modifiers.Valid {
			rec.Modifiers = modifiers.String
		}
		if returnType.Valid {
			rec.ReturnType = &returnType.String
		}
		if signature.Valid {
			rec.Signature = signature.String
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStorage) ListMembersByType(ctx context.Context, typeID int64) ([]*MemberRecord, error) {
	return s.listMembersByTypeWithQuerier(ctx, s.querier(), typeID)
}

// Status operations

func (s *SQLiteStorage) GetStatus(ctx context.Context, scanID int64) (*ScanStatus, error) {
	// Get scan info
	scan, err := s.getScanByID(ctx, scanID)
	if err != nil {
		return nil, err
	}

	status := &ScanStatus{
		Scan:          scan,
		LastScannedAt: scan.LastScannedAt,
	}

	// Count files
	var fileCount int
	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files WHERE scan_id = ?", scanID).Scan(&fileCount)
	if err != nil {
		return nil, err
	}
	status.FilesCount = fileCount

	// Count types
	var typeCount int
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM types t
		JOIN files f ON t.file_id = f.id
		WHERE f.scan_id = ?
	`, scanID).Scan(&typeCount)
	if err != nil {
		return nil, err
	}
	status.TypesCount = typeCount

	// Count members
	var memberCount int
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM members m
		JOIN types t ON m.type_id = t.id
		JOIN files f ON t.file_id = f.id
		WHERE f.scan_id = ?
	`, scanID).Scan(&memberCount)
	if err != nil {
		return nil, err
	}
	status.MembersCount = memberCount

	// Calculate database size
	var pageCount, pageSize int
	err = s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
	if err == nil {
		_ = s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
		status.IndexSizeMB = float64(pageCount*pageSize) / (1024 * 1024)
	}

	// Check health status
	status.Health = HealthStatus{
		DatabaseAccessible: true,
		FTSIndexBuilt:      true, // FTS index is created with migrations
	}

	return status, nil
}

// getScanByID retrieves a scan by ID
func (s *SQLiteStorage) getScanByID(ctx context.Context, scanID int64) (*Scan, error) {
	query := `
		SELECT id, root_path, total_types, total_members, index_version,
		       last_scanned_at, created_at, updated_at
		FROM scans
		WHERE id = ?
	`
	var scan Scan
	var lastScannedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, query, scanID).Scan(
		&scan.ID, &scan.RootPath, &scan.TotalTypes, &scan.TotalMembers,
		&scan.IndexVersion, &lastScannedAt, &scan.CreatedAt, &scan.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if lastScannedAt.Valid {
		scan.LastScannedAt = lastScannedAt.Time
	}
	return &scan, nil
}

// Transaction implementations - delegate to the internal helpers using the
// transaction querier so writes stay inside the transaction.

func (t *sqliteTx) CreateScan(ctx context.Context, scan *Scan) error {
	return t.storage.createScanWithQuerier(ctx, t.querier(), scan)
}

func (t *sqliteTx) GetScan(ctx context.Context, rootPath string) (*Scan, error) {
	return t.storage.getScanWithQuerier(ctx, t.querier(), rootPath)
}

func (t *sqliteTx) UpdateScan(ctx context.Context, scan *Scan) error {
	return t.storage.updateScanWithQuerier(ctx, t.querier(), scan)
}

func (t *sqliteTx) UpsertFile(ctx context.Context, file *File) error {
	return t.storage.upsertFileWithQuerier(ctx, t.querier(), file)
}

func (t *sqliteTx) GetFile(ctx context.Context, scanID int64, filePath string) (*File, error) {
	return t.storage.getFileWithQuerier(ctx, t.querier(), scanID, filePath)
}

func (t *sqliteTx) ListFiles(ctx context.Context, scanID int64) ([]*File, error) {
	return t.storage.listFilesWithQuerier(ctx, t.querier(), scanID)
}

func (t *sqliteTx) DeleteFile(ctx context.Context, fileID int64) error {
	return t.storage.deleteFileWithQuerier(ctx, t.querier(), fileID)
}

func (t *sqliteTx) InsertType(ctx context.Context, rec *TypeRecord) error {
	return t.storage.insertTypeWithQuerier(ctx, t.querier(), rec)
}

func (t *sqliteTx) GetTypeByName(ctx context.Context, name string) (*TypeRecord, error) {
	return t.storage.getTypeByNameWithQuerier(ctx, t.querier(), name)
}

func (t *sqliteTx) ListTypesByFile(ctx context.Context, fileID int64) ([]*TypeRecord, error) {
	return t.storage.listTypesByFileWithQuerier(ctx, t.querier(), fileID)
}

func (t *sqliteTx) DeleteTypesByFile(ctx context.Context, fileID int64) error {
	return t.storage.deleteTypesByFileWithQuerier(ctx, t.querier(), fileID)
}

func (t *sqliteTx) SearchTypes(ctx context.Context, query string, kinds []string, limit int) ([]*TypeRecord, error) {
	return t.storage.searchTypesWithQuerier(ctx, t.querier(), query, kinds, limit)
}

func (t *sqliteTx) InsertMember(ctx context.Context, rec *MemberRecord) error {
	return t.storage.insertMemberWithQuerier(ctx, t.querier(), rec)
}

func (t *sqliteTx) ListMembersByType(ctx context.Context, typeID int64) ([]*MemberRecord, error) {
	return t.storage.listMembersByTypeWithQuerier(ctx, t.querier(), typeID)
}

func (t *sqliteTx) GetStatus(ctx context.Context, scanID int64) (*ScanStatus, error) {
	return t.storage.GetStatus(ctx, scanID)
}

func (t *sqliteTx) Close() error {
	// Transactions don't close the database
	return nil
}

func (t *sqliteTx) BeginTx(ctx context.Context) (Tx, error) {
	return nil, errors.New("nested transactions not supported")
}
