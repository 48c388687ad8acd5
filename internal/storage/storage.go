package storage

import (
	"context"
	"strings"
	"time"

	"moddocs/pkg/types"
)

// Storage defines the interface for persisting and querying the docs index
type Storage interface {
	// Scan operations
	CreateScan(ctx context.Context, scan *Scan) error
	GetScan(ctx context.Context, rootPath string) (*Scan, error)
	UpdateScan(ctx context.Context, scan *Scan) error

	// File operations
	UpsertFile(ctx context.Context, file *File) error
	GetFile(ctx context.Context, scanID int64, filePath string) (*File, error)
	ListFiles(ctx context.Context, scanID int64) ([]*File, error)
	DeleteFile(ctx context.Context, fileID int64) error

	// Type operations
	InsertType(ctx context.Context, rec *TypeRecord) error
	GetTypeByName(ctx context.Context, name string) (*TypeRecord, error)
	ListTypesByFile(ctx context.Context, fileID int64) ([]*TypeRecord, error)
	DeleteTypesByFile(ctx context.Context, fileID int64) error
	SearchTypes(ctx context.Context, query string, kinds []string, limit int) ([]*TypeRecord, error)

	// Member operations
	InsertMember(ctx context.Context, rec *MemberRecord) error
	ListMembersByType(ctx context.Context, typeID int64) ([]*MemberRecord, error)

	// Status operations
	GetStatus(ctx context.Context, scanID int64) (*ScanStatus, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage // Embed Storage interface for transaction operations
}

// Scan represents one indexed installation root
type Scan struct {
	ID            int64
	RootPath      string
	TotalTypes    int
	TotalMembers  int
	IndexVersion  string
	LastScannedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// File represents a tracked C# source file
type File struct {
	ID            int64
	ScanID        int64
	FilePath      string // Relative to the scan root
	ContentHash   [32]byte
	ModTime       time.Time
	SizeBytes     int64
	LastScannedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TypeRecord represents an extracted type declaration. FilePath is populated
// by read queries via a join against files and ignored on insert.
type TypeRecord struct {
	ID             int64
	FileID         int64
	Name           string
	Kind           string
	AccessModifier string
	Modifiers      string // space-joined, access modifier first
	Line           int
	FilePath       string
	CreatedAt      time.Time
}

// MemberRecord represents an extracted type member
type MemberRecord struct {
	ID             int64
	TypeID         int64
	Kind           string
	Name           string
	AccessModifier string
	Modifiers      string  // space-joined, access modifier first
	ReturnType     *string // nil for constructors and enum values
	Signature      string
	Line           int
	CreatedAt      time.Time
}

// ScanStatus contains statistics about an indexed root
type ScanStatus struct {
	Scan          *Scan
	FilesCount    int
	TypesCount    int
	MembersCount  int
	IndexSizeMB   float64
	LastScannedAt time.Time
	Health        HealthStatus
}

// HealthStatus represents the health of the index
type HealthStatus struct {
	DatabaseAccessible bool
	FTSIndexBuilt      bool
}

// ModifierList splits the stored modifier string back into tokens
func (r *TypeRecord) ModifierList() []string {
	return strings.Fields(r.Modifiers)
}

// ModifierList splits the stored modifier string back into tokens
func (r *MemberRecord) ModifierList() []string {
	return strings.Fields(r.Modifiers)
}

// FromTypeInfo converts a parsed TypeInfo to a TypeRecord
func FromTypeInfo(t *types.TypeInfo, fileID int64) *TypeRecord {
	return &TypeRecord{
		FileID:         fileID,
		Name:           t.Name,
		Kind:           string(t.Kind),
		AccessModifier: string(t.AccessModifier),
		Modifiers:      strings.Join(t.Modifiers, " "),
		Line:           t.Line,
	}
}

// FromMember converts a parsed Member to a MemberRecord
func FromMember(m *types.Member, typeID int64) *MemberRecord {
	rec := &MemberRecord{
		TypeID:         typeID,
		Kind:           string(m.Kind),
		Name:           m.Name,
		AccessModifier: string(m.AccessModifier),
		Modifiers:      strings.Join(m.Modifiers, " "),
		Signature:      m.Signature,
		Line:           m.Line,
	}
	if m.ReturnType != "" {
		rt := m.ReturnType
		rec.ReturnType = &rt
	}
	return rec
}
