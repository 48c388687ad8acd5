package searcher

import (
	"context"
	"crypto/sha256"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moddocs/internal/storage"
)

func setupSearcher(t *testing.T) (*Searcher, *storage.SQLiteStorage) {
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	scan := &storage.Scan{RootPath: "/games/test", IndexVersion: "1.0.0"}
	require.NoError(t, store.CreateScan(ctx, scan))

	file := &storage.File{
		ScanID:      scan.ID,
		FilePath:    "Source/Pawn.cs",
		ContentHash: sha256.Sum256([]byte("fixture")),
		ModTime:     time.Now(),
		SizeBytes:   64,
	}
	require.NoError(t, store.UpsertFile(ctx, file))

	pawn := &storage.TypeRecord{
		FileID:         file.ID,
		Name:           "Pawn",
		Kind:           "class",
		AccessModifier: "public",
		Modifiers:      "public abstract",
		Line:           10,
	}
	require.NoError(t, store.InsertType(ctx, pawn))

	rt := "void"
	require.NoError(t, store.InsertMember(ctx, &storage.MemberRecord{
		TypeID:         pawn.ID,
		Kind:           "method",
		Name:           "Tick",
		AccessModifier: "public",
		Modifiers:      "public override",
		ReturnType:     &rt,
		Signature:      "public override void Tick()",
		Line:           14,
	}))

	generator := &storage.TypeRecord{
		FileID:         file.ID,
		Name:           "PawnGenerator",
		Kind:           "class",
		AccessModifier: "public",
		Modifiers:      "public static",
		Line:           40,
	}
	require.NoError(t, store.InsertType(ctx, generator))

	exposable := &storage.TypeRecord{
		FileID:         file.ID,
		Name:           "IExposable",
		Kind:           "interface",
		AccessModifier: "public",
		Modifiers:      "public",
		Line:           60,
	}
	require.NoError(t, store.InsertType(ctx, exposable))

	return New(store), store
}

func TestLookupType(t *testing.T) {
	s, _ := setupSearcher(t)

	result, err := s.LookupType(context.Background(), "Pawn")
	require.NoError(t, err)
	assert.Equal(t, "class", result.Kind)
	assert.Equal(t, "Source/Pawn.cs", result.File)
	assert.Equal(t, []string{"public", "abstract"}, result.Modifiers)
	require.Len(t, result.Members, 1)
	assert.Equal(t, "Tick", result.Members[0].Name)
	require.NotNil(t, result.Members[0].ReturnType)
	assert.Equal(t, "void", *result.Members[0].ReturnType)
}

func TestLookupType_NotFound(t *testing.T) {
	s, _ := setupSearcher(t)

	_, err := s.LookupType(context.Background(), "Missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSearchTypes(t *testing.T) {
	s, _ := setupSearcher(t)
	ctx := context.Background()

	results, err := s.SearchTypes(ctx, "Pawn*", nil, 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = s.SearchTypes(ctx, "Pawn*", []string{"interface"}, 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = s.SearchTypes(ctx, "IExposable", []string{"interface"}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Members)
}

func TestSearchTypes_EmptyQuery(t *testing.T) {
	s, _ := setupSearcher(t)

	_, err := s.SearchTypes(context.Background(), "   ", nil, 10)
	assert.Error(t, err)
}
