package types

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberValidate(t *testing.T) {
	m := Member{
		Kind:           MemberField,
		Name:           "_count",
		Signature:      "private readonly int _count;",
		AccessModifier: AccessPrivate,
		Modifiers:      []string{"private", "readonly"},
		ReturnType:     "int",
		Line:           12,
	}
	assert.NoError(t, m.Validate())
}

func TestMemberValidate_InvalidKind(t *testing.T) {
	m := Member{
		Kind:           MemberKind("delegate"),
		Name:           "Handler",
		AccessModifier: AccessPublic,
		Modifiers:      []string{"public"},
		Line:           1,
	}
	assert.Error(t, m.Validate())
}

func TestMemberValidate_ModifierOrder(t *testing.T) {
	m := Member{
		Kind:           MemberMethod,
		Name:           "Tick",
		AccessModifier: AccessPublic,
		Modifiers:      []string{"static", "public"},
		ReturnType:     "void",
		Line:           3,
	}
	assert.Error(t, m.Validate())
}

func TestMemberValidate_ConstructorReturnType(t *testing.T) {
	m := Member{
		Kind:           MemberConstructor,
		Name:           "Pawn",
		AccessModifier: AccessPublic,
		Modifiers:      []string{"public"},
		ReturnType:     "void",
		Line:           5,
	}
	assert.Error(t, m.Validate())
}

func TestTypeInfoValidate(t *testing.T) {
	ti := TypeInfo{
		Name:           "Pawn",
		Kind:           KindClass,
		AccessModifier: AccessPublic,
		Modifiers:      []string{"public"},
		FilePath:       "Verse/Pawn.cs",
		Line:           10,
		Members: []Member{
			{
				Kind:           MemberConstructor,
				Name:           "Pawn",
				AccessModifier: AccessPublic,
				Modifiers:      []string{"public"},
				Line:           12,
			},
		},
	}
	assert.NoError(t, ti.Validate())
	assert.Equal(t, 1, ti.MemberCount())
}

func TestTypeInfoValidate_InvalidKind(t *testing.T) {
	ti := TypeInfo{
		Name:           "Thing",
		Kind:           TypeKind("record"),
		AccessModifier: AccessPublic,
		Modifiers:      []string{"public"},
		FilePath:       "Thing.cs",
		Line:           1,
	}
	assert.Error(t, ti.Validate())
}

func TestValidateAccessModifier(t *testing.T) {
	for _, a := range []AccessModifier{AccessPublic, AccessInternal, AccessProtected, AccessPrivate} {
		assert.NoError(t, ValidateAccessModifier(a))
	}
	assert.Error(t, ValidateAccessModifier(AccessModifier("friend")))
}

func TestParseResult_Errors(t *testing.T) {
	var pr ParseResult
	assert.False(t, pr.HasErrors())

	pr.AddError("Pawn.cs", 0, "could not read file")
	require.True(t, pr.HasErrors())
	assert.Equal(t, "could not read file", pr.Errors[0].Error())
}

func TestLoadDocIndex(t *testing.T) {
	tmpDir := t.TempDir()
	indexPath := filepath.Join(tmpDir, "docs_index.json")

	index := DocIndex{
		GeneratedAt:  "2024-01-01T00:00:00Z",
		TotalTypes:   2,
		TotalMembers: 0,
		TypeCounts:   map[string]int{"class": 2},
		Types: []TypeEntry{
			{Name: "Pawn", Kind: "class", AccessModifier: "public", Modifiers: []string{"public"}, File: "Verse/Pawn.cs", Line: 1},
			{Name: "Thing", Kind: "class", AccessModifier: "public", Modifiers: []string{"public"}, File: "Verse/Thing.cs", Line: 1},
		},
	}

	data, err := json.Marshal(index)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(indexPath, data, 0644))

	loaded, err := LoadDocIndex(indexPath)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.TotalTypes)

	classes := loaded.ClassFiles()
	assert.Equal(t, "Verse/Pawn.cs", classes["Pawn"])
	assert.Equal(t, "Verse/Thing.cs", classes["Thing"])
}

func TestLoadDocIndex_Missing(t *testing.T) {
	_, err := LoadDocIndex("/nonexistent/docs_index.json")
	assert.Error(t, err)
}

func TestClassFiles_FirstOccurrenceWins(t *testing.T) {
	index := DocIndex{
		Types: []TypeEntry{
			{Name: "Comp", File: "A.cs"},
			{Name: "Comp", File: "B.cs"},
			{Name: "", File: "C.cs"},
		},
	}
	classes := index.ClassFiles()
	assert.Equal(t, "A.cs", classes["Comp"])
	assert.Len(t, classes, 1)
}
