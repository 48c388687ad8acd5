package indexer

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"moddocs/pkg/types"
)

// DefaultIndexFile is the filename the scan command writes inside the root
const DefaultIndexFile = "docs_index.json"

// BuildIndex assembles the doc index document from extracted types. Types
// are ordered by (file, name) and members within a type by (kind, name) so
// repeated scans of the same tree produce identical output.
func BuildIndex(extracted []types.TypeInfo) *types.DocIndex {
	sorted := make([]types.TypeInfo, len(extracted))
	copy(sorted, extracted)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].FilePath != sorted[j].FilePath {
			return sorted[i].FilePath < sorted[j].FilePath
		}
		return sorted[i].Name < sorted[j].Name
	})

	index := &types.DocIndex{
		GeneratedAt: time.Now().Format(time.RFC3339),
		TotalTypes:  len(sorted),
		TypeCounts:  make(map[string]int),
		Types:       make([]types.TypeEntry, 0, len(sorted)),
	}

	for i := range sorted {
		t := &sorted[i]
		index.TypeCounts[string(t.Kind)]++
		index.TotalMembers += len(t.Members)
		index.Types = append(index.Types, buildTypeEntry(t))
	}

	return index
}

func buildTypeEntry(t *types.TypeInfo) types.TypeEntry {
	members := make([]types.Member, len(t.Members))
	copy(members, t.Members)
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Kind != members[j].Kind {
			return members[i].Kind < members[j].Kind
		}
		return members[i].Name < members[j].Name
	})

	entry := types.TypeEntry{
		Name:           t.Name,
		Kind:           string(t.Kind),
		AccessModifier: string(t.AccessModifier),
		Modifiers:      t.Modifiers,
		File:           t.FilePath,
		Line:           t.Line,
		MemberCount:    len(members),
		Members:        make([]types.MemberEntry, 0, len(members)),
	}

	for i := range members {
		m := &members[i]
		me := types.MemberEntry{
			Kind:           string(m.Kind),
			Name:           m.Name,
			AccessModifier: string(m.AccessModifier),
			Modifiers:      m.Modifiers,
			Signature:      m.Signature,
			Line:           m.Line,
		}
		if m.ReturnType != "" {
			rt := m.ReturnType
			me.ReturnType = &rt
		}
		entry.Members = append(entry.Members, me)
	}

	return entry
}

// WriteIndex writes the doc index to disk as indented JSON
func WriteIndex(index *types.DocIndex, path string) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode doc index: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write doc index: %w", err)
	}
	return nil
}
