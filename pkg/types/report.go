package types

import (
	"encoding/json"
	"fmt"
	"os"
)

// DocIndex is the JSON document produced by the scan command. It is the sole
// interface the linkers consume: they read types[].name and types[].file and
// never re-parse structure.
type DocIndex struct {
	GeneratedAt  string         `json:"generated_at"`
	TotalTypes   int            `json:"total_types"`
	TotalMembers int            `json:"total_members"`
	TypeCounts   map[string]int `json:"type_counts"`
	Types        []TypeEntry    `json:"types"`
}

// TypeEntry is the wire form of one extracted type
type TypeEntry struct {
	Name           string        `json:"name"`
	Kind           string        `json:"kind"`
	AccessModifier string        `json:"access_modifier"`
	Modifiers      []string      `json:"modifiers"`
	File           string        `json:"file"`
	Line           int           `json:"line"`
	MemberCount    int           `json:"member_count"`
	Members        []MemberEntry `json:"members"`
}

// MemberEntry is the wire form of one extracted member. ReturnType is null
// for constructors and enum values.
type MemberEntry struct {
	Kind           string   `json:"kind"`
	Name           string   `json:"name"`
	AccessModifier string   `json:"access_modifier"`
	Modifiers      []string `json:"modifiers"`
	ReturnType     *string  `json:"return_type"`
	Signature      string   `json:"signature"`
	Line           int      `json:"line"`
}

// LoadDocIndex reads a doc index JSON document from disk
func LoadDocIndex(path string) (*DocIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read doc index: %w", err)
	}

	var index DocIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to decode doc index: %w", err)
	}

	return &index, nil
}

// ClassFiles returns the name -> file mapping the linkers depend on. When a
// type name appears in multiple files the first occurrence in index order
// wins.
func (d *DocIndex) ClassFiles() map[string]string {
	classes := make(map[string]string, len(d.Types))
	for i := range d.Types {
		t := &d.Types[i]
		if t.Name == "" || t.File == "" {
			continue
		}
		if _, ok := classes[t.Name]; !ok {
			classes[t.Name] = t.File
		}
	}
	return classes
}
