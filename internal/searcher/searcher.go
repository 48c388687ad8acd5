package searcher

import (
	"context"
	"fmt"
	"strings"

	"moddocs/internal/storage"
)

// Searcher answers lookup and search queries against stored scan results
type Searcher struct {
	storage storage.Storage
}

// TypeResult is one type returned by a query, with its members attached
type TypeResult struct {
	Name           string         `json:"name"`
	Kind           string         `json:"kind"`
	AccessModifier string         `json:"access_modifier"`
	Modifiers      []string       `json:"modifiers"`
	File           string         `json:"file"`
	Line           int            `json:"line"`
	Members        []MemberResult `json:"members,omitempty"`
}

// MemberResult is one member of a returned type
type MemberResult struct {
	Kind           string   `json:"kind"`
	Name           string   `json:"name"`
	AccessModifier string   `json:"access_modifier"`
	Modifiers      []string `json:"modifiers"`
	ReturnType     *string  `json:"return_type"`
	Signature      string   `json:"signature"`
	Line           int      `json:"line"`
}

// New creates a Searcher over the given storage
func New(store storage.Storage) *Searcher {
	return &Searcher{storage: store}
}

// LookupType returns the named type with all its members. Returns
// storage.ErrNotFound when no type with that name is stored.
func (s *Searcher) LookupType(ctx context.Context, name string) (*TypeResult, error) {
	rec, err := s.storage.GetTypeByName(ctx, name)
	if err != nil {
		return nil, err
	}

	result := fromRecord(rec)
	members, err := s.storage.ListMembersByType(ctx, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	for _, m := range members {
		result.Members = append(result.Members, MemberResult{
			Kind:           m.Kind,
			Name:           m.Name,
			AccessModifier: m.AccessModifier,
			Modifiers:      m.ModifierList(),
			ReturnType:     m.ReturnType,
			Signature:      m.Signature,
			Line:           m.Line,
		})
	}
	return result, nil
}

// SearchTypes runs a full-text query over type names, optionally filtered by
// kind. Results are ranked by relevance and do not include members.
func (s *Searcher) SearchTypes(ctx context.Context, query string, kinds []string, limit int) ([]*TypeResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if limit <= 0 {
		limit = 20
	}

	records, err := s.storage.SearchTypes(ctx, query, kinds, limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]*TypeResult, 0, len(records))
	for _, rec := range records {
		results = append(results, fromRecord(rec))
	}
	return results, nil
}

func fromRecord(rec *storage.TypeRecord) *TypeResult {
	return &TypeResult{
		Name:           rec.Name,
		Kind:           rec.Kind,
		AccessModifier: rec.AccessModifier,
		Modifiers:      rec.ModifierList(),
		File:           rec.FilePath,
		Line:           rec.Line,
	}
}
