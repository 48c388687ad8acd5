package types

import "errors"

// TypeKind represents the kind of declared C# type
type TypeKind string

const (
	KindClass     TypeKind = "class"
	KindInterface TypeKind = "interface"
	KindStruct    TypeKind = "struct"
	KindEnum      TypeKind = "enum"
)

// TypeInfo represents one declared class, interface, struct, or enum.
//
// Members hold discovery order; the presentation sort into (kind, name) order
// happens when the doc index is built, not during extraction.
type TypeInfo struct {
	Name           string
	Kind           TypeKind
	AccessModifier AccessModifier
	Modifiers      []string // access modifier first, then declaration-order modifiers
	FilePath       string
	Line           int // declaration line, 1-based
	Members        []Member
}

// ValidateKind checks if the type kind is valid
func (t *TypeInfo) ValidateKind() error {
	switch t.Kind {
	case KindClass, KindInterface, KindStruct, KindEnum:
		return nil
	default:
		return errors.New("invalid type kind")
	}
}

// Validate performs comprehensive validation of the type and its members
func (t *TypeInfo) Validate() error {
	if t.Name == "" {
		return errors.New("type name is required")
	}

	if err := t.ValidateKind(); err != nil {
		return err
	}

	if err := ValidateAccessModifier(t.AccessModifier); err != nil {
		return err
	}

	if t.FilePath == "" {
		return errors.New("file path is required")
	}

	if t.Line <= 0 {
		return errors.New("invalid position: line number must be positive")
	}

	for i := range t.Members {
		if err := t.Members[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

// MemberCount returns the number of members discovered for this type
func (t *TypeInfo) MemberCount() int {
	return len(t.Members)
}
