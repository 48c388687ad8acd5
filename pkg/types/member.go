package types

import "errors"

// MemberKind represents the kind of declared type member
type MemberKind string

const (
	MemberConstructor MemberKind = "constructor"
	MemberMethod      MemberKind = "method"
	MemberProperty    MemberKind = "property"
	MemberField       MemberKind = "field"
	MemberEvent       MemberKind = "event"
	MemberEnumValue   MemberKind = "enum_value"
)

// AccessModifier represents a C# access modifier token
type AccessModifier string

const (
	AccessPublic    AccessModifier = "public"
	AccessInternal  AccessModifier = "internal"
	AccessProtected AccessModifier = "protected"
	AccessPrivate   AccessModifier = "private"
)

// Member represents one declared class/interface/struct/enum member.
//
// A Member belongs to exactly one TypeInfo. It is created when the extractor
// recognizes a member line inside an open type body and is never mutated
// afterward. Interface members and enum values carry AccessPublic even though
// no modifier token appears in source.
type Member struct {
	Kind           MemberKind
	Name           string
	Signature      string // comment-stripped, trimmed source line
	AccessModifier AccessModifier
	Modifiers      []string // access modifier first, then source-order modifiers
	ReturnType     string   // empty for constructors and enum values
	Line           int      // 1-based source line
}

// ValidateKind checks if the member kind is valid
func (m *Member) ValidateKind() error {
	switch m.Kind {
	case MemberConstructor, MemberMethod, MemberProperty, MemberField, MemberEvent, MemberEnumValue:
		return nil
	default:
		return errors.New("invalid member kind")
	}
}

// Validate performs comprehensive validation of the member
func (m *Member) Validate() error {
	if m.Name == "" {
		return errors.New("member name is required")
	}

	if err := m.ValidateKind(); err != nil {
		return err
	}

	if err := ValidateAccessModifier(m.AccessModifier); err != nil {
		return err
	}

	if len(m.Modifiers) == 0 || m.Modifiers[0] != string(m.AccessModifier) {
		return errors.New("modifiers must start with the access modifier")
	}

	// Constructors and enum values never carry a return type
	if (m.Kind == MemberConstructor || m.Kind == MemberEnumValue) && m.ReturnType != "" {
		return errors.New("constructors and enum values cannot have a return type")
	}

	if m.Line <= 0 {
		return errors.New("invalid position: line number must be positive")
	}

	return nil
}

// ValidateAccessModifier checks if the access modifier is one of the four
// recognized tokens
func ValidateAccessModifier(a AccessModifier) error {
	switch a {
	case AccessPublic, AccessInternal, AccessProtected, AccessPrivate:
		return nil
	default:
		return errors.New("invalid access modifier")
	}
}
