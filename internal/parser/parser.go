package parser

import (
	"fmt"
	"os"
	"strings"

	"moddocs/pkg/types"
)

// Parser recovers type and member declarations from C# source text using
// line-oriented regex heuristics and a brace-depth counter. It is a single
// forward pass with no backtracking across lines: each line is stripped of
// its // comment tail, trimmed, tested against the type-declaration patterns
// in fixed priority order (class, interface, struct, enum), and only then
// against the member patterns applicable to the currently open type.
//
// Exactly one type can be open at a time. A nested type declaration silently
// replaces the current type; the outer type stops receiving members. This is
// a documented limitation of the heuristic, not a defect to fix.
type Parser struct{}

// New creates a new Parser instance
func New() *Parser {
	return &Parser{}
}

// ParseFile extracts the types declared in a C# source file. A file that
// cannot be read returns an error; the caller decides whether to skip it.
func (p *Parser) ParseFile(filePath string) (*types.ParseResult, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return p.parse(filePath, string(content)), nil
}

// parse runs the line classifier over the file content.
func (p *Parser) parse(filePath, content string) *types.ParseResult {
	result := &types.ParseResult{}

	// Index of the currently open type in result.Types, -1 when none.
	// Held as an index rather than a pointer because appends reallocate.
	current := -1
	braceDepth := 0

	for lineIdx, raw := range strings.Split(content, "\n") {
		lineNum := lineIdx + 1

		stripped := stripComment(raw)
		if stripped == "" {
			// Skipped lines do not update brace depth either; this is a
			// deliberate simplification.
			continue
		}

		braceDepth += strings.Count(stripped, "{") - strings.Count(stripped, "}")

		// Type declarations win over member patterns and consume the line.
		if ti, ok := matchTypeDecl(stripped, filePath, lineNum); ok {
			result.Types = append(result.Types, ti)
			current = len(result.Types) - 1
			continue
		}

		// Member search only inside an open type body.
		if current < 0 || braceDepth <= 0 {
			continue
		}

		owner := &result.Types[current]
		if member, ok := matchMember(stripped, owner, lineNum); ok {
			owner.Members = append(owner.Members, member)
		}
	}

	return result
}

// stripComment removes everything from the first // onward and trims the
// surrounding whitespace. Block comments and // inside string literals are
// not handled; the heuristic accepts the resulting noise.
func stripComment(line string) string {
	if idx := strings.Index(line, "//"); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}

// matchTypeDecl tests the four type-declaration patterns in priority order.
// Every pattern requires a leading access modifier; `class Foo` alone is
// never a declaration.
func matchTypeDecl(line, filePath string, lineNum int) (types.TypeInfo, bool) {
	if m := classPattern.FindStringSubmatch(line); m != nil {
		return newTypeInfo(types.KindClass, m[3], m[1], m[2], filePath, lineNum), true
	}
	if m := interfacePattern.FindStringSubmatch(line); m != nil {
		return newTypeInfo(types.KindInterface, m[3], m[1], m[2], filePath, lineNum), true
	}
	if m := structPattern.FindStringSubmatch(line); m != nil {
		return newTypeInfo(types.KindStruct, m[3], m[1], m[2], filePath, lineNum), true
	}
	if m := enumPattern.FindStringSubmatch(line); m != nil {
		return newTypeInfo(types.KindEnum, m[2], m[1], "", filePath, lineNum), true
	}
	return types.TypeInfo{}, false
}

// newTypeInfo opens a type record. The modifier run keeps source order, with
// the access modifier always first.
func newTypeInfo(kind types.TypeKind, name, access, modifierRun, filePath string, lineNum int) types.TypeInfo {
	return types.TypeInfo{
		Name:           name,
		Kind:           kind,
		AccessModifier: types.AccessModifier(access),
		Modifiers:      buildModifiers(access, modifierRun),
		FilePath:       filePath,
		Line:           lineNum,
	}
}

// matchMember tests the member patterns applicable to the owner's kind, first
// match wins. Lines matching nothing are ordinary statement code and yield no
// member.
func matchMember(line string, owner *types.TypeInfo, lineNum int) (types.Member, bool) {
	switch owner.Kind {
	case types.KindEnum:
		return matchEnumValue(line, lineNum)
	case types.KindClass, types.KindStruct:
		return matchClassMember(line, owner, lineNum)
	case types.KindInterface:
		return matchInterfaceMember(line, lineNum)
	}
	return types.Member{}, false
}

// matchEnumValue recognizes a bare identifier, optionally `= expr`, inside an
// enum body. Enum values are always recorded as public.
func matchEnumValue(line string, lineNum int) (types.Member, bool) {
	m := enumValuePattern.FindStringSubmatch(line)
	if m == nil {
		return types.Member{}, false
	}
	name := m[1]
	if name == "" || strings.Contains(name, "(") || strings.TrimSpace(name) == "" {
		return types.Member{}, false
	}
	return types.Member{
		Kind:           types.MemberEnumValue,
		Name:           name,
		Signature:      line,
		AccessModifier: types.AccessPublic,
		Modifiers:      []string{"public"},
		Line:           lineNum,
	}, true
}

// matchClassMember handles class and struct bodies: constructor, method,
// property, field, event, in that order.
func matchClassMember(line string, owner *types.TypeInfo, lineNum int) (types.Member, bool) {
	// Constructor requires the identifier to equal the enclosing type name;
	// otherwise the line falls through to the method pattern.
	if m := constructorPattern.FindStringSubmatch(line); m != nil && m[3] == owner.Name {
		modifiers := []string{m[1]}
		if m[2] == "static" {
			modifiers = append(modifiers, "static")
		}
		return types.Member{
			Kind:           types.MemberConstructor,
			Name:           owner.Name,
			Signature:      line,
			AccessModifier: types.AccessModifier(m[1]),
			Modifiers:      modifiers,
			Line:           lineNum,
		}, true
	}

	if m := methodPattern.FindStringSubmatch(line); m != nil {
		return newClassMember(types.MemberMethod, m[4], m[1], m[2], m[3], line, lineNum), true
	}

	if m := propertyPattern.FindStringSubmatch(line); m != nil {
		return newClassMember(types.MemberProperty, m[4], m[1], m[2], m[3], line, lineNum), true
	}

	// The field modifier set deliberately excludes const: constant
	// declarations are never recognized as fields.
	if m := fieldPattern.FindStringSubmatch(line); m != nil {
		return newClassMember(types.MemberField, m[4], m[1], m[2], m[3], line, lineNum), true
	}

	if m := eventPattern.FindStringSubmatch(line); m != nil {
		return newClassMember(types.MemberEvent, m[4], m[1], m[2], m[3], line, lineNum), true
	}

	return types.Member{}, false
}

// matchInterfaceMember handles interface bodies: method, property, event. No
// access modifier appears in source; members are implicitly public.
func matchInterfaceMember(line string, lineNum int) (types.Member, bool) {
	if m := interfaceMethodPattern.FindStringSubmatch(line); m != nil {
		return newInterfaceMember(types.MemberMethod, m[2], m[1], line, lineNum), true
	}
	if m := interfacePropertyPattern.FindStringSubmatch(line); m != nil {
		return newInterfaceMember(types.MemberProperty, m[2], m[1], line, lineNum), true
	}
	if m := interfaceEventPattern.FindStringSubmatch(line); m != nil {
		return newInterfaceMember(types.MemberEvent, m[2], m[1], line, lineNum), true
	}
	return types.Member{}, false
}

func newClassMember(kind types.MemberKind, name, access, modifierRun, returnType, line string, lineNum int) types.Member {
	return types.Member{
		Kind:           kind,
		Name:           name,
		Signature:      line,
		AccessModifier: types.AccessModifier(access),
		Modifiers:      buildModifiers(access, modifierRun),
		ReturnType:     returnType,
		Line:           lineNum,
	}
}

func newInterfaceMember(kind types.MemberKind, name, returnType, line string, lineNum int) types.Member {
	return types.Member{
		Kind:           kind,
		Name:           name,
		Signature:      line,
		AccessModifier: types.AccessPublic,
		Modifiers:      []string{"public"},
		ReturnType:     returnType,
		Line:           lineNum,
	}
}

// buildModifiers builds the modifier list: access modifier first, then the
// captured modifier run split into tokens, source order preserved.
func buildModifiers(access, modifierRun string) []string {
	modifiers := []string{access}
	if modifierRun != "" {
		modifiers = append(modifiers, strings.Fields(modifierRun)...)
	}
	return modifiers
}
