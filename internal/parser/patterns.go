package parser

import "regexp"

// Recognition patterns for the line classifier. Dispatch order matters:
// overlapping patterns (method, property, and field share an
// access-modifier-then-type-then-identifier prefix) rely on the fixed
// evaluation order in matchClassMember for disambiguation.
//
// Type tokens are simplified: a single identifier with optional [] and ?
// suffixes. Generic parameters, qualified names, and multi-line signatures
// are outside what the heuristic attempts.

const (
	accessModifier = `(public|internal|protected|private)`
	identifier     = `[A-Za-z_]\w*`
	typeToken      = `[A-Za-z_]\w*(?:\[\])?\??`
)

// Type declarations. All four require a leading access modifier. The
// optional-modifier run is captured whole and split later so source order
// survives.
var (
	classPattern = regexp.MustCompile(
		`^` + accessModifier + `\s+` +
			`((?:(?:static|sealed|abstract|partial)\s+)*)` +
			`class\s+(` + identifier + `)`)

	interfacePattern = regexp.MustCompile(
		`^` + accessModifier + `\s+` +
			`((?:partial\s+)*)` +
			`interface\s+(` + identifier + `)`)

	structPattern = regexp.MustCompile(
		`^` + accessModifier + `\s+` +
			`((?:(?:partial|readonly)\s+)*)` +
			`struct\s+(` + identifier + `)`)

	enumPattern = regexp.MustCompile(
		`^` + accessModifier + `\s+enum\s+(` + identifier + `)`)
)

// Class and struct members. All require a leading access modifier.
var (
	constructorPattern = regexp.MustCompile(
		`^` + accessModifier + `\s+` +
			`(?:(static)\s+)?` +
			`(` + identifier + `)\s*\(`)

	methodPattern = regexp.MustCompile(
		`^` + accessModifier + `\s+` +
			`((?:(?:static|virtual|override|abstract|sealed|new|async)\s+)*)` +
			`(` + typeToken + `)\s+` +
			`(` + identifier + `)\s*\(`)

	propertyPattern = regexp.MustCompile(
		`^` + accessModifier + `\s+` +
			`((?:(?:static|virtual|override|abstract|sealed|new)\s+)*)` +
			`(` + typeToken + `)\s+` +
			`(` + identifier + `)\s*\{`)

	// No const in the modifier set: constant declarations never match.
	fieldPattern = regexp.MustCompile(
		`^` + accessModifier + `\s+` +
			`((?:(?:static|readonly|volatile)\s+)*)` +
			`(` + typeToken + `)\s+` +
			`(` + identifier + `)\s*[=;]`)

	eventPattern = regexp.MustCompile(
		`^` + accessModifier + `\s+` +
			`((?:(?:static|virtual|override|abstract|sealed|new)\s+)*)` +
			`event\s+` +
			`(` + typeToken + `)\s+` +
			`(` + identifier + `)`)
)

// Enum values: a bare identifier, optional initializer, optional trailing
// comma or closing brace.
var enumValuePattern = regexp.MustCompile(
	`^(` + identifier + `)\s*(?:=\s*[^,}]+)?\s*[,}]?`)

// Interface members carry no access modifier in source; they are implicitly
// public.
var (
	interfaceMethodPattern = regexp.MustCompile(
		`^(` + typeToken + `)\s+(` + identifier + `)\s*\(`)

	interfacePropertyPattern = regexp.MustCompile(
		`^(` + typeToken + `)\s+(` + identifier + `)\s*\{`)

	interfaceEventPattern = regexp.MustCompile(
		`^event\s+(` + typeToken + `)\s+(` + identifier + `)`)
)
