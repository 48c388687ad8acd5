// Package parser extracts type and member declarations from C# source files
// using line-oriented regex heuristics.
//
// This is deliberately not a real C# parser. Each file is processed in a
// single pass, one line at a time: the // comment tail is stripped, the line
// is trimmed, a running brace-depth counter is updated from the literal { and
// } characters, and the line is classified as a type declaration, a member
// declaration, or plain code. Brace depth greater than zero is the sole
// signal that a type body is open.
//
// # Basic Usage
//
//	p := parser.New()
//	result, err := p.ParseFile("/path/to/Pawn.cs")
//	if err != nil {
//	    log.Printf("Warning: could not read file: %v", err)
//	}
//
//	for _, t := range result.Types {
//	    fmt.Printf("%s %s with %d members\n", t.Kind, t.Name, len(t.Members))
//	}
//
// # Recognition Policy
//
// Type declarations (class, interface, struct, enum) require an explicit
// access modifier; `class Foo` without one is never recognized. Members
// recognized inside class and struct bodies are constructors (identifier must
// equal the enclosing type name), methods, properties, fields, and events,
// all requiring an access modifier. Interface members carry no modifier in
// source and are recorded as implicitly public. Enum bodies yield enum
// values, also forced public. Constant declarations are excluded by
// construction: const is absent from the field modifier set.
//
// # Known Limitations
//
// These are inherent to the heuristic and preserved on purpose:
//
//   - Nested type declarations are not supported. An inner declaration
//     replaces the current type; members that follow attach to it and the
//     outer type is never re-opened.
//   - Multi-line signatures, generic parameters spanning lines, and block
//     comments are not tokenized correctly.
//   - Braces inside string or char literals and inside /* */ comments
//     desynchronize the depth counter. Downstream consumers depend on the
//     current output shape, so this is not compensated for.
package parser
