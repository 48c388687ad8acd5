// Package types defines the shared data model for the moddocs toolchain.
//
// The model mirrors what the structural extractor recovers from C# source
// text: TypeInfo records for class/interface/struct/enum declarations, each
// holding Member records for constructors, methods, properties, fields,
// events, and enum values. DocIndex is the JSON wire form of the full index;
// it is the only contract between the scan command and the two linker
// commands.
//
// Types here carry no behavior beyond validation and wire conversion so they
// can be imported by every internal package without cycles.
package types
