package types

// ParseResult represents the output of extracting one C# source file
type ParseResult struct {
	// Types in discovery order
	Types []TypeInfo

	// Errors encountered while reading or scanning the file
	Errors []ParseError
}

// ParseError represents an error that occurred during extraction
type ParseError struct {
	File    string
	Line    int
	Message string
}

// Error implements the error interface
func (pe *ParseError) Error() string {
	return pe.Message
}

// HasErrors returns true if any extraction errors occurred
func (pr *ParseResult) HasErrors() bool {
	return len(pr.Errors) > 0
}

// AddError adds an extraction error to the result
func (pr *ParseResult) AddError(file string, line int, msg string) {
	pr.Errors = append(pr.Errors, ParseError{
		File:    file,
		Line:    line,
		Message: msg,
	})
}

// TotalMembers returns the member count summed across all extracted types
func (pr *ParseResult) TotalMembers() int {
	total := 0
	for i := range pr.Types {
		total += len(pr.Types[i].Members)
	}
	return total
}
