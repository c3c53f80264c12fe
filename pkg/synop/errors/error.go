package errors

import (
	"fmt"
	"strings"
)

// ErrorType categorizes the type of error encountered while decoding a report.
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"   // Empty or unusable raw input
	ErrorTypeGrammar ErrorType = "grammar" // Section/group ordering violation
	ErrorTypeDecode  ErrorType = "decode"  // Group token does not fit its expected shape
	ErrorTypeTable   ErrorType = "table"   // Code-table lookup failure
	ErrorTypeIO      ErrorType = "io"      // File I/O error
)

// Position identifies a group token within a report.
// Index is the 0-based position of the token; Section names the section
// the token was found in (empty before the mandatory section starts).
type Position struct {
	Index   int
	Section string
}

// String returns a human-readable representation of the position.
// Format: "group 4" or "group 12 (section_3)".
func (p Position) String() string {
	if p.Section != "" {
		return fmt.Sprintf("group %d (%s)", p.Index, p.Section)
	}
	return fmt.Sprintf("group %d", p.Index)
}

// IsValid returns true if the position refers to an actual token.
func (p Position) IsValid() bool {
	return p.Index >= 0
}

// Error represents a rich decoding error with position and group context.
type Error struct {
	Type       ErrorType // Category of error
	Message    string    // Error message
	Position   Position  // Offending token position
	Group      string    // Group kind, when known (e.g. "air_temperature")
	Raw        string    // Raw token text, when known
	Suggestion string    // Suggested fix (optional)
}

// Error implements the error interface.
// It returns a formatted error message with position and group context.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))

	if e.Group != "" {
		sb.WriteString(fmt.Sprintf(" (group kind %q)", e.Group))
	}
	if e.Raw != "" {
		sb.WriteString(fmt.Sprintf(" (token %q)", e.Raw))
	}
	if e.Position.IsValid() {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Position))
	}
	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// ErrorList represents a collection of errors accumulated during a decode.
// It allows reporting multiple structural problems instead of failing on
// the first one.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{Errors: make([]*Error, 0)}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(errType ErrorType, message string, pos Position) {
	el.Add(&Error{Type: errType, Message: message, Position: pos})
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
// It returns all errors formatted as a single string.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("found %d error(s):\n", el.Count()))
	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("\nerror %d:\n%s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}
