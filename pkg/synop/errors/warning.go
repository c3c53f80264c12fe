package errors

import (
	"fmt"
	"strings"
)

// WarningType categorizes recoverable decoding conditions.
type WarningType string

const (
	// WarningTypeTable marks a sub-field code with no table entry.
	// The field decodes to null and decoding continues, since unknown
	// or reserved codes are expected as the WMO tables evolve.
	WarningTypeTable WarningType = "table-lookup"
	// WarningTypeUnrecognizedGroup marks a group inside an optional
	// section that matches no known sub-grammar. The group is skipped.
	WarningTypeUnrecognizedGroup WarningType = "unrecognized-group"
)

// Warning represents a recoverable decoding condition. Warnings are
// accumulated alongside the partially decoded report rather than
// aborting the decode.
type Warning struct {
	Type     WarningType
	Message  string
	Position Position
}

// String returns a formatted warning message.
func (w *Warning) String() string {
	if w.Position.IsValid() {
		return fmt.Sprintf("[%s] %s\n  --> %s", w.Type, w.Message, w.Position)
	}
	return fmt.Sprintf("[%s] %s", w.Type, w.Message)
}

// WarningList accumulates warnings emitted during a single decode.
type WarningList struct {
	Warnings []*Warning
}

// NewWarningList creates a new empty warning list.
func NewWarningList() *WarningList {
	return &WarningList{Warnings: make([]*Warning, 0)}
}

// Add appends a warning to the list.
func (wl *WarningList) Add(w *Warning) {
	wl.Warnings = append(wl.Warnings, w)
}

// AddWarning creates and adds a new warning with the given parameters.
func (wl *WarningList) AddWarning(warnType WarningType, message string, pos Position) {
	wl.Add(&Warning{Type: warnType, Message: message, Position: pos})
}

// HasWarnings returns true if any warnings were recorded.
func (wl *WarningList) HasWarnings() bool {
	return len(wl.Warnings) > 0
}

// Count returns the number of recorded warnings.
func (wl *WarningList) Count() int {
	return len(wl.Warnings)
}

// ByType returns all warnings of the given type.
func (wl *WarningList) ByType(warnType WarningType) []*Warning {
	var result []*Warning
	for _, w := range wl.Warnings {
		if w.Type == warnType {
			result = append(result, w)
		}
	}
	return result
}

// String returns all warnings formatted as a single string.
func (wl *WarningList) String() string {
	var sb strings.Builder
	for i, w := range wl.Warnings {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(w.String())
	}
	return sb.String()
}
