// Package errors provides rich error reporting for SYNOP decoding.
//
// Two severities exist. Errors are fatal: they abort the decode of the
// report and carry the position of the offending group.
//
//	Error: a single error with type, message, position, and optional
//	group kind, raw token, and suggestion
//
//	ErrorList: accumulates multiple errors during one decode
//
// Warnings are recoverable: they are attached to the still-produced
// partial report and never abort the decode on their own.
//
//	Warning: an unknown table code or an unrecognized optional-section
//	group, with its position
//
//	WarningList: accumulates warnings during one decode
//
// # Error Types
//
//	input    - empty or unusable raw input
//	grammar  - report violates section/group ordering rules
//	decode   - a recognized group token does not fit its expected shape
//	table    - a sub-field code has no table entry
//	io       - file I/O error (CLI surface)
//
// # Example Output
//
//	[grammar] expected report type marker AAXX
//	  --> group 0
//	  = suggestion: only land-station synoptic reports (AAXX) are supported
package errors
