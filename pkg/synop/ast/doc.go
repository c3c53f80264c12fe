// Package ast defines the decoded representation of a SYNOP report: the
// report root, its sections, and one node type per group variant.
//
// Every decoded field is a Value, a small tagged union that keeps the
// distinction between a reported zero and a missing field. Placeholder
// slashes in the wire format always decode to null, never to a zero or
// sentinel. Conversion from raw sub-fields to Values goes through
// per-variant FieldSpec tables, so the base type and post-conversion
// hook of every field are fixed at compile time.
//
// Nodes are built all-or-nothing: a constructor either converts every
// sub-field or returns an error, and no partially built node is ever
// attached to a report.
package ast
