// Package parser decodes raw FM-12 SYNOP reports.
//
// The pipeline is a single forward pass: Tokenize splits the text into
// position-tagged group tokens, the parser walks them with a small
// section state machine, and the builder turns each recognized group
// into an AST node, consulting the code tables and the forward-only
// decoding context along the way.
//
// Structural violations (bad ordering, malformed mandatory groups)
// abort the decode with a fatal error. Unknown table codes and
// unrecognized groups inside optional sections are recoverable: the
// decode continues and the conditions accumulate as warnings on the
// report.
package parser
