package parser

import "synack/pkg/synop/ast"

// Context carries decoding state that earlier groups establish for later
// ones. The flow is strictly forward: groups may read what the header
// has already fixed, never anything downstream.
type Context struct {
	// Section names the section currently being decoded, using the
	// rendered section keys (section_1 .. section_5).
	Section string

	// WindUnit is the speed unit fixed by the wind-unit indicator in the
	// YYGGiw group, consumed later by the Nddff wind group. Null when
	// the indicator was a placeholder or unknown.
	WindUnit ast.Value
}
