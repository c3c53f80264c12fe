// Package tables provides the WMO code tables the decoder resolves
// enumerated sub-fields against (cloud cover, present and past weather,
// cloud genera, pressure tendency, precipitation duration, and others).
//
// Table data ships as YAML embedded in the binary and is parsed once at
// startup. The resulting Registry is read-only and may be shared across
// concurrent decodes without locking. Callers that need non-standard or
// regional tables can Load their own data and inject the Registry into
// the parser.
package tables
