// Synack decodes FM-12 (SYNOP) surface weather reports into structured
// output.
//
// Usage:
//
//	# Decode a single report
//	synack parse "AAXX 01004 88889 12782 61506 10094 20047 30111 40197 53007 60001 81541 333 81656 86070"
//
//	# Decode from a file, one report per line or '='-terminated
//	synack parse --file report.synop --format yaml
//
//	# Decode a directory of report files
//	synack batch ./reports --recursive --continue-on-error
//
//	# Watch a directory and decode files as they arrive
//	synack batch ./incoming --watch
//
//	# Run the decode HTTP service
//	synack serve
//
//	# Show version information
//	synack version
package main

func main() {
	Execute()
}
