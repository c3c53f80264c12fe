package ingest

import "strings"

// SplitReports cuts the content of a report file into individual raw
// reports. Comment lines starting with "#" are dropped first, so a
// comment never merges into an adjacent "="-terminated report. Files in
// telegram form separate reports with the "=" terminator; plain files
// carry one report per line.
func SplitReports(data string) []string {
	lines := strings.Split(data, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	data = strings.Join(kept, "\n")

	var parts []string
	if strings.Contains(data, "=") {
		parts = strings.Split(data, "=")
	} else {
		parts = kept
	}

	reports := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		reports = append(reports, p)
	}
	return reports
}
