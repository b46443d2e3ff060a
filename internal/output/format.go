// internal/output/format.go

// Package output renders analysis reports as text, JSON or HTML, and
// exports chart images.
package output

import "strings"

// Format selects a report renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat maps a user-supplied format name to a Format. Unknown names
// fall back to text so a typo still produces a readable report.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "html":
		return FormatHTML
	default:
		return FormatText
	}
}
