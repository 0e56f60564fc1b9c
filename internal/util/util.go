// Package util provides common utility functions used across passmap.
package util

import (
	"fmt"
	"strings"
)

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// SafeFilename turns a player or match name into something usable as a file name.
// Spaces and path/drive separators become underscores.
func SafeFilename(name string) string {
	r := strings.NewReplacer(" ", "_", ":", "_", "/", "_", `\`, "_")
	s := r.Replace(strings.TrimSpace(name))
	if s == "" {
		return "unnamed"
	}
	return s
}

// FormatPercentage renders a percentage with two decimals, as shown on pass maps.
func FormatPercentage(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
