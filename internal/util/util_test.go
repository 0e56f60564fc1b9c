package util

import "testing"

func TestTrimQuotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no quotes", "Pass", "Pass"},
		{"double quoted", `"Pass"`, "Pass"},
		{"single quotes only", "'Pass'", "'Pass'"},
		{"quotes in middle", `Pa"ss`, `Pa"ss`},
		{"only quotes", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TrimQuotes(tt.input)
			if result != tt.expected {
				t.Errorf("TrimQuotes(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces", "Lionel Andrés Messi", "Lionel_Andrés_Messi"},
		{"separators", `a/b\c:d`, "a_b_c_d"},
		{"surrounding whitespace", "  Xavi ", "Xavi"},
		{"empty", "   ", "unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SafeFilename(tt.input)
			if result != tt.expected {
				t.Errorf("SafeFilename(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	if got := FormatPercentage(83.33333); got != "83.33%" {
		t.Errorf("FormatPercentage = %q, want 83.33%%", got)
	}
	if got := FormatPercentage(0); got != "0.00%" {
		t.Errorf("FormatPercentage = %q, want 0.00%%", got)
	}
}
