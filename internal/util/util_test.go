package util

import (
	"testing"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple name", input: "Oak Dining Table", expected: "oak-dining-table"},
		{name: "punctuation collapses", input: "Doors & Windows!", expected: "doors-windows"},
		{name: "leading and trailing junk", input: "  --Custom Sofa--  ", expected: "custom-sofa"},
		{name: "digits kept", input: "Model 3000 Deluxe", expected: "model-3000-deluxe"},
		{name: "already a slug", input: "already-a-slug", expected: "already-a-slug"},
		{name: "empty input", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Slugify(tt.input); got != tt.expected {
				t.Fatalf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	t.Parallel()

	existing := map[string]bool{"oak-table": true, "oak-table-2": true}
	taken := func(slug string) bool { return existing[slug] }

	if got := UniqueSlug("walnut-desk", taken); got != "walnut-desk" {
		t.Fatalf("UniqueSlug free base = %q, want walnut-desk", got)
	}

	if got := UniqueSlug("oak-table", taken); got != "oak-table-3" {
		t.Fatalf("UniqueSlug taken base = %q, want oak-table-3", got)
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "zero bytes", bytes: 0, expected: "0 B"},
		{name: "bytes under kilobyte", bytes: 512, expected: "512 B"},
		{name: "exact kilobyte", bytes: 1024, expected: "1.0 KB"},
		{name: "fractional kilobyte", bytes: 1536, expected: "1.5 KB"},
		{name: "megabyte", bytes: 1024 * 1024, expected: "1.0 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatBytes(tt.bytes); got != tt.expected {
				t.Fatalf("FormatBytes(%d) = %s, want %s", tt.bytes, got, tt.expected)
			}
		})
	}
}
