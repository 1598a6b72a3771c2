package util

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Slugify converts a display name into a URL-safe slug: lowercase ASCII
// letters and digits with single hyphens between words. Non-alphanumeric
// runs collapse into one hyphen; leading and trailing hyphens are trimmed.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		isAlnum := r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r))
		if !isAlnum {
			pendingHyphen = b.Len() > 0

			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	return b.String()
}

// UniqueSlug appends a numeric suffix to base until taken reports it free.
// The unsuffixed base is tried first.
func UniqueSlug(base string, taken func(slug string) bool) string {
	if !taken(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}
