package errors

import (
	"strings"
	"unicode"
)

// ValidateIdentifier validates an instance identifier used as a persistence
// key. Identifiers become storage keys (and, for the file backend, file
// names), so the rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidIdentifier, "identifier cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidIdentifier, "identifier too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidIdentifier, "identifier contains control characters")
		}
	}

	// Identifiers end up as file names and pub/sub channel suffixes.
	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidIdentifier, "identifier contains invalid sequence: %q", pattern)
		}
	}

	return nil
}
