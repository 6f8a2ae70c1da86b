package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxLabelLength is the longest label text accepted, in characters.
const MaxLabelLength = 256

// ValidateLabelText validates a label's text for display safety.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only text
//   - No control characters (newlines and tabs included)
//   - Maximum length of MaxLabelLength characters
func ValidateLabelText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidLabel, "label text cannot be empty")
	}

	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidLabel, "label text is not valid UTF-8")
	}

	if n := utf8.RuneCountInString(text); n > MaxLabelLength {
		return New(ErrCodeInvalidLabel, "label text too long (%d characters, max %d)", n, MaxLabelLength)
	}

	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label text contains control characters: %q", text)
		}
	}

	return nil
}

// ValidateInputPath validates a local input file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
