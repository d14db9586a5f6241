package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// identifierRegex matches page types, group names and page set names.
var identifierRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateIdentifier validates a page type, group name or page set name.
// Identifiers end up inside destination keys, so they are restricted to
// lowercase letters, digits and underscores and must start with a letter.
func ValidateIdentifier(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidDeclaration, "%s cannot be empty", kind)
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidDeclaration, "%s too long (max 64 characters): %q", kind, name)
	}
	if !identifierRegex.MatchString(name) {
		return New(ErrCodeInvalidDeclaration, "invalid %s: %q (use lowercase letters, digits and _)", kind, name)
	}
	return nil
}

// ValidateDestinationID validates an explicit page ID that replaces the
// derived destination key.
//
// Validation rules:
//   - ID cannot be empty
//   - Maximum length of 128 characters
//   - No whitespace or control characters
//   - No path separators (IDs double as file and URL path segments)
func ValidateDestinationID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDeclaration, "page id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidDeclaration, "page id too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidDeclaration, "page id %q contains whitespace or control characters", id)
		}
	}
	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidDeclaration, "page id %q cannot contain path separators", id)
	}
	return nil
}

// ValidateOutputPath validates an output directory or file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}
	return nil
}
