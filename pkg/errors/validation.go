package errors

import (
	"strings"
	"unicode"
)

// MaxBlockNameLength is the longest block name accepted by [ValidateBlockName].
const MaxBlockNameLength = 128

// ValidateBlockName validates a block name taken from external input.
// Block names end up quoted in the generated source and as the default file
// name, so the rules reject anything that would break either:
//   - No empty names
//   - No control characters
//   - No double quotes
//   - No path separators
//   - Maximum length of 128 characters
//
// The datablock package itself accepts any name; this check belongs to the
// loaders and the HTTP API.
func ValidateBlockName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "block name cannot be empty")
	}

	if len(name) > MaxBlockNameLength {
		return New(ErrCodeInvalidName, "block name too long (max %d characters)", MaxBlockNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "block name contains invalid control characters")
		}
	}

	for _, pattern := range []string{`"`, "/", `\`} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "block name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateVariableName validates a variable name taken from external input.
// Empty names and embedded double quotes are rejected.
func ValidateVariableName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "variable name cannot be empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "variable name %q contains invalid control characters", name)
		}
	}
	if strings.Contains(name, `"`) {
		return New(ErrCodeInvalidName, "variable name %q contains a double quote", name)
	}
	return nil
}

// ValidatePath validates an output path supplied by a remote caller.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
