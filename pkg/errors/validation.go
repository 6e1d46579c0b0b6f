package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// stageNameRegex matches stage and handler names: lowercase words joined by
// dashes or underscores.
var stageNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateStageName validates a stage or handler name from a loop definition.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 64 characters
//   - Lowercase letters, digits, dash and underscore, starting with a letter
func ValidateStageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "stage name cannot be empty")
	}

	const maxNameLength = 64
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "stage name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "stage name contains invalid control characters")
		}
	}

	if !stageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid stage name: %q", name)
	}

	return nil
}

// ValidateConfigPath validates a loop definition path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Extension must be .toml, .yaml, .yml or .json
func ValidateConfigPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "config path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "config path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "config path contains invalid characters")
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml", ".json":
		return nil
	default:
		return New(ErrCodeInvalidFormat, "unsupported config format %q (want .toml, .yaml, .yml or .json)", filepath.Ext(path))
	}
}
