package application

import (
	"fmt"
	"path/filepath"
	"strings"

	"mdvault/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "destDir" -> "destination folder")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"path":    "path",
		"newName": "new name",
		"destDir": "destination folder",
		"parent":  "parent folder",
		"root":    "vault root",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateName checks that name can be used as a single path element.
// Hidden names are refused: the vault never lists or watches them.
func ValidateName(fieldName, name string) error {
	if err := ValidateRequired(fieldName, name); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("invalid %s: %s", formatFieldName(fieldName), name),
		}
	}
	if domain.IsHidden(name) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s cannot start with a dot: %s", formatFieldName(fieldName), name),
		}
	}
	return nil
}

// ValidateWithinVault checks that path lies inside the vault root (or is the
// root) and below no hidden folder
func ValidateWithinVault(fieldName, root, path string) error {
	if err := ValidateRequired(fieldName, path); err != nil {
		return err
	}
	if !IsWithin(root, path) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is outside the vault: %s", formatFieldName(fieldName), path),
		}
	}
	if IsHiddenWithin(root, path) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is hidden: %s", formatFieldName(fieldName), path),
		}
	}
	return nil
}

// IsHiddenWithin reports whether any element of path below root is hidden.
// The root's own name does not count.
func IsHiddenWithin(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if domain.IsHidden(part) {
			return true
		}
	}
	return false
}

// IsWithin reports whether path equals parent or lies below it
func IsWithin(parent, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// SamePath compares two paths after cleaning
func SamePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
