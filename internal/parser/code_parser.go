package parser

import (
	"regexp"
	"strings"
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_.-]*$`)

// NormalizeCode normalizes subject codes to trimmed uppercase, e.g. "cs-101" -> "CS-101"
// Inner whitespace is removed so "CS 101" and "CS101" collapse to the same code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), ""))
}

// IsValidCode checks if a string is a usable subject code
func IsValidCode(code string) bool {
	if code == "" {
		return true // Empty is valid (optional field)
	}
	return codeRegex.MatchString(NormalizeCode(code))
}
