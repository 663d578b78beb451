package workspace

import (
	"path/filepath"
	"strings"
)

// illegalChars are invalid in file names on at least one common filesystem.
var illegalChars = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	`"`, "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// Resolve maps an untrusted candidate onto root. The result is root or one of
// its descendants for every input; blank or fully stripped candidates resolve
// to root itself.
func Resolve(candidate, root string) string {
	return filepath.Join(root, Sanitize(candidate))
}

// Sanitize returns the root-relative form of candidate, or "" for the root.
//
// Whitespace only matters for detecting blank input; otherwise it stays part
// of the name. Every ".." is removed wherever it appears, not only as a path
// element, so a name such as "report..final" becomes "reportfinal".
func Sanitize(candidate string) string {
	rel := sanitizePass(candidate)
	// Passes after the first only remove characters, so this reaches a fixed point.
	for {
		next := sanitizePass(rel)
		if next == rel {
			return rel
		}
		rel = next
	}
}

func sanitizePass(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	s = filepath.Clean(filepath.FromSlash(s))
	s = strings.TrimLeft(s, `/\.`)
	s = strings.ReplaceAll(s, "..", "")
	s = illegalChars.Replace(s)
	if s == "" {
		return ""
	}

	return filepath.Clean(s)
}
