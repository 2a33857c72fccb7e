package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// fold case-folds s for comparison. A fresh Caser is built per call because
// cases.Caser keeps transform state and is not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}

// containsFolded reports whether the folded haystack contains needle, which
// must already be folded. Absent (empty) fields never match.
func containsFolded(haystack, needle string) bool {
	if haystack == "" || needle == "" {
		return false
	}
	return strings.Contains(fold(haystack), needle)
}
