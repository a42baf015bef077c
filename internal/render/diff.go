package render

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff between two rendered views, or "" when they
// are equal.
func Diff(before, after, fromName, toName string) (string, error) {
	if before == after {
		return "", nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: fromName,
		ToFile:   toName,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(ud)
}
