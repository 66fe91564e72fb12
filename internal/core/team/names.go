package team

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName folds a member name for comparison: NFC form, collapsed
// whitespace, Unicode case folding. "  José  PÉREZ" and "josé pérez"
// normalize to the same key.
func NormalizeName(name string) string {
	collapsed := strings.Join(strings.Fields(name), " ")
	return cases.Fold().String(norm.NFC.String(collapsed))
}

// CleanName trims and collapses whitespace, keeping the original casing.
func CleanName(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}

// FindMember returns the roster entry matching name, compared by NormalizeName.
func FindMember(roster []string, name string) (string, bool) {
	key := NormalizeName(name)
	if key == "" {
		return "", false
	}
	for _, m := range roster {
		if NormalizeName(m) == key {
			return m, true
		}
	}
	return "", false
}
