// Package skills provides canonicalization of free-text skill names so that
// spelling variants compare equal.
package skills

import "strings"

// aliasTable maps well-known skill spellings to a single canonical token.
// Entries here take precedence over separator stripping because the raw
// strings would otherwise collapse to different tokens ("c++" -> "c").
var aliasTable = map[string]string{
	"c++":      "cplusplus",
	"cpp":      "cplusplus",
	"c#":       "csharp",
	"py":       "python",
	"py3":      "python",
	"node":     "nodejs",
	"node.js":  "nodejs",
	"nodejs":   "nodejs",
	"reactjs":  "react",
	"js":       "javascript",
	"ts":       "typescript",
	"postgres": "postgresql",
}

// separatorReplacer strips whitespace, dots, underscores, and hyphens so that
// "node js", "Node.js" and "node-js" compare equal.
var separatorReplacer = strings.NewReplacer(" ", "", "\t", "", "\n", "", ".", "", "_", "", "-", "")

// Canonical converts a skill string into its canonical token. The token is
// used strictly for equality comparison and is never shown to users.
func Canonical(skill string) string {
	raw := strings.ToLower(strings.TrimSpace(skill))
	if raw == "" {
		return ""
	}
	if canonical, ok := aliasTable[raw]; ok {
		return canonical
	}
	return separatorReplacer.Replace(raw)
}

// CanonicalSet returns the set of canonical tokens for a list of skills,
// skipping entries that canonicalize to the empty string.
func CanonicalSet(skillList []string) map[string]bool {
	set := make(map[string]bool, len(skillList))
	for _, s := range skillList {
		if token := Canonical(s); token != "" {
			set[token] = true
		}
	}
	return set
}

// Equivalent reports whether two skill strings refer to the same skill.
func Equivalent(a, b string) bool {
	ca := Canonical(a)
	return ca != "" && ca == Canonical(b)
}
