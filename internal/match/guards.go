package match

import "strings"

// GuardRule overrides a suspect match. When the matcher resolves a raw value
// to Canonical but the raw text contains one of Keywords, the match is
// forced to ForceTo instead. Rules are declarative so new guards are added
// as data, not code.
type GuardRule struct {
	// Canonical is the matched value the rule protects against.
	Canonical string
	// Keywords are lowercase substrings of the raw value that invalidate
	// the match.
	Keywords []string
	// ForceTo is the canonical value to use instead.
	ForceTo string
}

// DegreeGuards protects the sub-bachelor "associate" category: the
// permissive substring step can route abbreviated master's-level titles
// there, and a short raw value must not land on a 2-year US-style program
// unless nothing in it indicates a higher degree.
var DegreeGuards = []GuardRule{
	{
		Canonical: "associate",
		Keywords: []string{
			"master", "mba", "llm", "msc", "m.sc", "meng", "m.a.",
			"magister", "maîtrise", "postgraduate",
		},
		ForceTo: "master",
	},
	{
		Canonical: "associate",
		Keywords:  []string{"phd", "doctor", "dphil"},
		ForceTo:   "phd",
	},
}

// ApplyGuards checks a resolved match against the rule list. It returns the
// possibly corrected canonical value and whether a rule fired.
func ApplyGuards(raw, matched string, rules []GuardRule) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for _, rule := range rules {
		if rule.Canonical != matched {
			continue
		}
		for _, keyword := range rule.Keywords {
			if strings.Contains(needle, keyword) {
				return rule.ForceTo, true
			}
		}
	}
	return matched, false
}
