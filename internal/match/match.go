// Package match maps free-text values onto closed option sets. The layered
// fallback (exact, substring, label, synonym) trades precision for coverage
// across multilingual, inconsistently formatted input; callers guard the
// known false positives with the rules in guards.go.
package match

import (
	"strings"

	"github.com/jonathan/resume-profiler/internal/catalog"
)

// minSubstringLen is the shortest term allowed to participate in the
// substring steps. Shorter terms ("uk", "as", "b2") collide with unrelated
// categories and must resolve through the exact or synonym steps instead.
const minSubstringLen = 3

// termReplacer folds the separator variants seen in raw input and in
// canonical values into spaces before comparison.
var termReplacer = strings.NewReplacer("_", " ", "-", " ")

// normalizeTerm lowercases, trims, and folds separators so that
// "Full Time", "full-time" and "full_time" all compare equal.
func normalizeTerm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = termReplacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Matcher resolves raw values against option sets using a shared synonym
// table. It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	synonyms map[string]string
}

// New creates a Matcher over the given synonym table. A nil table disables
// the synonym step. Keys are normalized the same way raw input is.
func New(synonyms map[string]string) *Matcher {
	normalized := make(map[string]string, len(synonyms))
	for raw, canonical := range synonyms {
		normalized[normalizeTerm(raw)] = canonical
	}
	return &Matcher{synonyms: normalized}
}

// Match resolves raw to a canonical option value. Matching is
// case-insensitive, whitespace-trimmed, and separator-folded; the first hit
// wins, in this order:
//
//  1. exact match on an option's value
//  2. substring match on an option's value, either direction
//  3. substring match on an option's label, either direction
//  4. synonym-table lookup
//
// Terms shorter than minSubstringLen skip the substring steps. No match
// returns ("", false); callers must leave the field unknown rather than
// fabricate a default.
func (m *Matcher) Match(raw string, options catalog.OptionSet) (string, bool) {
	needle := normalizeTerm(raw)
	if needle == "" || len(options) == 0 {
		return "", false
	}

	// 1. Exact value match.
	for _, opt := range options {
		if needle == normalizeTerm(opt.Value) {
			return opt.Value, true
		}
	}

	if len(needle) >= minSubstringLen {
		// 2. Bidirectional substring match on values.
		for _, opt := range options {
			if containsEither(needle, normalizeTerm(opt.Value)) {
				return opt.Value, true
			}
		}

		// 3. Bidirectional substring match on labels.
		for _, opt := range options {
			if opt.Label == "" {
				continue
			}
			if containsEither(needle, normalizeTerm(opt.Label)) {
				return opt.Value, true
			}
		}
	}

	// 4. Synonym table, constrained to members of this option set.
	if canonical, ok := m.synonyms[needle]; ok && options.Contains(canonical) {
		return canonical, true
	}

	return "", false
}

// MatchAll maps a list of raw values element-wise, dropping elements that
// fail to match and deduplicating the result while preserving order.
func (m *Matcher) MatchAll(raw []string, options catalog.OptionSet) []string {
	if len(raw) == 0 {
		return nil
	}
	matched := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, value := range raw {
		canonical, ok := m.Match(value, options)
		if !ok {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		matched = append(matched, canonical)
		seen[canonical] = struct{}{}
	}
	if len(matched) == 0 {
		return nil
	}
	return matched
}

func containsEither(a, b string) bool {
	if len(b) < minSubstringLen {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
