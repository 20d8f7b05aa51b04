// Package normalize provides the deterministic cleanup stage applied to raw
// extraction output: single-field validators plus the record-level validator
// that walks every field of a candidate record.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PresentLiteral is the canonical open-ended end-date marker.
const PresentLiteral = "present"

var (
	fieldValidate = validator.New()

	monthYearRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{4})$`)
	yearMonthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
	yearOnlyRe  = regexp.MustCompile(`^\d{4}$`)
)

// NormalizeURL trims the value and ensures an explicit scheme, prefixing
// https:// when none is present. Empty or null input yields null. No further
// well-formedness check is applied.
func NormalizeURL(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	return &trimmed
}

// NormalizeEmail accepts the value only when it has a conservative
// local@domain.tld shape; anything else is silently rejected to null.
func NormalizeEmail(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	if err := fieldValidate.Var(trimmed, "email"); err != nil {
		return nil
	}
	// validator accepts dotless domains; require a TLD.
	at := strings.LastIndex(trimmed, "@")
	if at < 0 || !strings.Contains(trimmed[at+1:], ".") {
		return nil
	}
	return &trimmed
}

// NormalizeCountryCode trims and ensures a leading +. Empty input yields
// null.
func NormalizeCountryCode(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	if !strings.HasPrefix(trimmed, "+") {
		trimmed = "+" + trimmed
	}
	return &trimmed
}

// NormalizeDate normalizes date strings to YYYY-MM. Recognized shapes:
//
//	M/YYYY, MM/YYYY, M-YYYY, MM-YYYY  ->  zero-padded YYYY-MM
//	YYYY-MM                           ->  unchanged
//	YYYY                              ->  YYYY-01
//	"present" (any case)              ->  "present"
//
// Any other shape is passed through unmodified: an un-normalized string is
// preferred over discarded data.
func NormalizeDate(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	if strings.EqualFold(trimmed, PresentLiteral) {
		out := PresentLiteral
		return &out
	}
	if m := monthYearRe.FindStringSubmatch(trimmed); m != nil {
		month, _ := strconv.Atoi(m[1])
		if month >= 1 && month <= 12 {
			out := fmt.Sprintf("%s-%02d", m[2], month)
			return &out
		}
	}
	if yearMonthRe.MatchString(trimmed) {
		return &trimmed
	}
	if yearOnlyRe.MatchString(trimmed) {
		out := trimmed + "-01"
		return &out
	}
	return &trimmed
}
