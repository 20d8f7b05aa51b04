package infer

import (
	"github.com/jonathan/resume-profiler/internal/catalog"
	"github.com/jonathan/resume-profiler/internal/types"
)

// MergeFunctionalExpertise combines the user's expertise selection with the
// extractor's, under a "user input is ground truth" policy: every valid user
// selection is preserved in its original order, then extracted values not
// already present are appended until the cap is reached. Both lists are
// first filtered to members of the closed category set. Dropped values and
// appended extracted values are recorded in the log.
func MergeFunctionalExpertise(userSelected, extracted []string, options catalog.OptionSet, log *types.ChangeLog) []string {
	merged := make([]string, 0, types.MaxFunctionalExpertise)
	seen := make(map[string]struct{})

	appendValid := func(values []string, source string) {
		for _, value := range values {
			if !options.Contains(value) {
				log.Addf("functional_expertise: dropped %s value %q (not a known category)", source, value)
				continue
			}
			if _, dup := seen[value]; dup {
				continue
			}
			if len(merged) >= types.MaxFunctionalExpertise {
				log.Addf("functional_expertise: %s value %q not added (cap of %d reached)", source, value, types.MaxFunctionalExpertise)
				continue
			}
			merged = append(merged, value)
			seen[value] = struct{}{}
			if source == "extracted" {
				log.Addf("functional_expertise: added extracted value %q", value)
			}
		}
	}

	appendValid(userSelected, "user-selected")
	appendValid(extracted, "extracted")

	if len(merged) == 0 {
		return nil
	}
	return merged
}
