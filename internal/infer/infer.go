// Package infer derives values for fields the extraction step left null or
// untrusted, using only the already-validated record as input. Every rule is
// deterministic given the record and the injected reference time.
package infer

import (
	"strings"
	"time"

	"github.com/jonathan/resume-profiler/internal/catalog"
	"github.com/jonathan/resume-profiler/internal/interval"
	"github.com/jonathan/resume-profiler/internal/types"
)

// positionTypeRule is one step of the ordered keyword cascade used to
// classify an experience entry from its title. First matching rule wins.
type positionTypeRule struct {
	keywords []string
	value    string
}

var positionTypeRules = []positionTypeRule{
	{keywords: []string{"intern"}, value: "internship"},
	{keywords: []string{"freelance", "contractor", "consultant"}, value: "freelance"},
	{keywords: []string{"part-time", "part time"}, value: "part_time"},
	{keywords: []string{"volunteer"}, value: "volunteer"},
}

// defaultPositionType is used when no keyword rule matches.
const defaultPositionType = "full_time"

// Engine fills missing fields on a validated record.
type Engine struct {
	cats *catalog.Catalogs
}

// NewEngine creates an inference engine over the given catalogs.
func NewEngine(cats *catalog.Catalogs) *Engine {
	return &Engine{cats: cats}
}

// Infer mutates the record in place and returns the inference log. Must run
// after validation: it trusts the validated date formats and canonical
// country values.
func (e *Engine) Infer(rec *types.CandidateRecord, now time.Time) types.ChangeLog {
	var log types.ChangeLog
	if rec == nil {
		return log
	}

	e.inferYearsOfExperience(rec, now, &log)
	e.inferPositionTypes(rec, &log)
	e.inferDesiredLocations(rec, &log)

	return log
}

// inferYearsOfExperience always recomputes the derived value from the
// experience list. The extractor's self-reported number is never trusted:
// recomputing keeps the value reproducible and immune to model arithmetic.
// Entries the merger could not place on the timeline stay in the record but
// are reported here.
func (e *Engine) inferYearsOfExperience(rec *types.CandidateRecord, now time.Time, log *types.ChangeLog) {
	months, excluded := interval.TotalMonths(rec.ProfessionalExperience, now)
	for _, ex := range excluded {
		log.Addf("professional_experience[%d]: excluded from experience duration (%s)", ex.Index, ex.Reason)
	}
	years := interval.YearsFromMonths(months)
	if rec.YearsOfExperience == nil || *rec.YearsOfExperience != years {
		if rec.YearsOfExperience != nil {
			log.Addf("years_of_experience: replaced reported %d with derived %d (%d merged months)", *rec.YearsOfExperience, years, months)
		} else {
			log.Addf("years_of_experience: derived %d (%d merged months)", years, months)
		}
	}
	rec.YearsOfExperience = &years
}

// inferPositionTypes classifies entries with no position type from the
// title keyword cascade, defaulting to full-time.
func (e *Engine) inferPositionTypes(rec *types.CandidateRecord, log *types.ChangeLog) {
	for i := range rec.ProfessionalExperience {
		entry := &rec.ProfessionalExperience[i]
		if entry.PositionType != nil {
			continue
		}
		title := ""
		if entry.PositionName != nil {
			title = *entry.PositionName
		}
		value := classifyPositionType(title)
		entry.PositionType = &value
		log.Addf("professional_experience[%d].position_type: inferred %q from title %q", i, value, title)
	}
}

// inferDesiredLocations adopts the single country seen across professional
// experience when the preference is empty. More than one distinct country is
// ambiguous and nothing is inferred.
func (e *Engine) inferDesiredLocations(rec *types.CandidateRecord, log *types.ChangeLog) {
	if len(rec.DesiredLocations) > 0 {
		return
	}
	countries := distinctCountries(rec.ProfessionalExperience)
	if len(countries) != 1 {
		return
	}
	rec.DesiredLocations = countries
	log.Addf("desired_locations: inferred %q from work history", countries[0])
}

func classifyPositionType(title string) string {
	needle := strings.ToLower(title)
	for _, rule := range positionTypeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(needle, keyword) {
				return rule.value
			}
		}
	}
	return defaultPositionType
}

func distinctCountries(entries []types.ExperienceEntry) []string {
	var countries []string
	seen := make(map[string]struct{})
	for _, entry := range entries {
		if entry.Country == nil {
			continue
		}
		if _, ok := seen[*entry.Country]; ok {
			continue
		}
		seen[*entry.Country] = struct{}{}
		countries = append(countries, *entry.Country)
	}
	return countries
}
