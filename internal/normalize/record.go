package normalize

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-profiler/internal/catalog"
	"github.com/jonathan/resume-profiler/internal/match"
	"github.com/jonathan/resume-profiler/internal/types"
)

// domainCompetencies is the disallow-list for the soft-skill list: these are
// business/domain competencies, not behavioral traits, and are removed when
// the extractor files them under soft skills.
var domainCompetencies = map[string]struct{}{
	"project management":   {},
	"product management":   {},
	"sales":                {},
	"marketing":            {},
	"budgeting":            {},
	"accounting":           {},
	"business development": {},
	"recruiting":           {},
	"supply chain":         {},
}

// Validator applies the field validators and the categorical matcher across
// every field of a candidate record. It is pure: no I/O, no shared state.
type Validator struct {
	cats    *catalog.Catalogs
	matcher *match.Matcher
}

// NewValidator creates a Validator over the given catalogs.
func NewValidator(cats *catalog.Catalogs) *Validator {
	return &Validator{cats: cats, matcher: match.New(cats.Synonyms)}
}

// ValidateRecord corrects the record in place and returns the change log.
// Re-validating an already-corrected record changes nothing.
func (v *Validator) ValidateRecord(rec *types.CandidateRecord) types.ChangeLog {
	var log types.ChangeLog
	if rec == nil {
		return log
	}

	rec.Email = v.applyField("email", rec.Email, NormalizeEmail, &log)
	rec.CountryCode = v.applyField("country_code", rec.CountryCode, NormalizeCountryCode, &log)
	rec.LinkedInURL = v.applyField("linkedin_url", rec.LinkedInURL, NormalizeURL, &log)
	rec.GitHubURL = v.applyField("github_url", rec.GitHubURL, NormalizeURL, &log)
	rec.PortfolioURL = v.applyField("portfolio_url", rec.PortfolioURL, NormalizeURL, &log)

	if rec.Address != nil {
		rec.Address.Country = v.matchField("address.country", rec.Address.Country, v.cats.Countries, &log)
	}

	for i := range rec.ProfessionalExperience {
		exp := &rec.ProfessionalExperience[i]
		prefix := fieldAt("professional_experience", i)
		exp.StartDate = v.applyField(prefix+".start_date", exp.StartDate, NormalizeDate, &log)
		exp.EndDate = v.applyField(prefix+".end_date", exp.EndDate, NormalizeDate, &log)
		exp.PositionType = v.matchField(prefix+".position_type", exp.PositionType, v.cats.PositionTypes, &log)
		exp.Country = v.matchField(prefix+".country", exp.Country, v.cats.Countries, &log)
	}

	for i := range rec.EducationHistory {
		edu := &rec.EducationHistory[i]
		prefix := fieldAt("education_history", i)
		edu.StartDate = v.applyField(prefix+".start_date", edu.StartDate, NormalizeDate, &log)
		edu.EndDate = v.applyField(prefix+".end_date", edu.EndDate, NormalizeDate, &log)
		edu.DegreeType = v.matchDegree(prefix+".degree_type", edu.DegreeType, &log)
		edu.GeneralField = v.matchField(prefix+".general_field", edu.GeneralField, v.cats.DegreeFields, &log)
	}

	for i := range rec.Certifications {
		cert := &rec.Certifications[i]
		prefix := fieldAt("certifications", i)
		cert.DateObtained = v.applyField(prefix+".date_obtained", cert.DateObtained, NormalizeDate, &log)
		cert.ExpiryDate = v.applyField(prefix+".expiry_date", cert.ExpiryDate, NormalizeDate, &log)
		cert.URL = v.applyField(prefix+".url", cert.URL, NormalizeURL, &log)
	}

	v.validateSkillLevels("technical_skills", rec.TechnicalSkills, &log)
	v.validateSkillLevels("soft_skills", rec.SoftSkills, &log)
	rec.SoftSkills = v.filterSoftSkills(rec.SoftSkills, &log)

	for i := range rec.IndustrySpecificSkills {
		skill := &rec.IndustrySpecificSkills[i]
		prefix := fieldAt("industry_specific_skills", i)
		skill.Level = v.matchField(prefix+".level", skill.Level, v.cats.SkillLevels, &log)
	}

	for i := range rec.BaseLanguages {
		lang := &rec.BaseLanguages[i]
		prefix := fieldAt("base_languages", i)
		lang.Proficiency = v.matchField(prefix+".proficiency", lang.Proficiency, v.cats.LanguageProficiencies, &log)
	}

	rec.DesiredDurationMonths = v.matchField("desired_duration_months", rec.DesiredDurationMonths, v.cats.Durations, &log)
	rec.DesiredJobTypes = v.matchList("desired_job_types", rec.DesiredJobTypes, v.cats.JobTypes, &log)
	rec.DesiredLocations = v.matchList("desired_locations", rec.DesiredLocations, v.cats.Countries, &log)
	rec.DesiredIndustries = v.matchList("desired_industries", rec.DesiredIndustries, v.cats.Industries, &log)

	return log
}

// applyField runs a field validator and logs the outcome when the value
// changed or was rejected.
func (v *Validator) applyField(name string, raw *string, fn func(*string) *string, log *types.ChangeLog) *string {
	if raw == nil {
		return nil
	}
	out := fn(raw)
	switch {
	case out == nil:
		log.Addf("%s: rejected invalid value %q", name, *raw)
	case *out != *raw:
		log.Addf("%s: corrected %q to %q", name, *raw, *out)
	}
	return out
}

// matchField maps a single enum-shaped field onto its option set. No match
// resolves to null, never to a fabricated default.
func (v *Validator) matchField(name string, raw *string, options catalog.OptionSet, log *types.ChangeLog) *string {
	if raw == nil {
		return nil
	}
	canonical, ok := v.matcher.Match(*raw, options)
	if !ok {
		log.Addf("%s: no canonical match for %q, left unknown", name, *raw)
		return nil
	}
	if canonical != *raw {
		log.Addf("%s: mapped %q to %q", name, *raw, canonical)
	}
	return &canonical
}

// matchDegree is matchField for degree types plus the declarative guard
// rules: a master's-level raw value mis-routed to the associate tier by the
// substring step is forced to the master's canonical value.
func (v *Validator) matchDegree(name string, raw *string, log *types.ChangeLog) *string {
	if raw == nil {
		return nil
	}
	canonical, ok := v.matcher.Match(*raw, v.cats.DegreeTypes)
	if !ok {
		log.Addf("%s: no canonical match for %q, left unknown", name, *raw)
		return nil
	}
	if forced, fired := match.ApplyGuards(*raw, canonical, match.DegreeGuards); fired {
		log.Addf("%s: guard overrode %q match for %q, forced to %q", name, canonical, *raw, forced)
		canonical = forced
	}
	if canonical != *raw {
		log.Addf("%s: mapped %q to %q", name, *raw, canonical)
	}
	return &canonical
}

// matchList maps a preference list element-wise; unmatched elements are
// dropped since they are not actionable downstream.
func (v *Validator) matchList(name string, raw []string, options catalog.OptionSet, log *types.ChangeLog) []string {
	if len(raw) == 0 {
		return raw
	}
	matched := v.matcher.MatchAll(raw, options)
	if len(matched) != len(raw) {
		log.Addf("%s: dropped %d of %d values with no canonical match", name, len(raw)-len(matched), len(raw))
	}
	return matched
}

func (v *Validator) validateSkillLevels(name string, skills []types.Skill, log *types.ChangeLog) {
	for i := range skills {
		skills[i].Level = v.matchField(fieldAt(name, i)+".level", skills[i].Level, v.cats.SkillLevels, log)
	}
}

// filterSoftSkills removes disallow-listed domain competencies from the
// soft-skill list.
func (v *Validator) filterSoftSkills(skills []types.Skill, log *types.ChangeLog) []types.Skill {
	if len(skills) == 0 {
		return skills
	}
	kept := skills[:0]
	for _, skill := range skills {
		key := strings.ToLower(strings.TrimSpace(skill.Name))
		if _, banned := domainCompetencies[key]; banned {
			log.Addf("soft_skills: removed domain competency %q", skill.Name)
			continue
		}
		kept = append(kept, skill)
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

func fieldAt(name string, index int) string {
	return fmt.Sprintf("%s[%d]", name, index)
}
