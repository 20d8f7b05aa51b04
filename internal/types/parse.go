package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseCandidateRecord converts the raw extraction response into a
// CandidateRecord. Only a top-level structural failure (not a JSON object) is
// an error; any field whose value has an unexpected type is set to null and
// the rest of the record is kept.
func ParseCandidateRecord(data []byte) (*CandidateRecord, error) {
	var top map[string]any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, &CoerceError{Message: "response is not a JSON object", Cause: err}
	}

	rec := &CandidateRecord{
		FirstName:   asString(top["first_name"]),
		LastName:    asString(top["last_name"]),
		Email:       asString(top["email"]),
		CountryCode: asString(top["country_code"]),
		PhoneNumber: asString(top["phone_number"]),

		Address: coerceAddress(top["address"]),

		LinkedInURL:  asString(top["linkedin_url"]),
		GitHubURL:    asString(top["github_url"]),
		PortfolioURL: asString(top["portfolio_url"]),

		YearsOfExperience: asInt(top["years_of_experience"]),

		DesiredDurationMonths: asString(top["desired_duration_months"]),
		DesiredJobTypes:       asStringSlice(top["desired_job_types"]),
		DesiredLocations:      asStringSlice(top["desired_locations"]),
		DesiredIndustries:     asStringSlice(top["desired_industries"]),
		FunctionalExpertise:   asStringSlice(top["functional_expertise"]),
	}

	for _, item := range asObjectSlice(top["education_history"]) {
		rec.EducationHistory = append(rec.EducationHistory, EducationEntry{
			UniversityName: asString(item["university_name"]),
			DegreeType:     asString(item["degree_type"]),
			GeneralField:   asString(item["general_field"]),
			SpecificField:  asString(item["specific_field"]),
			StartDate:      asString(item["start_date"]),
			EndDate:        asString(item["end_date"]),
			Grade:          asString(item["grade"]),
			GradeScale:     asString(item["grade_scale"]),
		})
	}

	for _, item := range asObjectSlice(top["professional_experience"]) {
		rec.ProfessionalExperience = append(rec.ProfessionalExperience, ExperienceEntry{
			PositionName: asString(item["position_name"]),
			CompanyName:  asString(item["company_name"]),
			PositionType: asString(item["position_type"]),
			StartDate:    asString(item["start_date"]),
			EndDate:      asString(item["end_date"]),
			IsCurrent:    asBool(item["is_current"]),
			Country:      asString(item["country"]),
			Description:  asString(item["description"]),
		})
	}

	rec.TechnicalSkills = coerceSkills(top["technical_skills"])
	rec.SoftSkills = coerceSkills(top["soft_skills"])

	for _, item := range asObjectSlice(top["industry_specific_skills"]) {
		name := asString(item["name"])
		if name == nil {
			continue
		}
		industry := ""
		if s := asString(item["industry"]); s != nil {
			industry = *s
		}
		rec.IndustrySpecificSkills = append(rec.IndustrySpecificSkills, IndustrySkill{
			Industry: industry,
			Name:     *name,
			Level:    asString(item["level"]),
		})
	}

	for _, item := range asObjectSlice(top["base_languages"]) {
		lang := asString(item["language"])
		if lang == nil {
			continue
		}
		rec.BaseLanguages = append(rec.BaseLanguages, LanguageSkill{
			Language:    *lang,
			Proficiency: asString(item["proficiency"]),
		})
	}

	for _, item := range asObjectSlice(top["certifications"]) {
		rec.Certifications = append(rec.Certifications, Certification{
			Name:         asString(item["name"]),
			Issuer:       asString(item["issuer"]),
			DateObtained: asString(item["date_obtained"]),
			ExpiryDate:   asString(item["expiry_date"]),
			CredentialID: asString(item["credential_id"]),
			URL:          asString(item["url"]),
		})
	}

	return rec, nil
}

// CoerceError reports a top-level structural failure of the raw response.
type CoerceError struct {
	Message string
	Cause   error
}

func (e *CoerceError) Error() string {
	if e.Cause != nil {
		return "coerce error: " + e.Message + ": " + e.Cause.Error()
	}
	return "coerce error: " + e.Message
}

func (e *CoerceError) Unwrap() error {
	return e.Cause
}

func coerceAddress(value any) *Address {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return &Address{
		Street:  asString(obj["street"]),
		City:    asString(obj["city"]),
		State:   asString(obj["state"]),
		Country: asString(obj["country"]),
		Zip:     asString(obj["zip"]),
	}
}

func coerceSkills(value any) []Skill {
	var skills []Skill
	for _, item := range asObjectSlice(value) {
		name := asString(item["name"])
		if name == nil {
			continue
		}
		skills = append(skills, Skill{Name: *name, Level: asString(item["level"])})
	}
	// A bare list of strings is also accepted; some model responses flatten
	// skill objects into names.
	if skills == nil {
		for _, name := range asStringSlice(value) {
			skills = append(skills, Skill{Name: name})
		}
	}
	return skills
}

// asString returns a pointer to the string form of value, or nil when the
// value is absent, empty, or not a string.
func asString(value any) *string {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// asInt accepts JSON numbers and numeric strings; anything else is nil.
func asInt(value any) *int {
	switch v := value.(type) {
	case float64:
		n := int(v)
		return &n
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return &n
		}
	}
	return nil
}

func asBool(value any) *bool {
	b, ok := value.(bool)
	if !ok {
		return nil
	}
	return &b
}

func asStringSlice(value any) []string {
	switch raw := value.(type) {
	case []string:
		return raw
	case []any:
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}

func asObjectSlice(value any) []map[string]any {
	raw, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}
