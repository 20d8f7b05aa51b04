// Package types defines the structured candidate profile produced by the
// extraction and normalization pipeline.
package types

// CandidateRecord is the root structured entity produced for one parsed
// document. Every field is optional: the extraction step is best-effort and
// the normalization stages fill, correct, or null fields as they go.
type CandidateRecord struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	CountryCode *string `json:"country_code"`
	PhoneNumber *string `json:"phone_number"`

	Address *Address `json:"address"`

	LinkedInURL  *string `json:"linkedin_url"`
	GitHubURL    *string `json:"github_url"`
	PortfolioURL *string `json:"portfolio_url"`

	// YearsOfExperience is a derived quantity. Whatever the extraction step
	// reports here is replaced by the interval-merged value during inference.
	YearsOfExperience *int `json:"years_of_experience"`

	EducationHistory       []EducationEntry  `json:"education_history"`
	ProfessionalExperience []ExperienceEntry `json:"professional_experience"`

	TechnicalSkills        []Skill         `json:"technical_skills"`
	SoftSkills             []Skill         `json:"soft_skills"`
	IndustrySpecificSkills []IndustrySkill `json:"industry_specific_skills"`
	BaseLanguages          []LanguageSkill `json:"base_languages"`
	Certifications         []Certification `json:"certifications"`

	DesiredDurationMonths *string  `json:"desired_duration_months"`
	DesiredJobTypes       []string `json:"desired_job_types"`
	DesiredLocations      []string `json:"desired_locations"`
	DesiredIndustries     []string `json:"desired_industries"`

	// FunctionalExpertise holds at most MaxFunctionalExpertise canonical
	// category values, merged from the user selection and the extractor.
	FunctionalExpertise []string `json:"functional_expertise"`
}

// MaxFunctionalExpertise caps the merged functional-expertise list.
const MaxFunctionalExpertise = 8

// Address is the structured postal address sub-record.
type Address struct {
	Street  *string `json:"street"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Country *string `json:"country"`
	Zip     *string `json:"zip"`
}

// ExperienceEntry is one employment period. Dates use the YYYY-MM form once
// normalized; EndDate may also hold the literal "present".
type ExperienceEntry struct {
	PositionName *string `json:"position_name"`
	CompanyName  *string `json:"company_name"`
	PositionType *string `json:"position_type"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	IsCurrent    *bool   `json:"is_current"`
	Country      *string `json:"country"`
	Description  *string `json:"description"`
}

// EducationEntry is one degree or program.
type EducationEntry struct {
	UniversityName *string `json:"university_name"`
	DegreeType     *string `json:"degree_type"`
	GeneralField   *string `json:"general_field"`
	SpecificField  *string `json:"specific_field"`
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`
	Grade          *string `json:"grade"`
	GradeScale     *string `json:"grade_scale"`
}

// Skill is a named skill with an optional proficiency level.
type Skill struct {
	Name  string  `json:"name"`
	Level *string `json:"level"`
}

// IndustrySkill is a skill scoped to a specific industry.
type IndustrySkill struct {
	Industry string  `json:"industry"`
	Name     string  `json:"name"`
	Level    *string `json:"level"`
}

// LanguageSkill is a spoken language with an optional proficiency tier.
type LanguageSkill struct {
	Language    string  `json:"language"`
	Proficiency *string `json:"proficiency"`
}

// Certification is one professional certification.
type Certification struct {
	Name         *string `json:"name"`
	Issuer       *string `json:"issuer"`
	DateObtained *string `json:"date_obtained"`
	ExpiryDate   *string `json:"expiry_date"`
	CredentialID *string `json:"credential_id"`
	URL          *string `json:"url"`
}
