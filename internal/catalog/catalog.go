// Package catalog provides the closed option sets and synonym table used to
// map free-text values onto canonical values. Catalogs are versioned JSON
// embedded at compile time and treated as immutable configuration: load once,
// pass explicitly, never mutate.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed catalogs.json
var catalogFiles embed.FS

// Option is one member of a closed option set. Value is the canonical form
// downstream systems rely on; Label is the human-readable form.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionSet is an ordered closed set of options. Order matters: the matcher
// resolves ties by first hit.
type OptionSet []Option

// Contains reports whether value is a canonical member of the set.
func (s OptionSet) Contains(value string) bool {
	for _, opt := range s {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Values returns the canonical values in set order.
func (s OptionSet) Values() []string {
	values := make([]string, len(s))
	for i, opt := range s {
		values[i] = opt.Value
	}
	return values
}

// Catalogs holds every closed option set plus the synonym table.
type Catalogs struct {
	Version string `json:"version"`

	Countries             OptionSet `json:"countries"`
	DegreeTypes           OptionSet `json:"degree_types"`
	DegreeFields          OptionSet `json:"degree_fields"`
	SkillLevels           OptionSet `json:"skill_levels"`
	LanguageProficiencies OptionSet `json:"language_proficiencies"`
	PositionTypes         OptionSet `json:"position_types"`
	Industries            OptionSet `json:"industries"`
	JobTypes              OptionSet `json:"job_types"`
	Durations             OptionSet `json:"durations"`
	FunctionalExpertise   OptionSet `json:"functional_expertise"`

	// Synonyms maps lowercased raw terms (abbreviations, foreign-language
	// equivalents) to canonical values across all sets.
	Synonyms map[string]string `json:"synonyms"`
}

var (
	loadOnce   sync.Once
	loaded     *Catalogs
	loadFailed error
)

// Load parses the embedded catalog file. The result is cached; repeated
// calls return the same immutable instance.
func Load() (*Catalogs, error) {
	loadOnce.Do(func() {
		data, err := catalogFiles.ReadFile("catalogs.json")
		if err != nil {
			loadFailed = fmt.Errorf("failed to read embedded catalogs: %w", err)
			return
		}
		var cats Catalogs
		if err := json.Unmarshal(data, &cats); err != nil {
			loadFailed = fmt.Errorf("failed to parse catalogs: %w", err)
			return
		}
		loaded = &cats
	})
	return loaded, loadFailed
}

// MustLoad is Load for initialization paths where a broken embedded catalog
// is unrecoverable.
func MustLoad() *Catalogs {
	cats, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load catalogs: %v", err))
	}
	return cats
}
