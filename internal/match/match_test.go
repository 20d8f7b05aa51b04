package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-profiler/internal/catalog"
)

var degreeOptions = catalog.OptionSet{
	{Value: "high_school", Label: "High School Diploma"},
	{Value: "associate", Label: "Associate Degree (2-year)"},
	{Value: "bachelor", Label: "Bachelor's Degree"},
	{Value: "master", Label: "Master's Degree"},
	{Value: "phd", Label: "Doctorate (PhD)"},
}

var degreeSynonyms = map[string]string{
	"msc": "master",
	"mba": "master",
	"bsc": "bachelor",
	"aa":  "associate",
}

func TestMatch(t *testing.T) {
	m := New(degreeSynonyms)

	tests := []struct {
		name    string
		raw     string
		want    string
		matched bool
	}{
		{"exact value", "master", "master", true},
		{"exact value uppercase", "MASTER", "master", true},
		{"exact value padded", "  bachelor  ", "bachelor", true},
		{"raw contains value", "Master of Science", "master", true},
		{"value contains raw", "associat", "associate", true},
		{"label match", "Doctorate", "phd", true},
		{"raw contains label", "Bachelor's Degree in Physics", "bachelor", true},
		{"synonym", "MSc", "master", true},
		{"synonym mba", "mba", "master", true},
		{"no match", "culinary certificate", "", false},
		{"empty raw", "", "", false},
		{"whitespace raw", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Match(tt.raw, degreeOptions)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchMasterOfAccountingNeverAssociate(t *testing.T) {
	m := New(degreeSynonyms)

	got, ok := m.Match("Master of Accounting", degreeOptions)
	assert.True(t, ok)
	assert.Equal(t, "master", got, "substring collision must not route to associate")
}

func TestMatchSeparatorFolding(t *testing.T) {
	m := New(nil)
	options := catalog.OptionSet{
		{Value: "full_time", Label: "Full-time"},
		{Value: "part_time", Label: "Part-time"},
	}

	tests := []struct {
		raw  string
		want string
	}{
		{"Full Time", "full_time"},
		{"full-time", "full_time"},
		{"PART_TIME", "part_time"},
		{"Part time", "part_time"},
	}
	for _, tt := range tests {
		got, ok := m.Match(tt.raw, options)
		assert.True(t, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestMatchShortTermsSkipSubstringSteps(t *testing.T) {
	countries := catalog.OptionSet{
		{Value: "united_kingdom", Label: "United Kingdom"},
		{Value: "ukraine", Label: "Ukraine"},
	}
	m := New(map[string]string{"uk": "united_kingdom"})

	// "uk" is a substring of "ukraine"; the synonym table must win.
	got, ok := m.Match("UK", countries)
	assert.True(t, ok)
	assert.Equal(t, "united_kingdom", got)

	// Without a synonym, a short term simply fails to match.
	_, ok = New(nil).Match("uk", countries)
	assert.False(t, ok)
}

func TestMatchFirstHitWins(t *testing.T) {
	m := New(nil)
	options := catalog.OptionSet{
		{Value: "finance", Label: "Finance & Banking"},
		{Value: "technology", Label: "Technology"},
	}

	// "financial technology" contains both values; document order decides.
	got, ok := m.Match("financial technology", options)
	assert.True(t, ok)
	assert.Equal(t, "finance", got)
}

func TestMatchSynonymConstrainedToOptionSet(t *testing.T) {
	m := New(map[string]string{"uk": "united_kingdom"})
	options := catalog.OptionSet{{Value: "master", Label: "Master's Degree"}}

	// The synonym resolves to a value outside this set, so it must not match.
	_, ok := m.Match("uk", options)
	assert.False(t, ok)
}

func TestMatchAll(t *testing.T) {
	m := New(degreeSynonyms)

	got := m.MatchAll([]string{"MSc", "unknown thing", "bachelor", "mba"}, degreeOptions)
	assert.Equal(t, []string{"master", "bachelor"}, got, "unmatched dropped, duplicates collapsed")

	assert.Nil(t, m.MatchAll(nil, degreeOptions))
	assert.Nil(t, m.MatchAll([]string{"no", "hits"}, degreeOptions))
}

func TestApplyGuards(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		matched string
		want    string
		fired   bool
	}{
		{"master keyword forces master", "Master of Accounting (AS track)", "associate", "master", true},
		{"mba keyword", "MBA Associate Program", "associate", "master", true},
		{"doctor keyword", "Doctorate, Associate Fellow", "associate", "phd", true},
		{"clean associate untouched", "Associate of Applied Science", "associate", "associate", false},
		{"non-guarded value untouched", "Master of Science", "master", "master", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fired := ApplyGuards(tt.raw, tt.matched, DegreeGuards)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.fired, fired)
		})
	}
}
