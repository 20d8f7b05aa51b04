package normalize

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  *string
	}{
		{"nil input", nil, nil},
		{"empty string", strPtr(""), nil},
		{"whitespace only", strPtr("   "), nil},
		{"missing scheme", strPtr("linkedin.com/in/ada"), strPtr("https://linkedin.com/in/ada")},
		{"existing https", strPtr("https://github.com/ada"), strPtr("https://github.com/ada")},
		{"existing http kept", strPtr("http://example.com"), strPtr("http://example.com")},
		{"trimmed", strPtr("  github.com/ada  "), strPtr("https://github.com/ada")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeURL(tt.input))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  *string
	}{
		{"nil input", nil, nil},
		{"empty string", strPtr(""), nil},
		{"valid", strPtr("ada@example.com"), strPtr("ada@example.com")},
		{"valid trimmed", strPtr("  ada@example.com  "), strPtr("ada@example.com")},
		{"missing at", strPtr("ada.example.com"), nil},
		{"missing tld", strPtr("ada@localhost"), nil},
		{"garbage", strPtr("not an email"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.input))
		})
	}
}

func TestNormalizeCountryCode(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  *string
	}{
		{"nil input", nil, nil},
		{"empty string", strPtr("  "), nil},
		{"missing plus", strPtr("49"), strPtr("+49")},
		{"existing plus", strPtr("+49"), strPtr("+49")},
		{"trimmed", strPtr(" 1 "), strPtr("+1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCountryCode(tt.input))
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  *string
	}{
		{"nil input", nil, nil},
		{"empty string", strPtr(""), nil},
		{"single digit month slash", strPtr("7/2021"), strPtr("2021-07")},
		{"two digit month slash", strPtr("11/2021"), strPtr("2021-11")},
		{"single digit month dash", strPtr("3-2019"), strPtr("2019-03")},
		{"already normalized", strPtr("2023-04"), strPtr("2023-04")},
		{"bare year", strPtr("2023"), strPtr("2023-01")},
		{"present lowercase", strPtr("present"), strPtr("present")},
		{"present mixed case", strPtr("Present"), strPtr("present")},
		{"present uppercase", strPtr("PRESENT"), strPtr("present")},
		{"month out of range passes through", strPtr("14/2023"), strPtr("14/2023")},
		{"unrecognized shape passes through", strPtr("March 2021"), strPtr("March 2021")},
		{"full date passes through", strPtr("2021-03-15"), strPtr("2021-03-15")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.input))
		})
	}
}

func TestNormalizeDateRoundTrip(t *testing.T) {
	// Every valid month/year combination must zero-pad correctly.
	for month := 1; month <= 12; month++ {
		input := strPtr(fmt.Sprintf("%d/2022", month))
		got := NormalizeDate(input)
		require.NotNil(t, got)
		assert.Equal(t, fmt.Sprintf("2022-%02d", month), *got)
	}
}
