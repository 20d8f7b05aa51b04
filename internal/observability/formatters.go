// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-profiler/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCandidateRecord outputs a human-readable summary of the extracted
// candidate record.
func (p *Printer) PrintCandidateRecord(rec *types.CandidateRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:   %s\n", joinName(rec.FirstName, rec.LastName)))
	sb.WriteString(fmt.Sprintf("Email:  %s\n", strOrDash(rec.Email)))
	if rec.YearsOfExperience != nil {
		sb.WriteString(fmt.Sprintf("Years:  %d\n", *rec.YearsOfExperience))
	}
	sb.WriteString("\n")

	if len(rec.ProfessionalExperience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(rec.ProfessionalExperience), maxItemsToShow)
		for i := 0; i < count; i++ {
			entry := rec.ProfessionalExperience[i]
			sb.WriteString(fmt.Sprintf("  • %s", strOrDash(entry.PositionName)))
			if entry.CompanyName != nil {
				sb.WriteString(fmt.Sprintf(" @ %s", *entry.CompanyName))
			}
			sb.WriteString(fmt.Sprintf(" (%s – %s)\n", strOrDash(entry.StartDate), strOrDash(entry.EndDate)))
		}
		if len(rec.ProfessionalExperience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rec.ProfessionalExperience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(rec.TechnicalSkills) > 0 {
		names := make([]string, 0, len(rec.TechnicalSkills))
		for _, skill := range rec.TechnicalSkills {
			names = append(names, skill.Name)
		}
		skills := strings.Join(names, ", ")
		if len(skills) > 45 {
			skills = skills[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Skills: %s\n", skills))
	}

	if len(rec.FunctionalExpertise) > 0 {
		sb.WriteString(fmt.Sprintf("Expertise: %s\n", strings.Join(rec.FunctionalExpertise, ", ")))
	}

	p.printBox("CANDIDATE RECORD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintChangeLog outputs the corrections and inferences applied to a record.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintChangeLog(log types.ChangeLog) {
	if log.Len() == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO CORRECTIONS APPLIED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Applied %d corrections:\n\n", log.Len()))

	entries := log.Entries()
	count := min(len(entries), maxItemsToShow*2)
	for i := 0; i < count; i++ {
		entry := entries[i]
		if len(entry) > 50 {
			entry = entry[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", entry))
	}
	if len(entries) > count {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(entries)-count))
	}

	p.printBox("CHANGE LOG", strings.TrimSuffix(sb.String(), "\n"))
}

func joinName(first, last *string) string {
	parts := make([]string, 0, 2)
	if first != nil {
		parts = append(parts, *first)
	}
	if last != nil {
		parts = append(parts, *last)
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, " ")
}

func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "—"
	}
	return *s
}
