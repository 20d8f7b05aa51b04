// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "FieldRefinement")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string   // JSON field name
	Type        string   // Type hint: "string", "[]string", "map[string]string"
	Description string   // Description for the LLM
	Required    bool     // Whether this field is required
	Options     []string // Closed set of allowed values, if any
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if len(field.Options) > 0 {
			sb.WriteString(fmt.Sprintf(" // one of: %s", strings.Join(field.Options, ", ")))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- If the text does not contain the information, use null.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// FieldRefinementSchema returns the extraction schema for a targeted second
// pass over a single uncertain field. The output is constrained to one key
// whose value must come from the given closed option set.
func FieldRefinementSchema(fieldName string, options []string) ExtractionSchema {
	return ExtractionSchema{
		Name: "FieldRefinement",
		Description: fmt.Sprintf(`You are an expert resume parser re-examining a single field.
An earlier extraction pass was uncertain about the value of %q.
Re-read the resume text below and determine the correct value.`, fieldName),
		Fields: []SchemaField{
			{
				Name:        fieldName,
				Type:        "\"string\"",
				Description: "The corrected value, or null if the resume does not state it",
				Required:    true,
				Options:     options,
			},
		},
	}
}
