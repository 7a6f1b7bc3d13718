package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/ats-parser/internal/prompts"
)

// ExtractionSchema describes one kind of résumé entry the model returns
// as a JSON array.
type ExtractionSchema struct {
	Name        string        // e.g. "Experience"
	Description string        // task instruction, sent as the system instruction
	Fields      []SchemaField // shape of each array element
}

// SchemaField is one key of an extracted entry
type SchemaField struct {
	Name        string
	Type        string // type hint rendered into the prompt, "string" when empty
	Description string
	Required    bool
}

// NewRequest builds the model request for extracting schema entries from text
func NewRequest(schema ExtractionSchema, text string, tier ModelTier) Request {
	return Request{
		Instruction: schema.Description,
		Prompt:      BuildExtractionPrompt(schema, text),
		Tier:        tier,
	}
}

// BuildExtractionPrompt renders the element shape, the output rules and the
// quoted input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString("Return ONLY a valid JSON array. Each element must match this structure:\n[\n  {\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		fmt.Fprintf(&sb, "    %q: %s", field.Name, typeHint)
		if field.Required {
			sb.WriteString(" (required)")
		}
		if field.Description != "" {
			fmt.Fprintf(&sb, " // %s", field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  }\n]\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Copy values from the text, do not invent or summarize.\n")
	sb.WriteString("- Use null for anything the text does not state.\n")
	sb.WriteString("- Return [] when the text contains no entries.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

var datesField = SchemaField{
	Name:        "dates",
	Type:        `{"start": "YYYY-MM" | null, "end": "YYYY-MM" | "Present" | null}`,
	Description: "Employment or study period",
	Required:    true,
}

// ExperienceSchema returns the extraction schema for work history entries
func ExperienceSchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "Experience",
		Description: prompts.MustGet(prompts.ExtractionFile, "experience-preamble"),
		Fields: []SchemaField{
			{Name: "title", Type: `"string"`, Description: "Job title", Required: true},
			{Name: "company", Type: `"string"`, Description: "Employer name", Required: true},
			{Name: "location", Type: `"string"`, Description: "City, region or Remote"},
			datesField,
			{Name: "bullets", Type: `["string"]`, Description: "Responsibilities and achievements, verbatim", Required: true},
			{Name: "technologies", Type: `["string"]`, Description: "Tools and technologies used in this job"},
			{Name: "confidence", Type: "number", Description: "0 to 1, how sure you are this is a real job entry"},
		},
	}
}

// EducationSchema returns the extraction schema for degrees and diplomas
func EducationSchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "Education",
		Description: prompts.MustGet(prompts.ExtractionFile, "education-preamble"),
		Fields: []SchemaField{
			{Name: "degree", Type: `"string"`, Description: "Degree or diploma, e.g. BSc, DEC", Required: true},
			{Name: "field", Type: `"string"`, Description: "Field of study"},
			{Name: "school", Type: `"string"`, Description: "Institution name", Required: true},
			{Name: "location", Type: `"string"`},
			datesField,
			{Name: "gpa", Type: `"string" | null`},
		},
	}
}
