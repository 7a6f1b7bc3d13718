package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt(t *testing.T) {
	schema := ExtractionSchema{
		Name:        "Certification",
		Description: "Extract certifications.",
		Fields: []SchemaField{
			{Name: "name", Type: `"string"`, Required: true},
			{Name: "issuer", Description: "Issuing body"},
		},
	}
	prompt := BuildExtractionPrompt(schema, "AWS Certified Developer (2022)")

	assert.True(t, strings.HasPrefix(prompt, "Return ONLY a valid JSON array"))
	assert.NotContains(t, prompt, "Extract certifications.")
	assert.Contains(t, prompt, "    \"name\": \"string\" (required),\n")
	assert.Contains(t, prompt, "    \"issuer\": string // Issuing body\n")
	assert.Contains(t, prompt, "Return [] when the text contains no entries.")
	assert.Contains(t, prompt, "\"\"\"\nAWS Certified Developer (2022)\n\"\"\"")
}

func TestNewRequest(t *testing.T) {
	req := NewRequest(ExperienceSchema(), "Software Engineer at Example Inc", TierStandard)

	assert.Equal(t, ExperienceSchema().Description, req.Instruction)
	assert.NotEmpty(t, req.Instruction)
	assert.Contains(t, req.Prompt, "    \"company\": \"string\" (required)")
	assert.Contains(t, req.Prompt, "Software Engineer at Example Inc")
	assert.Equal(t, TierStandard, req.Tier)
}

func TestPredefinedSchemas(t *testing.T) {
	exp := ExperienceSchema()
	edu := EducationSchema()

	assert.NotEmpty(t, exp.Description)
	assert.NotEmpty(t, edu.Description)

	names := func(s ExtractionSchema) []string {
		var out []string
		for _, f := range s.Fields {
			out = append(out, f.Name)
		}
		return out
	}
	assert.Equal(t, []string{"title", "company", "location", "dates", "bullets", "technologies", "confidence"}, names(exp))
	assert.Equal(t, []string{"degree", "field", "school", "location", "dates", "gpa"}, names(edu))
}
