package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-parser/internal/types"
)

func TestValidateJSON_ValidJSON(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")
	jsonPath := filepath.Join("testdata", "valid_json.json")

	err := ValidateJSON(schemaPath, jsonPath)
	assert.NoError(t, err)
}

func TestValidateJSON_InvalidJSON_MissingField(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")
	jsonPath := filepath.Join("testdata", "invalid_json.json")

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_InvalidJSON_WrongType(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")
	jsonPath := filepath.Join("testdata", "type_mismatch.json")

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	schemaPath := "testdata/nonexistent_schema.json"
	jsonPath := filepath.Join("testdata", "valid_json.json")

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentJSON(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")
	jsonPath := "testdata/nonexistent_json.json"

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	// Create a temporary malformed JSON file
	tmpDir := t.TempDir()
	malformedJSON := filepath.Join(tmpDir, "malformed.json")
	err := os.WriteFile(malformedJSON, []byte("{ invalid json }"), 0644)
	require.NoError(t, err)

	schemaPath := filepath.Join("testdata", "valid_schema.json")

	valErr := ValidateJSON(schemaPath, malformedJSON)
	require.Error(t, valErr)
	// The error might be from gojsonschema parsing, not our code
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"name": "test"}`

	err := ValidateJSONString(schemaContent, jsonContent)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"age": 30}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
}

func TestValidateJSON_NestedFieldValidation(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string"}
				}
			}
		}
	}`

	jsonContent := `{"person": {}}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
	// Check that the field path includes nested field
	found := false
	for _, fieldErr := range validationErr.Errors {
		if fieldErr.Field != "" {
			found = true
			break
		}
	}
	assert.True(t, found, "should include field path in error")
}

func TestValidateJSON_ArrayValidation(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {
			"items": {
				"type": "array",
				"items": {"type": "string"},
				"minItems": 1
			}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"items": []}`)
	require.Error(t, err)
	assert.NoError(t, ValidateJSONString(schemaContent, `{"items": ["Go"]}`))
}

func TestValidateResume_Valid(t *testing.T) {
	r := types.NewResume()
	r.Contact.Name = "John Doe"
	r.Skills = []string{"Python", "SQL"}
	months := 18
	r.Experience = append(r.Experience, types.ExperienceItem{
		Title:        "Software Engineer",
		Company:      "Example Inc",
		Dates:        types.DateSpan{Start: "2021-01", End: "2022-06", Months: &months},
		Bullets:      []string{"Built APIs."},
		Technologies: []string{},
		Confidence:   0.6,
	})
	r.Projects = append(r.Projects, types.ProjectItem{
		Title:     "StockAI",
		Dates:     types.DateSpan{Start: "2024-01", End: types.Present},
		TechStack: []string{"Python"},
		Links:     []string{},
		Bullets:   []string{},
	})
	r.Education = append(r.Education, types.EducationItem{School: "LaSalle College"})

	assert.NoError(t, ValidateResume(r))
}

func TestValidateResume_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *types.Resume)
	}{
		{"bad start month", func(r *types.Resume) {
			r.Experience = append(r.Experience, types.ExperienceItem{Dates: types.DateSpan{Start: "2021-13"}})
		}},
		{"bad end marker", func(r *types.Resume) {
			r.Experience = append(r.Experience, types.ExperienceItem{Dates: types.DateSpan{End: "Current"}})
		}},
		{"confidence above one", func(r *types.Resume) {
			r.Experience = append(r.Experience, types.ExperienceItem{Confidence: 1.5})
		}},
		{"untitled project", func(r *types.Resume) {
			r.Projects = append(r.Projects, types.ProjectItem{})
		}},
		{"too many links", func(r *types.Resume) {
			r.Contact.Links = []string{"a", "b", "c", "d", "e", "f"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := types.NewResume()
			tt.mutate(r)
			err := ValidateResume(r)
			require.Error(t, err)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}

	assert.Error(t, ValidateResume(nil))
}

func TestValidateEmbedded_ModelItems(t *testing.T) {
	assert.NoError(t, ValidateEmbedded(ExperienceItemsSchema, `[{"title": "Dev", "company": "Acme", "bullets": "Built things", "dates": {"start": "2020-01"}}]`))
	assert.NoError(t, ValidateEmbedded(ExperienceItemsSchema, `[]`))
	assert.Error(t, ValidateEmbedded(ExperienceItemsSchema, `{"title": "Dev"}`))
	assert.Error(t, ValidateEmbedded(ExperienceItemsSchema, `[{"title": 42}]`))

	assert.NoError(t, ValidateEmbedded(EducationItemsSchema, `[{"degree": "BSc", "school": "McGill University", "gpa": 3.8}]`))
	assert.Error(t, ValidateEmbedded(EducationItemsSchema, `["BSc"]`))

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, ValidateEmbedded("missing.schema.json", `[]`), &loadErr)
}
