package export

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-parser/internal/types"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		in                  string
		first, middle, last string
	}{
		{"", "", "", ""},
		{"Cher", "Cher", "", ""},
		{"John Doe", "John", "", "Doe"},
		{"Mary Jane Van Doe", "Mary", "Jane Van", "Doe"},
		{"  Ana   Lima  ", "Ana", "", "Lima"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, m, l := SplitName(tt.in)
			assert.Equal(t, tt.first, f)
			assert.Equal(t, tt.middle, m)
			assert.Equal(t, tt.last, l)
		})
	}
}

func TestFlatten(t *testing.T) {
	months := 24
	r := types.NewResume()
	r.Contact = types.Contact{Name: "John Q Doe", Email: "john@example.com", Phone: "+1 514-555-1234", Links: []string{"https://github.com/jdoe"}}
	r.Skills = []string{"Python", "SQL"}
	r.Languages = []string{"English", "French"}
	r.Experience = []types.ExperienceItem{{
		Title:   "Software Engineer",
		Company: "Example Inc",
		Dates:   types.DateSpan{Start: "2020-01", End: "2021-12", Months: &months},
		Bullets: []string{"Built APIs.", "Ran on-call."},
	}}
	r.Education = []types.EducationItem{
		{Degree: "BSc", Field: "Computer Science", School: "McGill University", Dates: types.DateSpan{Start: "2015-09", End: "2019-05"}},
		{Degree: "MSc", Dates: types.DateSpan{Start: "2022-01", End: types.Present}},
	}
	r.Projects = []types.ProjectItem{{Title: "StockAI", TechStack: []string{"Python", "Pandas"}, Bullets: []string{"Built a backtester."}}}
	r.RawText = "raw"

	rec := Flatten(r)
	assert.Equal(t, "John", rec.FirstName)
	assert.Equal(t, "Q", rec.MiddleName)
	assert.Equal(t, "Doe", rec.LastName)
	assert.Equal(t, []string{"https://github.com/jdoe"}, rec.Links)
	assert.Equal(t, "Python, SQL", rec.Skills)
	assert.Equal(t, "English, French", rec.Languages)

	require.Len(t, rec.Experience, 1)
	assert.Equal(t, "Example Inc", rec.Experience[0].CompanyName)
	assert.Equal(t, "Built APIs.\nRan on-call.", rec.Experience[0].Description)
	require.NotNil(t, rec.Experience[0].DurationMonths)
	assert.Equal(t, 24, *rec.Experience[0].DurationMonths)

	require.Len(t, rec.Education, 2)
	assert.Equal(t, "2015", rec.Education[0].StartYear)
	assert.Equal(t, "2019", rec.Education[0].EndYear)
	assert.Equal(t, types.Present, rec.Education[1].EndYear)

	require.Len(t, rec.Projects, 1)
	assert.Equal(t, "Python, Pandas", rec.Projects[0].TechStack)
	assert.Equal(t, "raw", rec.RawText)
}

func TestFlatten_DoesNotAliasInput(t *testing.T) {
	r := types.NewResume()
	r.Contact.Links = []string{"https://a.example"}
	rec := Flatten(r)
	rec.Links[0] = "changed"
	assert.Equal(t, "https://a.example", r.Contact.Links[0])
}

func TestFlatten_Nil(t *testing.T) {
	data, err := json.Marshal(Flatten(nil))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"experience":[]`)
	assert.Contains(t, string(data), `"links":[]`)
}
