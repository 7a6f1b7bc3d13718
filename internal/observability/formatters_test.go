package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/ats-parser/internal/types"
)

func TestPrintResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	months := 12
	r := types.NewResume()
	r.Contact = types.Contact{Name: "John Doe", Email: "john@example.com", Links: []string{}}
	r.Skills = []string{"Python", "SQL", "Flask"}
	r.Experience = []types.ExperienceItem{{
		Title:      "Software Engineer",
		Company:    "Example Inc",
		Dates:      types.DateSpan{Start: "2021-01", End: "2021-12", Months: &months},
		Bullets:    []string{"Built APIs."},
		Confidence: 0.6,
	}}
	r.Projects = []types.ProjectItem{{Title: "StockAI", TechStack: []string{"Python", "Pandas"}}}
	r.Flags.UsedOCR = true
	r.Flags.OCRPages = 2

	p.PrintResume(r)
	output := buf.String()

	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "John Doe")
	assert.Contains(t, output, "Phone:    -")
	assert.Contains(t, output, "Skills (3): Python, SQL, Flask")
	assert.Contains(t, output, "Software Engineer @ Example Inc")
	assert.Contains(t, output, "2021-01 → 2021-12 (12 mo)")
	assert.Contains(t, output, "StockAI [Python, Pandas]")
	assert.Contains(t, output, "OCR pages: 2")
}

func TestPrintResume_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResume(nil)
	assert.Empty(t, buf.String())
}

func TestPrintResume_ManyItems(t *testing.T) {
	var buf bytes.Buffer
	r := types.NewResume()
	for i := 0; i < 7; i++ {
		r.Experience = append(r.Experience, types.ExperienceItem{Title: "Dev"})
	}
	NewPrinter(&buf).PrintResume(r)
	assert.Contains(t, buf.String(), "... and 2 more")
	assert.Contains(t, buf.String(), "no dates")
}

func TestPrintSections(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSections(map[string]int{"SKILLS": 1, "EXPERIENCE": 4, "OTHER": 2}, []string{"OTHER", "SKILLS", "EXPERIENCE"})
	output := buf.String()

	assert.Contains(t, output, "SECTIONS")
	assert.Less(t, strings.Index(output, "OTHER"), strings.Index(output, "SKILLS"))
	assert.Less(t, strings.Index(output, "SKILLS"), strings.Index(output, "EXPERIENCE"))
	assert.Contains(t, output, "4 lines")

	buf.Reset()
	p.PrintSections(map[string]int{"SKILLS": 1, "EXPERIENCE": 4}, nil)
	assert.Less(t, strings.Index(buf.String(), "EXPERIENCE"), strings.Index(buf.String(), "SKILLS"))

	buf.Reset()
	p.PrintSections(nil, nil)
	assert.Contains(t, buf.String(), "No content found")
}

func TestPrintWarnings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintWarnings([]string{"EDUCATION section found but no items extracted"})
	assert.Contains(t, buf.String(), "1 warning(s)")
	assert.Contains(t, buf.String(), "1. EDUCATION section found")

	buf.Reset()
	p.PrintWarnings(nil)
	assert.Contains(t, buf.String(), "No warnings")
}

func TestPrintSkills(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSkills([]string{"Go", "SQL"}, true)

	assert.Contains(t, buf.String(), "Mode: allowlist, 2 skill(s)")
	assert.Contains(t, buf.String(), "• SQL")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	r := types.NewResume()
	r.Contact.Name = "Émilie Bélanger-Côté With A Name Long Enough To Be Truncated In The Box"
	p.PrintResume(r)
	output := buf.String()

	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.Contains(t, output, "...")
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
}
