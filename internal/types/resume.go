// Package types provides type definitions for structured data used throughout the ats-parser system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Contact holds the candidate's contact block
type Contact struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Location string   `json:"location"`
	Links    []string `json:"links"`
}

// ExperienceItem represents a single work history entry
type ExperienceItem struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Dates        DateSpan `json:"dates"`
	Bullets      []string `json:"bullets"`
	Technologies []string `json:"technologies"`
	Confidence   float64  `json:"confidence"`
}

// EducationItem represents a single degree or credential
type EducationItem struct {
	Degree   string   `json:"degree"`
	Field    string   `json:"field"`
	School   string   `json:"school"`
	Location string   `json:"location"`
	Dates    DateSpan `json:"dates"`
	GPA      *string  `json:"gpa"`
}

// ProjectItem represents a personal, academic or side project
type ProjectItem struct {
	Title     string   `json:"title"`
	Role      string   `json:"role"`
	TechStack []string `json:"tech_stack"`
	Links     []string `json:"links"`
	Dates     DateSpan `json:"dates"`
	Bullets   []string `json:"bullets"`
}

// Flags records how a résumé was parsed
type Flags struct {
	RunID         string         `json:"run_id,omitempty"`
	UsedOCR       bool           `json:"used_ocr"`
	OCRPages      int            `json:"ocr_pages"`
	SectionsFound map[string]int `json:"sections_found"`
	Warnings      []string       `json:"warnings"`
}

// Resume is the final structured record produced for one document
type Resume struct {
	Contact        Contact          `json:"contact"`
	Summary        string           `json:"summary"`
	Skills         []string         `json:"skills"`
	Experience     []ExperienceItem `json:"experience"`
	Education      []EducationItem  `json:"education"`
	Projects       []ProjectItem    `json:"projects"`
	Certifications []string         `json:"certifications"`
	Languages      []string         `json:"languages"`
	RawText        string           `json:"raw_text"`
	Flags          Flags            `json:"flags"`
}

// NewResume returns a Resume with every list initialized so it marshals
// to empty arrays rather than null.
func NewResume() *Resume {
	return &Resume{
		Contact:        Contact{Links: []string{}},
		Skills:         []string{},
		Experience:     []ExperienceItem{},
		Education:      []EducationItem{},
		Projects:       []ProjectItem{},
		Certifications: []string{},
		Languages:      []string{},
		Flags: Flags{
			SectionsFound: map[string]int{},
			Warnings:      []string{},
		},
	}
}

// AddWarning appends a human-readable warning to the flags
func (r *Resume) AddWarning(msg string) {
	r.Flags.Warnings = append(r.Flags.Warnings, msg)
}
