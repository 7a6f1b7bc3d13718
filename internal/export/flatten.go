// Package export adapts an assembled résumé to the flat record stored by
// candidate backends.
package export

import (
	"strings"

	"github.com/jonathan/ats-parser/internal/types"
)

// Experience is one flattened work history row
type Experience struct {
	Position       string `json:"position"`
	CompanyName    string `json:"company_name"`
	Location       string `json:"location"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	DurationMonths *int   `json:"duration_months"`
	Description    string `json:"description"`
}

// Education is one flattened degree row
type Education struct {
	Level      string `json:"level"`
	Field      string `json:"field"`
	SchoolName string `json:"school_name"`
	Location   string `json:"location"`
	StartYear  string `json:"start_year"`
	EndYear    string `json:"end_year"`
}

// Project is one flattened project row
type Project struct {
	Title       string   `json:"title"`
	Role        string   `json:"role"`
	TechStack   string   `json:"tech_stack"`
	Links       []string `json:"links"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Description string   `json:"description"`
}

// Record is the flat candidate record
type Record struct {
	Name       string       `json:"name"`
	FirstName  string       `json:"first_name"`
	MiddleName string       `json:"middle_name"`
	LastName   string       `json:"last_name"`
	Phone      string       `json:"phone"`
	Email      string       `json:"email"`
	Links      []string     `json:"links"`
	Summary    string       `json:"summary"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
	Skills     string       `json:"skills"`
	Languages  string       `json:"languages"`
	RawText    string       `json:"raw_text"`
}

// SplitName splits a full name into first, middle and last parts. Two
// words give first and last; extra words go to the middle name.
func SplitName(full string) (first, middle, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", "", ""
	case 1:
		return parts[0], "", ""
	case 2:
		return parts[0], "", parts[1]
	}
	return parts[0], strings.Join(parts[1:len(parts)-1], " "), parts[len(parts)-1]
}

// Flatten converts r into a Record. A nil résumé gives an empty record.
func Flatten(r *types.Resume) Record {
	rec := Record{
		Links:      []string{},
		Education:  []Education{},
		Experience: []Experience{},
		Projects:   []Project{},
	}
	if r == nil {
		return rec
	}

	rec.Name = strings.TrimSpace(r.Contact.Name)
	rec.FirstName, rec.MiddleName, rec.LastName = SplitName(rec.Name)
	rec.Phone = r.Contact.Phone
	rec.Email = r.Contact.Email
	rec.Links = append(rec.Links, r.Contact.Links...)
	rec.Summary = r.Summary

	for _, e := range r.Experience {
		rec.Experience = append(rec.Experience, Experience{
			Position:       e.Title,
			CompanyName:    e.Company,
			Location:       e.Location,
			StartDate:      e.Dates.Start,
			EndDate:        e.Dates.End,
			DurationMonths: e.Dates.Months,
			Description:    description(e.Bullets),
		})
	}
	for _, ed := range r.Education {
		rec.Education = append(rec.Education, Education{
			Level:      ed.Degree,
			Field:      ed.Field,
			SchoolName: ed.School,
			Location:   ed.Location,
			StartYear:  year(ed.Dates.Start),
			EndYear:    year(ed.Dates.End),
		})
	}
	for _, p := range r.Projects {
		rec.Projects = append(rec.Projects, Project{
			Title:       p.Title,
			Role:        p.Role,
			TechStack:   strings.Join(p.TechStack, ", "),
			Links:       append([]string{}, p.Links...),
			StartDate:   p.Dates.Start,
			EndDate:     p.Dates.End,
			Description: description(p.Bullets),
		})
	}

	rec.Skills = strings.Join(r.Skills, ", ")
	rec.Languages = strings.Join(r.Languages, ", ")
	rec.RawText = r.RawText
	return rec
}

func description(bullets []string) string {
	return strings.TrimSpace(strings.Join(bullets, "\n"))
}

// year keeps the YYYY prefix of a year-month; "Present" keeps its label
func year(ym string) string {
	if ym == types.Present {
		return ym
	}
	if len(ym) >= 4 {
		return ym[:4]
	}
	return ym
}
