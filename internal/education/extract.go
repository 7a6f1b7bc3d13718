// Package education groups education lines into degree records.
package education

import (
	"regexp"
	"strings"

	"github.com/jonathan/ats-parser/internal/dates"
	"github.com/jonathan/ats-parser/internal/heuristics"
	"github.com/jonathan/ats-parser/internal/types"
)

const lookAhead = 3

var (
	degreeDash = regexp.MustCompile(`\s(?:–|—|-|\|)\s`)
	inSplit    = regexp.MustCompile(`(?i)\s+in\s+`)
	gpaRe      = regexp.MustCompile(`(?i)\b(?:c?gpa|grade point average)\s*[:\-]?\s*(\d(?:[.,]\d{1,2})?(?:\s*/\s*\d(?:[.,]\d{1,2})?)?)`)
	edgeTrim   = " -–—|,;:·"
)

// Extractor parses education blocks. It holds no state.
type Extractor struct{}

// New creates an extractor
func New() *Extractor {
	return &Extractor{}
}

// Extract anchors on degree keywords or date ranges, looks ahead for the
// school and dates, then merges partial neighbours.
func (e *Extractor) Extract(raw []string) []types.EducationItem {
	var lines []string
	for _, l := range raw {
		if s := heuristics.Normalize(l); s != "" {
			lines = append(lines, s)
		}
	}

	var items []types.EducationItem
	floor := 0
	for i := 0; i < len(lines); {
		line := lines[i]
		hasDegree := heuristics.DegreeHint.MatchString(line)
		if !hasDegree && !dates.HasRange(line) {
			i++
			continue
		}

		item := parseHeader(line)
		j := i + 1
		for ; j < len(lines) && j <= i+lookAhead; j++ {
			cand := lines[j]
			if item.GPA == nil {
				if gpa, ok := findGPA(cand); ok {
					item.GPA = &gpa
					continue
				}
			}
			if item.School == "" && LooksLikeSchool(cand) {
				item.School, item.Location = SplitSchoolLocation(dates.Strip(cand))
				if item.Dates.IsZero() {
					item.Dates = dates.Parse(cand)
				}
				continue
			}
			if item.Dates.IsZero() {
				if span := dates.Parse(cand); !span.IsZero() {
					item.Dates = span
					continue
				}
			}
			if heuristics.DegreeHint.MatchString(cand) {
				break
			}
		}

		if item.School == "" && i-1 >= floor && LooksLikeSchool(lines[i-1]) {
			item.School, item.Location = SplitSchoolLocation(lines[i-1])
		}

		items = append(items, item)
		floor = j
		if j <= i {
			j = i + 1
		}
		i = j
	}

	return dropEmpty(mergePartials(items))
}

// LooksLikeSchool reports whether line names an institution rather than a credential
func LooksLikeSchool(line string) bool {
	return heuristics.SchoolSuffix.MatchString(line) && !heuristics.DegreeHint.MatchString(line)
}

// SplitSchoolLocation splits "LaSalle College, Montreal, QC" on its first comma
func SplitSchoolLocation(s string) (school, location string) {
	s = strings.Trim(heuristics.Normalize(s), edgeTrim)
	if left, right, ok := strings.Cut(s, ","); ok {
		return strings.TrimSpace(left), strings.TrimSpace(right)
	}
	return s, ""
}

// SplitDegreeField splits "Degree – Field" or "Degree in Field"
func SplitDegreeField(s string) (degree, field string) {
	s = strings.Trim(heuristics.Normalize(s), edgeTrim)
	if parts := degreeDash.Split(s, 2); len(parts) == 2 {
		return strings.Trim(parts[0], edgeTrim), strings.Trim(parts[1], edgeTrim)
	}
	if loc := inSplit.FindStringIndex(s); loc != nil && heuristics.DegreeHint.MatchString(s[:loc[0]]) {
		return strings.Trim(s[:loc[0]], edgeTrim), strings.Trim(s[loc[1]:], edgeTrim)
	}
	return s, ""
}

func parseHeader(line string) types.EducationItem {
	item := types.EducationItem{Dates: dates.Parse(line)}
	s := dates.Strip(line)
	if gpa, ok := findGPA(s); ok {
		item.GPA = &gpa
		s = strings.Trim(heuristics.Normalize(gpaRe.ReplaceAllString(s, "")), edgeTrim)
	}
	if s == "" {
		return item
	}

	if LooksLikeSchool(s) {
		item.School, item.Location = SplitSchoolLocation(s)
		return item
	}

	// "McGill University — B.Sc. Computer Science" or "B.Sc., McGill University"
	if parts := degreeDash.Split(s, 2); len(parts) == 2 {
		left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		switch {
		case LooksLikeSchool(left) && heuristics.DegreeHint.MatchString(right):
			item.School = left
			item.Degree, item.Field = SplitDegreeField(right)
			return item
		case LooksLikeSchool(right):
			item.School, item.Location = SplitSchoolLocation(right)
			item.Degree, item.Field = SplitDegreeField(left)
			return item
		}
	}
	if left, right, ok := strings.Cut(s, ","); ok && LooksLikeSchool(right) {
		item.Degree, item.Field = SplitDegreeField(left)
		item.School, item.Location = SplitSchoolLocation(right)
		return item
	}

	item.Degree, item.Field = SplitDegreeField(s)
	return item
}

func findGPA(s string) (string, bool) {
	m := gpaRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return strings.ReplaceAll(m[1], " ", ""), true
}

// mergePartials joins a degree-only item with an adjacent school-only item
func mergePartials(items []types.EducationItem) []types.EducationItem {
	merged := make([]types.EducationItem, 0, len(items))
	for k := 0; k < len(items); k++ {
		cur := items[k]
		if k+1 < len(items) {
			next := items[k+1]
			forward := isDegreeOnly(cur) && isSchoolOnly(next)
			reverse := isDegreeOnly(next) && isSchoolOnly(cur)
			if forward || reverse {
				a, b := cur, next
				if reverse {
					a, b = next, cur
				}
				merged = append(merged, combine(a, b))
				k++
				continue
			}
		}
		merged = append(merged, cur)
	}
	return merged
}

func isDegreeOnly(it types.EducationItem) bool {
	return it.Degree != "" && it.School == ""
}

func isSchoolOnly(it types.EducationItem) bool {
	return it.Degree == "" && it.School != ""
}

// combine takes degree fields from a and school fields from b
func combine(a, b types.EducationItem) types.EducationItem {
	out := types.EducationItem{
		Degree:   firstNonEmpty(a.Degree, b.Degree),
		Field:    firstNonEmpty(a.Field, b.Field),
		School:   firstNonEmpty(b.School, a.School),
		Location: firstNonEmpty(b.Location, a.Location),
		Dates:    a.Dates,
		GPA:      a.GPA,
	}
	if out.Dates.Start == "" {
		out.Dates.Start = b.Dates.Start
	}
	if out.Dates.End == "" {
		out.Dates.End = b.Dates.End
	}
	out.Dates.Months = dates.Months(out.Dates.Start, out.Dates.End)
	if out.GPA == nil {
		out.GPA = b.GPA
	}
	return out
}

func dropEmpty(items []types.EducationItem) []types.EducationItem {
	out := []types.EducationItem{}
	for _, it := range items {
		if it.Degree != "" || it.Field != "" || it.School != "" {
			out = append(out, it)
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
