// Package sections splits normalized résumé text into section buckets.
package sections

import (
	"regexp"
	"strings"

	"github.com/jonathan/ats-parser/internal/types"
)

// heading describes the synonyms that open a section. Label-like headings
// ("Tech", "Tools", ...) double as inline field labels inside experience and
// project entries, so they only open a section there when they stand alone.
type heading struct {
	section   types.Section
	pattern   *regexp.Regexp
	labelLike bool
}

func headingRe(names string) *regexp.Regexp {
	// the name must be followed by end of line or a delimiter
	return regexp.MustCompile(`(?i)^(?:` + names + `)(?:\s*$|\s*[:\-–—]\s*(.*)$)`)
}

var headings = []heading{
	{section: types.SectionSummary, pattern: headingRe(`summary|professional\s+summary|career\s+summary|profile|professional\s+profile|about(?:\s+me)?|objective|career\s+objective`)},
	{section: types.SectionProjects, pattern: headingRe(`projects|(?:selected|personal|academic|side|key|notable|technical|relevant|open[\s-]source)\s+projects|project\s+(?:work|experience|highlights)`)},
	{section: types.SectionProjects, labelLike: true, pattern: headingRe(`project`)},
	{section: types.SectionExperience, pattern: headingRe(`experience|work\s+(?:history|experience)|employment(?:\s+history)?|professional\s+experience|relevant\s+experience|career\s+history|professional\s+background`)},
	{section: types.SectionEducation, pattern: headingRe(`education(?:\s+(?:and|&)\s+training)?|academic\s+(?:background|history|qualifications)|studies`)},
	{section: types.SectionSkills, pattern: headingRe(`skills?|technical\s+skills?|key\s+skills|skills\s+(?:and|&)\s+(?:tools|technologies|abilities)|core\s+(?:skills|competencies)|competenc(?:y|ies)|proficiencies|expertise|areas\s+of\s+expertise|tools\s*(?:&|and)\s*technologies|technologies\s*(?:&|and)\s*tools|programming\s+languages?|frameworks?\s*(?:&|and)\s*libraries`)},
	{section: types.SectionSkills, labelLike: true, pattern: headingRe(`technologies|tools|tooling|tech(?:nical)?(?:\s+stack)?|stack|frameworks|libraries|software|platforms|databases`)},
	{section: types.SectionCerts, pattern: headingRe(`certifications?|certificates|licen[cs]es?(?:\s+(?:and|&)\s+certifications?)?|courses(?:\s+(?:and|&)\s+certifications?)?`)},
	{section: types.SectionLanguages, pattern: headingRe(`languages?|spoken\s+languages|language\s+skills`)},
}

var (
	markdownDecor = regexp.MustCompile(`^#+\s*|^[*_]+|[*_]+$`)
	spaceRun      = regexp.MustCompile(`\s+`)
)

// NormalizeLine trims the line and collapses internal whitespace
func NormalizeLine(line string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
}

// Classify reports whether line is a section heading, returning the section
// and any content that follows the heading delimiter.
func Classify(line string) (types.Section, string, bool) {
	h, tail, ok := match(line)
	if !ok {
		return "", "", false
	}
	return h.section, tail, true
}

// IsHeading reports whether line is a heading, with or without trailing content
func IsHeading(line string) bool {
	_, _, ok := match(line)
	return ok
}

// Opens reports whether line starts a new section when it appears inside an
// entry. Label-like headings followed by content ("Tech: Go") do not.
func Opens(line string) bool {
	h, tail, ok := match(line)
	return ok && !(h.labelLike && tail != "")
}

func match(line string) (heading, string, bool) {
	s := markdownDecor.ReplaceAllString(NormalizeLine(line), "")
	s = strings.TrimSpace(s)
	if s == "" {
		return heading{}, "", false
	}
	for _, h := range headings {
		m := h.pattern.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		tail := strings.Trim(m[1], " :–—-")
		return h, tail, true
	}
	return heading{}, "", false
}

// Split assigns every non-empty line of text to exactly one section bucket.
// Heading lines switch the current bucket and contribute only their trailing
// content; lines before the first heading go to OTHER.
func Split(text string) *types.SectionBuckets {
	buckets := types.NewSectionBuckets()
	cur := types.SectionOther

	for _, raw := range strings.Split(text, "\n") {
		s := NormalizeLine(raw)
		if s == "" {
			continue
		}

		h, tail, ok := match(s)
		if ok && h.labelLike && tail != "" && (cur == types.SectionExperience || cur == types.SectionProjects) {
			ok = false
		}
		if !ok {
			buckets.Append(cur, s)
			continue
		}

		cur = h.section
		buckets.Open(cur)
		if tail != "" {
			buckets.Append(cur, tail)
		}
	}

	return buckets
}
