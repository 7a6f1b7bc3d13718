package types

// Section names a résumé section bucket
type Section string

// Section constants
const (
	SectionSummary    Section = "SUMMARY"
	SectionSkills     Section = "SKILLS"
	SectionExperience Section = "EXPERIENCE"
	SectionProjects   Section = "PROJECTS"
	SectionEducation  Section = "EDUCATION"
	SectionCerts      Section = "CERTS"
	SectionLanguages  Section = "LANGUAGES"
	SectionOther      Section = "OTHER"
)

// AllSections lists every section in canonical order
var AllSections = []Section{
	SectionSummary,
	SectionSkills,
	SectionExperience,
	SectionProjects,
	SectionEducation,
	SectionCerts,
	SectionLanguages,
	SectionOther,
}

// SectionBuckets maps sections to their lines, remembering the order in
// which sections first appeared in the document.
type SectionBuckets struct {
	order []Section
	lines map[Section][]string
}

// NewSectionBuckets creates an empty bucket set
func NewSectionBuckets() *SectionBuckets {
	return &SectionBuckets{lines: make(map[Section][]string)}
}

// Open registers a section so it is reported even before it receives lines
func (b *SectionBuckets) Open(sec Section) {
	if _, ok := b.lines[sec]; !ok {
		b.order = append(b.order, sec)
		b.lines[sec] = []string{}
	}
}

// Append adds a line to a section
func (b *SectionBuckets) Append(sec Section, line string) {
	b.Open(sec)
	b.lines[sec] = append(b.lines[sec], line)
}

// Lines returns the lines in a section (nil when absent)
func (b *SectionBuckets) Lines(sec Section) []string {
	return b.lines[sec]
}

// Has reports whether the section was seen
func (b *SectionBuckets) Has(sec Section) bool {
	_, ok := b.lines[sec]
	return ok
}

// Sections returns the seen sections in first-appearance order
func (b *SectionBuckets) Sections() []Section {
	out := make([]Section, len(b.order))
	copy(out, b.order)
	return out
}

// Counts returns the number of lines per seen section
func (b *SectionBuckets) Counts() map[string]int {
	out := make(map[string]int, len(b.lines))
	for sec, lines := range b.lines {
		out[string(sec)] = len(lines)
	}
	return out
}
