// Package projects parses the PROJECTS section into project records.
package projects

import (
	"regexp"
	"strings"

	"github.com/jonathan/ats-parser/internal/canon"
	"github.com/jonathan/ats-parser/internal/contacts"
	"github.com/jonathan/ats-parser/internal/dates"
	"github.com/jonathan/ats-parser/internal/experience"
	"github.com/jonathan/ats-parser/internal/heuristics"
	"github.com/jonathan/ats-parser/internal/sections"
	"github.com/jonathan/ats-parser/internal/types"
)

var (
	roleLabel = regexp.MustCompile(`(?i)^role\s*[:\-–—]\s*(.+)$`)
	linkLabel = regexp.MustCompile(`(?i)^(?:links?|urls?|github|demo|repo(?:sitory)?|website)\s*[:\-–—]\s*(.*)$`)

	// a job title ends in a role noun: "Project Manager", "Lead Engineer"
	jobTitle = regexp.MustCompile(`(?i)\b(?:manager|engineer|developer|analyst|consultant|architect|intern|specialist|coordinator|administrator|scientist|designer|officer|technician|programmer|director|lead|owner)$`)
	atSep    = regexp.MustCompile(`(?i)\s+at\s+|\s*@\s*`)

	// words that mark the right side of a header as a project, not an employer
	projectWord = regexp.MustCompile(`(?i)\b(?:projects?|apps?|application|tools?|toolkit|cli|clone|library|lib|game|bot|plugin|extension|website|site|dashboard|prototype|hackathon|capstone|thesis|open[- ]source)\b`)
)

// maxPlainHeaderWords bounds a header line that has no separator or dates
const maxPlainHeaderWords = 6

// Extractor parses project blocks
type Extractor struct {
	canon *canon.Canonicalizer
}

// New creates an extractor; a nil canonicalizer runs in heuristic mode
func New(c *canon.Canonicalizer) *Extractor {
	if c == nil {
		c = canon.New(nil)
	}
	return &Extractor{canon: c}
}

type block struct {
	header string
	body   []string
}

// Extract splits lines into blocks, each opened by a header line, and parses
// every block that is not a job entry in disguise.
func (e *Extractor) Extract(lines []string) []types.ProjectItem {
	out := []types.ProjectItem{}
	for _, b := range segment(lines) {
		if e.IsJobHeader(dates.Strip(b.header)) {
			continue
		}
		if p, ok := e.parse(b); ok {
			out = append(out, p)
		}
	}
	return out
}

// IsJobHeader reports whether a header line is a job title followed by a
// company, as in "Project Manager — ABC Corp" or "Lead Engineer at ABC". A
// right side that names a kind of project or resolves as tech keeps the line
// a project: "Password Manager — Go CLI".
func (e *Extractor) IsJobHeader(header string) bool {
	var left, right string
	if loc := atSep.FindStringIndex(header); loc != nil && loc[1] < len(header) {
		left, right = header[:loc[0]], header[loc[1]:]
	} else if l, r, ok := experience.SplitDash(header); ok {
		left, right = l, r
	}
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if left == "" || right == "" || !jobTitle.MatchString(left) {
		return false
	}
	if projectWord.MatchString(right) {
		return false
	}
	_, tech := e.resolveAll(right)
	return !tech
}

func segment(lines []string) []block {
	var kept []string
	for _, raw := range lines {
		s := heuristics.Normalize(raw)
		if s == "" {
			continue
		}
		if _, tail, ok := sections.Classify(s); ok && tail == "" {
			continue
		}
		kept = append(kept, s)
	}

	var blocks []block
	var cur *block
	for i, s := range kept {
		if isHeader(s) && (cur == nil || (len(cur.body) > 0 && opensBlock(kept, i))) {
			blocks = append(blocks, block{header: s})
			cur = &blocks[len(blocks)-1]
			continue
		}
		if cur == nil {
			// body before any header has nothing to attach to
			continue
		}
		cur.body = append(cur.body, s)
	}
	return blocks
}

// opensBlock reports whether kept[i], found inside a block body, starts the
// next project. It must carry a separator or a date range, or be a short name
// followed by a bullet, a label or a bare date line.
func opensBlock(kept []string, i int) bool {
	s := kept[i]
	if dates.HasRange(s) {
		return true
	}
	if _, _, ok := experience.SplitDash(dates.Strip(s)); ok {
		return true
	}
	if len(strings.Fields(s)) > maxPlainHeaderWords || i+1 >= len(kept) {
		return false
	}
	next := kept[i+1]
	if experience.IsBullet(next) || isLabel(next) {
		return true
	}
	return dates.HasRange(next) && dates.Strip(next) == ""
}

// isHeader reports whether s can open a project block
func isHeader(s string) bool {
	if experience.IsBullet(s) || isLabel(s) || strings.HasSuffix(s, ".") {
		return false
	}
	rest := dates.Strip(s)
	if rest == "" || heuristics.IsURL(rest) {
		return false
	}
	if _, _, dash := experience.SplitDash(rest); !dash && heuristics.VerbHint.MatchString(firstWord(rest)) {
		return false
	}
	return true
}

func isLabel(s string) bool {
	if _, ok := experience.TechLine(s); ok {
		return true
	}
	return roleLabel.MatchString(s) || linkLabel.MatchString(s)
}

func (e *Extractor) parse(b block) (types.ProjectItem, bool) {
	p := types.ProjectItem{
		TechStack: []string{},
		Links:     []string{},
		Bullets:   []string{},
	}

	for _, l := range append([]string{b.header}, b.body...) {
		for _, link := range contacts.Links(l) {
			p.Links = canon.AppendUnique(p.Links, link)
		}
	}

	if dates.HasRange(b.header) {
		p.Dates = dates.Parse(b.header)
	}
	p.Title = strings.Trim(dates.Strip(b.header), " -–—|:")
	if left, right, ok := experience.SplitDash(p.Title); ok {
		p.Title = left
		if tech, all := e.resolveAll(right); all {
			for _, t := range tech {
				p.TechStack = canon.AppendUnique(p.TechStack, t)
			}
		} else {
			p.Role = right
		}
	}

	var role string
	for _, l := range b.body {
		line := heuristics.StripBullet(l)
		if blob, ok := experience.TechLine(line); ok {
			for _, tok := range canon.Tokens(blob) {
				if label, ok := e.canon.Accept(tok); ok {
					p.TechStack = canon.AppendUnique(p.TechStack, label)
				}
			}
			continue
		}
		if m := roleLabel.FindStringSubmatch(line); m != nil {
			role = strings.TrimSpace(m[1])
			continue
		}
		if linkLabel.MatchString(line) {
			continue
		}
		if dates.HasRange(line) && strings.TrimSpace(dates.Strip(line)) == "" {
			if p.Dates.IsZero() {
				p.Dates = dates.Parse(line)
			}
			continue
		}
		if p.Dates.IsZero() && dates.HasRange(line) {
			p.Dates = dates.Parse(line)
		}
		if line != "" {
			p.Bullets = append(p.Bullets, line)
		}
	}
	if role != "" {
		p.Role = role
	}

	return p, p.Title != ""
}

// resolveAll canonicalizes every token of s, reporting whether all resolved
func (e *Extractor) resolveAll(s string) ([]string, bool) {
	toks := canon.Tokens(s)
	if len(toks) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		label, ok := e.canon.Resolve(tok)
		if !ok {
			return nil, false
		}
		out = append(out, label)
	}
	return out, true
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i > 0 {
		return s[:i]
	}
	return s
}
