// Package experience groups work-history lines into experience items.
package experience

import (
	"strings"

	"github.com/jonathan/ats-parser/internal/canon"
	"github.com/jonathan/ats-parser/internal/dates"
	"github.com/jonathan/ats-parser/internal/heuristics"
	"github.com/jonathan/ats-parser/internal/sections"
	"github.com/jonathan/ats-parser/internal/types"
)

const (
	// ResolvedConfidence is assigned when a title or company was found
	ResolvedConfidence = 0.6
	// UnresolvedConfidence is assigned to items built from dates and bullets only
	UnresolvedConfidence = 0.55

	backwardWindow = 5
)

// Extractor runs the anchor / header / description state machine
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

// ExtractText runs Extract over every line of text
func (e *Extractor) ExtractText(text string) []types.ExperienceItem {
	return e.Extract(strings.Split(text, "\n"))
}

// Extract scans lines for date-range anchors and builds one item per anchor.
// With no anchors the result is empty.
func (e *Extractor) Extract(raw []string) []types.ExperienceItem {
	lines := normalize(raw)
	items := []types.ExperienceItem{}
	seen := make(map[string]struct{})

	floor := 0
	for i := 0; i < len(lines); {
		if !dates.HasRange(lines[i]) {
			i++
			continue
		}

		item := types.ExperienceItem{
			Dates:        dates.Parse(lines[i]),
			Bullets:      []string{},
			Technologies: []string{},
		}
		used := e.resolveHeader(lines, i, floor, &item)
		stop := e.gather(lines, i+1+used, &item)

		if item.Title != "" || item.Company != "" || len(item.Bullets) > 0 || len(item.Technologies) > 0 {
			item.Confidence = UnresolvedConfidence
			if item.Title != "" || item.Company != "" {
				item.Confidence = ResolvedConfidence
			}
			key := dedupKey(item)
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				items = append(items, item)
			}
		}

		floor = stop
		if stop <= i {
			stop = i + 1
		}
		i = stop
	}
	return items
}

// resolveHeader fills title and company for the anchor at lines[i] and
// returns how many lines after the anchor it consumed. Order: inline text
// on the anchor line, forward look, then backward look above the anchor.
// The backward look only runs when the first two found nothing.
func (e *Extractor) resolveHeader(lines []string, i, floor int, item *types.ExperienceItem) int {
	item.Title, item.Company = splitHeader(dates.Strip(lines[i]))
	if item.Title != "" || item.Company != "" {
		return 0
	}

	used := forwardLook(lines, i)
	if used > 0 {
		item.Title, item.Company = splitHeader(lines[i+1])
		if used == 2 {
			item.Company = lines[i+2]
		}
		return used
	}

	lo := max(i-backwardWindow, floor)
	if lo < i {
		item.Title, item.Company = backwardLook(lines[lo:i])
	}
	return 0
}

// gather collects description lines from start and returns the index of the
// first line that does not belong to the item.
func (e *Extractor) gather(lines []string, start int, item *types.ExperienceItem) int {
	j := start
	for ; j < len(lines); j++ {
		s := lines[j]
		if dates.HasRange(s) {
			break
		}
		if blob, ok := TechLine(s); ok {
			for _, label := range e.technologies(blob) {
				item.Technologies = canon.AppendUnique(item.Technologies, label)
			}
			continue
		}
		if sections.Opens(s) {
			break
		}
		if IsBullet(s) {
			if b := heuristics.StripBullet(s); b != "" {
				item.Bullets = append(item.Bullets, b)
			}
			continue
		}
		if j == start && item.Location == "" && LooksLikeLocation(s) {
			item.Location = s
			continue
		}
		if LooksLikeTitle(s) || LooksLikeCompany(s) || len(s) > maxDescriptionLen {
			break
		}
		item.Bullets = append(item.Bullets, s)
	}
	return j
}

func (e *Extractor) technologies(blob string) []string {
	var out []string
	for _, tok := range canon.Tokens(blob) {
		if label, ok := e.canon.Accept(tok); ok {
			out = canon.AppendUnique(out, label)
		}
	}
	return out
}

// splitHeader breaks an inline header into title and company
func splitHeader(s string) (string, string) {
	s = strings.Trim(heuristics.Normalize(s), edgeTrim)
	if s == "" {
		return "", ""
	}
	if title, company, ok := SplitAt(s); ok {
		return title, company
	}
	if left, right, ok := SplitDash(s); ok {
		if heuristics.TitleHint.MatchString(right) && !heuristics.TitleHint.MatchString(left) {
			return right, left
		}
		return left, right
	}
	if left, right, ok := strings.Cut(s, ", "); ok && LooksLikeTitle(left) && LooksLikeCompany(right) {
		return strings.TrimSpace(left), strings.TrimSpace(right)
	}
	if LooksLikeTitle(s) {
		return s, ""
	}
	if LooksLikeCompany(s) {
		return "", s
	}
	return "", ""
}

// forwardLook reports how many lines after the anchor form the header:
// 1 for "X at Y" or a lone title, 2 for a title followed by a company.
func forwardLook(lines []string, i int) int {
	if i+1 >= len(lines) || dates.HasRange(lines[i+1]) {
		return 0
	}
	next := lines[i+1]
	if _, _, ok := SplitAt(next); ok && !IsBullet(next) {
		return 1
	}
	if !LooksLikeTitle(next) {
		return 0
	}
	if i+2 < len(lines) && !dates.HasRange(lines[i+2]) && LooksLikeCompany(lines[i+2]) {
		return 2
	}
	return 1
}

// backwardLook picks the most recent company-like line in window and the
// title-like line above it. A company line that is itself a full header,
// as in "Backend Developer, Shopify Inc", supplies both.
func backwardLook(window []string) (title, company string) {
	ci := -1
	for k := len(window) - 1; k >= 0; k-- {
		if !IsBullet(window[k]) && LooksLikeCompany(window[k]) {
			if t, c := splitHeader(window[k]); t != "" && c != "" {
				return t, c
			}
			ci = k
			company = window[k]
			break
		}
	}
	for k := ci - 1; k >= 0 && ci > 0; k-- {
		if LooksLikeTitle(window[k]) {
			return window[k], company
		}
	}
	for k := len(window) - 1; k >= 0; k-- {
		if k != ci && LooksLikeTitle(window[k]) {
			return window[k], company
		}
	}
	return "", company
}

func normalize(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if s := heuristics.Normalize(l); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func dedupKey(it types.ExperienceItem) string {
	return strings.ToLower(it.Company) + "\x00" + strings.ToLower(it.Title) + "\x00" + it.Dates.Start + "\x00" + it.Dates.End
}
