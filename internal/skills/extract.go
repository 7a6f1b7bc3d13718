// Package skills extracts canonical skill labels from the SKILLS section.
package skills

import (
	"strings"

	"github.com/jonathan/ats-parser/internal/canon"
	"github.com/jonathan/ats-parser/internal/dates"
	"github.com/jonathan/ats-parser/internal/heuristics"
	"github.com/jonathan/ats-parser/internal/sections"
	"github.com/jonathan/ats-parser/internal/types"
)

const (
	// MaxSkills caps the extracted list
	MaxSkills = 100

	sentenceLen       = 100
	regionSentenceLen = 140
)

// Extractor tokenizes skill lines and canonicalizes each token
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

// Extract returns the deduplicated skills listed in lines. Consumption stops
// at a date range, a heading for another section, or an achievement sentence.
func (e *Extractor) Extract(lines []string) []string {
	out := []string{}
	for _, raw := range lines {
		s := heuristics.Normalize(raw)
		if s == "" {
			continue
		}
		if stopsSkills(s, sentenceLen) {
			break
		}
		for _, tok := range canon.Tokens(s) {
			if canon.IsSoftSkill(tok) {
				continue
			}
			label, ok := e.canon.Accept(tok)
			if !ok {
				continue
			}
			out = canon.AppendUnique(out, label)
			if len(out) == MaxSkills {
				return out
			}
		}
	}
	return out
}

// ExtractFromText finds the first skills heading in text and extracts from
// the lines under it. It returns an empty list when there is no such heading.
func (e *Extractor) ExtractFromText(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		sec, tail, ok := sections.Classify(heuristics.Normalize(line))
		if !ok || sec != types.SectionSkills {
			continue
		}
		var region []string
		if tail != "" {
			region = append(region, tail)
		}
		for _, next := range lines[i+1:] {
			s := heuristics.Normalize(next)
			if s == "" {
				continue
			}
			if other, _, isHead := sections.Classify(s); isHead && other != types.SectionSkills {
				break
			}
			if isAchievement(s, regionSentenceLen) {
				break
			}
			region = append(region, s)
		}
		return e.Extract(region)
	}
	return []string{}
}

func stopsSkills(s string, maxLen int) bool {
	if dates.HasRange(s) || isAchievement(s, maxLen) {
		return true
	}
	sec, tail, ok := sections.Classify(s)
	return ok && sec != types.SectionSkills && tail == ""
}

func isAchievement(s string, maxLen int) bool {
	return len(s) > maxLen && heuristics.VerbHint.MatchString(s)
}
