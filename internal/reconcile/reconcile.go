// Package reconcile merges experience lists produced by independent extractors.
package reconcile

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"

	"github.com/jonathan/ats-parser/internal/canon"
	"github.com/jonathan/ats-parser/internal/types"
)

// DefaultAcceptThreshold is the combined company + title score (out of 200)
// required before two items are treated as the same job.
const DefaultAcceptThreshold = 120

// indel distance: substitution costs as much as a delete plus an insert
var indel = levenshtein.NewParams().SubCost(2)

// Merger reconciles a rule-based list with a second candidate list
type Merger struct {
	Threshold int
}

// MergeExperience merges with DefaultAcceptThreshold
func MergeExperience(rule, other []types.ExperienceItem) []types.ExperienceItem {
	return Merger{Threshold: DefaultAcceptThreshold}.Merge(rule, other)
}

// Merge matches each rule item greedily against the best unmatched item in
// other. Matched pairs are merged in place; unmatched items from other are
// appended in their original order.
func (m Merger) Merge(rule, other []types.ExperienceItem) []types.ExperienceItem {
	if len(other) == 0 {
		return rule
	}
	if len(rule) == 0 {
		return other
	}
	threshold := m.Threshold
	if threshold <= 0 {
		threshold = DefaultAcceptThreshold
	}

	used := make([]bool, len(other))
	out := make([]types.ExperienceItem, 0, len(rule)+len(other))
	for _, r := range rule {
		bestIdx, best := -1, 0
		for i, o := range other {
			if used[i] {
				continue
			}
			if s := Score(r, o); s > best {
				best, bestIdx = s, i
			}
		}
		if bestIdx >= 0 && best >= threshold {
			used[bestIdx] = true
			out = append(out, combine(r, other[bestIdx]))
			continue
		}
		out = append(out, r)
	}
	for i, o := range other {
		if !used[i] {
			out = append(out, o)
		}
	}
	return out
}

// Score sums the token-set similarity of company and title, counting a field
// only when both items have it.
func Score(a, b types.ExperienceItem) int {
	score := 0
	if a.Company != "" && b.Company != "" {
		score += TokenSetRatio(a.Company, b.Company)
	}
	if a.Title != "" && b.Title != "" {
		score += TokenSetRatio(a.Title, b.Title)
	}
	return score
}

// combine prefers the second item's non-empty fields
func combine(r, o types.ExperienceItem) types.ExperienceItem {
	merged := types.ExperienceItem{
		Title:        pick(o.Title, r.Title),
		Company:      pick(o.Company, r.Company),
		Location:     pick(o.Location, r.Location),
		Dates:        r.Dates,
		Bullets:      r.Bullets,
		Technologies: []string{},
		Confidence:   math.Max(r.Confidence, o.Confidence),
	}
	if o.Dates.Start != "" || o.Dates.End != "" {
		merged.Dates = o.Dates
	}
	if len(o.Bullets) > 0 {
		merged.Bullets = o.Bullets
	}
	for _, t := range append(append([]string{}, r.Technologies...), o.Technologies...) {
		if t = strings.TrimSpace(t); t != "" {
			merged.Technologies = canon.AppendUnique(merged.Technologies, t)
		}
	}
	return merged
}

func pick(preferred, fallback string) string {
	if preferred != "" {
		return preferred
	}
	return fallback
}

// TokenSetRatio scores two strings 0-100 by comparing their shared and
// distinct word sets, ignoring order, case and punctuation.
func TokenSetRatio(a, b string) int {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var sect, onlyA, onlyB []string
	for t := range ta {
		if _, ok := tb[t]; ok {
			sect = append(sect, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range tb {
		if _, ok := ta[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(sect)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	if len(sect) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	base := strings.Join(sect, " ")
	diffA := strings.Join(onlyA, " ")
	diffB := strings.Join(onlyB, " ")
	if base == "" {
		return int(math.Round(ratio(diffA, diffB)))
	}
	withA := base + " " + diffA
	withB := base + " " + diffB
	best := math.Max(ratio(base, withA), ratio(base, withB))
	best = math.Max(best, ratio(withA, withB))
	return int(math.Round(best))
}

// ratio is the normalized indel similarity in [0, 100]
func ratio(a, b string) float64 {
	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 100
	}
	dist := levenshtein.Distance(a, b, indel)
	return 100 * float64(total-dist) / float64(total)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
