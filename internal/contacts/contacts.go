// Package contacts pulls contact details out of the full résumé text.
package contacts

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/jonathan/ats-parser/internal/heuristics"
	"github.com/jonathan/ats-parser/internal/types"
)

const (
	// DefaultRegion biases phone parsing when a number has no country code
	DefaultRegion = "CA"
	// MaxLinks caps the number of links kept
	MaxLinks = 5

	headLines    = 12
	maxNameLen   = 60
	minNameWords = 2
	maxNameWords = 4
	minPhoneDigs = 7
)

var (
	emailRe     = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe     = regexp.MustCompile(`(?:\+\d{1,3}[\s.\-]?)?(?:\(\d{2,4}\)|\d{2,4})[\s.\-]?\d{3,4}[\s.\-]?\d{3,4}`)
	linkRe      = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>()\[\]"'|]+`)
	nameTokenRe = regexp.MustCompile(`^[A-Z][a-zA-Z\-]+$`)
	digitRe     = regexp.MustCompile(`\d`)
)

// Extractor finds email, phone, links, name and location
type Extractor struct {
	// Region is the ISO 3166 region used for numbers without a country code
	Region string
}

// New creates an extractor for region, defaulting to DefaultRegion
func New(region string) *Extractor {
	if region == "" {
		region = DefaultRegion
	}
	return &Extractor{Region: strings.ToUpper(region)}
}

// Extract returns the contact block found in text. Missing fields are empty.
func (e *Extractor) Extract(text string) types.Contact {
	c := types.Contact{
		Email: emailRe.FindString(text),
		Phone: e.phone(text),
		Links: Links(text),
	}
	head := headOf(text)
	c.Name = name(head)
	c.Location = location(head)
	return c
}

func (e *Extractor) phone(text string) string {
	region := DefaultRegion
	if e != nil && e.Region != "" {
		region = e.Region
	}
	for _, cand := range phoneRe.FindAllString(text, -1) {
		cand = strings.TrimSpace(cand)
		if len(digitRe.FindAllString(cand, -1)) < minPhoneDigs {
			continue
		}
		num, err := phonenumbers.Parse(cand, region)
		if err != nil || !phonenumbers.IsPossibleNumber(num) {
			return cand
		}
		return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
	}
	return ""
}

// Links returns up to MaxLinks distinct URL-like substrings in order of appearance
func Links(text string) []string {
	links := []string{}
	seen := make(map[string]struct{})
	for _, m := range linkRe.FindAllString(text, -1) {
		m = strings.TrimRight(m, ".,;:!?")
		key := strings.ToLower(m)
		if _, dup := seen[key]; dup || m == "" {
			continue
		}
		seen[key] = struct{}{}
		links = append(links, m)
		if len(links) == MaxLinks {
			break
		}
	}
	return links
}

func headOf(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = heuristics.Normalize(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == headLines {
			break
		}
	}
	return out
}

// IsName reports whether line reads as a person's name
func IsName(line string) bool {
	if len(line) > maxNameLen || digitRe.MatchString(line) {
		return false
	}
	words := strings.Fields(line)
	if len(words) < minNameWords || len(words) > maxNameWords {
		return false
	}
	for _, w := range words {
		if !nameTokenRe.MatchString(w) {
			return false
		}
	}
	return true
}

func name(head []string) string {
	for _, line := range head {
		if IsName(line) {
			return line
		}
	}
	return ""
}

func location(head []string) string {
	for _, line := range head {
		if emailRe.MatchString(line) || linkRe.MatchString(line) || phoneRe.MatchString(line) {
			continue
		}
		if heuristics.LooksLikeLocation(line) {
			return line
		}
	}
	return ""
}
