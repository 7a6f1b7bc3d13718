// Package heuristics holds the lexical hints shared by the rule-based extractors.
package heuristics

import (
	"regexp"
	"strings"

	"github.com/jonathan/ats-parser/internal/canon"
)

var (
	// TitleHint matches seniority and role words found in job titles
	TitleHint = regexp.MustCompile(`(?i)\b(?:senior|sr\.?|jr\.?|junior|lead|principal|staff|head|director|manager|engineer|developer|analyst|consultant|architect|intern|specialist|coordinator|administrator|scientist|designer|officer|associate|technician|programmer)\b`)

	// CompanySuffix matches organization words
	CompanySuffix = regexp.MustCompile(`(?i)\b(?:inc\.?|corp\.?|corporation|llc|ltd\.?|limited|co\.?|company|capital|fund|bank|group|partners?|systems?|labs?|studios?|technolog(?:y|ies)|solutions?|consulting|agency|gmbh)(?:\W|$)`)

	// VerbHint matches achievement verbs that open description sentences
	VerbHint = regexp.MustCompile(`(?i)\b(?:built|designed|developed|managed|led|mentored|supported|created|owned|implemented|improved|analyzed|wrote|drove|delivered|reduced|increased|launched|automated|migrated|maintained|coordinated|optimized)\b`)

	// DegreeHint matches degree and credential keywords
	DegreeHint = regexp.MustCompile(`(?i)\b(?:bachelo[u]?r(?:'s)?|master(?:'s)?|msc|m\.sc|(?-i:MA)|mba|m\.?eng|b\.?sc|b\.?eng|(?-i:B\.?A|B\.?S|M\.?S)|ph\.?d|doctoral|doctorate|diploma|degree|associate(?:'s)?\s+degree|certificat(?:e|ion)|(?-i:DEC)|d\.e\.c|high\s+school|secondary|college\s+studies)(?:\W|$)`)

	// SchoolSuffix matches institution words
	SchoolSuffix = regexp.MustCompile(`(?i)(?:^|\W)(?:universit(?:y|é)|college|cégep|cegep|school|institute|academy|polytechnique|école|ecole)(?:\W|$)`)

	locationAbbrev = regexp.MustCompile(`\b(?:QC|ON|BC|AB|MB|SK|NS|NB|NL|PE|PEI|YT|NT|NU|CA|USA|US|UK|NY|TX|WA|MA|IL)\b`)
	locationName   = regexp.MustCompile(`(?i)\b(?:quebec|québec|ontario|british columbia|alberta|manitoba|saskatchewan|nova scotia|new brunswick|newfoundland|prince edward island|montreal|montréal|toronto|vancouver|calgary|edmonton|ottawa|winnipeg|regina|saskatoon|quebec city|charlottetown|laval|gatineau|canada|united states|remote)\b`)
	cityRegion     = regexp.MustCompile(`^[\p{L} .'\-]+,\s*[\p{L} .'\-]+(?:,\s*[\p{L} .'\-]+)?$`)

	bulletPrefix = regexp.MustCompile(`^\s*(?:[•‣∙·*▪●◦]\s*|[-–]\s+)`)
	urlLike      = regexp.MustCompile(`(?i)\b(?:https?://|www\.)|\.(?:com|org|net|io|dev|ca)\b/?`)
	spaceRun     = regexp.MustCompile(`\s+`)

	lexicon = canon.New(nil)
)

// Normalize trims and collapses internal whitespace
func Normalize(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// IsBullet reports whether the line opens with a bullet glyph
func IsBullet(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return false
	}
	loc := bulletPrefix.FindStringIndex(t)
	return loc != nil && loc[1] < len(t)
}

// StripBullet removes a leading bullet glyph
func StripBullet(s string) string {
	return strings.TrimSpace(bulletPrefix.ReplaceAllString(s, ""))
}

// IsURL reports whether s looks like a web address
func IsURL(s string) bool {
	return urlLike.MatchString(s)
}

// LooksLikeLocation reports whether s reads as a place, e.g. "Montreal, QC"
func LooksLikeLocation(s string) bool {
	s = Normalize(s)
	if s == "" || len(s) > 60 || IsURL(s) || strings.Contains(s, "@") {
		return false
	}
	words := strings.Fields(s)
	if len(words) > 6 {
		return false
	}
	if TitleHint.MatchString(s) || CompanySuffix.MatchString(s) || SchoolSuffix.MatchString(s) {
		return false
	}
	if locationName.MatchString(s) || locationAbbrev.MatchString(s) {
		return true
	}
	if !cityRegion.MatchString(s) || DegreeHint.MatchString(s) {
		return false
	}
	// "Python, Flask" has the same shape as "Lyon, France"
	for _, part := range strings.Split(s, ",") {
		if _, ok := lexicon.Resolve(part); ok {
			return false
		}
	}
	return true
}
