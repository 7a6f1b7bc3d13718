package experience

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/ats-parser/internal/heuristics"
)

const (
	maxTitleWords     = 7
	titleCapsRatio    = 0.6
	maxCompanyLen     = 48
	minCompanyCaps    = 2
	minCompanyWords   = 2
	maxCompanyWords   = 6
	maxDescriptionLen = 110
)

var (
	atSplit   = regexp.MustCompile(`(?i)\s+(?:at|@)\s+`)
	dashSplit = regexp.MustCompile(`\s+[-–—|]\s+|\s*[–—|]\s*`)
	techLabel = regexp.MustCompile(`(?i)^(?:tech(?:nical)?\s+stack|tech(?:nolog(?:y|ies))?(?:\s+used)?|tools(?:\s+used)?|stack|environment|built\s+with)\s*[:\-–—]\s*(.+)$`)
	edgeTrim  = " -•:·—–|,"
)

// The predicates below form a fixed precedence when classifying a line
// that is not a date anchor:
//
//	IsBullet > TechLine > LooksLikeLocation > LooksLikeTitle > LooksLikeCompany
//
// A bullet is always description, a location never counts as a title or
// company, and a line that passes both title and company checks is a title.

// IsBullet reports whether line starts with a bullet glyph
func IsBullet(line string) bool {
	return heuristics.IsBullet(line)
}

// LooksLikeLocation reports whether line is a place such as "Montreal, QC"
func LooksLikeLocation(line string) bool {
	return heuristics.LooksLikeLocation(line)
}

// TechLine returns the list part of a "Tech: a, b" style line
func TechLine(line string) (string, bool) {
	m := techLabel.FindStringSubmatch(heuristics.StripBullet(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// LooksLikeTitle reports whether line reads as a job title: a role keyword,
// or mostly capitalized words in a short line.
func LooksLikeTitle(line string) bool {
	s := heuristics.Normalize(line)
	if s == "" || strings.HasSuffix(s, ".") || IsBullet(s) || LooksLikeLocation(s) {
		return false
	}
	if _, ok := TechLine(s); ok {
		return false
	}
	if heuristics.TitleHint.MatchString(s) {
		return true
	}
	toks := alphaTokens(s)
	if len(toks) == 0 || len(toks) > maxTitleWords {
		return false
	}
	return float64(capitalized(toks))/float64(len(toks)) >= titleCapsRatio
}

// LooksLikeCompany reports whether line reads as an organization name
func LooksLikeCompany(line string) bool {
	s := heuristics.Normalize(line)
	if s == "" || IsBullet(s) || heuristics.IsURL(s) || LooksLikeLocation(s) {
		return false
	}
	if heuristics.VerbHint.MatchString(s) {
		return false
	}
	if heuristics.CompanySuffix.MatchString(s) {
		return true
	}
	toks := alphaTokens(s)
	if len(toks) < minCompanyWords || len(toks) > maxCompanyWords {
		return false
	}
	return capitalized(toks) >= minCompanyCaps && len(s) <= maxCompanyLen
}

// SplitAt splits "Title at Company" or "Title @ Company"
func SplitAt(line string) (title, company string, ok bool) {
	s := heuristics.Normalize(line)
	loc := atSplit.FindStringIndex(s)
	if loc == nil {
		return "", "", false
	}
	title = strings.Trim(s[:loc[0]], edgeTrim)
	company = strings.Trim(s[loc[1]:], edgeTrim)
	return title, company, title != "" || company != ""
}

// SplitDash splits "Left — Right" on the first dash or pipe separator
func SplitDash(line string) (left, right string, ok bool) {
	s := heuristics.Normalize(line)
	loc := dashSplit.FindStringIndex(s)
	if loc == nil {
		return "", "", false
	}
	left = strings.Trim(s[:loc[0]], edgeTrim)
	right = strings.Trim(s[loc[1]:], edgeTrim)
	return left, right, left != "" && right != ""
}

// alphaTokens keeps the purely alphabetic words of s
func alphaTokens(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		alpha := true
		for _, r := range w {
			if !unicode.IsLetter(r) {
				alpha = false
				break
			}
		}
		if alpha {
			out = append(out, w)
		}
	}
	return out
}

// capitalized counts words that start upper-case without being all caps
func capitalized(words []string) int {
	n := 0
	for _, w := range words {
		runes := []rune(w)
		if unicode.IsUpper(runes[0]) && strings.ToUpper(w) != w {
			n++
		}
	}
	return n
}
