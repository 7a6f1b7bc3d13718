// Package dates parses free-text résumé date ranges into normalized spans.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/ats-parser/internal/types"
)

const (
	monthNames = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`
	yearPat    = `(?:19|20)\d{2}`
	presentPat = `present|current|now|today`

	// Token forms, most specific first: ISO year-month, MM/YYYY, Month Year, bare year.
	isoTok   = yearPat + `[-/.](?:0[1-9]|1[0-2])\b`
	numTok   = `(?:0?[1-9]|1[0-2])[-/.]` + yearPat
	monthTok = `(?:` + monthNames + `)\.?,?\s+` + yearPat
	dateTok  = `(?:` + isoTok + `|` + numTok + `|` + monthTok + `|` + yearPat + `)`
)

var (
	rangeRe   = regexp.MustCompile(`(?i)\b(` + dateTok + `)(?:\s*[-–—]\s*|\s+to\s+)(` + dateTok + `|` + presentPat + `)\b`)
	presentRe = regexp.MustCompile(`(?i)^(?:` + presentPat + `)$`)
	yearRe    = regexp.MustCompile(`\b(` + yearPat + `)\b`)
	monthRe   = regexp.MustCompile(`(?i)\b(` + monthNames + `)\b`)
	isoRe     = regexp.MustCompile(`^(` + yearPat + `)[-/.](0[1-9]|1[0-2])$`)
	numRe     = regexp.MustCompile(`^(0?[1-9]|1[0-2])[-/.](` + yearPat + `)$`)
	yearOnly  = regexp.MustCompile(`^` + yearPat + `$`)

	// leftovers after a range is cut out of a line, e.g. "()" or a dangling "|"
	emptyParens = regexp.MustCompile(`\(\s*\)|\[\s*\]`)
	edgeJunk    = regexp.MustCompile(`^[\s,;|:–—-]+|[\s,;|:–—(-]+$`)
)

// fallbackSeparators are tried in order when the range pattern does not match
var fallbackSeparators = []string{" – ", " — ", " - ", "–", "—", "-", " to "}

var monthIndex = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// Parse extracts a date range from s. Unrecognized input yields an empty
// span; Parse never panics.
func Parse(s string) types.DateSpan {
	txt := strings.TrimSpace(s)
	if txt == "" {
		return types.DateSpan{}
	}

	var start, end string
	if m := rangeRe.FindStringSubmatch(txt); m != nil {
		start = normalizeToken(m[1])
		if presentRe.MatchString(m[2]) {
			end = types.Present
		} else {
			end = normalizeToken(m[2])
		}
	} else {
		start, end = parseLoose(txt)
	}

	return types.DateSpan{Start: start, End: end, Months: Months(start, end)}
}

// HasRange reports whether s contains a recognizable start–end range
func HasRange(s string) bool {
	return rangeRe.MatchString(s)
}

// Find returns the byte offsets of the first range in s, or nil
func Find(s string) []int {
	return rangeRe.FindStringIndex(s)
}

// Strip removes the first date range from s along with the empty brackets
// and separators it leaves behind.
func Strip(s string) string {
	loc := rangeRe.FindStringIndex(s)
	if loc == nil {
		return strings.TrimSpace(s)
	}
	out := s[:loc[0]] + " " + s[loc[1]:]
	out = emptyParens.ReplaceAllString(out, " ")
	out = edgeJunk.ReplaceAllString(out, "")
	return strings.Join(strings.Fields(out), " ")
}

// Months returns the inclusive number of months between two YYYY-MM values.
// It is nil unless both bounds are concrete and ordered.
func Months(start, end string) *int {
	sy, sm, ok1 := splitYM(start)
	ey, em, ok2 := splitYM(end)
	if !ok1 || !ok2 {
		return nil
	}
	n := (ey-sy)*12 + (em - sm) + 1
	if n < 1 {
		return nil
	}
	return &n
}

// NormalizeToken converts a single date token into "YYYY-MM" or Present.
// It returns "" when the token is not a recognizable date.
func NormalizeToken(tok string) string {
	tok = strings.TrimSpace(tok)
	if presentRe.MatchString(tok) {
		return types.Present
	}
	return normalizeToken(tok)
}

func normalizeToken(tok string) string {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return ""
	}
	if yearOnly.MatchString(tok) {
		return tok + "-01"
	}
	if m := isoRe.FindStringSubmatch(tok); m != nil {
		return m[1] + "-" + m[2]
	}
	if m := numRe.FindStringSubmatch(tok); m != nil {
		mm, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%s-%02d", m[2], mm)
	}
	mon, year := findMonth(tok), findYear(tok)
	if mon > 0 && year != "" {
		return fmt.Sprintf("%s-%02d", year, mon)
	}
	return ""
}

// parseLoose handles ranges the main pattern misses, such as "June – Sept 2006",
// borrowing a missing year from the other side.
func parseLoose(txt string) (string, string) {
	var left, right string
	found := false
	for _, sep := range fallbackSeparators {
		if i := strings.Index(txt, sep); i >= 0 {
			left = strings.TrimSpace(txt[:i])
			right = strings.TrimSpace(txt[i+len(sep):])
			found = true
			break
		}
	}
	if !found {
		return "", ""
	}

	ly, lm := findYear(left), findMonth(left)
	ry, rm := findYear(right), findMonth(right)
	rightPresent := presentRe.MatchString(right)

	if lm > 0 && ly == "" && ry != "" {
		ly = ry
	}
	if rm > 0 && ry == "" && ly != "" && !rightPresent {
		ry = ly
	}

	var start, end string
	switch {
	case ly != "" && lm > 0:
		start = fmt.Sprintf("%s-%02d", ly, lm)
	case ly != "":
		start = ly + "-01"
	}
	switch {
	case rightPresent:
		end = types.Present
	case ry != "" && rm > 0:
		end = fmt.Sprintf("%s-%02d", ry, rm)
	case ry != "":
		end = ry + "-01"
	}
	return start, end
}

func findYear(s string) string {
	if m := yearRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

func findMonth(s string) int {
	m := monthRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	key := strings.ToLower(m[1])
	if len(key) > 3 {
		key = key[:3]
	}
	return monthIndex[key]
}

func splitYM(v string) (int, int, bool) {
	if len(v) != 7 || v[4] != '-' {
		return 0, 0, false
	}
	y, err := strconv.Atoi(v[:4])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(v[5:])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	return y, m, true
}
