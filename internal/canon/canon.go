package canon

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxHeuristicLen bounds tokens accepted verbatim in heuristic mode
const MaxHeuristicLen = 40

var (
	trailingKind = regexp.MustCompile(`(?i)\s+(?:framework|library|libraries|stack|lang|language|languages)$`)

	softSkills = map[string]struct{}{
		"communication":    {},
		"teamwork":         {},
		"leadership":       {},
		"problem solving":  {},
		"problem-solving":  {},
		"time management":  {},
		"adaptability":     {},
		"collaboration":    {},
		"customer service": {},
		"work ethic":       {},
		"creativity":       {},
	}
)

// Canonicalizer resolves tokens through the allowlist index and the lexicon.
// With a disabled index it falls back to accepting short clean tokens.
type Canonicalizer struct {
	index *Index
}

// New creates a canonicalizer; a nil index means heuristic mode
func New(idx *Index) *Canonicalizer {
	if idx == nil {
		idx = Disabled()
	}
	return &Canonicalizer{index: idx}
}

// AllowlistMode reports whether unknown tokens are dropped
func (c *Canonicalizer) AllowlistMode() bool {
	return c != nil && c.index.Enabled()
}

// Resolve maps a token to its canonical label via the allowlist (directly or
// by alias) or the built-in lexicon.
func (c *Canonicalizer) Resolve(token string) (string, bool) {
	tok := CleanToken(token)
	if tok == "" {
		return "", false
	}
	if c != nil && c.index.Enabled() {
		if label, ok := c.index.Lookup(tok); ok {
			return label, true
		}
	}
	return lookupLexicon(tok)
}

// Accept returns the label to keep for token, if any. In allowlist mode only
// resolvable tokens survive; otherwise a short token is kept as written.
func (c *Canonicalizer) Accept(token string) (string, bool) {
	if label, ok := c.Resolve(token); ok {
		return label, true
	}
	if c.AllowlistMode() || strings.HasSuffix(strings.TrimSpace(token), ".") {
		return "", false
	}
	tok := trailingKind.ReplaceAllString(CleanToken(token), "")
	if !plausibleTerm(tok) {
		return "", false
	}
	return tok, true
}

// Canonicalize accepts every token of a blob and deduplicates the result
func (c *Canonicalizer) Canonicalize(blob string) []string {
	var out []string
	for _, tok := range Tokens(blob) {
		if label, ok := c.Accept(tok); ok {
			out = AppendUnique(out, label)
		}
	}
	return out
}

// IsSoftSkill reports whether token is a generic soft skill
func IsSoftSkill(token string) bool {
	_, ok := softSkills[strings.ToLower(CleanToken(token))]
	return ok
}

// AppendUnique appends v unless an equal value (case-insensitive) is present
func AppendUnique(list []string, v string) []string {
	for _, existing := range list {
		if strings.EqualFold(existing, v) {
			return list
		}
	}
	return append(list, v)
}

func plausibleTerm(tok string) bool {
	if tok == "" || len(tok) > MaxHeuristicLen || strings.HasSuffix(tok, ".") {
		return false
	}
	words := strings.Fields(tok)
	if len(words) < 1 || len(words) > 3 {
		return false
	}
	for _, r := range tok {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
