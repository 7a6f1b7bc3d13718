package canon

import (
	"regexp"
	"strings"
)

const slashMark = "\x1f"

var (
	// terms whose slash must survive splitting
	slashTerms  = regexp.MustCompile(`(?i)\b(ci\s*/\s*cd|pl\s*/\s*sql|tcp\s*/\s*ip|ui\s*/\s*ux|a\s*/\s*b)\b`)
	labelPrefix = regexp.MustCompile(`^[A-Za-z][A-Za-z &+/-]{1,30}:\s+`)
	brackets    = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]|\{[^}]*\}`)
	separators  = regexp.MustCompile(`[,;/|•·●◦▪]+|\s+(?:and|&)\s+`)
	versions    = regexp.MustCompile(`(?i)\b(?:v(?:ersion)?\s*)?\d+(?:\.\d+){0,2}\+?(?:\s|$)`)
	fillers     = regexp.MustCompile(`(?i)^(?:(?:strong|solid|working|basic)\s+)?(?:experience\s+(?:in|with)|proficient\s+(?:in|with)|proficiency\s+in|familiar(?:ity)?\s+with|knowledge\s+of|exposure\s+to|using|with|and)\s+`)
	edgePunct   = regexp.MustCompile(`^[\s\-–—*•·‣∙:]+|[\s.:;,\-–—]+$`)
	spaces      = regexp.MustCompile(`\s+`)
)

// Tokens splits a comma/semicolon/slash/pipe/bullet separated blob into
// candidate terms. A leading "Label:" is dropped and bracketed asides are
// removed; callers clean each term through Resolve or Accept.
func Tokens(blob string) []string {
	s := strings.TrimSpace(blob)
	if s == "" {
		return nil
	}
	s = slashTerms.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ReplaceAll(strings.ReplaceAll(m, " ", ""), "/", slashMark)
	})
	if loc := labelPrefix.FindStringIndex(s); loc != nil && loc[1] < len(s) {
		s = s[loc[1]:]
	}
	s = brackets.ReplaceAllString(s, " ")

	var out []string
	for _, part := range separators.Split(s, -1) {
		tok := strings.TrimSpace(strings.ReplaceAll(part, slashMark, "/"))
		if CleanToken(tok) != "" {
			out = append(out, tok)
		}
	}
	return out
}

// CleanToken strips bullets, version numbers, filler phrases and edge punctuation
func CleanToken(tok string) string {
	tok = edgePunct.ReplaceAllString(tok, "")
	tok = fillers.ReplaceAllString(tok, "")
	tok = versions.ReplaceAllString(tok+" ", " ")
	tok = spaces.ReplaceAllString(tok, " ")
	return edgePunct.ReplaceAllString(strings.TrimSpace(tok), "")
}
