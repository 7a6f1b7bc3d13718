package parsing

import (
	"strings"

	"github.com/araddon/dateparse"

	"github.com/jonathan/ats-parser/internal/dates"
	"github.com/jonathan/ats-parser/internal/types"
)

// normalizeModelDate maps a model-supplied date to "YYYY-MM", Present or "".
// Résumé-style tokens go through the rule parser first; anything else, such
// as "2021-01-15" or "15 March 2021", falls back to dateparse.
func normalizeModelDate(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "null", "none", "n/a", "unknown":
		return ""
	}
	if v := dates.NormalizeToken(s); v != "" {
		return v
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return ""
	}
	return t.Format("2006-01")
}

// normalizeSpan normalizes both bounds and recomputes the month count,
// ignoring whatever count the model supplied.
func normalizeSpan(start, end string) types.DateSpan {
	span := types.DateSpan{
		Start: normalizeModelDate(start),
		End:   normalizeModelDate(end),
	}
	if span.Start == types.Present {
		span.Start = ""
	}
	span.Months = dates.Months(span.Start, span.End)
	return span
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), "-•*·")); s != "" {
			out = append(out, s)
		}
	}
	return out
}
