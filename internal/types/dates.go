package types

import "encoding/json"

// Present is the sentinel end value for an ongoing position
const Present = "Present"

// DateSpan is a normalized date range. Start and End are "YYYY-MM" or empty
// when unknown; End may also be Present. Months is set only when both ends
// are concrete months.
type DateSpan struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Months *int   `json:"months"`
}

// IsZero reports whether neither bound is known
func (d DateSpan) IsZero() bool {
	return d.Start == "" && d.End == ""
}

// IsOngoing reports whether the span ends at Present
func (d DateSpan) IsOngoing() bool {
	return d.End == Present
}

type dateSpanJSON struct {
	Start  *string `json:"start"`
	End    *string `json:"end"`
	Months *int    `json:"months"`
}

// MarshalJSON writes unknown bounds as null
func (d DateSpan) MarshalJSON() ([]byte, error) {
	out := dateSpanJSON{Months: d.Months}
	if d.Start != "" {
		s := d.Start
		out.Start = &s
	}
	if d.End != "" {
		e := d.End
		out.End = &e
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts null bounds
func (d *DateSpan) UnmarshalJSON(data []byte) error {
	var in dateSpanJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*d = DateSpan{Months: in.Months}
	if in.Start != nil {
		d.Start = *in.Start
	}
	if in.End != nil {
		d.End = *in.End
	}
	return nil
}
