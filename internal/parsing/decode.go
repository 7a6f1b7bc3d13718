package parsing

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jonathan/ats-parser/internal/dates"
)

// Model output drifts from the requested shape: numbers arrive as strings,
// lists as single strings and date spans as free text. The flex types absorb
// those variants so one odd field does not discard the whole payload.

// flexString accepts a string, number, bool, list of strings or null
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
	case len(data) > 0 && data[0] == '[':
		var l flexList
		if err := json.Unmarshal(data, &l); err != nil {
			return err
		}
		*f = flexString(strings.Join(l, ", "))
	case len(data) > 0 && data[0] == '{':
		*f = ""
	default:
		*f = flexString(string(data))
	}
	return nil
}

// flexList accepts a list (of strings or scalars), a newline-separated
// string or null
type flexList []string

func (f *flexList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		out := make([]string, 0, len(raw))
		for _, r := range raw {
			var s flexString
			if err := json.Unmarshal(r, &s); err != nil {
				return err
			}
			if s != "" {
				out = append(out, string(s))
			}
		}
		*f = out
		return nil
	}
	var s flexString
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = strings.Split(string(s), "\n")
	return nil
}

// flexNumber accepts a number or a numeric string
type flexNumber struct {
	Value float64
	Set   bool
}

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(string(s), "%"), 64)
	if err != nil {
		*f = flexNumber{}
		return nil
	}
	*f = flexNumber{Value: v, Set: true}
	return nil
}

// flexDates accepts {"start": ..., "end": ...} or a free-text range
type flexDates struct {
	Start string
	End   string
}

func (f *flexDates) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Start flexString `json:"start"`
			End   flexString `json:"end"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*f = flexDates{Start: string(obj.Start), End: string(obj.End)}
		return nil
	}
	var s flexString
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	span := dates.Parse(string(s))
	*f = flexDates{Start: span.Start, End: span.End}
	return nil
}

type rawExperience struct {
	Title        flexString `json:"title"`
	Company      flexString `json:"company"`
	Location     flexString `json:"location"`
	Dates        flexDates  `json:"dates"`
	Start        flexString `json:"start"`
	End          flexString `json:"end"`
	Bullets      flexList   `json:"bullets"`
	Technologies flexList   `json:"technologies"`
	Confidence   flexNumber `json:"confidence"`
}

type rawEducation struct {
	Degree   flexString `json:"degree"`
	Field    flexString `json:"field"`
	School   flexString `json:"school"`
	Location flexString `json:"location"`
	Dates    flexDates  `json:"dates"`
	Start    flexString `json:"start"`
	End      flexString `json:"end"`
	GPA      flexString `json:"gpa"`
}

// bounds prefers the nested dates object over top-level start/end keys
func bounds(d flexDates, start, end flexString) (string, string) {
	if d.Start != "" || d.End != "" {
		return d.Start, d.End
	}
	return string(start), string(end)
}

// unwrapArray returns the JSON array in payload, unwrapping a single-key
// object such as {"experience": [...]}.
func unwrapArray(payload string) (string, bool) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "[") {
		return payload, true
	}
	if !strings.HasPrefix(payload, "{") {
		return "", false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &obj); err != nil {
		return "", false
	}
	for _, v := range obj {
		v = bytes.TrimSpace(v)
		if len(v) > 0 && v[0] == '[' {
			return string(v), true
		}
	}
	return "", false
}
