package contacts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_HappyPath(t *testing.T) {
	text := `
Tim Nguyen
Montreal, QC
tim@example.com
(514) 555-1234
https://github.com/RealTimGFM
https://www.linkedin.com/in/timnguyen
`
	c := New("").Extract(text)

	assert.Equal(t, "tim@example.com", c.Email)
	assert.Contains(t, c.Phone, "+1")
	assert.Contains(t, strings.ToLower(strings.Join(c.Links, " ")), "github.com")
	assert.Len(t, c.Links, 2)
	assert.Equal(t, "Tim Nguyen", c.Name)
	assert.Equal(t, "Montreal, QC", c.Location)
}

func TestExtract_NoContactsIsSafe(t *testing.T) {
	c := New("CA").Extract("Just some text with no email and no phone.")

	assert.Empty(t, c.Email)
	assert.Empty(t, c.Phone)
	assert.NotNil(t, c.Links)
	assert.Empty(t, c.Links)
	assert.Empty(t, c.Name)
	assert.Empty(t, c.Location)
}

func TestExtract_DateRangesAreNotPhones(t *testing.T) {
	c := New("").Extract("Jane Roe\nAnalyst 2018 - 2020\nJan 2021 – Present")
	assert.Empty(t, c.Phone)
	assert.Equal(t, "Jane Roe", c.Name)
}

func TestLinks(t *testing.T) {
	text := "see https://a.dev/x, www.b.io and https://A.dev/x. also https://c.com https://d.com https://e.com https://f.com"
	got := Links(text)
	assert.Equal(t, []string{"https://a.dev/x", "www.b.io", "https://c.com", "https://d.com", "https://e.com"}, got)
}

func TestIsName(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Tim Nguyen", true},
		{"Mary-Jane Watson Parker", true},
		{"Tim", false},
		{"tim nguyen", false},
		{"Tim Nguyen 2", false},
		{"Senior Software Developer At Big Company Now", false},
		{"Montreal, QC", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsName(tt.line))
		})
	}
}
