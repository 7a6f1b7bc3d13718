package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeLocation(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Montreal, QC", true},
		{"Toronto, Ontario, Canada", true},
		{"Remote", true},
		{"Lyon, France", true},
		{"Software Developer, Example Inc", false},
		{"Python, Flask, PostgreSQL", false},
		{"LaSalle College, Montreal", false},
		{"tim@example.com", false},
		{"Passionate about working on teams", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeLocation(tt.line))
		})
	}
}

func TestBullets(t *testing.T) {
	assert.True(t, IsBullet("- Built APIs"))
	assert.True(t, IsBullet("•Shipped it"))
	assert.False(t, IsBullet("-5% churn"))
	assert.False(t, IsBullet("-"))
	assert.Equal(t, "Built APIs", StripBullet("  * Built APIs"))
}

func TestDegreeHint_CaseSensitiveAbbreviations(t *testing.T) {
	assert.True(t, DegreeHint.MatchString("Diploma of College Studies DEC – Computer Science"))
	assert.True(t, DegreeHint.MatchString("B.Sc. Computer Science"))
	assert.False(t, DegreeHint.MatchString("Dec 2019 – Present"))
	assert.False(t, DegreeHint.MatchString("Boston, Ma"))
}
