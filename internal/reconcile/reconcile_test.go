package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-parser/internal/types"
)

func item(title, company string) types.ExperienceItem {
	return types.ExperienceItem{Title: title, Company: company, Bullets: []string{}, Technologies: []string{}}
}

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "Example Inc", "Example Inc", 100},
		{"case and punctuation", "Example, Inc.", "example inc", 100},
		{"subset", "Example", "Example Inc", 100},
		{"reordered", "Inc Example", "Example Inc", 100},
		{"disjoint", "abc", "xyz", 0},
		{"empty", "", "Example", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TokenSetRatio(tt.a, tt.b))
		})
	}

	partial := TokenSetRatio("Software Engineer II", "Senior Software Engineer")
	assert.Greater(t, partial, 60)
	assert.Less(t, partial, 100)
}

func TestMerge_IdentityLaws(t *testing.T) {
	x := []types.ExperienceItem{item("Developer", "Example Inc"), item("Analyst", "Acme")}
	assert.Equal(t, x, MergeExperience(nil, x))
	assert.Equal(t, x, MergeExperience(x, nil))
	assert.Equal(t, x, MergeExperience([]types.ExperienceItem{}, x))
}

func TestMerge_MatchedPairPrefersOther(t *testing.T) {
	rule := item("Software Developer", "Example Inc")
	rule.Location = "Montreal, QC"
	rule.Dates = types.DateSpan{Start: "2020-01"}
	rule.Bullets = []string{"Built APIs"}
	rule.Technologies = []string{"Python", "SQL"}
	rule.Confidence = 0.6

	model := item("Software Developer", "Example Inc.")
	model.Dates = types.DateSpan{Start: "2020-03", End: "2021-06"}
	model.Technologies = []string{"sql", "Docker"}
	model.Confidence = 0.8

	out := MergeExperience([]types.ExperienceItem{rule}, []types.ExperienceItem{model})
	require.Len(t, out, 1)
	assert.Equal(t, "Example Inc.", out[0].Company)
	assert.Equal(t, "Montreal, QC", out[0].Location)
	assert.Equal(t, "2020-03", out[0].Dates.Start)
	assert.Equal(t, []string{"Built APIs"}, out[0].Bullets)
	assert.Equal(t, []string{"Python", "SQL", "Docker"}, out[0].Technologies)
	assert.Equal(t, 0.8, out[0].Confidence)
}

func TestMerge_UnmatchedAppendedInOrder(t *testing.T) {
	rule := []types.ExperienceItem{item("Developer", "Example Inc")}
	other := []types.ExperienceItem{
		item("Barista", "Coffee House"),
		item("Developer", "Example Inc"),
		item("Tutor", "Learning Center"),
	}
	out := MergeExperience(rule, other)
	require.Len(t, out, 3)
	assert.Equal(t, "Developer", out[0].Title)
	assert.Equal(t, "Barista", out[1].Title)
	assert.Equal(t, "Tutor", out[2].Title)
}

func TestMerge_BelowThresholdKeepsBoth(t *testing.T) {
	// same employer, different role: 100 + 13
	rule := []types.ExperienceItem{item("Developer", "Example Inc")}
	other := []types.ExperienceItem{item("Barista", "Example Inc")}
	out := MergeExperience(rule, other)
	assert.Len(t, out, 2)
}

func TestMerge_TiesGoToFirstSeen(t *testing.T) {
	rule := []types.ExperienceItem{item("Developer", "Example Inc")}
	first := item("Developer", "Example Inc")
	first.Location = "first"
	second := item("Developer", "Example Inc")
	second.Location = "second"

	out := MergeExperience(rule, []types.ExperienceItem{first, second})
	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Location)
	assert.Equal(t, "second", out[1].Location)
}

func TestMerger_CustomThreshold(t *testing.T) {
	rule := []types.ExperienceItem{item("Developer", "Example Inc")}
	other := []types.ExperienceItem{item("Developer", "Globex")}
	out := Merger{Threshold: 100}.Merge(rule, other)
	assert.Len(t, out, 1)

	out = Merger{Threshold: 150}.Merge(rule, other)
	assert.Len(t, out, 2)
}
