package experience

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-parser/internal/canon"
)

func TestExtract_TwoItemsForwardLook(t *testing.T) {
	text := `
2020 – 2021
Software Developer at Example Inc
- Built APIs
- Improved performance

2018 – 2020
Analyst at Another Company
- Analyzed data
`
	items := New(nil).ExtractText(text)
	require.Len(t, items, 2)

	assert.Equal(t, "Software Developer", items[0].Title)
	assert.Equal(t, "Example Inc", items[0].Company)
	assert.Equal(t, "2020-01", items[0].Dates.Start)
	assert.Equal(t, "2021-01", items[0].Dates.End)
	assert.Equal(t, []string{"Built APIs", "Improved performance"}, items[0].Bullets)
	assert.Equal(t, ResolvedConfidence, items[0].Confidence)

	assert.Equal(t, "Analyst", items[1].Title)
	assert.Equal(t, "Another Company", items[1].Company)
	assert.Equal(t, []string{"Analyzed data"}, items[1].Bullets)
}

func TestExtract_InlineHeader(t *testing.T) {
	items := New(nil).Extract([]string{
		"Software Engineer — Example Inc (2021-01 to Present)",
		"- Built APIs.",
	})
	require.Len(t, items, 1)
	assert.Equal(t, "Software Engineer", items[0].Title)
	assert.Equal(t, "Example Inc", items[0].Company)
	assert.Equal(t, "2021-01", items[0].Dates.Start)
	assert.Equal(t, "Present", items[0].Dates.End)
	assert.Nil(t, items[0].Dates.Months)
	assert.Equal(t, []string{"Built APIs."}, items[0].Bullets)
}

func TestExtract_BackwardLook(t *testing.T) {
	items := New(nil).Extract([]string{
		"Software Developer",
		"Example Inc",
		"Jan 2020 – Dec 2020",
		"- Built APIs",
		"Data Analyst",
		"Another Co",
		"2018 – 2019",
		"- Analyzed data",
	})
	require.Len(t, items, 2)
	assert.Equal(t, "Software Developer", items[0].Title)
	assert.Equal(t, "Example Inc", items[0].Company)
	assert.Equal(t, 12, *items[0].Dates.Months)
	assert.Equal(t, []string{"Built APIs"}, items[0].Bullets)

	assert.Equal(t, "Data Analyst", items[1].Title)
	assert.Equal(t, "Another Co", items[1].Company)
}

func TestExtract_BackwardLookCommaHeader(t *testing.T) {
	items := New(nil).Extract([]string{
		"Backend Developer, Shopify Inc",
		"2021 - 2023",
		"- Owned checkout services",
	})
	require.Len(t, items, 1)
	assert.Equal(t, "Backend Developer", items[0].Title)
	assert.Equal(t, "Shopify Inc", items[0].Company)
	assert.Equal(t, []string{"Owned checkout services"}, items[0].Bullets)
}

func TestExtract_BackwardLookOnlyWhenHeaderMissing(t *testing.T) {
	items := New(nil).Extract([]string{
		"Acme Systems",
		"Platform Engineer 2019 - 2020",
		"- Ran the build farm",
	})
	require.Len(t, items, 1)
	assert.Equal(t, "Platform Engineer", items[0].Title)
	assert.Empty(t, items[0].Company)
}

func TestExtract_LocationAfterHeader(t *testing.T) {
	items := New(nil).Extract([]string{
		"Developer at Example Inc (2019 - 2020)",
		"Montreal, QC",
		"- Shipped features",
	})
	require.Len(t, items, 1)
	assert.Equal(t, "Montreal, QC", items[0].Location)
	assert.Equal(t, []string{"Shipped features"}, items[0].Bullets)
}

func TestExtract_TechnologiesAllowlistOnly(t *testing.T) {
	idx := canon.NewStaticIndex([]string{"Python", "SQL", "Flask"}, nil)
	text := `
2020 - 2021
Software Developer at Example Inc
Tech: Python, SQL, FooBarTech
- Built APIs
`
	items := New(canon.New(idx)).ExtractText(text)
	require.NotEmpty(t, items)
	assert.Contains(t, items[0].Technologies, "Python")
	assert.Contains(t, items[0].Technologies, "SQL")
	assert.NotContains(t, items[0].Technologies, "FooBarTech")
	assert.Equal(t, []string{"Built APIs"}, items[0].Bullets)
}

func TestExtract_HeuristicTechnologiesKeepUnknownTerms(t *testing.T) {
	items := New(nil).Extract([]string{
		"2020 - 2021",
		"Developer at Example Inc",
		"Stack: Golang, FooBarTech",
	})
	require.Len(t, items, 1)
	assert.Equal(t, []string{"Go", "FooBarTech"}, items[0].Technologies)
}

func TestExtract_EdgeCases(t *testing.T) {
	t.Run("no anchors", func(t *testing.T) {
		assert.Empty(t, New(nil).Extract([]string{"Software Developer", "- Built APIs"}))
	})

	t.Run("empty", func(t *testing.T) {
		items := New(nil).Extract(nil)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("bare date line is dropped", func(t *testing.T) {
		assert.Empty(t, New(nil).Extract([]string{"2019 – 2020"}))
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		items := New(nil).Extract([]string{
			"Developer at Example Inc 2019 - 2020",
			"Developer at example inc 2019 - 2020",
		})
		assert.Len(t, items, 1)
	})

	t.Run("long prose ends the item", func(t *testing.T) {
		prose := "this paragraph keeps going well past the description limit and is more likely a summary that belongs to another record entirely"
		items := New(nil).Extract([]string{"Developer at Example Inc 2019 - 2020", "- Did work", prose})
		require.Len(t, items, 1)
		assert.Equal(t, []string{"Did work"}, items[0].Bullets)
	})
}

func TestPredicates(t *testing.T) {
	assert.True(t, LooksLikeTitle("Senior Software Engineer"))
	assert.True(t, LooksLikeTitle("Head of Growth"))
	assert.False(t, LooksLikeTitle("- Built APIs"), "bullets are never titles")
	assert.False(t, LooksLikeTitle("Montreal, QC"), "locations are never titles")
	assert.False(t, LooksLikeTitle("Built the billing service end to end."))
	assert.False(t, LooksLikeTitle("Tech: Python, SQL"))

	assert.True(t, LooksLikeCompany("Example Inc"))
	assert.True(t, LooksLikeCompany("Northwind Traders"))
	assert.False(t, LooksLikeCompany("https://example.com"))
	assert.False(t, LooksLikeCompany("Built Internal Tools"))
	assert.False(t, LooksLikeCompany("Toronto, ON"))

	title, company, ok := SplitAt("Transfer Officer at Friebkla Corporation, France")
	assert.True(t, ok)
	assert.Equal(t, "Transfer Officer", title)
	assert.Equal(t, "Friebkla Corporation, France", company)

	left, right, ok := SplitDash("StockAI — Personal Project")
	assert.True(t, ok)
	assert.Equal(t, "StockAI", left)
	assert.Equal(t, "Personal Project", right)

	blob, ok := TechLine("- Tech Stack: Go, Redis")
	assert.True(t, ok)
	assert.Equal(t, "Go, Redis", blob)
}
