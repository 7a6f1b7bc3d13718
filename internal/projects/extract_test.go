package projects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-parser/internal/canon"
)

func TestExtract_StructuredFields(t *testing.T) {
	lines := []string{
		"PROJECTS",
		"StockAI — Personal Project (2024-01 to Present)",
		"Built a Python backtesting platform for equities/FX with walk-forward validation.",
		"Tech: Python, Pandas, NumPy, scikit-learn, PostgreSQL",
		"Link: https://github.com/example/stockai",
	}
	projects := New(nil).Extract(lines)
	require.Len(t, projects, 1)

	p := projects[0]
	assert.Equal(t, "StockAI", p.Title)
	assert.Equal(t, "Personal Project", p.Role)
	assert.Equal(t, "2024-01", p.Dates.Start)
	assert.Equal(t, "Present", p.Dates.End)
	assert.Equal(t, []string{"https://github.com/example/stockai"}, p.Links)
	assert.Equal(t, []string{"Python", "Pandas", "NumPy", "Scikit-learn", "PostgreSQL"}, p.TechStack)
	assert.Len(t, p.Bullets, 1)
}

func TestExtract_JobTitleIsNotAProject(t *testing.T) {
	tests := [][]string{
		{
			"EXPERIENCE",
			"Project Manager — ABC Corp (2022-01 to 2023-06)",
			"Led delivery of internal systems and coordinated stakeholders.",
			"Tech: Jira, Confluence",
		},
		{"PROJECTS", "Project Manager — ABC Corp"},
		{"Lead Engineer at Initech", "- Ran the platform team"},
	}
	for _, lines := range tests {
		assert.Empty(t, New(nil).Extract(lines), lines[1])
	}
}

func TestExtract_TechStackAllowlistOnly(t *testing.T) {
	idx := canon.NewStaticIndex([]string{"NumPy", "Pandas"}, nil)
	lines := []string{
		"PROJECTS",
		"StockAI — Personal Project (2024-01 to Present)",
		"Tech: Python, Pandas, NumPy, FooBarTech, BazQuxFramework",
		"Link: https://github.com/example/stockai",
	}
	projects := New(canon.New(idx)).Extract(lines)
	require.NotEmpty(t, projects)
	tech := projects[0].TechStack
	assert.Contains(t, tech, "Python")
	assert.NotContains(t, tech, "FooBarTech")
	assert.NotContains(t, tech, "BazQuxFramework")
}

func TestExtract_MultipleBlocks(t *testing.T) {
	lines := []string{
		"Portfolio Site | React, TypeScript",
		"- Rebuilt my site as a static app",
		"- Source at [repo](https://github.com/example/site)",
		"Chess Engine",
		"Role: Solo developer",
		"2021 - 2022",
		"- Wrote a bitboard move generator",
		"Link: https://github.com/example/chess, https://github.com/example/chess",
	}
	projects := New(nil).Extract(lines)
	require.Len(t, projects, 2)

	assert.Equal(t, "Portfolio Site", projects[0].Title)
	assert.Empty(t, projects[0].Role)
	assert.Equal(t, []string{"React", "TypeScript"}, projects[0].TechStack)
	assert.Equal(t, []string{"https://github.com/example/site"}, projects[0].Links)
	assert.Len(t, projects[0].Bullets, 2)

	assert.Equal(t, "Chess Engine", projects[1].Title)
	assert.Equal(t, "Solo developer", projects[1].Role)
	assert.Equal(t, "2021-01", projects[1].Dates.Start)
	assert.Equal(t, []string{"https://github.com/example/chess"}, projects[1].Links)
	assert.Equal(t, []string{"Wrote a bitboard move generator"}, projects[1].Bullets)
}

func TestExtract_Empty(t *testing.T) {
	out := New(nil).Extract(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Empty(t, New(nil).Extract([]string{"- orphan bullet"}))
}

func TestIsJobHeader(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"Project Manager — ABC Corp", true},
		{"Data Analyst @ Initech", true},
		{"Lead Engineer at Initech", true},
		{"Developer Portal — internal tooling", false},
		{"StockAI — Personal Project", false},
		{"Project Manager", false},
		{"Password Manager — Personal Project", false},
		{"Task Manager - React app", false},
		{"Inventory Manager — Go CLI", false},
		{"Build Engineer | Docker, Kubernetes", false},
	}
	e := New(nil)
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, e.IsJobHeader(tt.header))
		})
	}
}

func TestExtract_ProjectNamedAfterARole(t *testing.T) {
	tests := []struct {
		header string
		title  string
	}{
		{"Password Manager — Personal Project (2023-01 to 2023-06)", "Password Manager"},
		{"Task Manager - React app", "Task Manager"},
		{"Inventory Manager — Go CLI", "Inventory Manager"},
		{"Static Site Generator — Hugo clone", "Static Site Generator"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			projects := New(nil).Extract([]string{"PROJECTS", tt.header, "- Shipped the first release"})
			require.Len(t, projects, 1)
			assert.Equal(t, tt.title, projects[0].Title)
		})
	}
}

func TestExtract_DescriptionLineStaysInBlock(t *testing.T) {
	lines := []string{
		"PROJECTS",
		"StockAI — Personal Project (2024-01 to Present)",
		"- Backtesting engine for equities",
		"Nightly retraining on a spot instance fleet",
		"Tech: Python, Pandas",
		"Chess Engine",
		"- Bitboard move generator",
	}
	projects := New(nil).Extract(lines)
	require.Len(t, projects, 2)

	assert.Equal(t, "StockAI", projects[0].Title)
	assert.Equal(t, []string{"Backtesting engine for equities", "Nightly retraining on a spot instance fleet"}, projects[0].Bullets)
	assert.Equal(t, []string{"Python", "Pandas"}, projects[0].TechStack)
	assert.Equal(t, "Chess Engine", projects[1].Title)
}
