// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/ats-parser/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fit(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fit(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// fit truncates a line to the box interior, counting runes
func fit(line string) string {
	r := []rune(line)
	if len(r) > boxWidth-4 {
		return string(r[:boxWidth-7]) + "..."
	}
	return line
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func span(d types.DateSpan) string {
	if d.IsZero() {
		return "no dates"
	}
	s := dash(d.Start) + " → " + dash(d.End)
	if d.Months != nil {
		s += fmt.Sprintf(" (%d mo)", *d.Months)
	}
	return s
}

// PrintResume outputs a human-readable summary of an assembled résumé
func (p *Printer) PrintResume(r *types.Resume) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", dash(r.Contact.Name)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", dash(r.Contact.Email)))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", dash(r.Contact.Phone)))
	if r.Contact.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", r.Contact.Location))
	}
	sb.WriteString("\n")

	if len(r.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d): ", len(r.Skills)))
		count := min(len(r.Skills), maxItemsToShow*2)
		sb.WriteString(strings.Join(r.Skills[:count], ", "))
		if len(r.Skills) > count {
			sb.WriteString(fmt.Sprintf(" +%d", len(r.Skills)-count))
		}
		sb.WriteString("\n\n")
	}

	if len(r.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(r.Experience), maxItemsToShow)
		for _, e := range r.Experience[:count] {
			sb.WriteString(fmt.Sprintf("  • %s @ %s\n", dash(e.Title), dash(e.Company)))
			sb.WriteString(fmt.Sprintf("    %s, %d bullets, conf %.2f\n", span(e.Dates), len(e.Bullets), e.Confidence))
		}
		if len(r.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(r.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, e := range r.Education {
			sb.WriteString(fmt.Sprintf("  • %s %s, %s\n", dash(e.Degree), e.Field, dash(e.School)))
		}
		sb.WriteString("\n")
	}

	if len(r.Projects) > 0 {
		sb.WriteString("Projects:\n")
		count := min(len(r.Projects), 3)
		for _, pr := range r.Projects[:count] {
			sb.WriteString(fmt.Sprintf("  • %s", pr.Title))
			if len(pr.TechStack) > 0 {
				sb.WriteString(fmt.Sprintf(" [%s]", strings.Join(pr.TechStack, ", ")))
			}
			sb.WriteString("\n")
		}
		if len(r.Projects) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.Projects)-3))
		}
	}

	if r.Flags.UsedOCR {
		sb.WriteString(fmt.Sprintf("OCR pages: %d\n", r.Flags.OCRPages))
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSections outputs line counts per section, in the given order when
// provided and alphabetically otherwise.
func (p *Printer) PrintSections(counts map[string]int, order []string) {
	if len(counts) == 0 {
		p.printBox("SECTIONS", "No content found")
		return
	}
	if len(order) == 0 {
		for name := range counts {
			order = append(order, name)
		}
		sort.Strings(order)
	}

	var sb strings.Builder
	for _, name := range order {
		n, ok := counts[name]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("%-12s %4d lines\n", name, n))
	}
	p.printBox("SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings outputs parse warnings, or a short all-clear line
func (p *Printer) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		p.printBox("WARNINGS", "✓ No warnings")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚠ %d warning(s)\n\n", len(warnings)))
	for i, w := range warnings {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, w))
	}
	p.printBox("WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs an extracted skill list and the canonicalization mode
func (p *Printer) PrintSkills(skills []string, allowlist bool) {
	mode := "heuristic"
	if allowlist {
		mode = "allowlist"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Mode: %s, %d skill(s)\n", mode, len(skills)))
	if len(skills) > 0 {
		sb.WriteString("\n")
	}
	for _, s := range skills {
		sb.WriteString(fmt.Sprintf("  • %s\n", s))
	}
	p.printBox("SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}
