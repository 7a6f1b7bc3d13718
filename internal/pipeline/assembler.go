// Package pipeline assembles a structured résumé from a document by
// sequencing ingestion, section splitting and the per-section extractors.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/ats-parser/internal/canon"
	"github.com/jonathan/ats-parser/internal/contacts"
	"github.com/jonathan/ats-parser/internal/education"
	"github.com/jonathan/ats-parser/internal/experience"
	"github.com/jonathan/ats-parser/internal/heuristics"
	"github.com/jonathan/ats-parser/internal/ingestion"
	"github.com/jonathan/ats-parser/internal/projects"
	"github.com/jonathan/ats-parser/internal/reconcile"
	"github.com/jonathan/ats-parser/internal/sections"
	"github.com/jonathan/ats-parser/internal/skills"
	"github.com/jonathan/ats-parser/internal/types"
)

// summaryLines caps how many SUMMARY lines become the summary
const summaryLines = 5

// Progress categories
const (
	CategoryIngestion  = "ingestion"
	CategoryExtraction = "extraction"
	CategoryEnrichment = "enrichment"
	CategoryAssembly   = "assembly"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Ingestor turns a document path into text
type Ingestor interface {
	Ingest(ctx context.Context, path string) (ingestion.Result, error)
}

// ModelExtractor is the best-effort model path. *parsing.ModelExtractor
// satisfies it.
type ModelExtractor interface {
	Enabled() bool
	ExtractExperience(ctx context.Context, text string) ([]types.ExperienceItem, error)
	ExtractEducation(ctx context.Context, text string) ([]types.EducationItem, error)
}

// Options holds the collaborators of an Assembler
type Options struct {
	Ingestor           Ingestor
	Canon              *canon.Loader // nil runs in heuristic mode
	Model              ModelExtractor
	Logger             *slog.Logger
	OnProgress         ProgressCallback
	ReconcileThreshold int
	PhoneRegion        string
}

// Assembler parses documents into résumés. It holds no per-document state
// and is safe for concurrent use.
type Assembler struct {
	opts   Options
	logger *slog.Logger
}

// New creates an Assembler
func New(opts Options) *Assembler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ReconcileThreshold <= 0 {
		opts.ReconcileThreshold = reconcile.DefaultAcceptThreshold
	}
	return &Assembler{opts: opts, logger: opts.Logger}
}

// run carries the state of one parse
type run struct {
	id     string
	logger *slog.Logger
	resume *types.Resume
}

// emitProgress calls the progress callback if configured
func (a *Assembler) emitProgress(r *run, step, category, message string, content any) {
	if a.opts.OnProgress != nil {
		a.opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    r.id,
			Content:  content,
		})
	}
}

// ParseFile ingests the document at path and assembles it. Only an
// unreadable or unsupported file and a cancelled context are errors; every
// other failure becomes a warning on the result.
func (a *Assembler) ParseFile(ctx context.Context, path string) (*types.Resume, error) {
	if a.opts.Ingestor == nil {
		return nil, fmt.Errorf("pipeline: no ingestor configured")
	}
	r := a.newRun()
	r.logger = r.logger.With("path", path)
	a.emitProgress(r, "ingest", CategoryIngestion, "Extracting document text", nil)

	res, err := a.opts.Ingestor.Ingest(ctx, path)
	if err != nil {
		r.logger.Warn("ingestion failed", "error", err)
		return nil, fmt.Errorf("failed to ingest %s: %w", path, err)
	}
	a.emitProgress(r, "ingest", CategoryIngestion,
		fmt.Sprintf("Extracted %d chars from %d page(s) via %s", len([]rune(res.Text)), res.Pages, res.Method), res.Meta)

	for _, w := range res.Warnings {
		r.resume.AddWarning(w)
	}
	a.assemble(ctx, r, res.Text, res.OCRPages)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.resume, nil
}

// ParseText assembles already-extracted text. ocrPages is recorded in the
// flags as-is.
func (a *Assembler) ParseText(ctx context.Context, text string, ocrPages int) *types.Resume {
	r := a.newRun()
	a.assemble(ctx, r, text, ocrPages)
	return r.resume
}

func (a *Assembler) newRun() *run {
	id := uuid.NewString()
	return &run{
		id:     id,
		logger: a.logger.With("run_id", id),
		resume: types.NewResume(),
	}
}

func (a *Assembler) canonicalizer() *canon.Canonicalizer {
	if a.opts.Canon == nil {
		return canon.New(nil)
	}
	return a.opts.Canon.Canonicalizer()
}

func (a *Assembler) assemble(ctx context.Context, r *run, text string, ocrPages int) {
	res := r.resume
	res.RawText = text
	c := a.canonicalizer()

	buckets := sections.Split(text)
	res.Flags.SectionsFound = buckets.Counts()
	a.emitProgress(r, "split", CategoryExtraction, fmt.Sprintf("Found %d section(s)", len(buckets.Sections())), res.Flags.SectionsFound)

	res.Contact = contacts.New(a.opts.PhoneRegion).Extract(text)
	a.emitProgress(r, "contacts", CategoryExtraction, "Extracted contact block", nil)

	sk := skills.New(c)
	res.Skills = sk.Extract(buckets.Lines(types.SectionSkills))
	if len(res.Skills) == 0 {
		res.Skills = sk.ExtractFromText(text)
	}
	a.emitProgress(r, "skills", CategoryExtraction, fmt.Sprintf("Extracted %d skill(s)", len(res.Skills)), nil)

	exp := experience.New(c)
	expLines := buckets.Lines(types.SectionExperience)
	ruleExp := exp.Extract(expLines)
	if len(ruleExp) == 0 {
		ruleExp = exp.ExtractText(text)
	}
	a.emitProgress(r, "experience", CategoryExtraction, fmt.Sprintf("Extracted %d experience item(s)", len(ruleExp)), nil)

	var modelExp []types.ExperienceItem
	if a.modelEnabled() && len(expLines) > 0 {
		a.guard(r, "model experience", func() {
			items, err := a.opts.Model.ExtractExperience(ctx, strings.Join(expLines, "\n"))
			if err != nil {
				r.logger.Warn("model experience extraction failed", "error", err)
				res.AddWarning(fmt.Sprintf("model experience extraction failed: %v", err))
				return
			}
			modelExp = items
		})
		a.emitProgress(r, "model_experience", CategoryEnrichment, fmt.Sprintf("Model returned %d experience item(s)", len(modelExp)), nil)
	}
	res.Experience = reconcile.Merger{Threshold: a.opts.ReconcileThreshold}.Merge(ruleExp, modelExp)

	eduLines := buckets.Lines(types.SectionEducation)
	res.Education = education.New().Extract(eduLines)
	if len(res.Education) == 0 && a.modelEnabled() && len(eduLines) > 0 {
		a.guard(r, "model education", func() {
			items, err := a.opts.Model.ExtractEducation(ctx, strings.Join(eduLines, "\n"))
			if err != nil {
				r.logger.Warn("model education extraction failed", "error", err)
				res.AddWarning(fmt.Sprintf("model education extraction failed: %v", err))
				return
			}
			res.Education = items
		})
	}
	a.emitProgress(r, "education", CategoryExtraction, fmt.Sprintf("Extracted %d education item(s)", len(res.Education)), nil)

	a.guard(r, "projects", func() {
		res.Projects = projects.New(c).Extract(buckets.Lines(types.SectionProjects))
	})
	a.emitProgress(r, "projects", CategoryExtraction, fmt.Sprintf("Extracted %d project(s)", len(res.Projects)), nil)

	summary := buckets.Lines(types.SectionSummary)
	if len(summary) > summaryLines {
		summary = summary[:summaryLines]
	}
	res.Summary = strings.Join(summary, " ")
	res.Certifications = listItems(buckets.Lines(types.SectionCerts))
	res.Languages = listItems(buckets.Lines(types.SectionLanguages))

	res.Flags.RunID = r.id
	res.Flags.OCRPages = ocrPages
	res.Flags.UsedOCR = ocrPages > 0
	emptySectionWarnings(res, buckets)

	r.logger.Info("resume assembled",
		"ocr_pages", ocrPages,
		"experience", len(res.Experience),
		"education", len(res.Education),
		"projects", len(res.Projects),
		"skills", len(res.Skills),
		"warnings", len(res.Flags.Warnings))
	a.emitProgress(r, "assemble", CategoryAssembly, "Resume assembled", res.Flags)
}

func (a *Assembler) modelEnabled() bool {
	return a.opts.Model != nil && a.opts.Model.Enabled()
}

// guard runs an optional step, turning a panic into a warning
func (a *Assembler) guard(r *run, step string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("step panicked", "step", step, "panic", rec)
			r.resume.AddWarning(fmt.Sprintf("%s step failed: %v", step, rec))
		}
	}()
	fn()
}

// emptySectionWarnings flags sections that have lines but produced no items
func emptySectionWarnings(res *types.Resume, buckets *types.SectionBuckets) {
	checks := []struct {
		sec   types.Section
		empty bool
	}{
		{types.SectionExperience, len(res.Experience) == 0},
		{types.SectionEducation, len(res.Education) == 0},
		{types.SectionProjects, len(res.Projects) == 0},
		{types.SectionSkills, len(res.Skills) == 0},
	}
	for _, c := range checks {
		if c.empty && hasContent(buckets.Lines(c.sec)) {
			res.AddWarning(fmt.Sprintf("%s section found but no items extracted", c.sec))
		}
	}
}

func hasContent(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}

// listItems splits certification or language lines on list separators,
// dropping bullets and case-insensitive duplicates.
func listItems(lines []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, line := range lines {
		for _, part := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || r == '|' || r == '•'
		}) {
			s := strings.TrimSpace(heuristics.StripBullet(heuristics.Normalize(part)))
			key := strings.ToLower(s)
			if s == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, s)
		}
	}
	return out
}
