// Package parsing runs best-effort model extraction of experience and
// education entries and normalizes the results into typed items.
package parsing

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jonathan/ats-parser/internal/canon"
	"github.com/jonathan/ats-parser/internal/llm"
	"github.com/jonathan/ats-parser/internal/schemas"
	"github.com/jonathan/ats-parser/internal/types"
)

// DefaultConfidence is assigned when the model gives none or an invalid one
const DefaultConfidence = 0.8

// DefaultTimeout bounds one model call
const DefaultTimeout = 45 * time.Second

// Options configures a ModelExtractor
type Options struct {
	Tier          llm.ModelTier
	Timeout       time.Duration
	RatePerMinute int // 0 disables limiting
	Canon         *canon.Canonicalizer
	Logger        *slog.Logger
}

// ModelExtractor turns section text into items through an llm.Client. A nil
// *ModelExtractor, or one without a client, extracts nothing.
type ModelExtractor struct {
	client  llm.Client
	tier    llm.ModelTier
	timeout time.Duration
	limiter *rate.Limiter
	canon   *canon.Canonicalizer
	logger  *slog.Logger
}

// NewModelExtractor creates an extractor around client
func NewModelExtractor(client llm.Client, opts Options) *ModelExtractor {
	if opts.Tier == "" {
		opts.Tier = llm.TierLite
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Canon == nil {
		opts.Canon = canon.New(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	m := &ModelExtractor{
		client:  client,
		tier:    opts.Tier,
		timeout: opts.Timeout,
		canon:   opts.Canon,
		logger:  opts.Logger,
	}
	if opts.RatePerMinute > 0 {
		m.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RatePerMinute)), 1)
	}
	return m
}

// Enabled reports whether calls will reach a model
func (m *ModelExtractor) Enabled() bool {
	return m != nil && m.client != nil
}

// ExtractExperience asks the model for work history entries in text
func (m *ModelExtractor) ExtractExperience(ctx context.Context, text string) ([]types.ExperienceItem, error) {
	out := []types.ExperienceItem{}
	if !m.Enabled() || strings.TrimSpace(text) == "" {
		return out, nil
	}
	payload, err := m.call(ctx, llm.ExperienceSchema(), schemas.ExperienceItemsSchema, text)
	if err != nil {
		return out, err
	}

	var raw []rawExperience
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return out, &ParseError{Message: "failed to decode experience items", Cause: err}
	}
	for _, r := range raw {
		if item, ok := m.experienceItem(r); ok {
			out = append(out, item)
		}
	}
	m.logger.Debug("model experience extracted", "items", len(out), "raw_items", len(raw))
	return out, nil
}

// ExtractEducation asks the model for degree entries in text
func (m *ModelExtractor) ExtractEducation(ctx context.Context, text string) ([]types.EducationItem, error) {
	out := []types.EducationItem{}
	if !m.Enabled() || strings.TrimSpace(text) == "" {
		return out, nil
	}
	payload, err := m.call(ctx, llm.EducationSchema(), schemas.EducationItemsSchema, text)
	if err != nil {
		return out, err
	}

	var raw []rawEducation
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return out, &ParseError{Message: "failed to decode education items", Cause: err}
	}
	for _, r := range raw {
		if item, ok := educationItem(r); ok {
			out = append(out, item)
		}
	}
	m.logger.Debug("model education extracted", "items", len(out), "raw_items", len(raw))
	return out, nil
}

// call runs one rate-limited, time-bounded request and returns a JSON array
// that satisfies the named schema.
func (m *ModelExtractor) call(ctx context.Context, schema llm.ExtractionSchema, schemaName, text string) (string, error) {
	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return "", &APICallError{Message: "rate limiter", Cause: err}
		}
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	start := time.Now()
	resp, err := m.client.ExtractJSON(ctx, llm.NewRequest(schema, text, m.tier))
	if err != nil {
		m.logger.Warn("model call failed", "schema", schema.Name, "error", err, "duration_ms", time.Since(start).Milliseconds())
		return "", &APICallError{Message: "failed to generate " + strings.ToLower(schema.Name), Cause: err}
	}

	payload, ok := unwrapArray(llm.CleanJSONBlock(resp))
	if !ok {
		if arr := llm.ExtractJSONArray(resp); arr != "" {
			payload, ok = arr, true
		}
	}
	if !ok {
		return "", &ParseError{Message: "response is not a JSON array"}
	}
	if err := schemas.ValidateEmbedded(schemaName, payload); err != nil {
		return "", &ParseError{Message: "response does not match " + schemaName, Cause: err}
	}
	return payload, nil
}

func (m *ModelExtractor) experienceItem(r rawExperience) (types.ExperienceItem, bool) {
	start, end := bounds(r.Dates, r.Start, r.End)
	item := types.ExperienceItem{
		Title:        string(r.Title),
		Company:      string(r.Company),
		Location:     string(r.Location),
		Dates:        normalizeSpan(start, end),
		Bullets:      cleanList(r.Bullets),
		Technologies: []string{},
		Confidence:   DefaultConfidence,
	}
	for _, t := range cleanList(r.Technologies) {
		for _, tok := range canon.Tokens(t) {
			if label, ok := m.canon.Accept(tok); ok {
				item.Technologies = canon.AppendUnique(item.Technologies, label)
			}
		}
	}
	if r.Confidence.Set {
		c := r.Confidence.Value
		if c > 1 && c <= 100 {
			c /= 100
		}
		if c > 0 && c <= 1 {
			item.Confidence = c
		}
	}
	ok := item.Title != "" || item.Company != "" || len(item.Bullets) > 0
	return item, ok
}

func educationItem(r rawEducation) (types.EducationItem, bool) {
	start, end := bounds(r.Dates, r.Start, r.End)
	item := types.EducationItem{
		Degree:   string(r.Degree),
		Field:    string(r.Field),
		School:   string(r.School),
		Location: string(r.Location),
		Dates:    normalizeSpan(start, end),
	}
	if gpa := strings.TrimSpace(string(r.GPA)); gpa != "" {
		item.GPA = &gpa
	}
	return item, item.Degree != "" || item.School != ""
}
