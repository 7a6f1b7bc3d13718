// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults for the empirical thresholds
const (
	DefaultSparseTextMinChars = 120
	DefaultReconcileThreshold = 120
	DefaultAllowlistMinSize   = 200
	DefaultOCRDPI             = 300
	DefaultLLMTimeoutSeconds  = 45
	DefaultPhoneRegion        = "CA"
	DefaultLLMTier            = "lite"
)

// DefaultAllowlistDir is where the allowlist builder writes its artifacts
var DefaultAllowlistDir = filepath.Join("data", "allowlists", "compiled")

// Config represents the parser configuration. Values come from an optional
// JSON file, then environment variables, then CLI flags.
type Config struct {
	// OCR
	UseOCR             bool     `json:"use_ocr,omitempty"`
	OCRLanguages       []string `json:"ocr_languages,omitempty" validate:"dive,min=2,max=8"`
	OCRDPI             int      `json:"ocr_dpi,omitempty" validate:"omitempty,min=72,max=1200"`
	TessdataDir        string   `json:"tessdata_dir,omitempty"`
	SparseTextMinChars int      `json:"sparse_text_min_chars,omitempty" validate:"omitempty,min=1"`

	// Model extraction
	UseLLM            bool   `json:"use_llm,omitempty"`
	APIKey            string `json:"api_key,omitempty"` // without one the run stays rules-only
	LLMTier           string `json:"llm_tier,omitempty" validate:"omitempty,oneof=lite standard advanced"`
	LLMTimeoutSeconds int    `json:"llm_timeout_seconds,omitempty" validate:"omitempty,min=1,max=600"`
	LLMRatePerMinute  int    `json:"llm_rate_per_minute,omitempty" validate:"min=0"`

	// Canonicalization
	AllowlistDir     string `json:"allowlist_dir,omitempty"`
	AllowlistMinSize int    `json:"allowlist_min_size,omitempty" validate:"min=0"`

	// Extraction
	PhoneRegion        string `json:"phone_region,omitempty" validate:"omitempty,len=2,uppercase"`
	ReconcileThreshold int    `json:"reconcile_threshold,omitempty" validate:"omitempty,min=1,max=200"`

	Verbose bool `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		OCRLanguages:       []string{"en"},
		OCRDPI:             DefaultOCRDPI,
		SparseTextMinChars: DefaultSparseTextMinChars,
		LLMTier:            DefaultLLMTier,
		LLMTimeoutSeconds:  DefaultLLMTimeoutSeconds,
		AllowlistDir:       DefaultAllowlistDir,
		AllowlistMinSize:   DefaultAllowlistMinSize,
		PhoneRegion:        DefaultPhoneRegion,
		ReconcileThreshold: DefaultReconcileThreshold,
	}
}

// LLMTimeout returns the model call timeout
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLMTimeoutSeconds) * time.Second
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// LookupFunc reads one environment variable
type LookupFunc func(key string) (string, bool)

// FromEnv overlays process environment variables onto c
func (c *Config) FromEnv() error {
	return c.ApplyEnv(os.LookupEnv)
}

// ApplyEnv overlays the variables visible through lookup onto c. Set but
// malformed values are reported together.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	flag := func(key string, dst *bool) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: expected a boolean, got %q", key, v))
			return
		}
		*dst = b
	}
	num := func(key string, dst *int) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: expected an integer, got %q", key, v))
			return
		}
		*dst = n
	}

	flag("USE_OCR", &c.UseOCR)
	if v, ok := lookup("OCR_LANGS"); ok && strings.TrimSpace(v) != "" {
		c.OCRLanguages = splitList(v)
	}
	num("OCR_DPI", &c.OCRDPI)
	str("TESSDATA_PREFIX", &c.TessdataDir)
	num("SPARSE_TEXT_MIN_CHARS", &c.SparseTextMinChars)

	flag("USE_LLM", &c.UseLLM)
	str("GEMINI_API_KEY", &c.APIKey)
	str("LLM_TIER", &c.LLMTier)
	if v, ok := lookup("LLM_TIMEOUT"); ok && strings.TrimSpace(v) != "" {
		secs, err := parseSeconds(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("LLM_TIMEOUT: %w", err))
		} else {
			c.LLMTimeoutSeconds = secs
		}
	}
	num("LLM_RATE_PER_MIN", &c.LLMRatePerMinute)

	str("ALLOWLIST_DIR", &c.AllowlistDir)
	num("ALLOWLIST_MIN_SIZE", &c.AllowlistMinSize)
	str("PHONE_REGION", &c.PhoneRegion)
	num("RECONCILE_THRESHOLD", &c.ReconcileThreshold)

	return errors.Join(errs...)
}

// parseSeconds accepts "45" or a duration such as "45s" or "1m"
func parseSeconds(v string) (int, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("expected seconds or a duration, got %q", v)
	}
	return int(d / time.Second), nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == '+' }) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' validation", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	// A missing allowlist directory demotes to heuristic mode at load time
	if c.AllowlistDir != "" {
		if info, err := os.Stat(c.AllowlistDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: allowlist path is not a directory: %s", c.AllowlistDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.TessdataDir == "" {
		result.TessdataDir = defaults.TessdataDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.LLMTier == "" {
		result.LLMTier = defaults.LLMTier
	}
	if result.AllowlistDir == "" {
		result.AllowlistDir = defaults.AllowlistDir
	}
	if result.PhoneRegion == "" {
		result.PhoneRegion = defaults.PhoneRegion
	}
	if len(result.OCRLanguages) == 0 {
		result.OCRLanguages = defaults.OCRLanguages
	}

	// Int fields: use default if zero
	if result.OCRDPI == 0 {
		result.OCRDPI = defaults.OCRDPI
	}
	if result.SparseTextMinChars == 0 {
		result.SparseTextMinChars = defaults.SparseTextMinChars
	}
	if result.LLMTimeoutSeconds == 0 {
		result.LLMTimeoutSeconds = defaults.LLMTimeoutSeconds
	}
	if result.LLMRatePerMinute == 0 {
		result.LLMRatePerMinute = defaults.LLMRatePerMinute
	}
	if result.AllowlistMinSize == 0 {
		result.AllowlistMinSize = defaults.AllowlistMinSize
	}
	if result.ReconcileThreshold == 0 {
		result.ReconcileThreshold = defaults.ReconcileThreshold
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags and the environment always win for bools)

	return result
}
