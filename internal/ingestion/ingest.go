// Package ingestion turns source documents into plain text, falling back to
// OCR for sparse PDF pages and to a second extractor for sparse documents.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for extensions no extractor handles
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Extraction methods reported in Result.Method
const (
	MethodPDFText   = "pdf-text"
	MethodPDFOCR    = "pdf-ocr"
	MethodPDFRescue = "pdf-rescue"
	MethodDocconv   = "docconv"
	MethodPlainText = "plain-text"
)

// Config controls the sparse-text fallbacks
type Config struct {
	MinChars    int      // collapsed length below which a page or document is sparse, default 120
	EnableOCR   bool     // render and recognize sparse pages
	DPI         int      // rasterization DPI, default 300
	Languages   []string // OCR languages, default eng
	TessdataDir string
}

// Result is the text of one document plus how it was obtained
type Result struct {
	Text     string
	Pages    int
	OCRPages int
	Method   string
	Warnings []string
	Meta     *Metadata
}

// Ingestor extracts text. Its collaborators are exported so callers and tests
// can swap engines.
type Ingestor struct {
	cfg    Config
	logger *slog.Logger

	Open       OpenFunc
	Renderer   Renderer
	Recognizer Recognizer
	Rescuer    Rescuer
}

// defaultRecognizer is replaced by the in-process engine under the gosseract tag
var defaultRecognizer = func(cfg Config, r Runner) Recognizer {
	return TesseractRecognizer{Runner: r, Languages: cfg.Languages, TessdataDir: cfg.TessdataDir}
}

// New creates an Ingestor wired to ledongthuc/pdf, MuPDF, tesseract and docconv
func New(cfg Config, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinChars <= 0 {
		cfg.MinChars = 120
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"eng"}
	}
	runner := ExecRunner{Logger: logger}
	return &Ingestor{
		cfg:        cfg,
		logger:     logger,
		Open:       OpenPDF,
		Renderer:   FitzRenderer{},
		Recognizer: defaultRecognizer(cfg, runner),
		Rescuer:    DocconvRescuer{},
	}
}

// Ingest extracts the text of the document at path. PDFs never fail once the
// file exists: page, OCR and rescue errors become warnings.
func (in *Ingestor) Ingest(ctx context.Context, path string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Result{}, fmt.Errorf("file not found: %w", err)
		}
		return Result{}, fmt.Errorf("failed to stat file: %w", err)
	}

	var res Result
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		res = in.ingestPDF(ctx, path)
	case ".docx", ".doc", ".odt", ".rtf":
		text, err := convertDocument(path)
		if err != nil {
			return Result{}, err
		}
		res = Result{Text: text, Pages: 1, Method: MethodDocconv}
	case ".txt", ".md", ".text":
		data, err := os.ReadFile(path)
		if err != nil {
			return Result{}, fmt.Errorf("failed to read file: %w", err)
		}
		res = Result{Text: string(data), Pages: 1, Method: MethodPlainText}
	default:
		in.logger.Error("unsupported document extension", "path", path, "extension", ext)
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	res.Text = CleanText(res.Text)
	res.Meta = NewMetadata(res.Text, path)
	in.logger.Info("ingested document",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"ocr_pages", res.OCRPages,
		"chars", res.Meta.Chars,
		"warnings", len(res.Warnings))
	return res, nil
}

func (in *Ingestor) ingestPDF(ctx context.Context, path string) Result {
	res := Result{Method: MethodPDFText}

	var pages []string
	if src, err := in.open(path); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("text layer unavailable: %v", err))
	} else {
		res.Pages = src.NumPages()
		for p := 1; p <= res.Pages; p++ {
			if ctx.Err() != nil {
				res.Warnings = append(res.Warnings, fmt.Sprintf("stopped at page %d: %v", p, ctx.Err()))
				break
			}
			text, ocrUsed, warn := in.page(ctx, src, path, p)
			if warn != "" {
				res.Warnings = append(res.Warnings, warn)
			}
			if ocrUsed {
				res.OCRPages++
			}
			pages = append(pages, text)
		}
		_ = src.Close()
	}
	if res.OCRPages > 0 {
		res.Method = MethodPDFOCR
	}
	res.Text = strings.Join(pages, "\n")

	if CollapsedLen(res.Text) < in.cfg.MinChars && in.Rescuer != nil && ctx.Err() == nil {
		rescued, err := in.Rescuer.RescueText(ctx, path)
		switch {
		case err != nil:
			in.logger.Warn("rescue pass failed", "path", path, "error", err)
			res.Warnings = append(res.Warnings, fmt.Sprintf("rescue pass failed: %v", err))
		case CollapsedLen(rescued) > CollapsedLen(res.Text):
			res.Text = rescued
			res.Method = MethodPDFRescue
		}
	}
	return res
}

// page returns the text of one page, reporting whether OCR produced it
func (in *Ingestor) page(ctx context.Context, src PageSource, path string, p int) (string, bool, string) {
	text, err := src.PageText(p)
	var warn string
	if err != nil {
		warn = fmt.Sprintf("page %d: text layer failed: %v", p, err)
		text = ""
	}
	if !in.cfg.EnableOCR || CollapsedLen(text) >= in.cfg.MinChars {
		return text, false, warn
	}
	if in.Renderer == nil || in.Recognizer == nil {
		return text, false, warn
	}

	in.logger.Debug("sparse page, running ocr", "path", path, "page", p, "chars", CollapsedLen(text))
	png, err := in.Renderer.RenderPage(ctx, path, p, in.cfg.DPI)
	if err != nil {
		in.logger.Warn("page render failed", "path", path, "page", p, "error", err)
		return text, false, fmt.Sprintf("page %d: render failed: %v", p, err)
	}
	lines, err := in.Recognizer.Recognize(ctx, png)
	if err != nil {
		in.logger.Warn("page ocr failed", "path", path, "page", p, "error", err)
		return text, false, fmt.Sprintf("page %d: ocr failed: %v", p, err)
	}
	if len(lines) == 0 {
		return text, false, warn
	}
	return strings.Join(lines, "\n"), true, warn
}

func (in *Ingestor) open(path string) (PageSource, error) {
	if in.Open == nil {
		return OpenPDF(path)
	}
	return in.Open(path)
}
