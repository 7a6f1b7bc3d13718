package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/gen2brain/go-fitz"
)

// Renderer rasterizes one upright page (1-based) to PNG
type Renderer interface {
	RenderPage(ctx context.Context, path string, page int, dpi int) ([]byte, error)
}

// FitzRenderer renders with MuPDF, which applies the page's /Rotate entry
type FitzRenderer struct{}

// RenderPage opens path and renders the requested page
func (FitzRenderer) RenderPage(ctx context.Context, path string, page int, dpi int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer doc.Close()

	if page < 1 || page > doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range (1-%d)", page, doc.NumPage())
	}
	png, err := doc.ImagePNG(page-1, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", page, err)
	}
	return png, nil
}

// PdftoppmRenderer shells out to poppler's pdftoppm
type PdftoppmRenderer struct {
	Runner Runner
	Bin    string
}

// RenderPage renders a single page into a temp directory and reads it back
func (r PdftoppmRenderer) RenderPage(ctx context.Context, path string, page int, dpi int) ([]byte, error) {
	bin := r.Bin
	if bin == "" {
		bin = "pdftoppm"
	}
	tmpDir, err := os.MkdirTemp("", "ats-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	n := strconv.Itoa(page)
	args := []string{"-r", strconv.Itoa(dpi), "-f", n, "-l", n, "-png", path, prefix}
	if _, stderr, err := r.Runner.Run(ctx, bin, args...); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %v: %s", err, truncate(string(stderr), 2<<10))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no image for page %d", page)
	}
	sort.Strings(matches)
	return os.ReadFile(matches[0])
}
