package ingestion

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageSource exposes the text layer of a paged document. Pages are 1-based.
type PageSource interface {
	NumPages() int
	PageText(page int) (string, error)
	Close() error
}

// OpenFunc opens a PageSource for a path
type OpenFunc func(path string) (PageSource, error)

// rowTolerance is how far apart (in points) two glyph baselines may be and
// still belong to the same visual row.
const rowTolerance = 2.0

// PDFSource reads the text layer with ledongthuc/pdf
type PDFSource struct {
	reader *pdf.Reader
}

// OpenPDF loads the whole file into memory and parses its cross-reference table
func OpenPDF(path string) (PageSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}
	return newPDFSource(data)
}

func newPDFSource(data []byte) (src *PDFSource, err error) {
	// the reader panics on some malformed trailers
	defer func() {
		if r := recover(); r != nil {
			src, err = nil, fmt.Errorf("malformed pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	return &PDFSource{reader: r}, nil
}

// NumPages returns the page count
func (s *PDFSource) NumPages() int {
	return s.reader.NumPage()
}

// PageText returns the page's glyphs arranged in rows, top to bottom and
// left to right within a row.
func (s *PDFSource) PageText(page int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("page %d: %v", page, r)
		}
	}()

	p := s.reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	return layoutRows(p.Content().Text), nil
}

// Close is a no-op; the document lives in memory
func (s *PDFSource) Close() error {
	return nil
}

func layoutRows(glyphs []pdf.Text) string {
	if len(glyphs) == 0 {
		return ""
	}
	sorted := make([]pdf.Text, len(glyphs))
	copy(sorted, glyphs)
	// PDF y grows upwards
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var groups [][]pdf.Text
	for _, g := range sorted {
		n := len(groups)
		if n > 0 && math.Abs(groups[n-1][0].Y-g.Y) <= rowTolerance {
			groups[n-1] = append(groups[n-1], g)
			continue
		}
		groups = append(groups, []pdf.Text{g})
	}

	rows := make([]string, 0, len(groups))
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool { return group[i].X < group[j].X })
		var row strings.Builder
		lastEnd := group[0].X
		for i, g := range group {
			if i > 0 && g.X-lastEnd > gapFor(g) {
				row.WriteByte(' ')
			}
			row.WriteString(g.S)
			lastEnd = g.X + g.W
		}
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n")
}

// gapFor is the horizontal gap treated as a word break for a glyph
func gapFor(g pdf.Text) float64 {
	if g.FontSize > 0 {
		return g.FontSize * 0.2
	}
	return 1.5
}
