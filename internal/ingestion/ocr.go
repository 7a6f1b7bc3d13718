package ingestion

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Recognizer turns a page image into text lines
type Recognizer interface {
	Recognize(ctx context.Context, png []byte) ([]string, error)
}

// stray box-drawing and pipe runs tesseract emits for table borders
var reBoxNoise = regexp.MustCompile(`[│┃┆┇┊┋|]{2,}`)

// TesseractRecognizer runs the tesseract binary on a temp PNG file
type TesseractRecognizer struct {
	Runner      Runner
	Bin         string
	Languages   []string
	TessdataDir string
}

// Recognize writes png to disk and runs `tesseract <file> stdout -l <langs>`
func (t TesseractRecognizer) Recognize(ctx context.Context, png []byte) ([]string, error) {
	f, err := os.CreateTemp("", "ats-page-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp image: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(png); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to write temp image: %w", err)
	}

	bin := t.Bin
	if bin == "" {
		bin = "tesseract"
	}
	args := []string{f.Name(), "stdout", "-l", tesseractLangs(t.Languages)}
	if t.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.TessdataDir)
	}

	out, errb, err := t.Runner.Run(ctx, bin, args...)
	if err != nil {
		return nil, fmt.Errorf("tesseract: %w: %s", err, truncate(string(errb), 2<<10))
	}
	return splitLines(reBoxNoise.ReplaceAllString(string(out), "")), nil
}

// tesseractLangs joins language codes, mapping the two-letter codes used in
// OCR_LANGS to tesseract's traineddata names.
func tesseractLangs(langs []string) string {
	if len(langs) == 0 {
		return "eng"
	}
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		l = strings.ToLower(strings.TrimSpace(l))
		switch l {
		case "":
			continue
		case "en":
			l = "eng"
		case "fr":
			l = "fra"
		case "es":
			l = "spa"
		case "de":
			l = "deu"
		}
		out = append(out, l)
	}
	if len(out) == 0 {
		return "eng"
	}
	return strings.Join(out, "+")
}

func splitLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
