//go:build gosseract

package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// GosseractRecognizer calls libtesseract in-process. Build with -tags gosseract.
type GosseractRecognizer struct {
	Languages []string
}

// Recognize runs one client per call; gosseract clients are not goroutine safe
func (g GosseractRecognizer) Recognize(ctx context.Context, png []byte) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(strings.Split(tesseractLangs(g.Languages), "+")...); err != nil {
		return nil, fmt.Errorf("gosseract language: %w", err)
	}
	if err := client.SetImageFromBytes(png); err != nil {
		return nil, fmt.Errorf("gosseract image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("gosseract: %w", err)
	}
	return splitLines(text), nil
}

func init() {
	defaultRecognizer = func(cfg Config, _ Runner) Recognizer {
		return GosseractRecognizer{Languages: cfg.Languages}
	}
}
