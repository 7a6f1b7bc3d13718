package ingestion

import (
	"context"
	"fmt"
	"os"

	"code.sajari.com/docconv"
)

// Rescuer is a second text extractor tried when the primary pass is sparse
type Rescuer interface {
	RescueText(ctx context.Context, path string) (string, error)
}

// DocconvRescuer extracts with docconv's PDF converter (poppler's pdftotext)
type DocconvRescuer struct{}

// RescueText runs the conversion
func (DocconvRescuer) RescueText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	text, _, err := docconv.ConvertPDF(f)
	if err != nil {
		return "", fmt.Errorf("docconv: %w", err)
	}
	return text, nil
}

// convertDocument turns office formats into plain text
func convertDocument(path string) (string, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", fmt.Errorf("docconv: %w", err)
	}
	if res.Error != "" {
		return "", fmt.Errorf("docconv: %s", res.Error)
	}
	return res.Body, nil
}
