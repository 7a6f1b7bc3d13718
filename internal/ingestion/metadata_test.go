package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_JSONMarshaling(t *testing.T) {
	metadata := &Metadata{
		Path:      "/tmp/cv.pdf",
		Format:    "pdf",
		Timestamp: "2024-01-01T00:00:00Z",
		Hash:      "abcd1234",
		Chars:     42,
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)

	var unmarshaled Metadata
	require.NoError(t, json.Unmarshal(jsonBytes, &unmarshaled))
	assert.Equal(t, *metadata, unmarshaled)
}

func TestComputeHash(t *testing.T) {
	hash1 := computeHash("test content")
	hash2 := computeHash("different content")

	// Hash should be 64 hex characters (SHA256)
	assert.Len(t, hash1, 64)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, hash1, computeHash("test content"))
}

func TestNewMetadata(t *testing.T) {
	content := "John Doe\njohn@example.com"
	metadata := NewMetadata(content, "/data/John Doe.PDF")

	assert.Equal(t, "/data/John Doe.PDF", metadata.Path)
	assert.Equal(t, "pdf", metadata.Format)
	assert.Equal(t, computeHash(content), metadata.Hash)
	assert.Equal(t, len([]rune(content)), metadata.Chars)

	_, err := time.Parse(time.RFC3339, metadata.Timestamp)
	assert.NoError(t, err)
}
