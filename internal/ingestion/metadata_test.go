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
		SourcePath: "resumes/jane.pdf",
		Format:     "pdf",
		Timestamp:  "2024-01-01T00:00:00Z",
		Hash:       "abcd1234",
	}

	// Test marshaling
	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)
	assert.NotEmpty(t, jsonBytes)

	// Test that it's valid JSON
	var unmarshaled Metadata
	err = json.Unmarshal(jsonBytes, &unmarshaled)
	require.NoError(t, err)
	assert.Equal(t, metadata.SourcePath, unmarshaled.SourcePath)
	assert.Equal(t, metadata.Format, unmarshaled.Format)
	assert.Equal(t, metadata.Timestamp, unmarshaled.Timestamp)
	assert.Equal(t, metadata.Hash, unmarshaled.Hash)
}

func TestComputeHash(t *testing.T) {
	content1 := []byte("test content")
	content2 := []byte("different content")

	hash1 := computeHash(content1)
	hash2 := computeHash(content2)

	// Hash should be 64 hex characters (SHA256)
	assert.Len(t, hash1, 64)
	assert.Len(t, hash2, 64)

	// Different content should produce different hashes
	assert.NotEqual(t, hash1, hash2)

	// Same content should produce same hash
	hash1Again := computeHash(content1)
	assert.Equal(t, hash1, hash1Again)
}

func TestNewMetadata(t *testing.T) {
	doc := &Document{
		Name:   "jane.pdf",
		Format: FormatPDF,
		Data:   []byte("raw bytes"),
	}

	metadata := NewMetadata(doc, "resumes/jane.pdf", "cleaned text")

	assert.Equal(t, "resumes/jane.pdf", metadata.SourcePath)
	assert.Equal(t, "pdf", metadata.Format)
	assert.Equal(t, len(doc.Data), metadata.SizeBytes)
	assert.Equal(t, len("cleaned text"), metadata.TextLength)
	assert.NotEmpty(t, metadata.Timestamp)
	assert.Len(t, metadata.Hash, 64) // SHA256 hex length

	// Verify timestamp is valid RFC3339
	_, err := time.Parse(time.RFC3339, metadata.Timestamp)
	assert.NoError(t, err)

	// Verify hash is computed from the raw bytes, not the cleaned text
	expectedHash := computeHash(doc.Data)
	assert.Equal(t, expectedHash, metadata.Hash)
}
