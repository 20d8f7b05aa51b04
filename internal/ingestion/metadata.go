package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata contains metadata about an ingested resume document
type Metadata struct {
	SourcePath string `json:"source_path,omitempty"`
	Format     string `json:"format"`
	Timestamp  string `json:"timestamp"`   // RFC3339 format
	Hash       string `json:"hash"`        // SHA256 hex digest of the raw bytes
	SizeBytes  int    `json:"size_bytes"`  // Raw document size
	TextLength int    `json:"text_length"` // Length of the cleaned text
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(doc *Document, sourcePath string, cleanedText string) *Metadata {
	return &Metadata{
		SourcePath: sourcePath,
		Format:     string(doc.Format),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       computeHash(doc.Data),
		SizeBytes:  len(doc.Data),
		TextLength: len(cleanedText),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
