package report

import (
	"encoding/json"
	"fmt"
	"time"
)

// BlobVersion identifies the export format.
const BlobVersion = "1.0"

// Blob is the persisted/exported form of a report, plus the sibling
// state that travels with it (AI provider selection, uploaded
// instructions text).
type Blob struct {
	Version      string            `json:"version"`
	ExportedAt   string            `json:"exported_at,omitempty"`
	Report       *Report           `json:"report"`
	AIConfig     *AIProviderConfig `json:"ai_config,omitempty"`
	Instructions string            `json:"instructions,omitempty"`
}

// ExportBlob serializes the report into the versioned blob format.
func ExportBlob(r *Report, aiCfg *AIProviderConfig, instructions string) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("no report to export")
	}
	blob := Blob{
		Version:      BlobVersion,
		ExportedAt:   time.Now().Format(time.RFC3339),
		Report:       r,
		AIConfig:     aiCfg,
		Instructions: instructions,
	}
	return json.MarshalIndent(blob, "", "  ")
}

// ImportBlob parses a previously exported blob. A payload missing the
// minimal shape (version + report) is rejected with a descriptive error
// and nothing is returned, so callers cannot partially overwrite state.
func ImportBlob(data []byte) (*Blob, error) {
	var blob Blob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("parse blob: %w", err)
	}
	if blob.Version == "" {
		return nil, fmt.Errorf("invalid blob: missing version field")
	}
	if blob.Report == nil {
		return nil, fmt.Errorf("invalid blob: missing report field")
	}
	return &blob, nil
}
