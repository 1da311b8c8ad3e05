package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a snapshot file and validates the catalog/matrix invariants.
// Any error here is a configuration error: the caller is expected to treat it
// as fatal rather than serve requests against a broken snapshot.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot %s: %w", path, err)
	}

	return &snap, nil
}

// Validate checks the row alignment and embedding dimensions. A zero
// Dimension field is filled in from the first embedding row.
func (s *Snapshot) Validate() error {
	if len(s.Items) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	if len(s.Items) != len(s.Embeddings) {
		return fmt.Errorf("catalog has %d items but %d embedding rows", len(s.Items), len(s.Embeddings))
	}

	if s.Dimension == 0 {
		s.Dimension = len(s.Embeddings[0])
	}
	if s.Dimension == 0 {
		return fmt.Errorf("embedding dimension is zero")
	}

	for i, row := range s.Embeddings {
		if len(row) != s.Dimension {
			return fmt.Errorf("embedding row %d (%s) has dimension %d, want %d",
				i, s.Items[i].Name, len(row), s.Dimension)
		}
	}

	return nil
}
