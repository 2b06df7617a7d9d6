package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteSnapshot exports the current state and writes it as a timestamped
// JSON file under dir, returning the file path. Used by the scheduled
// backup job.
func (s *Service) WriteSnapshot(ctx context.Context, dir string) (string, error) {
	snap, err := s.Export(ctx)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	path := filepath.Join(dir, "orcamenta-"+snap.CreatedAt.Format("20060102-150405")+".json")
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}
