package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ReadDoc loads one of the bundled JSON data documents (stays catalogue,
// regional safety database, weather defaults). A missing file is not an
// error: the zero value of dest is left untouched.
func ReadDoc(dataDir, name string, dest any) error {
	data, err := os.ReadFile(filepath.Join(dataDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// WriteDoc persists a JSON document under the data directory, last write
// wins.
func WriteDoc(dataDir, name string, v any) error {
	path := filepath.Join(dataDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func LoadSafetyRecords(dataDir string) ([]SafetyRecord, error) {
	var records []SafetyRecord
	if err := ReadDoc(dataDir, "safety.json", &records); err != nil {
		return nil, err
	}
	return records, nil
}

func LoadStays(dataDir string) (map[string][]Stay, error) {
	stays := make(map[string][]Stay)
	if err := ReadDoc(dataDir, "stays.json", &stays); err != nil {
		return nil, err
	}
	return stays, nil
}
