package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ProfileStore persists the single user profile as a JSON file, last
// write wins. The mutex serializes every read-modify-write so two
// concurrent journal merges cannot clobber each other on stale reads.
type ProfileStore struct {
	mu   sync.Mutex
	path string
}

func NewProfileStore(dataDir string) *ProfileStore {
	return &ProfileStore{path: filepath.Join(dataDir, "user_profile.json")}
}

func (s *ProfileStore) Load() (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *ProfileStore) load() (Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, nil // Created empty on first write
		}
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileStore) save(profile Profile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	data, err := json.MarshalIndent(profile, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// Save replaces the stored profile wholesale.
func (s *ProfileStore) Save(profile Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(profile)
}

// Update applies fn to the current profile and persists the result.
// The whole read-modify-write runs inside the critical section.
func (s *ProfileStore) Update(fn func(Profile) Profile) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.load()
	if err != nil {
		return Profile{}, err
	}

	updated := fn(profile)
	if err := s.save(updated); err != nil {
		return Profile{}, err
	}
	return updated, nil
}
