package store

import (
	"sync"
	"testing"
)

func TestProfileLoadMissingFile(t *testing.T) {
	s := NewProfileStore(t.TempDir())

	profile, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if profile.EmotionalEntries != 0 || len(profile.Likes) != 0 {
		t.Errorf("expected zero profile, got %+v", profile)
	}
}

func TestProfileSaveAndLoad(t *testing.T) {
	s := NewProfileStore(t.TempDir())

	err := s.Save(Profile{
		Name:         "Ana",
		TravelerType: "solo",
		Likes:        []string{"sunsets"},
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	profile, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if profile.Name != "Ana" || profile.TravelerType != "solo" {
		t.Errorf("profile not persisted: %+v", profile)
	}
	if len(profile.Likes) != 1 || profile.Likes[0] != "sunsets" {
		t.Errorf("likes not persisted: %v", profile.Likes)
	}
}

func TestProfileUpdatePersists(t *testing.T) {
	s := NewProfileStore(t.TempDir())

	updated, err := s.Update(func(p Profile) Profile {
		p.EmotionalScoreSum += 3
		p.EmotionalEntries++
		return p
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.EmotionalScoreSum != 3 || updated.EmotionalEntries != 1 {
		t.Errorf("unexpected updated profile: %+v", updated)
	}

	reloaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if reloaded.EmotionalScoreSum != 3 || reloaded.EmotionalEntries != 1 {
		t.Errorf("update not persisted: %+v", reloaded)
	}
}

func TestProfileConcurrentUpdates(t *testing.T) {
	s := NewProfileStore(t.TempDir())

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := s.Update(func(p Profile) Profile {
				p.EmotionalEntries++
				return p
			})
			if err != nil {
				t.Errorf("Update failed: %v", err)
			}
		}()
	}
	wg.Wait()

	profile, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if profile.EmotionalEntries != n {
		t.Errorf("expected %d entries, got %d", n, profile.EmotionalEntries)
	}
}

func TestAverageMood(t *testing.T) {
	p := Profile{EmotionalScoreSum: 7, EmotionalEntries: 2}
	if got := p.AverageMood(); got != 3.5 {
		t.Errorf("expected 3.5, got %v", got)
	}

	var empty Profile
	if got := empty.AverageMood(); got != 0 {
		t.Errorf("expected 0 for empty profile, got %v", got)
	}
}
