package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wayfarer-app/wayfarer/internal/store"
)

func appendUnique(set []string, items ...string) []string {
	for _, item := range items {
		if item == "" {
			continue
		}
		found := false
		for _, existing := range set {
			if existing == item {
				found = true
				break
			}
		}
		if !found {
			set = append(set, item)
		}
	}
	return set
}

// MergeAnalysis folds one journal analysis into a profile. It is a pure
// transformation; each call adds another entry to the cumulative counters
// because the profile accumulates over a journal of distinct events, not
// a reconciled set. Policy:
//   - score sum and entry count accumulate additively;
//   - likes and themes union into likes/favorite_themes;
//   - every new dislike is also appended to avoid_themes;
//   - all emotion keywords route by the sign of the analysis's aggregate
//     score, not per-keyword sentiment.
func MergeAnalysis(profile store.Profile, analysis JournalAnalysis) store.Profile {
	profile.EmotionalScoreSum += analysis.EmotionScore
	profile.EmotionalEntries++

	profile.Likes = appendUnique(profile.Likes, analysis.Likes...)
	profile.FavoriteThemes = appendUnique(profile.FavoriteThemes, analysis.Themes...)

	for _, dislike := range analysis.Dislikes {
		before := len(profile.Dislikes)
		profile.Dislikes = appendUnique(profile.Dislikes, dislike)
		if len(profile.Dislikes) > before {
			profile.AvoidThemes = append(profile.AvoidThemes, dislike)
		}
	}

	if analysis.EmotionScore > 0 {
		profile.PositiveKeywords = appendUnique(profile.PositiveKeywords, analysis.EmotionKeywords...)
	} else {
		profile.NegativeKeywords = appendUnique(profile.NegativeKeywords, analysis.EmotionKeywords...)
	}

	return profile
}

// MemoryService owns the persistent user profile. Merges are serialized
// through the profile store's single-writer lock so concurrent journal
// submissions cannot lose updates.
type MemoryService struct {
	profiles *store.ProfileStore
	ai       *AIService
	dataDir  string
}

func NewMemoryService(profiles *store.ProfileStore, ai *AIService, dataDir string) *MemoryService {
	return &MemoryService{profiles: profiles, ai: ai, dataDir: dataDir}
}

func (s *MemoryService) Profile() (store.Profile, error) {
	return s.profiles.Load()
}

func (s *MemoryService) SaveProfile(profile store.Profile) error {
	return s.profiles.Save(profile)
}

// MergeFromAnalysis applies MergeAnalysis under the store lock and
// returns the updated profile.
func (s *MemoryService) MergeFromAnalysis(analysis JournalAnalysis) (store.Profile, error) {
	return s.profiles.Update(func(p store.Profile) store.Profile {
		return MergeAnalysis(p, analysis)
	})
}

// EnrichProfile asks the AI engine to infer deeper preference patterns
// from the profile plus journal history. The raw response is cached as a
// JSON document; it is advisory material, not parsed state.
func (s *MemoryService) EnrichProfile(ctx context.Context, journeys []store.JournalEntry) (string, error) {
	profile, err := s.profiles.Load()
	if err != nil {
		return "", err
	}

	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode profile: %w", err)
	}
	journeysJSON, err := json.MarshalIndent(journeys, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode journeys: %w", err)
	}

	response, err := s.ai.Ask(ctx, EnrichProfilePrompt(string(profileJSON), string(journeysJSON)))
	if err != nil {
		return "", err
	}

	if err := store.WriteDoc(s.dataDir, "ai_cache.json", map[string]string{"profile_enriched": response}); err != nil {
		return "", err
	}
	return response, nil
}
