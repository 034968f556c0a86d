package core

import (
	"reflect"
	"testing"

	"github.com/wayfarer-app/wayfarer/internal/store"
)

func TestMergeAnalysisIntoEmptyProfile(t *testing.T) {
	analysis := JournalAnalysis{
		Sentiment:       "positive",
		EmotionKeywords: []string{"joyful"},
		EmotionScore:    3,
		Themes:          []string{"food"},
		Likes:           []string{"sunset"},
		Dislikes:        []string{},
	}

	profile := MergeAnalysis(store.Profile{}, analysis)

	if profile.EmotionalScoreSum != 3 {
		t.Errorf("expected score sum 3, got %d", profile.EmotionalScoreSum)
	}
	if profile.EmotionalEntries != 1 {
		t.Errorf("expected 1 entry, got %d", profile.EmotionalEntries)
	}
	if !reflect.DeepEqual(profile.Likes, []string{"sunset"}) {
		t.Errorf("unexpected likes: %v", profile.Likes)
	}
	if !reflect.DeepEqual(profile.FavoriteThemes, []string{"food"}) {
		t.Errorf("unexpected favorite themes: %v", profile.FavoriteThemes)
	}
	if !reflect.DeepEqual(profile.PositiveKeywords, []string{"joyful"}) {
		t.Errorf("unexpected positive keywords: %v", profile.PositiveKeywords)
	}
}

func TestMergeAnalysisTwiceAccumulatesCountersNotSets(t *testing.T) {
	analysis := JournalAnalysis{
		EmotionKeywords: []string{"excited"},
		EmotionScore:    2,
		Themes:          []string{"culture"},
		Likes:           []string{"street food"},
		Dislikes:        []string{"heat"},
	}

	profile := MergeAnalysis(store.Profile{}, analysis)
	profile = MergeAnalysis(profile, analysis)

	if profile.EmotionalEntries != 2 {
		t.Errorf("expected 2 entries, got %d", profile.EmotionalEntries)
	}
	if profile.EmotionalScoreSum != 4 {
		t.Errorf("expected score sum 4, got %d", profile.EmotionalScoreSum)
	}
	if len(profile.Likes) != 1 || len(profile.FavoriteThemes) != 1 ||
		len(profile.Dislikes) != 1 || len(profile.PositiveKeywords) != 1 {
		t.Errorf("sets must deduplicate across merges: %+v", profile)
	}
	if len(profile.AvoidThemes) != 1 {
		t.Errorf("avoid themes must only gain new dislikes: %v", profile.AvoidThemes)
	}
}

func TestMergeAnalysisDislikesFeedAvoidThemes(t *testing.T) {
	analysis := JournalAnalysis{
		EmotionScore: -2,
		Dislikes:     []string{"crowds", "heat"},
	}

	profile := MergeAnalysis(store.Profile{}, analysis)

	if !reflect.DeepEqual(profile.Dislikes, []string{"crowds", "heat"}) {
		t.Errorf("unexpected dislikes: %v", profile.Dislikes)
	}
	if !reflect.DeepEqual(profile.AvoidThemes, []string{"crowds", "heat"}) {
		t.Errorf("every new dislike must also be an avoid theme: %v", profile.AvoidThemes)
	}
}

func TestMergeAnalysisKeywordRoutingUsesAggregateScore(t *testing.T) {
	// All keywords route by the analysis's aggregate score sign, even
	// keywords that read positive in a negative entry.
	analysis := JournalAnalysis{
		EmotionKeywords: []string{"hopeful", "exhausted"},
		EmotionScore:    -1,
	}

	profile := MergeAnalysis(store.Profile{}, analysis)

	if len(profile.PositiveKeywords) != 0 {
		t.Errorf("expected no positive keywords, got %v", profile.PositiveKeywords)
	}
	if !reflect.DeepEqual(profile.NegativeKeywords, []string{"hopeful", "exhausted"}) {
		t.Errorf("unexpected negative keywords: %v", profile.NegativeKeywords)
	}

	// A zero score routes negative as well: only strictly positive
	// scores count as positive signal.
	profile = MergeAnalysis(store.Profile{}, JournalAnalysis{
		EmotionKeywords: []string{"calm"},
		EmotionScore:    0,
	})
	if len(profile.NegativeKeywords) != 1 {
		t.Errorf("zero score must route negative, got %+v", profile)
	}
}

func TestMergeFromAnalysisPersists(t *testing.T) {
	profiles := store.NewProfileStore(t.TempDir())
	svc := NewMemoryService(profiles, nil, t.TempDir())

	analysis := JournalAnalysis{
		EmotionScore: 3,
		Likes:        []string{"sunset"},
		Themes:       []string{"food"},
	}

	if _, err := svc.MergeFromAnalysis(analysis); err != nil {
		t.Fatalf("MergeFromAnalysis failed: %v", err)
	}
	if _, err := svc.MergeFromAnalysis(analysis); err != nil {
		t.Fatalf("MergeFromAnalysis failed: %v", err)
	}

	profile, err := svc.Profile()
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if profile.EmotionalEntries != 2 || profile.EmotionalScoreSum != 6 {
		t.Errorf("expected accumulated counters after reload, got %+v", profile)
	}
	if len(profile.Likes) != 1 {
		t.Errorf("expected deduplicated likes after reload, got %v", profile.Likes)
	}
}
