package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/wayfarer-app/wayfarer/internal/store"
)

// JournalService stores journal entries and runs the analysis pipeline:
// prompt build, completion, total parse, profile merge.
type JournalService struct {
	ai     *AIService
	db     *store.SQLiteStore
	memory *MemoryService
}

func NewJournalService(ai *AIService, db *store.SQLiteStore, memory *MemoryService) *JournalService {
	return &JournalService{ai: ai, db: db, memory: memory}
}

func (s *JournalService) SaveEntry(text, date, image string) (*store.JournalEntry, error) {
	entry := &store.JournalEntry{Text: text, Date: date, Image: image}
	if err := s.db.CreateJournalEntry(entry); err != nil {
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	return entry, nil
}

func (s *JournalService) ListEntries(limit int) ([]store.JournalEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.db.ListJournalEntries(limit)
}

// AnalyzeEntry runs the analysis pipeline for one entry text. The parse
// step is total, so a reachable model always produces a usable analysis;
// only a complete provider failure surfaces as an error. When entryID is
// non-empty the parsed analysis is stored alongside the saved entry.
func (s *JournalService) AnalyzeEntry(ctx context.Context, entryID, text string) (JournalAnalysis, error) {
	response, err := s.ai.Ask(ctx, JournalAnalysisPrompt(text))
	if err != nil {
		return JournalAnalysis{}, err
	}

	analysis := ParseJournalAnalysis(response)

	if _, err := s.memory.MergeFromAnalysis(analysis); err != nil {
		// The analysis itself is still good; losing one merge degrades
		// the profile, not the response.
		log.Error().Err(err).Msg("failed to merge journal analysis into profile")
	}

	if entryID != "" {
		if data, err := json.Marshal(analysis); err == nil {
			if err := s.db.UpdateJournalAnalysis(entryID, string(data)); err != nil {
				log.Error().Err(err).Str("entry_id", entryID).Msg("failed to persist journal analysis")
			}
		}
	}

	return analysis, nil
}
