package core

import (
	"testing"
)

const validAnalysisJSON = `{
  "sentiment": "Positive",
  "emotion_keywords": ["joyful", "relaxed"],
  "emotion_score": 4,
  "themes": ["food", "nature"],
  "activity_mentions": ["beach"],
  "likes": ["sunset"],
  "dislikes": ["crowds"],
  "summary": "A happy day at the beach."
}`

func TestParseJournalAnalysisValidJSON(t *testing.T) {
	analysis := ParseJournalAnalysis(validAnalysisJSON)

	if analysis.Sentiment != "positive" {
		t.Errorf("expected normalized sentiment positive, got %q", analysis.Sentiment)
	}
	if analysis.EmotionScore != 4 {
		t.Errorf("expected score 4, got %d", analysis.EmotionScore)
	}
	if len(analysis.EmotionKeywords) != 2 || analysis.EmotionKeywords[0] != "joyful" {
		t.Errorf("unexpected keywords: %v", analysis.EmotionKeywords)
	}
	if analysis.Summary != "A happy day at the beach." {
		t.Errorf("unexpected summary: %q", analysis.Summary)
	}
}

func TestParseJournalAnalysisFencedJSON(t *testing.T) {
	raw := "```json\n" + validAnalysisJSON + "\n```"
	analysis := ParseJournalAnalysis(raw)
	if analysis.Sentiment != "positive" {
		t.Errorf("expected fenced JSON to parse, got sentiment %q", analysis.Sentiment)
	}
}

func TestParseJournalAnalysisJSONEmbeddedInProse(t *testing.T) {
	raw := "Sure! Here is the analysis you asked for:\n" + validAnalysisJSON + "\nLet me know if you need anything else."
	analysis := ParseJournalAnalysis(raw)
	if analysis.Sentiment != "positive" {
		t.Errorf("expected embedded JSON to parse, got sentiment %q", analysis.Sentiment)
	}
}

func TestParseJournalAnalysisIsTotal(t *testing.T) {
	inputs := []string{
		"",
		"just some prose about a trip",
		"{not valid json",
		`{"sentiment": ["wrong", "shape"]}`,
	}

	for _, raw := range inputs {
		analysis := ParseJournalAnalysis(raw)

		if analysis.Sentiment == "" {
			t.Errorf("input %q: sentiment must never be empty", raw)
		}
		if analysis.EmotionKeywords == nil || analysis.Themes == nil ||
			analysis.ActivityMentions == nil || analysis.Likes == nil || analysis.Dislikes == nil {
			t.Errorf("input %q: all slices must be non-nil", raw)
		}
	}
}

func TestParseJournalAnalysisFallbackKeepsRawText(t *testing.T) {
	raw := "The traveler seems happy but I cannot produce JSON."
	analysis := ParseJournalAnalysis(raw)

	if analysis.Sentiment != "unknown" {
		t.Errorf("expected unknown sentiment, got %q", analysis.Sentiment)
	}
	if analysis.EmotionScore != 0 {
		t.Errorf("expected neutral score, got %d", analysis.EmotionScore)
	}
	if analysis.Summary != raw {
		t.Errorf("fallback must preserve the raw text, got %q", analysis.Summary)
	}
}

func TestParseJournalAnalysisClampsScore(t *testing.T) {
	analysis := ParseJournalAnalysis(`{"sentiment": "negative", "emotion_score": -12, "summary": "bad"}`)
	if analysis.EmotionScore != -5 {
		t.Errorf("expected score clamped to -5, got %d", analysis.EmotionScore)
	}

	analysis = ParseJournalAnalysis(`{"sentiment": "positive", "emotion_score": 9.7, "summary": "great"}`)
	if analysis.EmotionScore != 5 {
		t.Errorf("expected score clamped to 5, got %d", analysis.EmotionScore)
	}
}

func TestParseSafetyReportValidJSON(t *testing.T) {
	raw := `{
  "risk_level": "moderate",
  "why": "petty theft in tourist areas",
  "safe_areas": ["old town"],
  "avoid_areas": ["station district at night"],
  "gender_specific_tips": [],
  "solo_traveler_mode": ["share your itinerary"],
  "emergency_guidance": "dial 112"
}`
	report := ParseSafetyReport(raw)

	if report.RiskLevel != "moderate" {
		t.Errorf("unexpected risk level: %q", report.RiskLevel)
	}
	if len(report.AvoidAreas) != 1 {
		t.Errorf("unexpected avoid areas: %v", report.AvoidAreas)
	}
	if report.EmergencyGuidance != "dial 112" {
		t.Errorf("unexpected guidance: %q", report.EmergencyGuidance)
	}
}

func TestParseSafetyReportFallback(t *testing.T) {
	raw := "I think this area is mostly fine during the day."
	report := ParseSafetyReport(raw)

	if report.RiskLevel != "Unknown" {
		t.Errorf("expected Unknown risk level, got %q", report.RiskLevel)
	}
	if report.Why != raw {
		t.Errorf("fallback must preserve the raw text, got %q", report.Why)
	}
	if report.EmergencyGuidance != "Contact nearest embassy" {
		t.Errorf("unexpected fallback guidance: %q", report.EmergencyGuidance)
	}
	if report.SafeAreas == nil || report.AvoidAreas == nil ||
		report.GenderSpecificTips == nil || report.SoloTravelerMode == nil {
		t.Error("all slices must be non-nil in the fallback record")
	}
}

func TestParseCoordinates(t *testing.T) {
	lat, lon, err := ParseCoordinates("28.6139, 77.2090")
	if err != nil {
		t.Fatalf("ParseCoordinates failed: %v", err)
	}
	if lat != 28.6139 || lon != 77.2090 {
		t.Errorf("unexpected coordinates: %f, %f", lat, lon)
	}

	if _, _, err := ParseCoordinates("somewhere in India"); err == nil {
		t.Error("expected an error for non-coordinate text")
	}
	if _, _, err := ParseCoordinates(""); err == nil {
		t.Error("expected an error for empty text")
	}
}
