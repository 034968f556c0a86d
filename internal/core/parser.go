package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The structured parsers are total functions: whatever the model returns
// (valid JSON, fenced JSON, prose, an empty string) the caller gets back a
// fully populated record. On decode failure the raw text is preserved in
// the record's free-text field instead of being discarded, so downstream
// consumers never branch on parse success.

// JournalAnalysis is the typed record extracted from a journal-analysis
// completion. Every field is always populated.
type JournalAnalysis struct {
	Sentiment        string   `json:"sentiment"`
	EmotionKeywords  []string `json:"emotion_keywords"`
	EmotionScore     int      `json:"emotion_score"`
	Themes           []string `json:"themes"`
	ActivityMentions []string `json:"activity_mentions"`
	Likes            []string `json:"likes"`
	Dislikes         []string `json:"dislikes"`
	Summary          string   `json:"summary"`
}

// SafetyReport is the typed record extracted from a structured safety
// completion. Every field is always populated.
type SafetyReport struct {
	RiskLevel          string   `json:"risk_level"`
	Why                string   `json:"why"`
	SafeAreas          []string `json:"safe_areas"`
	AvoidAreas         []string `json:"avoid_areas"`
	GenderSpecificTips []string `json:"gender_specific_tips"`
	SoloTravelerMode   []string `json:"solo_traveler_mode"`
	EmergencyGuidance  string   `json:"emergency_guidance"`
}

// extractJSON locates the outermost JSON object embedded in free text.
// Models frequently wrap their JSON in markdown fences or surround it
// with prose; both are tolerated.
func extractJSON(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

func clampScore(score float64) int {
	n := int(score)
	if n > 5 {
		return 5
	}
	if n < -5 {
		return -5
	}
	return n
}

func normalizeSentiment(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return "positive"
	case "neutral":
		return "neutral"
	case "negative":
		return "negative"
	default:
		return "unknown"
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// FallbackJournalAnalysis is the default-filled record substituted when
// the model's raw text cannot be decoded.
func FallbackJournalAnalysis(raw string) JournalAnalysis {
	return JournalAnalysis{
		Sentiment:        "unknown",
		EmotionKeywords:  []string{},
		EmotionScore:     0,
		Themes:           []string{},
		ActivityMentions: []string{},
		Likes:            []string{},
		Dislikes:         []string{},
		Summary:          raw,
	}
}

// ParseJournalAnalysis decodes a model response into a JournalAnalysis.
// It never fails: malformed input yields the fallback record.
func ParseJournalAnalysis(raw string) JournalAnalysis {
	body, ok := extractJSON(raw)
	if !ok {
		return FallbackJournalAnalysis(raw)
	}

	// Wire shape: the score arrives as an unconstrained number, models
	// routinely emit floats or values outside [-5, 5].
	var wire struct {
		Sentiment        string   `json:"sentiment"`
		EmotionKeywords  []string `json:"emotion_keywords"`
		EmotionScore     float64  `json:"emotion_score"`
		Themes           []string `json:"themes"`
		ActivityMentions []string `json:"activity_mentions"`
		Likes            []string `json:"likes"`
		Dislikes         []string `json:"dislikes"`
		Summary          string   `json:"summary"`
	}
	if err := json.Unmarshal([]byte(body), &wire); err != nil {
		return FallbackJournalAnalysis(raw)
	}

	return JournalAnalysis{
		Sentiment:        normalizeSentiment(wire.Sentiment),
		EmotionKeywords:  orEmpty(wire.EmotionKeywords),
		EmotionScore:     clampScore(wire.EmotionScore),
		Themes:           orEmpty(wire.Themes),
		ActivityMentions: orEmpty(wire.ActivityMentions),
		Likes:            orEmpty(wire.Likes),
		Dislikes:         orEmpty(wire.Dislikes),
		Summary:          wire.Summary,
	}
}

// FallbackSafetyReport is the default-filled record substituted when the
// model's raw text cannot be decoded.
func FallbackSafetyReport(raw string) SafetyReport {
	return SafetyReport{
		RiskLevel:          "Unknown",
		Why:                raw,
		SafeAreas:          []string{},
		AvoidAreas:         []string{},
		GenderSpecificTips: []string{},
		SoloTravelerMode:   []string{},
		EmergencyGuidance:  "Contact nearest embassy",
	}
}

// ParseSafetyReport decodes a model response into a SafetyReport. It
// never fails: malformed input yields the fallback record.
func ParseSafetyReport(raw string) SafetyReport {
	body, ok := extractJSON(raw)
	if !ok {
		return FallbackSafetyReport(raw)
	}

	var report SafetyReport
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		return FallbackSafetyReport(raw)
	}

	if report.RiskLevel == "" {
		report.RiskLevel = "Unknown"
	}
	report.SafeAreas = orEmpty(report.SafeAreas)
	report.AvoidAreas = orEmpty(report.AvoidAreas)
	report.GenderSpecificTips = orEmpty(report.GenderSpecificTips)
	report.SoloTravelerMode = orEmpty(report.SoloTravelerMode)
	return report
}

// ParseCoordinates decodes a "lat, lon" completion into a coordinate
// pair. Unlike the record parsers this one can fail: there is no useful
// fallback for a malformed coordinate.
func ParseCoordinates(raw string) (lat, lon float64, err error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected 'lat, lon', got %q", raw)
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude: %w", err)
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude: %w", err)
	}
	return lat, lon, nil
}
