package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wayfarer-app/wayfarer/internal/store"
)

// Alert is one realtime travel-safety news item.
type Alert struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// SafetyAssessment is the combined safety answer: bundled regional data,
// the AI's structured report, and best-effort online alerts. Alerts is
// either []Alert or the string "offline" when the news lookup is
// unavailable; its failure never blocks the assessment.
type SafetyAssessment struct {
	LocalData  *store.SafetyRecord `json:"local_data"`
	AIAnalysis SafetyReport        `json:"ai_analysis"`
	Alerts     any                 `json:"alerts"`
}

// SafetyService combines the local safety database, AI interpretation
// and opportunistic news alerts.
type SafetyService struct {
	ai      *AIService
	probe   onlineChecker
	records []store.SafetyRecord

	newsBaseURL string
	newsToken   string
	newsClient  *http.Client
}

func NewSafetyService(ai *AIService, probe onlineChecker, records []store.SafetyRecord, newsToken string) *SafetyService {
	return &SafetyService{
		ai:          ai,
		probe:       probe,
		records:     records,
		newsBaseURL: "https://gnews.io/api/v4",
		newsToken:   newsToken,
		newsClient:  &http.Client{Timeout: 4 * time.Second},
	}
}

// SetNewsBaseURL overrides the alerts endpoint, for tests.
func (s *SafetyService) SetNewsBaseURL(baseURL string) {
	s.newsBaseURL = baseURL
}

// RegionSafety looks a location up in the bundled safety database.
func (s *SafetyService) RegionSafety(location string) *store.SafetyRecord {
	for i := range s.records {
		if strings.EqualFold(s.records[i].Location, location) {
			return &s.records[i]
		}
	}
	return nil
}

// AnalyzeSafety asks the AI engine for a structured safety report. The
// parse is total; only a complete provider failure surfaces as an error.
func (s *SafetyService) AnalyzeSafety(ctx context.Context, location, gender, travelerType string) (SafetyReport, error) {
	response, err := s.ai.Ask(ctx, SafetyReportPrompt(location, gender, travelerType))
	if err != nil {
		return SafetyReport{}, err
	}
	return ParseSafetyReport(response), nil
}

// Assess produces the combined safety answer for a location.
func (s *SafetyService) Assess(ctx context.Context, location, gender, travelerType string) (SafetyAssessment, error) {
	report, err := s.AnalyzeSafety(ctx, location, gender, travelerType)
	if err != nil {
		return SafetyAssessment{}, err
	}

	assessment := SafetyAssessment{
		LocalData:  s.RegionSafety(location),
		AIAnalysis: report,
		Alerts:     "offline",
	}

	if alerts := s.onlineAlerts(ctx, location); alerts != nil {
		assessment.Alerts = alerts
	}
	return assessment, nil
}

// EmergencyHelp returns free-text emergency guidance; the text is the
// product, no structured parse is attempted.
func (s *SafetyService) EmergencyHelp(ctx context.Context, situation, location string) (string, error) {
	return s.ai.Ask(ctx, EmergencyPrompt(situation, location))
}

// onlineAlerts fetches realtime alerts. Any failure returns nil so the
// caller degrades to the "offline" marker.
func (s *SafetyService) onlineAlerts(ctx context.Context, location string) []Alert {
	if !s.probe.Online() {
		return nil
	}

	query := url.Values{
		"q":     {fmt.Sprintf("%s travel safety", location)},
		"lang":  {"en"},
		"max":   {"5"},
		"token": {s.newsToken},
	}
	reqURL := fmt.Sprintf("%s/search?%s", s.newsBaseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil
	}
	resp, err := s.newsClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Msg("safety alerts lookup failed")
		return nil
	}
	defer resp.Body.Close()

	var body struct {
		Articles []Alert `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil
	}
	if body.Articles == nil {
		return []Alert{}
	}
	return body.Articles
}
