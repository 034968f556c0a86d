package core

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Event kinds recorded by the analytics service.
const (
	eventPage        = "page_visit"
	eventClick       = "click"
	eventLoadTime    = "load_time"
	eventScroll      = "scroll"
	eventAIUsage     = "ai_usage"
	eventTaskAttempt = "task_attempt"
	eventTaskSuccess = "task_success"
	eventTaskError   = "task_error"
)

type eventStore interface {
	LogEvent(user, kind, label string, value float64) error
	CountEvents(kind string) (map[string]int64, error)
	AverageEventValue(kind string) (map[string]float64, error)
	CreateSurveyScore(kind string, score float64) error
	AverageSurveyScore(kind string) (float64, int64, error)
}

// AnalyticsService records lightweight usage events and computes the
// derived metrics (task success rate, user error rate, load times, AI
// tier split, survey averages).
type AnalyticsService struct {
	db eventStore
}

func NewAnalyticsService(db eventStore) *AnalyticsService {
	return &AnalyticsService{db: db}
}

func (s *AnalyticsService) logEvent(user, kind, label string, value float64) {
	if label == "" {
		label = "unknown"
	}
	if err := s.db.LogEvent(user, kind, label, value); err != nil {
		// Analytics must never fail a feature request.
		log.Error().Err(err).Str("kind", kind).Msg("failed to log analytics event")
	}
}

func (s *AnalyticsService) LogPage(user, page string)          { s.logEvent(user, eventPage, page, 0) }
func (s *AnalyticsService) LogClick(user, event string)        { s.logEvent(user, eventClick, event, 0) }
func (s *AnalyticsService) LogTaskAttempt(user, task string)   { s.logEvent(user, eventTaskAttempt, task, 0) }
func (s *AnalyticsService) LogTaskError(user, task string)     { s.logEvent(user, eventTaskError, task, 0) }

func (s *AnalyticsService) LogLoadTime(user, page string, seconds float64) {
	s.logEvent(user, eventLoadTime, page, seconds)
}

func (s *AnalyticsService) LogScroll(user, page string, depth float64) {
	s.logEvent(user, eventScroll, page, depth)
}

func (s *AnalyticsService) LogTaskSuccess(user, task string, duration float64) {
	s.logEvent(user, eventTaskSuccess, task, duration)
}

// LogAIUsage attributes one served completion to a user and tier.
func (s *AnalyticsService) LogAIUsage(user, tier string) {
	s.logEvent(user, eventAIUsage, tier, 0)
}

// RecordAIUsage satisfies UsageRecorder: the AI router reports which
// tier served each completion. Router-level usage has no request user.
func (s *AnalyticsService) RecordAIUsage(tier string) {
	s.LogAIUsage("system", tier)
}

// ComputeSUS converts raw System Usability Scale answers (1-5 per item)
// into the 0-100 SUS score: odd items score value-1, even items 5-value,
// summed and scaled by 2.5.
func ComputeSUS(answers []int) float64 {
	var sum int
	for i, val := range answers {
		if i%2 == 0 {
			sum += val - 1
		} else {
			sum += 5 - val
		}
	}
	return float64(sum) * 2.5
}

// SubmitSurvey scores and stores one survey submission, returning the
// computed SUS score.
func (s *AnalyticsService) SubmitSurvey(susAnswers []int, nps, csat int) (float64, error) {
	sus := ComputeSUS(susAnswers)
	if err := s.db.CreateSurveyScore("sus", sus); err != nil {
		return 0, err
	}
	if err := s.db.CreateSurveyScore("nps", float64(nps)); err != nil {
		return 0, err
	}
	if err := s.db.CreateSurveyScore("csat", float64(csat)); err != nil {
		return 0, err
	}
	return sus, nil
}

// Metrics computes the admin dashboard numbers from the event log.
func (s *AnalyticsService) Metrics() (map[string]any, error) {
	metrics := make(map[string]any)

	pages, err := s.db.CountEvents(eventPage)
	if err != nil {
		return nil, fmt.Errorf("failed to compute page visits: %w", err)
	}
	metrics["page_visits"] = pages

	clicks, err := s.db.CountEvents(eventClick)
	if err != nil {
		return nil, fmt.Errorf("failed to compute clicks: %w", err)
	}
	metrics["click_events"] = clicks

	aiUsage, err := s.db.CountEvents(eventAIUsage)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ai usage: %w", err)
	}
	metrics["ai_usage"] = aiUsage

	loadTimes, err := s.db.AverageEventValue(eventLoadTime)
	if err != nil {
		return nil, fmt.Errorf("failed to compute load times: %w", err)
	}
	metrics["avg_load_time"] = loadTimes

	attempts, err := s.db.CountEvents(eventTaskAttempt)
	if err != nil {
		return nil, fmt.Errorf("failed to compute task attempts: %w", err)
	}
	successes, err := s.db.CountEvents(eventTaskSuccess)
	if err != nil {
		return nil, fmt.Errorf("failed to compute task successes: %w", err)
	}
	taskErrors, err := s.db.CountEvents(eventTaskError)
	if err != nil {
		return nil, fmt.Errorf("failed to compute task errors: %w", err)
	}

	tsr := make(map[string]float64)
	uer := make(map[string]float64)
	for task, n := range attempts {
		if n == 0 {
			continue
		}
		tsr[task] = float64(successes[task]) / float64(n)
		uer[task] = float64(taskErrors[task]) / float64(n)
	}
	metrics["task_success_rate"] = tsr
	metrics["user_error_rate"] = uer

	for _, kind := range []string{"sus", "nps", "csat"} {
		avg, n, err := s.db.AverageSurveyScore(kind)
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s average: %w", kind, err)
		}
		metrics[kind] = map[string]any{"average": avg, "responses": n}
	}

	return metrics, nil
}
