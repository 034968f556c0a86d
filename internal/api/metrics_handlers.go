package api

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/rs/zerolog/log"
)

// MetricLogRequest covers every usage-metric logging endpoint: counters
// use Label only, timing/depth events also carry Value.
type MetricLogRequest struct {
	User  string  `json:"user"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

func decodeMetric(w http.ResponseWriter, r *http.Request) (MetricLogRequest, bool) {
	var req MetricLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return MetricLogRequest{}, false
	}
	return req, true
}

func metricOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *APIHandler) LogPageHandler(w http.ResponseWriter, r *http.Request) {
	if req, ok := decodeMetric(w, r); ok {
		h.analytics.LogPage(req.User, req.Label)
		metricOK(w)
	}
}

func (h *APIHandler) LogClickHandler(w http.ResponseWriter, r *http.Request) {
	if req, ok := decodeMetric(w, r); ok {
		h.analytics.LogClick(req.User, req.Label)
		metricOK(w)
	}
}

func (h *APIHandler) LogLoadTimeHandler(w http.ResponseWriter, r *http.Request) {
	if req, ok := decodeMetric(w, r); ok {
		h.analytics.LogLoadTime(req.User, req.Label, req.Value)
		metricOK(w)
	}
}

func (h *APIHandler) LogScrollHandler(w http.ResponseWriter, r *http.Request) {
	if req, ok := decodeMetric(w, r); ok {
		h.analytics.LogScroll(req.User, req.Label, req.Value)
		metricOK(w)
	}
}

func (h *APIHandler) LogAIUsageHandler(w http.ResponseWriter, r *http.Request) {
	if req, ok := decodeMetric(w, r); ok {
		h.analytics.LogAIUsage(req.User, req.Label)
		metricOK(w)
	}
}

func (h *APIHandler) TaskAttemptHandler(w http.ResponseWriter, r *http.Request) {
	if req, ok := decodeMetric(w, r); ok {
		h.analytics.LogTaskAttempt(req.User, req.Label)
		metricOK(w)
	}
}

func (h *APIHandler) TaskSuccessHandler(w http.ResponseWriter, r *http.Request) {
	if req, ok := decodeMetric(w, r); ok {
		h.analytics.LogTaskSuccess(req.User, req.Label, req.Value)
		metricOK(w)
	}
}

func (h *APIHandler) TaskErrorHandler(w http.ResponseWriter, r *http.Request) {
	if req, ok := decodeMetric(w, r); ok {
		h.analytics.LogTaskError(req.User, req.Label)
		metricOK(w)
	}
}

type SurveyRequest struct {
	SUS  []int `json:"sus"`
	NPS  int   `json:"nps"`
	CSAT int   `json:"csat"`
}

func (h *APIHandler) SurveyHandler(w http.ResponseWriter, r *http.Request) {
	var req SurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sus, err := h.analytics.SubmitSurvey(req.SUS, req.NPS, req.CSAT)
	if err != nil {
		log.Error().Err(err).Msg("failed to store survey scores")
		writeError(w, http.StatusInternalServerError, "Failed to store survey")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sus": sus})
}

// Admin

func (h *APIHandler) AdminMetricsHandler(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.analytics.Metrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to compute metrics")
		writeError(w, http.StatusInternalServerError, "Failed to compute metrics")
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (h *APIHandler) ExportUsersCSVHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := h.memory.Profile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=users.csv")
	w.Header().Set("Content-Type", "text/csv")

	writer := csv.NewWriter(w)
	writer.Write([]string{
		"name", "traveler_type", "gender", "budget", "last_destination",
		"likes", "dislikes", "favorite_themes", "avoid_themes",
		"emotional_score_sum", "emotional_entries",
	})
	writer.Write([]string{
		profile.Name, profile.TravelerType, profile.Gender, profile.Budget, profile.LastDestination,
		joinCSV(profile.Likes), joinCSV(profile.Dislikes), joinCSV(profile.FavoriteThemes), joinCSV(profile.AvoidThemes),
		fmt.Sprintf("%d", profile.EmotionalScoreSum), fmt.Sprintf("%d", profile.EmotionalEntries),
	})
	writer.Flush()
}

func joinCSV(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += "; "
		}
		out += item
	}
	return out
}

func (h *APIHandler) ExportMetricsCSVHandler(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.analytics.Metrics()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute metrics")
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=metrics.csv")
	w.Header().Set("Content-Type", "text/csv")

	keys := make([]string, 0, len(metrics))
	for key := range metrics {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	writer := csv.NewWriter(w)
	for _, key := range keys {
		writer.Write([]string{key, fmt.Sprintf("%v", metrics[key])})
	}
	writer.Flush()
}

func (h *APIHandler) ExportJSONHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := h.memory.Profile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	journeys, err := h.journal.ListEntries(500)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load journal entries")
		return
	}
	metrics, err := h.analytics.Metrics()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute metrics")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"profile":   profile,
		"journeys":  journeys,
		"analytics": metrics,
	})
}
