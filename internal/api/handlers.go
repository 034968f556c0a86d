package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/wayfarer-app/wayfarer/internal/auth"
	"github.com/wayfarer-app/wayfarer/internal/core"
	"github.com/wayfarer-app/wayfarer/internal/store"
	"github.com/wayfarer-app/wayfarer/internal/utils"
)

type APIHandler struct {
	authManager *auth.Manager
	db          *store.SQLiteStore

	ai        *core.AIService
	journal   *core.JournalService
	memory    *core.MemoryService
	safety    *core.SafetyService
	weather   *core.WeatherService
	location  *core.LocationService
	analytics *core.AnalyticsService

	stays map[string][]store.Stay
}

func NewAPIHandler(
	authManager *auth.Manager,
	db *store.SQLiteStore,
	ai *core.AIService,
	journal *core.JournalService,
	memory *core.MemoryService,
	safety *core.SafetyService,
	weather *core.WeatherService,
	location *core.LocationService,
	analytics *core.AnalyticsService,
	stays map[string][]store.Stay,
) *APIHandler {
	return &APIHandler{
		authManager: authManager,
		db:          db,
		ai:          ai,
		journal:     journal,
		memory:      memory,
		safety:      safety,
		weather:     weather,
		location:    location,
		analytics:   analytics,
		stays:       stays,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeAIError maps a completion failure onto an HTTP status. The
// provider layer returns typed failures rather than sentinel strings, so
// the route layer owns the user-visible error shape.
func writeAIError(w http.ResponseWriter, err error) {
	var provErr *core.ProviderError
	if errors.As(err, &provErr) {
		status := http.StatusBadGateway
		if provErr.Kind == core.FailureTimeout {
			status = http.StatusGatewayTimeout
		}
		writeJSON(w, status, map[string]string{
			"error":   string(provErr.Kind),
			"message": provErr.Message,
		})
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (h *APIHandler) JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		email, err := h.authManager.ValidateJWT(tokenString)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		user, err := h.db.GetUserByEmail(email)
		if err != nil {
			log.Error().Err(err).Str("email", email).Msg("failed to load user in auth middleware")
			writeError(w, http.StatusInternalServerError, "Failed to process user identity")
			return
		}
		if user == nil {
			writeError(w, http.StatusUnauthorized, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyEmail, user.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type ctxKey string

const ctxKeyEmail ctxKey = "email"

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *APIHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		writeError(w, http.StatusInternalServerError, "Failed to process password")
		return
	}

	user, err := h.db.CreateUser(req.Email, hashedPassword)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("failed to create user")
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.db.GetUserByEmail(req.Email)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("failed to query user")
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if user == nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.authManager.GenerateJWT(user.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate JWT")
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Profile

func (h *APIHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := h.memory.Profile()
	if err != nil {
		log.Error().Err(err).Msg("failed to load profile")
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *APIHandler) SaveProfileHandler(w http.ResponseWriter, r *http.Request) {
	var profile store.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := h.memory.SaveProfile(profile); err != nil {
		log.Error().Err(err).Msg("failed to save profile")
		writeError(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "saved": true})
}

func (h *APIHandler) EnrichProfileHandler(w http.ResponseWriter, r *http.Request) {
	journeys, err := h.journal.ListEntries(50)
	if err != nil {
		log.Error().Err(err).Msg("failed to list journal entries for enrichment")
		writeError(w, http.StatusInternalServerError, "Failed to load journal entries")
		return
	}

	enriched, err := h.memory.EnrichProfile(r.Context(), journeys)
	if err != nil {
		writeAIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"profile_enriched": enriched})
}

// AI planning features: the completion text is the product, returned
// as-is.

type ItineraryRequest struct {
	Destination  string `json:"destination"`
	Days         int    `json:"days"`
	TravelerType string `json:"traveler_type"`
	Interests    string `json:"interests"`
}

func (h *APIHandler) ItineraryHandler(w http.ResponseWriter, r *http.Request) {
	var req ItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.ai.Ask(r.Context(), core.ItineraryPrompt(req.Destination, req.Days, req.TravelerType, req.Interests))
	if err != nil {
		writeAIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"itinerary": response})
}

type PackingRequest struct {
	Destination  string `json:"destination"`
	Climate      string `json:"climate"`
	Duration     int    `json:"duration"`
	Activities   string `json:"activities"`
	TravelerType string `json:"traveler_type"`
}

func (h *APIHandler) PackingHandler(w http.ResponseWriter, r *http.Request) {
	var req PackingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.ai.Ask(r.Context(), core.PackingPrompt(req.Destination, req.Climate, req.Duration, req.Activities, req.TravelerType))
	if err != nil {
		writeAIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"packing_list": response})
}

type DestinationRequest struct {
	Destination  string `json:"destination"`
	TravelerType string `json:"traveler_type"`
}

func (h *APIHandler) CultureHandler(w http.ResponseWriter, r *http.Request) {
	var req DestinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.ai.Ask(r.Context(), core.CulturePrompt(req.Destination))
	if err != nil {
		writeAIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"story": response})
}

func (h *APIHandler) ExperiencesHandler(w http.ResponseWriter, r *http.Request) {
	var req DestinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.ai.Ask(r.Context(), core.ExperiencesPrompt(req.Destination, req.TravelerType))
	if err != nil {
		writeAIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"experiences": response})
}

type CostRequest struct {
	Destination  string `json:"destination"`
	Days         int    `json:"days"`
	TravelerType string `json:"traveler_type"`
}

func (h *APIHandler) CostHandler(w http.ResponseWriter, r *http.Request) {
	var req CostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.ai.Ask(r.Context(), core.CostPrompt(req.Destination, req.Days, req.TravelerType))
	if err != nil {
		writeAIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"cost": response})
}

// Safety

type SafetyRequest struct {
	Location     string `json:"location"`
	Gender       string `json:"gender"`
	TravelerType string `json:"traveler_type"`
}

func (h *APIHandler) SafetyCheckHandler(w http.ResponseWriter, r *http.Request) {
	var req SafetyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.ai.Ask(r.Context(), core.SafetyPrompt(req.Location))
	if err != nil {
		writeAIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"safety": response})
}

func (h *APIHandler) EnhancedSafetyHandler(w http.ResponseWriter, r *http.Request) {
	var req SafetyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	assessment, err := h.safety.Assess(r.Context(), req.Location, req.Gender, req.TravelerType)
	if err != nil {
		writeAIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

type EmergencyRequest struct {
	Situation string `json:"situation"`
	Location  string `json:"location"`
}

func (h *APIHandler) EmergencyHandler(w http.ResponseWriter, r *http.Request) {
	var req EmergencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	advice, err := h.safety.EmergencyHelp(r.Context(), req.Situation, req.Location)
	if err != nil {
		writeAIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"advice": advice})
}

func (h *APIHandler) RegionSafetyHandler(w http.ResponseWriter, r *http.Request) {
	var req SafetyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	record := h.safety.RegionSafety(req.Location)
	if record == nil {
		writeJSON(w, http.StatusOK, map[string]string{"score": "unknown"})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Journal

type JournalRequest struct {
	Text  string `json:"text"`
	Date  string `json:"date"`
	Image string `json:"image,omitempty"`
}

func (h *APIHandler) SaveJournalHandler(w http.ResponseWriter, r *http.Request) {
	var req JournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Journal text is required")
		return
	}

	entry, err := h.journal.SaveEntry(req.Text, req.Date, req.Image)
	if err != nil {
		log.Error().Err(err).Msg("failed to save journal entry")
		writeError(w, http.StatusInternalServerError, "Failed to save journal entry")
		return
	}

	analysis, err := h.journal.AnalyzeEntry(r.Context(), entry.ID, entry.Text)
	if err != nil {
		// The entry is saved; the analysis can be retried later.
		log.Warn().Err(err).Str("entry_id", entry.ID).Msg("journal analysis unavailable")
		writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"entry": entry, "analysis": analysis})
}

func (h *APIHandler) ListJournalHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journal.ListEntries(100)
	if err != nil {
		log.Error().Err(err).Msg("failed to list journal entries")
		writeError(w, http.StatusInternalServerError, "Failed to list journal entries")
		return
	}
	if entries == nil {
		entries = []store.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *APIHandler) AnalyzeJournalHandler(w http.ResponseWriter, r *http.Request) {
	var req JournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Journal text is required")
		return
	}

	analysis, err := h.journal.AnalyzeEntry(r.Context(), "", req.Text)
	if err != nil {
		writeAIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// Location, weather, distance, stays

func (h *APIHandler) LocationHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.location.Locate(r.Context()))
}

func (h *APIHandler) WeatherHandler(w http.ResponseWriter, r *http.Request) {
	loc := h.location.Locate(r.Context())
	weather := h.weather.Current(r.Context(), loc.Latitude, loc.Longitude)
	writeJSON(w, http.StatusOK, map[string]any{"location": loc, "weather": weather})
}

type DistanceRequest struct {
	Place string `json:"place"`
}

func (h *APIHandler) DistanceHandler(w http.ResponseWriter, r *http.Request) {
	var req DistanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	coords, err := h.ai.Ask(r.Context(), core.CoordinatesPrompt(req.Place))
	if err != nil {
		writeAIError(w, err)
		return
	}

	lat, lon, err := core.ParseCoordinates(coords)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"distance_km": "unknown"})
		return
	}

	loc := h.location.Locate(r.Context())
	km, err := utils.HaversineKm(loc.Latitude, loc.Longitude, lat, lon)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"distance_km": "unknown"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"distance_km": utils.RoundKm(km)})
}

func (h *APIHandler) StaysHandler(w http.ResponseWriter, r *http.Request) {
	place := chi.URLParam(r, "place")
	stays := h.stays[place]
	if stays == nil {
		stays = []store.Stay{}
	}
	writeJSON(w, http.StatusOK, stays)
}

func (h *APIHandler) SimilarStaysHandler(w http.ResponseWriter, r *http.Request) {
	var req DestinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	stays := h.stays[req.Destination]
	names := make([]string, 0, len(stays))
	for _, s := range stays {
		names = append(names, s.Name)
	}

	var picked []store.Stay
	response, err := h.ai.Ask(r.Context(), core.SimilarStaysPrompt(names))
	if err == nil {
		recommended := make(map[string]bool)
		for _, line := range strings.Split(response, "\n") {
			if name := strings.TrimSpace(line); name != "" {
				recommended[name] = true
			}
		}
		for _, s := range stays {
			if recommended[s.Name] {
				picked = append(picked, s)
			}
		}
	}

	// Degrade to the first few catalogue entries if the model was
	// unreachable or recommended nothing usable. Copy them: picked is
	// annotated below and must never write through to the shared
	// catalogue.
	if len(picked) < 3 {
		fallback := stays
		if len(stays) > 3 {
			fallback = stays[:3]
		}
		picked = append([]store.Stay(nil), fallback...)
	}

	for i := range picked {
		picked[i].Location = req.Destination
	}
	if picked == nil {
		picked = []store.Stay{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"stays": picked})
}
