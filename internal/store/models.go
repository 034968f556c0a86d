package store

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Do not expose this in JSON responses
	CreatedAt    time.Time `json:"created_at"`
}

type JournalEntry struct {
	ID           string    `json:"id"` // Using UUID for external ID
	Text         string    `json:"text"`
	Date         string    `json:"date"`
	Image        string    `json:"image,omitempty"`
	AnalysisJSON string    `json:"analysis_json,omitempty"` // Parsed analysis, stored verbatim
	CreatedAt    time.Time `json:"created_at"`
}

// Event is one usage-analytics datapoint. Counter-style events leave
// Value at zero; timing/depth events carry it.
type Event struct {
	ID        int64     `json:"id"`
	User      string    `json:"user"`
	Kind      string    `json:"kind"` // page_visit, click, load_time, scroll, ai_usage, task_attempt, task_success, task_error
	Label     string    `json:"label"`
	Value     float64   `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

type SurveyScore struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"` // sus, nps, csat
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is the accumulating per-user preference record. The keyword,
// theme and like/dislike slices have set semantics: membership is
// deduplicated, insertion order is preserved but not significant.
type Profile struct {
	Name            string   `json:"name,omitempty"`
	TravelerType    string   `json:"traveler_type,omitempty"`
	Gender          string   `json:"gender,omitempty"`
	Interests       []string `json:"interests,omitempty"`
	Budget          string   `json:"budget,omitempty"`
	LastDestination string   `json:"last_destination,omitempty"`

	PositiveKeywords []string `json:"positive_keywords"`
	NegativeKeywords []string `json:"negative_keywords"`
	FavoriteThemes   []string `json:"favorite_themes"`
	AvoidThemes      []string `json:"avoid_themes"`
	Likes            []string `json:"likes"`
	Dislikes         []string `json:"dislikes"`

	EmotionalScoreSum int `json:"emotional_score_sum"`
	EmotionalEntries  int `json:"emotional_entries"`
}

// AverageMood derives the running mood average from the accumulators.
func (p Profile) AverageMood() float64 {
	if p.EmotionalEntries == 0 {
		return 0
	}
	return float64(p.EmotionalScoreSum) / float64(p.EmotionalEntries)
}

// SafetyRecord is one row of the bundled regional safety database.
type SafetyRecord struct {
	Location string   `json:"location"`
	Score    string   `json:"score"`
	Concerns []string `json:"concerns,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// Stay is one accommodation option in the bundled stays catalogue.
type Stay struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Image       string  `json:"image,omitempty"`
	Location    string  `json:"location,omitempty"`
	Destination string  `json:"destination,omitempty"`
}
