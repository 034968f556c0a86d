package core

import (
	"fmt"
	"strings"
)

// Prompt builders are pure: typed parameters in, prompt text out. The
// journal and safety builders embed an explicit JSON schema example so
// the model is nudged toward output the structured parsers can decode.
// That hint is a soft contract; the parsers never rely on it holding.

func ItineraryPrompt(destination string, days int, travelerType, interests string) string {
	return fmt.Sprintf(`Generate a detailed day-by-day travel itinerary.

Destination: %s
Days: %d
Traveler Type: %s
Interests: %s

Include:
- Morning
- Afternoon
- Evening
- Local tips
- Safety notes
- Food suggestions
- Travel time
- Budget per day

Keep formatting clean.`, destination, days, travelerType, interests)
}

func PackingPrompt(destination, climate string, duration int, activities, travelerType string) string {
	return fmt.Sprintf(`Create a packing list.

Destination: %s
Climate: %s
Duration: %d days
Activities: %s
Traveler Type: %s

Include:
- Clothing
- Toiletries
- Tech gear
- Travel essentials
- Safety items
- Optional items`, destination, climate, duration, activities, travelerType)
}

func CulturePrompt(destination string) string {
	return fmt.Sprintf("Write a cultural summary about %s. Include history, food, festivals, and traditions.", destination)
}

func ExperiencesPrompt(destination, travelerType string) string {
	return fmt.Sprintf(`List 5 authentic local experiences in %s for a %s traveler.
Include: name, description, price, and duration.`, destination, travelerType)
}

func CostPrompt(destination string, days int, travelerType string) string {
	return fmt.Sprintf(`Estimate total budget for a %d-day trip to %s
for a %s. Include:
- Flights
- Stay
- Food
- Transport
- Attractions
- Shopping
Return only INR values.`, days, destination, travelerType)
}

func SimilarStaysPrompt(stayNames []string) string {
	return fmt.Sprintf("Recommend 3 alternative stays similar to: %s. Return only names, one per line.",
		strings.Join(stayNames, ", "))
}

func CoordinatesPrompt(place string) string {
	return fmt.Sprintf("Give latitude and longitude of %s as 'lat, lon'", place)
}

func JournalAnalysisPrompt(entry string) string {
	return fmt.Sprintf(`Analyze this travel journal entry in deep detail:

Entry:
"""%s"""

Provide structured JSON in this format:
{
  "sentiment": "positive/neutral/negative",
  "emotion_keywords": ["happy", "excited"],
  "emotion_score": -5 to +5,
  "themes": ["food", "culture", "nature"],
  "activity_mentions": ["beach", "festival"],
  "likes": ["sunset", "local food"],
  "dislikes": ["crowds", "heat"],
  "summary": "One-sentence emotional summary"
}`, entry)
}

func SafetyPrompt(location string) string {
	return fmt.Sprintf(`Provide safety analysis for: %s
Include:
- Risk score
- Concerns
- Safe zones
- Areas to avoid
- Emergency steps
- Gender safety tips`, location)
}

func SafetyReportPrompt(location, gender, travelerType string) string {
	return fmt.Sprintf(`You are Wayfarer Safety AI.

Analyze safety for:
Location: %s
Traveler Type: %s
Gender: %s

Provide structured JSON:
{
  "risk_level": "",
  "why": "",
  "safe_areas": [],
  "avoid_areas": [],
  "gender_specific_tips": [],
  "solo_traveler_mode": [],
  "emergency_guidance": ""
}`, location, travelerType, gender)
}

func EmergencyPrompt(situation, location string) string {
	return fmt.Sprintf(`You are Wayfarer Emergency Assistant.

Situation:
%s

Location: %s

Provide concise emergency instructions:
- Immediate steps
- Who to contact
- Safety precautions
- How to get help
- If offline: what to do`, situation, location)
}

func EnrichProfilePrompt(profileJSON, journeysJSON string) string {
	var b strings.Builder
	b.WriteString("You are Wayfarer AI.\n\n")
	b.WriteString("Analyze this user profile:\n")
	b.WriteString(profileJSON)
	b.WriteString("\n\nAnd these journal entries:\n")
	b.WriteString(journeysJSON)
	b.WriteString(`

Infer:
- Preferred destination types (beach, mountain, city, cultural)
- Budget expectations
- Safety sensitivity
- Food preferences
- Activity preferences (adventure, chill, photography, nightlife)
- Best travel pace
- AI-generated interest tags

Output in structured JSON:
{
  "personality": "...",
  "destination_preference": "...",
  "ideal_trip_length": "",
  "preferred_climate": "",
  "activity_preference": [],
  "food_preference": [],
  "ai_tags": []
}`)
	return b.String()
}
