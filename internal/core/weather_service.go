package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wayfarer-app/wayfarer/internal/store"
)

type Weather struct {
	Temp      float64 `json:"temp"`
	Wind      float64 `json:"wind"`
	Condition string  `json:"condition"`
}

// weatherConditions maps Open-Meteo weather codes to display text.
var weatherConditions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Depositing rime fog",
	51: "Light drizzle",
	61: "Light rain",
	71: "Snowfall",
	80: "Rain showers",
	95: "Thunderstorm",
}

type weatherDefaults struct {
	FallbackTemp      float64 `json:"fallback_temp"`
	FallbackCondition string  `json:"fallback_condition"`
}

// WeatherService reports current weather from Open-Meteo, degrading to
// bundled defaults when the network is unavailable.
type WeatherService struct {
	probe    onlineChecker
	baseURL  string
	client   *http.Client
	defaults weatherDefaults
}

func NewWeatherService(probe onlineChecker, dataDir string) *WeatherService {
	s := &WeatherService{
		probe:   probe,
		baseURL: "https://api.open-meteo.com/v1",
		client:  &http.Client{Timeout: 3 * time.Second},
		defaults: weatherDefaults{
			FallbackTemp:      28,
			FallbackCondition: "Partly Cloudy",
		},
	}
	// Bundled overrides are optional.
	_ = store.ReadDoc(dataDir, "weather_defaults.json", &s.defaults)
	return s
}

// SetBaseURL overrides the forecast endpoint, for tests.
func (s *WeatherService) SetBaseURL(baseURL string) {
	s.baseURL = baseURL
}

func (s *WeatherService) Current(ctx context.Context, lat, lon float64) Weather {
	if s.probe.Online() {
		if w, err := s.fetch(ctx, lat, lon); err == nil {
			return w
		}
	}
	return Weather{
		Temp:      s.defaults.FallbackTemp,
		Wind:      5,
		Condition: s.defaults.FallbackCondition,
	}
}

func (s *WeatherService) fetch(ctx context.Context, lat, lon float64) (Weather, error) {
	reqURL := fmt.Sprintf("%s/forecast?latitude=%f&longitude=%f&current_weather=true", s.baseURL, lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Weather{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Weather{}, err
	}
	defer resp.Body.Close()

	var body struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			Windspeed   float64 `json:"windspeed"`
			Weathercode int     `json:"weathercode"`
		} `json:"current_weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Weather{}, err
	}

	condition, ok := weatherConditions[body.CurrentWeather.Weathercode]
	if !ok {
		condition = "Unknown weather"
	}
	return Weather{
		Temp:      body.CurrentWeather.Temperature,
		Wind:      body.CurrentWeather.Windspeed,
		Condition: condition,
	}, nil
}
